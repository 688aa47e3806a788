package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setDead settles a cell directly, for building test boards.
func setDead(b *Board, x, y int) {
	i := b.index(x, y)
	b.cells[i] = CellDead
	b.shapes[i] = ShapeZ
}

func fillRow(b *Board, y int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < b.Width(); x++ {
		if !skip[x] {
			setDead(b, x, y)
		}
	}
}

func TestBoardValidate(t *testing.T) {
	b := NewBoard(10, 22)
	setDead(b, 0, 0)
	box := ShapeO.Box() // cells in columns 1..2, rows 0..1 of the box

	tests := []struct {
		name  string
		x, y  int
		fault Fault
	}{
		{"fits", 3, 5, FaultNone},
		{"left edge", -2, 5, FaultOutLow},
		{"empty column past left edge", -1, 5, FaultNone},
		{"floor", 3, -2, FaultOutLow},
		{"empty row below floor", 3, -1, FaultNone},
		{"right edge", 8, 5, FaultOutHigh},
		{"ceiling", 3, 21, FaultOutHigh},
		{"overlap", -1, -1, FaultOverlap},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cells, fault := b.Validate(box, tc.x, tc.y)
			assert.Equal(t, tc.fault, fault)
			if fault == FaultNone {
				assert.Len(t, cells, 4)
			} else {
				assert.Nil(t, cells)
			}
		})
	}
}

func TestBoardValidateDoesNotMutate(t *testing.T) {
	b := NewBoard(10, 22)
	_, fault := b.Validate(ShapeT.Box(), 3, 3)
	require.Equal(t, FaultNone, fault)
	assert.Equal(t, 0, b.Count(CellLive))
}

func TestBoardValidateSoundness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewBoard(10, 22)
	for i := 0; i < 60; i++ {
		setDead(b, rng.Intn(10), rng.Intn(22))
	}

	for i := 0; i < 2000; i++ {
		s := Shapes()[rng.Intn(7)]
		box := s.Box().Rotate(rng.Intn(4))
		x, y := rng.Intn(16)-3, rng.Intn(28)-3

		cells, fault := b.Validate(box, x, y)
		if fault != FaultNone {
			continue
		}
		for _, p := range cells {
			require.True(t, b.InBounds(p.X, p.Y), "accepted cell %v out of bounds", p)
			require.NotEqual(t, CellDead, b.Cell(p.X, p.Y), "accepted cell %v is settled", p)
		}
	}
}

func TestBoardCommitLockClear(t *testing.T) {
	b := NewBoard(10, 22)
	cells, _ := b.Validate(ShapeT.Box(), 3, 10)
	b.Commit(cells, ShapeT)
	assert.Equal(t, 4, b.Count(CellLive))

	// Committing again replaces the live piece.
	cells, _ = b.Validate(ShapeT.Box(), 3, 9)
	b.Commit(cells, ShapeT)
	assert.Equal(t, 4, b.Count(CellLive))
	assert.Equal(t, ShapeT, b.ShapeAt(cells[0].X, cells[0].Y))

	b.ClearActive()
	assert.Equal(t, 0, b.Count(CellLive))
	assert.Equal(t, 0, b.Count(CellDead))

	b.Commit(cells, ShapeT)
	b.LockActive()
	assert.Equal(t, 0, b.Count(CellLive))
	assert.Equal(t, 4, b.Count(CellDead))
}

func TestBoardClearFullRows(t *testing.T) {
	b := NewBoard(10, 22)
	fillRow(b, 0)
	fillRow(b, 1, 4)
	fillRow(b, 2)
	setDead(b, 7, 3)

	cleared := b.ClearFullRows()
	assert.Equal(t, 2, cleared)

	// Row 1 drops to row 0, the lone cell on row 3 drops to row 1.
	assert.Equal(t, CellEmpty, b.Cell(4, 0))
	assert.Equal(t, CellDead, b.Cell(0, 0))
	assert.Equal(t, CellDead, b.Cell(7, 1))
	assert.Equal(t, 9+1, b.Count(CellDead))
	assert.Equal(t, 22, b.Height())

	assert.Equal(t, 0, b.ClearFullRows(), "second clear must be a no-op")
}

func TestBoardClearRowCountInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for full := 0; full <= 4; full++ {
		b := NewBoard(10, 22)
		rows := rng.Perm(12)[:full]
		for _, y := range rows {
			fillRow(b, y)
		}
		for i := 0; i < 30; i++ {
			x, y := rng.Intn(10), 12+rng.Intn(10)
			setDead(b, x, y)
		}

		before := b.Count(CellDead)
		cleared := b.ClearFullRows()

		assert.Equal(t, full, cleared)
		assert.GreaterOrEqual(t, cleared, 0)
		assert.LessOrEqual(t, cleared, 4)
		assert.Equal(t, before-cleared*b.Width(), b.Count(CellDead))
		assert.Equal(t, 0, b.ClearFullRows())
	}
}

func TestBoardReset(t *testing.T) {
	b := NewBoard(4, 4)
	fillRow(b, 2)
	b.Reset()
	assert.Equal(t, 16, b.Count(CellEmpty))
	assert.Equal(t, ShapeNone, b.ShapeAt(0, 2))
}
