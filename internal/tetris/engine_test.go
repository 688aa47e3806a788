package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	cfg := DefaultEngineConfig()
	cfg.Seed = seed
	e := NewEngine(core.Player1, cfg)
	require.Equal(t, StateActive, e.State())
	return e
}

// forceShape replaces the falling piece with a fresh spawn of s.
func forceShape(t *testing.T, e *Engine, s Shape) {
	t.Helper()
	e.board.ClearActive()
	e.bag.PushFront(s)
	e.state = StateSpawning
	require.Nil(t, e.spawn())
	require.Equal(t, s, e.active.Shape)
}

func TestEngineSpawnPosition(t *testing.T) {
	e := newTestEngine(t, 1)
	forceShape(t, e, ShapeT)

	p, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 3, p.X)
	assert.Equal(t, 19, p.Y)
	assert.Equal(t, 0, p.Rotation)
	assert.Equal(t, 4, e.Board().Count(CellLive))
	assert.InDelta(t, 1.0, e.Level(), 1e-9)
	assert.Equal(t, 0, e.Score())
}

func TestEngineMoveSideways(t *testing.T) {
	e := newTestEngine(t, 1)
	forceShape(t, e, ShapeT)

	assert.True(t, e.Left().Moved)
	p, _ := e.Active()
	assert.Equal(t, 2, p.X)

	for i := 0; i < 10; i++ {
		e.Left()
	}
	p, _ = e.Active()
	assert.Equal(t, 0, p.X, "piece should stop at the left wall")

	r := e.Left()
	assert.False(t, r.Mutated(), "blocked sideways move must be silent")
	assert.Equal(t, StateActive, e.State())
}

func TestEngineSoftDropLocksOnFloor(t *testing.T) {
	e := newTestEngine(t, 1)
	forceShape(t, e, ShapeO)

	// O fills box rows 0..1, so it lands with its anchor one row below the floor.
	moves := 0
	for {
		r := e.SoftDrop()
		if r.Locked {
			break
		}
		require.True(t, r.Moved)
		moves++
	}
	assert.Equal(t, 20, moves)
	assert.Equal(t, 4, e.Board().Count(CellDead))
	assert.Equal(t, CellDead, e.Board().Cell(4, 0))
	assert.Equal(t, CellDead, e.Board().Cell(5, 1))
	assert.Equal(t, StateActive, e.State(), "next piece should have spawned")
}

// Long piece on an empty board: lands on the bottom row, nothing clears.
func TestEngineHardDropLongPiece(t *testing.T) {
	e := newTestEngine(t, 2)
	forceShape(t, e, ShapeI)

	r := e.HardDrop()
	require.True(t, r.Locked)
	assert.Equal(t, 0, r.Cleared)
	assert.False(t, r.GameOver())
	assert.Equal(t, 19, r.Dropped)

	for x := 3; x <= 6; x++ {
		assert.Equal(t, CellDead, e.Board().Cell(x, 0), "column %d", x)
	}
	assert.Equal(t, 4, e.Board().Count(CellDead))
	assert.Equal(t, 0, e.Score())
	assert.InDelta(t, 1.0, e.Level(), 1e-9)
}

// Nine settled cells on the bottom row, a vertical long piece fills the tenth.
func TestEngineSingleLineClear(t *testing.T) {
	e := newTestEngine(t, 3)
	forceShape(t, e, ShapeI)
	require.True(t, e.Rotate(1).Moved)

	p, _ := e.Active()
	cells := p.Cells()
	col := cells[0].X
	for _, c := range cells {
		require.Equal(t, col, c.X, "rotated long piece should be vertical")
	}
	fillRow(e.board, 0, col)
	require.Equal(t, 9, e.Board().Count(CellDead))

	r := e.HardDrop()
	require.True(t, r.Locked)
	assert.Equal(t, 1, r.Cleared)
	assert.Equal(t, 40, e.Score())
	assert.InDelta(t, 1.1, e.Level(), 1e-9)
	assert.Equal(t, 1, e.Lines())

	// The rest of the long piece dropped one row.
	assert.Equal(t, 3, e.Board().Count(CellDead))
	for y := 0; y < 3; y++ {
		assert.Equal(t, CellDead, e.Board().Cell(col, y))
	}
}

// A full spawn area ends the game for the owning player, leaving the board alone.
func TestEngineSpawnCollision(t *testing.T) {
	e := NewEngine(core.Player2, DefaultEngineConfig())
	e.board.ClearActive()
	for y := e.board.Height() - 5; y < e.board.Height(); y++ {
		fillRow(e.board, y)
	}
	before := append([]CellState(nil), e.board.cells...)

	e.state = StateSpawning
	over := e.spawn()

	require.NotNil(t, over)
	assert.Equal(t, core.Player2, over.Player)
	assert.Equal(t, StateGameOver, e.State())
	assert.Equal(t, before, e.board.cells)

	_, ok := e.Active()
	assert.False(t, ok)
	assert.False(t, e.Left().Mutated(), "no moves after game over")
	assert.False(t, e.HardDrop().Mutated())
	assert.False(t, e.Hold().Mutated())
}

func TestEngineHoldIntoBlockedSpawn(t *testing.T) {
	e := newTestEngine(t, 4)
	for y := e.board.Height() - 3; y < e.board.Height(); y++ {
		for x := 0; x < e.board.Width(); x++ {
			if e.board.Cell(x, y) == CellEmpty {
				setDead(e.board, x, y)
			}
		}
	}

	r := e.Hold()
	assert.True(t, r.Held)
	require.True(t, r.GameOver())
	assert.Equal(t, core.Player1, r.Over.Player)
	assert.Equal(t, StateGameOver, e.State())
}

func TestEngineHold(t *testing.T) {
	e := newTestEngine(t, 5)
	forceShape(t, e, ShapeT)
	next := e.Next(1)[0]

	r := e.Hold()
	require.True(t, r.Held)
	assert.Equal(t, ShapeT, e.Held())
	p, _ := e.Active()
	assert.Equal(t, next, p.Shape)
	assert.Equal(t, 4, e.Board().Count(CellLive))
	assert.Equal(t, 0, e.Board().Count(CellDead), "hold must not lock")

	queued := e.Next(1)[0]
	e.Hold()
	p, _ = e.Active()
	assert.Equal(t, ShapeT, p.Shape, "held shape comes back next")
	assert.Equal(t, next, e.Held())
	assert.Equal(t, queued, e.Next(1)[0], "queue continues after the swap")
}

func TestEngineRotateRoundTrip(t *testing.T) {
	for _, s := range Shapes() {
		t.Run(s.String(), func(t *testing.T) {
			e := newTestEngine(t, 6)
			forceShape(t, e, s)
			for i := 0; i < 4; i++ {
				e.SoftDrop()
			}
			start, _ := e.Active()

			for i := 0; i < 4; i++ {
				require.True(t, e.Rotate(1).Moved, "turn %d", i)
			}
			end, _ := e.Active()
			assert.True(t, start.Box.Equal(end.Box))
			assert.Equal(t, start.Rotation, end.Rotation)
			assert.Equal(t, start.X, end.X)
			assert.Equal(t, start.Y, end.Y)
		})
	}
}

func TestEngineRotateWallKick(t *testing.T) {
	e := newTestEngine(t, 7)
	forceShape(t, e, ShapeT)

	require.True(t, e.Rotate(1).Moved)
	for i := 0; i < 10; i++ {
		e.Left()
	}
	p, _ := e.Active()
	require.Equal(t, -1, p.X, "pointing right, the empty box column may hang off the wall")

	// The flat state needs column -1, so the second kick shifts it right.
	r := e.Rotate(1)
	require.True(t, r.Moved)
	p, _ = e.Active()
	assert.Equal(t, Rot2, p.Rotation)
	assert.Equal(t, 0, p.X)
}

func TestEngineRotateNoKickFits(t *testing.T) {
	e := newTestEngine(t, 8)
	forceShape(t, e, ShapeT)
	for y := 0; y < e.board.Height(); y++ {
		for x := 0; x < e.board.Width(); x++ {
			if e.board.Cell(x, y) == CellEmpty {
				setDead(e.board, x, y)
			}
		}
	}
	before, _ := e.Active()

	r := e.Rotate(1)
	assert.False(t, r.Mutated())
	after, _ := e.Active()
	assert.Equal(t, before, after)
	assert.Equal(t, 4, e.Board().Count(CellLive))
}

func TestEngineRotateDeterminism(t *testing.T) {
	build := func() *Engine {
		e := newTestEngine(t, 9)
		forceShape(t, e, ShapeJ)
		fillRow(e.board, 0, 0)
		fillRow(e.board, 1, 0, 1)
		setDead(e.board, 6, 15)
		return e
	}

	a, b := build(), build()
	for i := 0; i < 6; i++ {
		ra, rb := a.Rotate(1), b.Rotate(1)
		assert.Equal(t, ra, rb)
		a.Left()
		b.Left()
		a.SoftDrop()
		b.SoftDrop()
	}
	assert.Equal(t, a.Snapshot(3), b.Snapshot(3))
}

func TestEngineScoring(t *testing.T) {
	tests := []struct {
		name       string
		tenths     int
		cleared    int
		score      int
		nextTenths int
	}{
		{"nothing", 10, 0, 0, 10},
		{"single", 10, 1, 40, 11},
		{"double", 10, 2, 100, 12},
		{"triple", 10, 3, 300, 13},
		{"tetris", 10, 4, 1200, 14},
		{"floor of level", 29, 1, 80, 30},
		{"level three", 30, 2, 300, 32},
		{"capped table", 10, 5, 1200, 15},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, 1)
			e.tenths = tc.tenths
			e.addScore(tc.cleared)
			assert.Equal(t, tc.score, e.Score())
			assert.Equal(t, tc.nextTenths, e.tenths)
		})
	}
}

func TestEngineScoreMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	e := newTestEngine(t, 2024)
	ops := []func() Result{e.Left, e.Right, e.SoftDrop, e.HardDrop, e.Hold, func() Result { return e.Rotate(1) }}

	score, level := e.Score(), e.Level()
	for i := 0; i < 5000 && e.State() != StateGameOver; i++ {
		ops[rng.Intn(len(ops))]()
		require.GreaterOrEqual(t, e.Score(), score)
		require.GreaterOrEqual(t, e.Level(), level)
		score, level = e.Score(), e.Level()

		require.LessOrEqual(t, e.Board().Count(CellLive), 4)
	}
}

func TestEngineGhost(t *testing.T) {
	e := newTestEngine(t, 10)
	forceShape(t, e, ShapeI)

	ghost := e.Ghost()
	require.Len(t, ghost, 4)
	for _, p := range ghost {
		assert.Equal(t, 0, p.Y)
	}
	assert.Equal(t, 0, e.Board().Count(CellDead), "ghost must not touch the board")
}

func TestEngineReset(t *testing.T) {
	e := newTestEngine(t, 11)
	e.HardDrop()
	e.Hold()
	e.tenths = 35
	e.score = 900

	e.Reset()
	assert.Equal(t, 0, e.Score())
	assert.InDelta(t, 1.0, e.Level(), 1e-9)
	assert.Equal(t, ShapeNone, e.Held())
	assert.Equal(t, 0, e.Board().Count(CellDead))
	assert.Equal(t, StateActive, e.State())
}

func TestEngineSnapshot(t *testing.T) {
	e := newTestEngine(t, 12)
	forceShape(t, e, ShapeO)
	e.HardDrop()

	snap := e.Snapshot(3)
	assert.Equal(t, core.Player1, snap.Player)
	assert.Equal(t, 10, snap.Width)
	assert.Equal(t, 22, snap.Height)
	assert.Equal(t, 20, snap.Visible)
	assert.Len(t, snap.Next, 3)
	assert.Len(t, snap.Live, 4)
	assert.Equal(t, ShapeO, snap.Grid[0][4])
	assert.True(t, snap.IsLive(snap.Live[0].X, snap.Live[0].Y))

	// The snapshot is a copy.
	snap.Grid[0][4] = ShapeNone
	assert.Equal(t, CellDead, e.Board().Cell(4, 0))
}
