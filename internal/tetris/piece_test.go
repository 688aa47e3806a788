package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestShapeBoxes(t *testing.T) {
	for _, s := range Shapes() {
		t.Run(s.String(), func(t *testing.T) {
			b := s.Box()
			require.NotNil(t, b)

			n := b.Size()
			filled := 0
			for r := 0; r < n; r++ {
				require.Len(t, b[r], n, "box must be square")
				for c := 0; c < n; c++ {
					if b.Filled(c, r) {
						filled++
					}
				}
			}
			assert.Equal(t, 4, filled)
		})
	}

	assert.Equal(t, 5, ShapeI.Box().Size())
	assert.Equal(t, 3, ShapeO.Box().Size())
	assert.Nil(t, ShapeNone.Box())
}

func TestShapeBoxIsCopy(t *testing.T) {
	b := ShapeT.Box()
	b[0][0] = 1
	assert.Equal(t, uint8(0), ShapeT.Box()[0][0], "catalog must not be mutable through Box()")
}

func TestBoxRotate(t *testing.T) {
	tBox := ShapeT.Box()

	right := Box{
		{0, 1, 0},
		{0, 1, 1},
		{0, 1, 0},
	}
	assert.True(t, tBox.Rotate(1).Equal(right), "T should point right after one turn")

	two := Box{
		{0, 0, 0},
		{1, 1, 1},
		{0, 1, 0},
	}
	assert.True(t, tBox.Rotate(2).Equal(two))
	assert.True(t, tBox.Rotate(-1).Equal(tBox.Rotate(3)))
	assert.True(t, tBox.Equal(ShapeT.Box()), "Rotate must not modify the receiver")
}

func TestBoxRotateRoundTrip(t *testing.T) {
	for _, s := range Shapes() {
		b := s.Box()
		r := b
		for i := 0; i < 4; i++ {
			r = r.Rotate(1)
		}
		assert.True(t, r.Equal(b), "%s: four quarter turns should return the spawn box", s)
	}
}

func TestBoxCells(t *testing.T) {
	// O occupies the two right columns of its two top rows.
	cells := ShapeO.Box().Cells(3, 10)
	assert.ElementsMatch(t, []core.Point{
		{X: 4, Y: 12}, {X: 5, Y: 12},
		{X: 4, Y: 11}, {X: 5, Y: 11},
	}, cells)
}

func TestKick(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		from, to int
		attempt  int
		expected core.Point
		ok       bool
	}{
		{"T 0->R first", ShapeT, Rot0, RotR, 0, core.Point{}, true},
		{"T 0->R second", ShapeT, Rot0, RotR, 1, core.Point{X: -1, Y: 0}, true},
		{"T R->2 second", ShapeT, RotR, Rot2, 1, core.Point{X: 1, Y: 0}, true},
		{"T 0->L fifth", ShapeT, Rot0, RotL, 4, core.Point{X: 1, Y: -2}, true},
		{"T past table", ShapeT, Rot0, RotR, 5, core.Point{}, false},
		{"I 0->R first", ShapeI, Rot0, RotR, 0, core.Point{X: 1, Y: 0}, true},
		{"I 0->R third", ShapeI, Rot0, RotR, 2, core.Point{X: 2, Y: 0}, true},
		{"O 0->R", ShapeO, Rot0, RotR, 0, core.Point{X: 0, Y: 1}, true},
		{"O has a single attempt", ShapeO, Rot0, RotR, 1, core.Point{}, false},
		{"negative attempt", ShapeS, Rot0, RotR, -1, core.Point{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Kick(tc.shape, tc.from, tc.to, tc.attempt)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestOKicksKeepPieceInPlace(t *testing.T) {
	base := ShapeO.Box().Cells(3, 5)
	box := ShapeO.Box()
	x, y := 3, 5
	for from := 0; from < 4; from++ {
		k, ok := Kick(ShapeO, from, from+1, 0)
		require.True(t, ok)
		box = box.Rotate(1)
		x, y = x+k.X, y+k.Y
		assert.ElementsMatch(t, base, box.Cells(x, y), "O moved while rotating from state %d", from)
	}
}
