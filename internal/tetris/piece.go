// Package tetris implements the per-player simulation: the piece catalog,
// the board with two-phase placement, the 7-bag queue and the engine state
// machine. It is UI-agnostic and deterministic for a given seed.
package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeI
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// Shapes returns the seven playable shapes in canonical order.
func Shapes() []Shape {
	return []Shape{ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL}
}

// String returns the letter name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	default:
		return "-"
	}
}

// Color returns the display color of the shape.
func (s Shape) Color() core.Color {
	switch s {
	case ShapeI:
		return core.ColorCyan
	case ShapeO:
		return core.ColorYellow
	case ShapeT:
		return core.ColorMagenta
	case ShapeS:
		return core.ColorGreen
	case ShapeZ:
		return core.ColorRed
	case ShapeJ:
		return core.ColorBlue
	case ShapeL:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// Box is a square 0/1 matrix. Rows are stored top first.
type Box [][]uint8

// spawn boxes, rows top first
var boxes = map[Shape]Box{
	ShapeI: {
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 1},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	},
	ShapeO: {
		{0, 1, 1},
		{0, 1, 1},
		{0, 0, 0},
	},
	ShapeT: {
		{0, 1, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	ShapeS: {
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	},
	ShapeZ: {
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	},
	ShapeJ: {
		{1, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	ShapeL: {
		{0, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	},
}

// Box returns a copy of the shape's spawn box.
func (s Shape) Box() Box {
	b, ok := boxes[s]
	if !ok {
		return nil
	}
	return b.Clone()
}

// Size returns the side length of the box.
func (b Box) Size() int {
	return len(b)
}

// Filled reports whether column c of row r (top first) is occupied.
func (b Box) Filled(c, r int) bool {
	return b[r][c] != 0
}

// Clone returns a deep copy of the box.
func (b Box) Clone() Box {
	out := make(Box, len(b))
	for r := range b {
		out[r] = append([]uint8(nil), b[r]...)
	}
	return out
}

// Rotate returns the box turned clockwise times quarter turns.
// The receiver is not modified.
func (b Box) Rotate(times int) Box {
	times = ((times % 4) + 4) % 4
	out := b.Clone()
	n := len(b)
	for ; times > 0; times-- {
		next := make(Box, n)
		for r := 0; r < n; r++ {
			next[r] = make([]uint8, n)
			for c := 0; c < n; c++ {
				next[r][c] = out[n-1-c][r]
			}
		}
		out = next
	}
	return out
}

// Equal reports whether two boxes hold the same cells.
func (b Box) Equal(o Box) bool {
	if len(b) != len(o) {
		return false
	}
	for r := range b {
		if len(b[r]) != len(o[r]) {
			return false
		}
		for c := range b[r] {
			if b[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Cells maps every filled cell to board coordinates for a box whose
// bottom-left corner sits at (x, y). Board rows grow upward.
func (b Box) Cells(x, y int) []core.Point {
	n := len(b)
	cells := make([]core.Point, 0, 4)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b[r][c] != 0 {
				cells = append(cells, core.Point{X: x + c, Y: y + n - 1 - r})
			}
		}
	}
	return cells
}
