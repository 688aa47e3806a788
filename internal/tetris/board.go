package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// CellState is the occupancy of one board cell.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellLive            // part of the falling piece
	CellDead            // settled
)

// Fault describes why a placement was rejected.
type Fault uint8

const (
	FaultNone    Fault = iota
	FaultOutLow        // past the left or bottom edge
	FaultOutHigh       // past the right or top edge
	FaultOverlap       // onto a settled cell
)

// String returns a short name for the fault.
func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultOutLow:
		return "out-low"
	case FaultOutHigh:
		return "out-high"
	case FaultOverlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// Board is a W×H occupancy grid. Row 0 is the bottom row.
// Cells are stored in row-major order: index = y*W + x.
type Board struct {
	w, h   int
	cells  []CellState
	shapes []Shape // shape that produced each non-empty cell
}

// NewBoard creates an empty board.
func NewBoard(w, h int) *Board {
	return &Board{
		w:      w,
		h:      h,
		cells:  make([]CellState, w*h),
		shapes: make([]Shape, w*h),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.w }

// Height returns the number of rows, headroom included.
func (b *Board) Height() int { return b.h }

func (b *Board) index(x, y int) int {
	return y*b.w + x
}

// InBounds returns true if (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.w && y >= 0 && y < b.h
}

// Cell returns the state of (x, y). Out-of-bounds cells read as empty.
func (b *Board) Cell(x, y int) CellState {
	if !b.InBounds(x, y) {
		return CellEmpty
	}
	return b.cells[b.index(x, y)]
}

// ShapeAt returns the shape that occupies (x, y), or ShapeNone.
func (b *Board) ShapeAt(x, y int) Shape {
	if !b.InBounds(x, y) {
		return ShapeNone
	}
	return b.shapes[b.index(x, y)]
}

// Count returns how many cells are in the given state.
func (b *Board) Count(state CellState) int {
	n := 0
	for _, c := range b.cells {
		if c == state {
			n++
		}
	}
	return n
}

// Validate maps every filled cell of box anchored at (x, y) onto the board.
// It never mutates the board; a non-None fault rejects the placement as a
// whole.
func (b *Board) Validate(box Box, x, y int) ([]core.Point, Fault) {
	cells := box.Cells(x, y)
	for _, p := range cells {
		switch {
		case p.X < 0 || p.Y < 0:
			return nil, FaultOutLow
		case p.X >= b.w || p.Y >= b.h:
			return nil, FaultOutHigh
		case b.cells[b.index(p.X, p.Y)] == CellDead:
			return nil, FaultOverlap
		}
	}
	return cells, FaultNone
}

// Commit replaces the live piece with the given cells. The cells must come
// from a successful Validate.
func (b *Board) Commit(cells []core.Point, s Shape) {
	b.ClearActive()
	for _, p := range cells {
		i := b.index(p.X, p.Y)
		b.cells[i] = CellLive
		b.shapes[i] = s
	}
}

// LockActive settles every live cell.
func (b *Board) LockActive() {
	for i, c := range b.cells {
		if c == CellLive {
			b.cells[i] = CellDead
		}
	}
}

// ClearActive removes the live piece without settling it.
func (b *Board) ClearActive() {
	for i, c := range b.cells {
		if c == CellLive {
			b.cells[i] = CellEmpty
			b.shapes[i] = ShapeNone
		}
	}
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < b.w; x++ {
		if b.cells[b.index(x, y)] != CellDead {
			return false
		}
	}
	return true
}

// ClearFullRows removes every fully settled row, shifts the rows above it
// down and refills the top with empty rows. It returns the number of rows
// removed.
func (b *Board) ClearFullRows() int {
	dst := 0
	for src := 0; src < b.h; src++ {
		if b.rowFull(src) {
			continue
		}
		if dst != src {
			copy(b.cells[dst*b.w:(dst+1)*b.w], b.cells[src*b.w:(src+1)*b.w])
			copy(b.shapes[dst*b.w:(dst+1)*b.w], b.shapes[src*b.w:(src+1)*b.w])
		}
		dst++
	}
	cleared := b.h - dst
	for y := dst; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			i := b.index(x, y)
			b.cells[i] = CellEmpty
			b.shapes[i] = ShapeNone
		}
	}
	return cleared
}

// Reset empties the board.
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = CellEmpty
		b.shapes[i] = ShapeNone
	}
}
