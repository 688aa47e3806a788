package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Snapshot is a read-only copy of an engine, safe to hand to a renderer
// running on another goroutine.
type Snapshot struct {
	Player  core.PlayerID
	Width   int
	Height  int
	Visible int
	State   State

	// Grid holds the shape in each cell, row 0 at the bottom.
	// ShapeNone marks an empty cell.
	Grid  [][]Shape
	Live  []core.Point
	Ghost []core.Point

	Active Shape
	Held   Shape
	Next   []Shape

	Score int
	Level float64
	Lines int
}

// Snapshot captures the engine state together with the next n shapes.
func (e *Engine) Snapshot(next int) Snapshot {
	b := e.board
	grid := make([][]Shape, b.Height())
	var live []core.Point
	for y := range grid {
		grid[y] = make([]Shape, b.Width())
		for x := range grid[y] {
			switch b.Cell(x, y) {
			case CellLive:
				live = append(live, core.Point{X: x, Y: y})
				grid[y][x] = b.ShapeAt(x, y)
			case CellDead:
				grid[y][x] = b.ShapeAt(x, y)
			}
		}
	}

	snap := Snapshot{
		Player:  e.player,
		Width:   b.Width(),
		Height:  b.Height(),
		Visible: e.cfg.Visible,
		State:   e.state,
		Grid:    grid,
		Live:    live,
		Ghost:   e.Ghost(),
		Held:    e.held,
		Next:    e.Next(next),
		Score:   e.score,
		Level:   e.Level(),
		Lines:   e.lines,
	}
	if e.state == StateActive {
		snap.Active = e.active.Shape
	}
	return snap
}

// IsLive reports whether (x, y) belongs to the falling piece.
func (s Snapshot) IsLive(x, y int) bool {
	for _, p := range s.Live {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}

// IsGhost reports whether (x, y) is part of the landing preview.
func (s Snapshot) IsGhost(x, y int) bool {
	for _, p := range s.Ghost {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}
