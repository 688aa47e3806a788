package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Rotation states: spawn, right (one clockwise turn), two, left.
const (
	Rot0 = iota
	RotR
	Rot2
	RotL
)

// Offset data per rotation state, x right and y up. The kick for attempt i
// of a rotation a->b is offset[a][i] - offset[b][i].
var (
	offsetsJLSTZ = [4][]core.Point{
		Rot0: {{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		RotR: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		Rot2: {{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		RotL: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	}

	offsetsI = [4][]core.Point{
		Rot0: {{0, 0}, {-1, 0}, {2, 0}, {-1, 0}, {2, 0}},
		RotR: {{-1, 0}, {0, 0}, {0, 0}, {0, 1}, {0, -2}},
		Rot2: {{-1, 1}, {1, 1}, {-2, 1}, {1, 0}, {-2, 0}},
		RotL: {{0, 1}, {0, 1}, {0, 1}, {0, -1}, {0, 2}},
	}

	// O only needs to stay in place, one attempt per state.
	offsetsO = [4][]core.Point{
		Rot0: {{0, 0}},
		RotR: {{0, -1}},
		Rot2: {{-1, -1}},
		RotL: {{-1, 0}},
	}
)

func offsetTable(s Shape) *[4][]core.Point {
	switch s {
	case ShapeI:
		return &offsetsI
	case ShapeO:
		return &offsetsO
	default:
		return &offsetsJLSTZ
	}
}

// Kick returns the translation to try for the given attempt when rotating
// shape s from one rotation state to another. ok is false once the table
// has no entry for the attempt.
func Kick(s Shape, from, to, attempt int) (core.Point, bool) {
	t := offsetTable(s)
	from, to = normRot(from), normRot(to)
	if attempt < 0 || attempt >= len(t[from]) || attempt >= len(t[to]) {
		return core.Point{}, false
	}
	a, b := t[from][attempt], t[to][attempt]
	return core.Point{X: a.X - b.X, Y: a.Y - b.Y}, true
}

func normRot(r int) int {
	return ((r % 4) + 4) % 4
}
