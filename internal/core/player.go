package core

import "strconv"

// PlayerID identifies one local player. IDs start at 1 and follow the
// left-to-right order of the split screen.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// String returns "P1", "P2", ...
func (p PlayerID) String() string {
	return "P" + strconv.Itoa(int(p))
}

// Index returns the zero-based position of the player.
func (p PlayerID) Index() int {
	return int(p) - 1
}

// PlayerFromIndex converts a zero-based position into a PlayerID.
func PlayerFromIndex(i int) PlayerID {
	return PlayerID(i + 1)
}
