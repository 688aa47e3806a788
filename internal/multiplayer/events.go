package multiplayer

import "github.com/vovakirdan/tui-tetris/internal/game"

// SessionEvent represents an event sent from a match to a session.
type SessionEvent interface {
	sessionEvent()
}

// RedrawEvent asks the session to repaint one player's board.
type RedrawEvent struct {
	Player PlayerID
}

func (RedrawEvent) sessionEvent() {}

// MatchStartedEvent is sent when Run begins, before the countdown.
type MatchStartedEvent struct {
	MatchID MatchID
	Mode    MatchMode
	Players int
}

func (MatchStartedEvent) sessionEvent() {}

// ScreenEvent is sent when the referee puts a terminal screen over a
// player's board.
type ScreenEvent struct {
	MatchID MatchID
	Player  PlayerID
	Overlay game.Overlay
}

func (ScreenEvent) sessionEvent() {}

// MatchEndedEvent is sent when play is over for everyone. The match keeps
// running until a restart or quit arrives.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID // 0 if there is no winner
	Scores  []PlayerScore
}

func (MatchEndedEvent) sessionEvent() {}

// MatchClosedEvent is sent when Run returns.
type MatchClosedEvent struct {
	MatchID MatchID
	Outcome Outcome
}

func (MatchClosedEvent) sessionEvent() {}

// MatchEndReason describes why play ended.
type MatchEndReason int

const (
	MatchEndReasonGameOver MatchEndReason = iota // Single player topped out
	MatchEndReasonVictory                        // One player outlasted the rest
	MatchEndReasonDraw                           // The last players topped out together
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonGameOver:
		return "Game over"
	case MatchEndReasonVictory:
		return "Victory"
	case MatchEndReasonDraw:
		return "Draw"
	default:
		return "Unknown"
	}
}
