// Package multiplayer runs a local match: one driver per player, one shared
// input stream and a referee that decides defeat, victory and game over.
package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
)

// PlayerID is an alias to core.PlayerID for convenience.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// Signal is what drivers report to the match.
type Signal = game.Signal

// Re-export signal kinds for convenience.
const (
	SignalGameOver = game.SignalGameOver
	SignalRestart  = game.SignalRestart
	SignalQuit     = game.SignalQuit
)

// SessionID identifies a terminal session (the local terminal or one SSH
// connection). Every session runs its own matches.
type SessionID string

// MatchID uniquely identifies a match.
type MatchID string

// MatchMode defines how a match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single player game.
	MatchModeSolo MatchMode = iota

	// MatchModeLocal is split-screen multiplayer on one terminal.
	MatchModeLocal
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Single Player"
	case MatchModeLocal:
		return "Local Multiplayer"
	default:
		return "Unknown"
	}
}

// ModeFor returns the mode for a match with the given number of players.
func ModeFor(players int) MatchMode {
	if players > 1 {
		return MatchModeLocal
	}
	return MatchModeSolo
}

// Outcome is how Run finished.
type Outcome int

const (
	// OutcomeQuit tears the match down.
	OutcomeQuit Outcome = iota

	// OutcomeRestart asks the owner to reset every driver and run again.
	OutcomeRestart

	// OutcomeCancelled means the parent context ended.
	OutcomeCancelled
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeRestart:
		return "restart"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// PlayerScore is one player's standing when a match ends.
type PlayerScore struct {
	Player PlayerID
	Score  int
	Level  float64
}

// NewMatchID returns a fresh match identifier.
func NewMatchID() MatchID {
	return MatchID("match-" + generateCode())
}

// generateCode creates a 6-character uppercase alphanumeric code.
func generateCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	// base32 gives A-Z and 2-7; 4 bytes encode to 8 chars, keep 6
	code := base32.StdEncoding.EncodeToString(b)[:6]
	return strings.ToUpper(code)
}
