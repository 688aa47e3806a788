// Package tui provides the Bubble Tea integration for tetris.
// It maps keys into the match input, pumps match events into the program
// and renders the split-screen boards.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/multiplayer"
)

// matchDoneMsg is sent when a match has been quit or cancelled.
type matchDoneMsg struct {
	outcome multiplayer.Outcome
	err     error
}

// waitForEvent returns a command that waits for the next match event.
// Events are delivered to Update as their own types.
func waitForEvent(session *multiplayer.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-session.Events():
			return evt
		case <-session.Done():
			return nil
		}
	}
}
