package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMapper translates Bubble Tea key messages into key codes for the match.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to the key code the match dispatches.
// Keys the match cannot bind map to core.NoKey.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.KeyCode {
	switch msg.Type {
	case tea.KeyUp:
		return core.KeyUp
	case tea.KeyDown:
		return core.KeyDown
	case tea.KeyLeft:
		return core.KeyLeft
	case tea.KeyRight:
		return core.KeyRight
	case tea.KeyEnter:
		return core.KeyEnter
	case tea.KeyEsc:
		return core.KeyEscape
	case tea.KeyTab:
		return core.KeyTab
	case tea.KeyBackspace:
		return core.KeyBackspace
	case tea.KeyCtrlC:
		return core.KeyCtrlC
	case tea.KeySpace:
		return core.KeySpace
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return core.KeyCode(msg.Runes[0])
		}
	}
	return core.NoKey
}
