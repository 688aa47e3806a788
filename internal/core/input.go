package core

import (
	"fmt"
	"strings"
)

// Action represents a semantic game action, abstracted from physical key presses.
// The set is closed: every keymap binds each of these exactly once.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // move the active piece one column left
	ActionRight           // move the active piece one column right
	ActionSoftDrop        // move the active piece one row down
	ActionRotate          // rotate clockwise with wall kicks
	ActionHardDrop        // drop to the floor and lock
	ActionHold            // swap the active piece with the held one
	ActionRestart         // restart the match
	ActionQuit            // leave the match
)

// Actions returns every bindable action in keymap order.
func Actions() []Action {
	return []Action{
		ActionLeft,
		ActionRight,
		ActionSoftDrop,
		ActionRotate,
		ActionHardDrop,
		ActionHold,
		ActionRestart,
		ActionQuit,
	}
}

// String returns the config name of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionSoftDrop:
		return "down"
	case ActionRotate:
		return "rotate"
	case ActionHardDrop:
		return "drop"
	case ActionHold:
		return "hold"
	case ActionRestart:
		return "restart"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseAction resolves a config action name.
func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range Actions() {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}

// Shared reports whether the action belongs to the whole match rather than
// to one player's piece.
func (a Action) Shared() bool {
	return a == ActionRestart || a == ActionQuit
}

// KeyCode identifies one physical key. Printable keys use their rune value;
// special keys live above the Unicode range.
type KeyCode int

// NoKey is returned by an InputSource when nothing is pending.
const NoKey KeyCode = -1

// Special keys.
const (
	KeyUp KeyCode = 0x110000 + iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyCtrlC
)

const KeySpace KeyCode = ' '

var specialKeyNames = map[KeyCode]string{
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyCtrlC:     "ctrl+c",
	KeySpace:     "space",
}

// String returns the Bubble Tea style name of the key.
func (k KeyCode) String() string {
	if k == NoKey {
		return "none"
	}
	if name, ok := specialKeyNames[k]; ok {
		return name
	}
	if k > 0 && k < 0x110000 {
		return string(rune(k))
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// ParseKey resolves a Bubble Tea style key name ("left", "space", "a").
// Single characters map to their rune and are case sensitive.
func ParseKey(name string) (KeyCode, bool) {
	if r := []rune(name); len(r) == 1 {
		return KeyCode(r[0]), true
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for code, n := range specialKeyNames {
		if n == lower {
			return code, true
		}
	}
	return NoKey, false
}

// Binding ties one action to one key.
type Binding struct {
	Action Action
	Key    KeyCode
}

// Keymap is an ordered list of bindings for one player.
type Keymap []Binding

// Key returns the key bound to an action.
func (m Keymap) Key(a Action) (KeyCode, bool) {
	for _, b := range m {
		if b.Action == a {
			return b.Key, true
		}
	}
	return NoKey, false
}

// Missing returns the actions that have no binding.
func (m Keymap) Missing() []Action {
	var missing []Action
	for _, a := range Actions() {
		if _, ok := m.Key(a); !ok {
			missing = append(missing, a)
		}
	}
	return missing
}

// Codes returns every key used by the keymap.
func (m Keymap) Codes() []KeyCode {
	codes := make([]KeyCode, 0, len(m))
	for _, b := range m {
		codes = append(codes, b.Key)
	}
	return codes
}

// Sorted returns a copy of the keymap in Actions() order.
func (m Keymap) Sorted() Keymap {
	out := make(Keymap, 0, len(m))
	for _, a := range Actions() {
		if k, ok := m.Key(a); ok {
			out = append(out, Binding{Action: a, Key: k})
		}
	}
	return out
}

// InputSource is a non-blocking stream of key codes shared by every player.
type InputSource interface {
	// Poll returns the next pending key or NoKey.
	Poll() KeyCode
}

// ChannelInput is an InputSource backed by a buffered channel.
// The terminal layer pushes keys, the match polls them.
type ChannelInput struct {
	keys chan KeyCode
}

// NewChannelInput creates a channel input holding up to size pending keys.
func NewChannelInput(size int) *ChannelInput {
	if size < 1 {
		size = 64
	}
	return &ChannelInput{keys: make(chan KeyCode, size)}
}

// Push enqueues a key. When the buffer is full the key is dropped.
func (c *ChannelInput) Push(k KeyCode) bool {
	select {
	case c.keys <- k:
		return true
	default:
		return false
	}
}

// Poll returns the oldest pending key or NoKey.
func (c *ChannelInput) Poll() KeyCode {
	select {
	case k := <-c.keys:
		return k
	default:
		return NoKey
	}
}

// Drain discards every pending key.
func (c *ChannelInput) Drain() {
	for c.Poll() != NoKey {
	}
}
