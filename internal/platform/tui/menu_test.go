package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/multiplayer"
)

func newTestMenu(cfg config.TetrisConfig) MenuModel {
	return NewMenuModel(Options{
		Config:  cfg,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1},
	})
}

func press(m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestMenuSinglePlayer(t *testing.T) {
	m := press(newTestMenu(config.DefaultConfig()), keyEnter)

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Mode != multiplayer.MatchModeSolo || len(sel.Keymaps) != 1 {
		t.Errorf("selection = %v with %d keymaps", sel.Mode, len(sel.Keymaps))
	}
}

func TestMenuPlayerCount(t *testing.T) {
	m := newTestMenu(config.DefaultConfig())
	if m.players != 2 {
		t.Fatalf("players = %d, expected 2", m.players)
	}

	// Left/right only act on the multiplayer entry.
	m = press(m, keyRight)
	if m.players != 2 {
		t.Errorf("players = %d after right on Single Player", m.players)
	}

	m = press(m, keyDown, keyRight, keyRight)
	if m.players != 4 {
		t.Fatalf("players = %d, expected 4", m.players)
	}

	seen := make(map[core.KeyCode]int)
	for _, km := range m.keymaps {
		for _, b := range km {
			if !b.Action.Shared() {
				seen[b.Key]++
			}
		}
	}
	for k, n := range seen {
		if n > 1 {
			t.Errorf("key %v bound %d times", k, n)
		}
	}

	// Max is 4 in the default config.
	m = press(m, keyRight)
	if m.players != 4 || m.notice == "" {
		t.Errorf("players = %d, notice = %q; expected the cap to hold", m.players, m.notice)
	}

	m = press(m, keyLeft, keyLeft, keyLeft, keyLeft, keyLeft)
	if m.players != 1 {
		t.Errorf("players = %d, expected the minimum of 1", m.players)
	}

	m = press(m, keyRight, keyEnter)
	sel := m.Selected()
	if sel == nil || sel.Mode != multiplayer.MatchModeLocal || len(sel.Keymaps) != 2 {
		t.Fatalf("selection = %+v", sel)
	}
}

func TestMenuRefusesPlayerWithoutKeys(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Players.Max = 0
	cfg.KeyPool = []string{"x", "y"}

	m := press(newTestMenu(cfg), keyDown, keyRight)
	if m.players != 2 {
		t.Errorf("players = %d, expected 2", m.players)
	}
	if !strings.Contains(m.notice, "cannot allocate keymap") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestMenuControlsAndExit(t *testing.T) {
	m := press(newTestMenu(config.DefaultConfig()), keyDown, keyDown, keyEnter)
	if !m.showControls {
		t.Fatal("expected the controls screen")
	}
	view := m.View()
	if !strings.Contains(view, "P1") || !strings.Contains(view, "P2") {
		t.Error("controls should list every player")
	}

	m = press(m, keyEnter)
	if m.showControls {
		t.Error("any key should leave the controls screen")
	}

	m = press(m, keyDown, keyEnter)
	if !m.IsQuitting() {
		t.Error("Exit should quit")
	}

	m = press(newTestMenu(config.DefaultConfig()), keyUp)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}
}

func TestSummary(t *testing.T) {
	got := summary(multiplayer.MatchEndedEvent{
		Reason: multiplayer.MatchEndReasonVictory,
		Winner: 2,
		Scores: []multiplayer.PlayerScore{{Player: 1, Score: 40}, {Player: 2, Score: 300}},
	})
	if got != "P2 wins  |  P1 40  |  P2 300" {
		t.Errorf("summary() = %q", got)
	}
}
