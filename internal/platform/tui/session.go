package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/multiplayer"
)

// SessionModel manages the full session flow: menu -> match -> menu.
// It is the top-level model for the local menu and for SSH sessions.
type SessionModel struct {
	opts      Options
	sessionID multiplayer.SessionID
	menu      MenuModel
	match     *MatchModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options, sessionID multiplayer.SessionID) SessionModel {
	return SessionModel{
		opts:      opts,
		sessionID: sessionID,
		menu:      NewMenuModel(opts),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
		m.menu.width = wsm.Width
		m.menu.height = wsm.Height
		m.menu.help.Width = wsm.Width
	}

	if m.match != nil {
		return m.updateMatch(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		// The menu asks to quit on selection; the session keeps running.
		m.menu.selected = nil
		m.opts.logger().Info("match selected",
			"session", string(m.sessionID),
			"mode", selected.Mode,
			"players", len(selected.Keymaps),
		)
		match := NewMatchModel(m.opts, selected.Keymaps, m.sessionID)
		m.match = &match
		return m, m.match.Init()
	}

	return m, cmd
}

// updateMatch handles updates when a match is running.
func (m SessionModel) updateMatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.match.Update(msg)
	if matchModel, ok := newModel.(MatchModel); ok {
		m.match = &matchModel
	}

	if m.match.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.match.BackToMenu() {
		m.match = nil
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.match != nil {
		return m.match.View()
	}
	return m.menu.View()
}

// RunSession runs the menu -> match flow on the local terminal.
func RunSession(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts, "local"),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
