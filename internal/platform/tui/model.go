package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
	"github.com/vovakirdan/tui-tetris/internal/multiplayer"
)

// Options holds what every screen of a session needs.
type Options struct {
	Config  config.TetrisConfig
	Runtime core.RuntimeConfig
	Logger  *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// MatchModel is the Bubble Tea model for a running match. Keys go into the
// match input; the match reports back through a channel session.
type MatchModel struct {
	match      *multiplayer.Match
	input      *core.ChannelInput
	session    *multiplayer.ChannelSession
	ctx        context.Context
	cancel     context.CancelFunc
	screen     *core.Screen
	keyMapper  *KeyMapper
	log        *log.Logger
	standalone bool
	status     string
	done       bool
	backToMenu bool
	quitting   bool
	err        error
}

// NewMatchModel creates a match with one player per keymap.
func NewMatchModel(opts Options, keymaps []core.Keymap, sessionID multiplayer.SessionID) MatchModel {
	ctx, cancel := context.WithCancel(context.Background())
	logger := opts.logger()
	input := core.NewChannelInput(64)
	session := multiplayer.NewChannelSession(sessionID, 256)

	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	match := multiplayer.NewLocal(multiplayer.LocalConfig{
		Config:  opts.Config,
		Keymaps: keymaps,
		Seed:    seed,
		Input:   input,
		Sink:    session,
		Logger:  logger.With("session", string(sessionID)),
	})

	return MatchModel{
		match:     match,
		input:     input,
		session:   session,
		ctx:       ctx,
		cancel:    cancel,
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keyMapper: NewKeyMapper(),
		log:       logger,
	}
}

// Init starts the match and the event pump.
func (m MatchModel) Init() tea.Cmd {
	return tea.Batch(m.runMatch(), waitForEvent(m.session))
}

// runMatch plays until a player quits. It blocks inside the command
// goroutine Bubble Tea gives it.
func (m MatchModel) runMatch() tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.match.Play(m.ctx)
		return matchDoneMsg{outcome: outcome, err: err}
	}
}

// Update handles messages and updates the model state.
func (m MatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case multiplayer.RedrawEvent, multiplayer.ScreenEvent, multiplayer.MatchClosedEvent:
		return m, waitForEvent(m.session)

	case multiplayer.MatchStartedEvent:
		m.status = ""
		return m, waitForEvent(m.session)

	case multiplayer.MatchEndedEvent:
		m.status = summary(msg)
		return m, waitForEvent(m.session)

	case matchDoneMsg:
		return m.handleDone(msg)
	}

	return m, nil
}

// handleKey forwards keys to the match. Ctrl+C always leaves.
func (m MatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		m.cancel()
		m.session.Close()
		return m, tea.Quit
	}
	if m.done {
		return m, nil
	}

	code := m.keyMapper.MapKey(msg)
	if code == core.NoKey {
		return m, nil
	}
	if !m.input.Push(code) {
		m.log.Warn("input buffer full, key dropped", "key", code)
	}
	return m, nil
}

func (m MatchModel) handleDone(msg matchDoneMsg) (tea.Model, tea.Cmd) {
	m.done = true
	m.cancel()
	m.session.Close()
	if msg.err != nil {
		m.log.Error("match failed", "error", msg.err)
		m.err = msg.err
	}
	if msg.outcome == multiplayer.OutcomeQuit {
		m.backToMenu = true
	}
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

// View renders every player's board.
func (m MatchModel) View() string {
	if m.quitting {
		return ""
	}

	drivers := m.match.Drivers()
	views := make([]game.View, len(drivers))
	for i, d := range drivers {
		views[i] = d.View()
	}
	DrawMatch(m.screen, views)

	if m.status != "" && m.screen.Height() > 0 {
		full := core.NewRect(0, 0, m.screen.Width(), m.screen.Height())
		m.screen.DrawTextCentered(full, m.screen.Height()-1, m.status, core.ColorBrightWhite)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to leave the program.
func (m MatchModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true once a player quit the match.
func (m MatchModel) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the error the match failed with, if any.
func (m MatchModel) Err() error {
	return m.err
}

// summary describes how play ended, with every player's score.
func summary(e multiplayer.MatchEndedEvent) string {
	var head string
	switch e.Reason {
	case multiplayer.MatchEndReasonVictory:
		head = e.Winner.String() + " wins"
	default:
		head = e.Reason.String()
	}

	parts := []string{head}
	for _, s := range e.Scores {
		parts = append(parts, fmt.Sprintf("%s %d", s.Player, s.Score))
	}
	return strings.Join(parts, "  |  ")
}

// RunMatch runs a match without the menu. It returns when a player quits.
func RunMatch(opts Options, keymaps []core.Keymap) error {
	model := NewMatchModel(opts, keymaps, "local")
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if mm, ok := final.(MatchModel); ok {
		return mm.Err()
	}
	return nil
}
