package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/multiplayer"
)

// MenuItem is one entry of the main menu.
type MenuItem int

const (
	MenuSinglePlayer MenuItem = iota
	MenuLocalMultiplayer
	MenuControls
	MenuExit
)

var menuItems = []MenuItem{MenuSinglePlayer, MenuLocalMultiplayer, MenuControls, MenuExit}

// MenuKeyMap defines the key bindings for the menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Back, k.Quit},
	}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("left/h", "fewer players"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("right/l", "more players"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuSelection is what the menu hands to the match.
type MenuSelection struct {
	Mode    multiplayer.MatchMode
	Keymaps []core.Keymap
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cfg          config.TetrisConfig
	rng          *rand.Rand
	keys         MenuKeyMap
	help         help.Model
	cursor       int
	players      int
	keymaps      []core.Keymap // one per player of the multiplayer entry
	notice       string
	showControls bool
	width        int
	height       int
	quitting     bool
	selected     *MenuSelection
}

// NewMenuModel creates a new menu model.
func NewMenuModel(opts Options) MenuModel {
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := MenuModel{
		cfg:    opts.Config,
		rng:    rand.New(rand.NewSource(seed)),
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}

	players := core.Max(2, opts.Config.Players.Default)
	for m.players < players {
		if !m.addPlayer() {
			break
		}
	}
	return m
}

// addPlayer extends the multiplayer keymaps by one. It refuses when the
// player cap is reached or no keymap can be allocated.
func (m *MenuModel) addPlayer() bool {
	if limit := m.cfg.Players.Max; limit > 0 && m.players >= limit {
		m.notice = fmt.Sprintf("At most %d players", limit)
		return false
	}
	km, err := m.nextKeymap()
	if err != nil {
		m.notice = "Cannot add a player: " + err.Error()
		return false
	}
	m.keymaps = append(m.keymaps, km)
	m.players++
	m.notice = ""
	return true
}

// nextKeymap returns the configured keymap for the next player, or a
// generated one that avoids every key already in use.
func (m *MenuModel) nextKeymap() (core.Keymap, error) {
	configured, err := m.cfg.ParseKeymaps()
	if err != nil {
		return nil, err
	}
	if m.players < len(configured) {
		return configured[m.players], nil
	}
	pool, err := m.cfg.ParseKeyPool()
	if err != nil {
		return nil, err
	}
	return config.GenerateKeymap(m.rng, pool, m.keymaps)
}

func (m *MenuModel) removePlayer() {
	if m.players <= 1 {
		return
	}
	m.players--
	m.keymaps = m.keymaps[:m.players]
	m.notice = ""
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showControls {
			return m.handleControlsKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Left):
		if menuItems[m.cursor] == MenuLocalMultiplayer {
			m.removePlayer()
		}

	case key.Matches(msg, m.keys.Right):
		if menuItems[m.cursor] == MenuLocalMultiplayer {
			m.addPlayer()
		}

	case key.Matches(msg, m.keys.Select):
		return m.choose()
	}

	return m, nil
}

func (m MenuModel) choose() (tea.Model, tea.Cmd) {
	switch menuItems[m.cursor] {
	case MenuSinglePlayer:
		m.selected = &MenuSelection{
			Mode:    multiplayer.MatchModeSolo,
			Keymaps: m.keymaps[:1],
		}
		return m, tea.Quit

	case MenuLocalMultiplayer:
		maps := make([]core.Keymap, m.players)
		copy(maps, m.keymaps)
		m.selected = &MenuSelection{
			Mode:    multiplayer.ModeFor(m.players),
			Keymaps: maps,
		}
		return m, tea.Quit

	case MenuControls:
		m.showControls = true

	case MenuExit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) handleControlsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	m.showControls = false
	return m, nil
}

func (m MenuModel) itemLabel(item MenuItem) string {
	switch item {
	case MenuSinglePlayer:
		return "Single Player"
	case MenuLocalMultiplayer:
		return fmt.Sprintf("Local Multiplayer  < %d >", m.players)
	case MenuControls:
		return "Controls"
	case MenuExit:
		return "Exit"
	default:
		return ""
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showControls {
		return m.viewControls()
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("T E T R I S"), m.width))
	b.WriteString("\n\n")

	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	for i, item := range menuItems {
		line := "  " + m.itemLabel(item)
		if i == m.cursor {
			line = cursorStyle.Render("> " + m.itemLabel(item))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString("\n")
		b.WriteString(centerText(noticeStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// viewControls lists every player's bindings side by side.
func (m MenuModel) viewControls() string {
	columns := make([]string, 0, m.players)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	for i, km := range m.keymaps {
		columns = append(columns, boxStyle.Render(FormatKeymap(core.PlayerFromIndex(i), km)))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n\n")
	b.WriteString("Press any key to go back\n")
	return b.String()
}

// FormatKeymap renders a player's bindings, one action per line.
func FormatKeymap(p core.PlayerID, km core.Keymap) string {
	var b strings.Builder
	b.WriteString(p.String())
	for _, bind := range km {
		fmt.Fprintf(&b, "\n%-8s %s", bind.Action, bind.Key)
	}
	return b.String()
}

// Selected returns the chosen match, or nil if none selected.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
