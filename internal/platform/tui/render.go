package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// Panel layout. A board cell is two characters wide so blocks look square.
const (
	cellWidth = 2
	sideWidth = 14
	panelGap  = 2
	hintRows  = 2
)

const (
	blockGlyph    = "██"
	overflowGlyph = "▲▲"
	ghostGlyph    = "░░"
	emptyGlyph    = " ."
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// PanelSize returns the screen area one player's panel needs.
func PanelSize(snap tetris.Snapshot) (w, h int) {
	return snap.Width*cellWidth + 2 + 1 + sideWidth, snap.Visible + 2 + hintRows
}

// MatchSize returns the screen area a row of panels needs.
func MatchSize(views []game.View) (w, h int) {
	for i, v := range views {
		pw, ph := PanelSize(v.Snapshot)
		if i > 0 {
			w += panelGap
		}
		w += pw
		h = core.Max(h, ph)
	}
	return w, h
}

// DrawMatch draws every player's panel side by side, centered on s.
func DrawMatch(s *core.Screen, views []game.View) {
	s.Clear()
	w, h := MatchSize(views)
	if w > s.Width() || h > s.Height() {
		msg := fmt.Sprintf("Terminal too small: need %dx%d", w, h)
		s.DrawTextCentered(core.NewRect(0, 0, s.Width(), s.Height()), s.Height()/2, msg, core.ColorBrightRed)
		return
	}

	x := (s.Width() - w) / 2
	y := (s.Height() - h) / 2
	for _, v := range views {
		DrawPlayer(s, x, y, v)
		pw, _ := PanelSize(v.Snapshot)
		x += pw + panelGap
	}
}

// DrawPlayer draws one player's board, side panel and key hints with the
// top-left corner at (x, y).
func DrawPlayer(s *core.Screen, x, y int, v game.View) {
	snap := v.Snapshot
	board := core.NewRect(x, y, snap.Width*cellWidth+2, snap.Visible+2)
	s.DrawTitledBox(board, snap.Player.String())

	for row := 0; row < snap.Visible; row++ {
		sy := board.Y + 1 + (snap.Visible - 1 - row)
		for col := 0; col < snap.Width; col++ {
			sx := board.X + 1 + col*cellWidth
			switch shape := snap.Grid[row][col]; {
			case shape != tetris.ShapeNone:
				s.DrawTextColor(sx, sy, blockGlyph, shape.Color())
			case snap.IsGhost(col, row):
				s.DrawTextColor(sx, sy, ghostGlyph, core.ColorGray)
			default:
				s.DrawTextColor(sx, sy, emptyGlyph, core.ColorGray)
			}
		}
	}
	drawOverflow(s, board, snap)
	drawOverlay(s, board.Inset(1), v)

	side := core.NewRect(board.Right()+1, y, sideWidth, board.H)
	drawSide(s, side, v)
	drawHints(s, core.NewRect(x, board.Bottom(), board.W+1+sideWidth, hintRows), v)
}

func drawSide(s *core.Screen, r core.Rect, v game.View) {
	snap := v.Snapshot

	next := core.NewRect(r.X, r.Y, r.W, 2+3*3)
	s.DrawTitledBox(next, "Next")
	for i, shape := range snap.Next {
		drawShape(s, core.NewRect(next.X+2, next.Y+1+i*3, next.W-3, 3), shape)
	}

	hold := core.NewRect(r.X, next.Bottom(), r.W, 4)
	s.DrawTitledBox(hold, "Hold")
	drawShape(s, core.NewRect(hold.X+2, hold.Y+1, hold.W-3, 2), snap.Held)

	stats := core.NewRect(r.X, hold.Bottom(), r.W, 5)
	s.DrawTitledBox(stats, "Stats")
	s.DrawText(stats.X+1, stats.Y+1, fmt.Sprintf("Score %6d", snap.Score))
	s.DrawText(stats.X+1, stats.Y+2, fmt.Sprintf("Level %6.1f", snap.Level))
	s.DrawText(stats.X+1, stats.Y+3, fmt.Sprintf("Lines %6d", snap.Lines))
}

// drawShape draws the filled rows of a shape's spawn box, trimmed to its
// bounding box and clipped to area.
func drawShape(s *core.Screen, area core.Rect, shape tetris.Shape) {
	if shape == tetris.ShapeNone {
		return
	}
	box := shape.Box()
	n := box.Size()
	minCol := n
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if box.Filled(c, r) {
				minCol = core.Min(minCol, c)
			}
		}
	}

	line := 0
	for r := 0; r < n; r++ {
		filled := false
		for c := 0; c < n; c++ {
			if box.Filled(c, r) {
				filled = true
				x, y := area.X+(c-minCol)*cellWidth, area.Y+line
				if area.Contains(x, y) {
					s.DrawTextColor(x, y, blockGlyph, shape.Color())
				}
			}
		}
		if filled {
			line++
		}
	}
}

func drawOverlay(s *core.Screen, r core.Rect, v game.View) {
	_, cy := r.Center()
	switch v.Overlay {
	case game.OverlayCountdown:
		clearBand(s, r, cy-1, 3)
		s.DrawTextCentered(r, cy, v.Countdown, core.ColorBrightYellow)
	case game.OverlayGameOver:
		drawTerminal(s, r, cy, "G A M E  O V E R", core.ColorBrightRed, v.Keymap)
	case game.OverlayVictory:
		drawTerminal(s, r, cy, "You won !", core.ColorBrightGreen, v.Keymap)
	case game.OverlayDefeat:
		drawTerminal(s, r, cy, "You lost :(", core.ColorBrightRed, v.Keymap)
	}
}

func drawTerminal(s *core.Screen, r core.Rect, cy int, title string, c core.Color, km core.Keymap) {
	clearBand(s, r, cy-2, 6)
	s.DrawTextCentered(r, cy-1, title, c)
	restart, _ := km.Key(core.ActionRestart)
	quit, _ := km.Key(core.ActionQuit)
	s.DrawTextCentered(r, cy+1, fmt.Sprintf("%s: restart", restart), core.ColorWhite)
	s.DrawTextCentered(r, cy+2, fmt.Sprintf("%s: quit", quit), core.ColorWhite)
}

// clearBand blanks rows y to y+h-1, limited to r.
func clearBand(s *core.Screen, r core.Rect, y, h int) {
	top := core.Clamp(y, r.Y, r.Bottom())
	bottom := core.Clamp(y+h, r.Y, r.Bottom())
	s.FillRect(core.NewRect(r.X, top, r.W, bottom-top), ' ', core.ColorDefault)
}

// drawOverflow marks, on the board's top edge, the columns holding locked
// blocks above the visible rows.
func drawOverflow(s *core.Screen, board core.Rect, snap tetris.Snapshot) {
	for col := 0; col < snap.Width; col++ {
		for row := snap.Height - 1; row >= snap.Visible; row-- {
			shape := snap.Grid[row][col]
			if shape == tetris.ShapeNone || snap.IsLive(col, row) {
				continue
			}
			s.DrawTextColor(board.X+1+col*cellWidth, board.Y, overflowGlyph, shape.Color())
			break
		}
	}
}

// drawHints lists the player's movement keys under the board.
func drawHints(s *core.Screen, r core.Rect, v game.View) {
	var parts []string
	for _, b := range v.Keymap {
		if b.Action.Shared() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%s", b.Action, b.Key))
	}
	line := strings.Join(parts, " ")
	runes := []rune(line)
	for i := 0; i < r.H && len(runes) > 0; i++ {
		n := core.Min(r.W, len(runes))
		s.DrawTextColor(r.X, r.Y+i, string(runes[:n]), core.ColorGray)
		runes = runes[n:]
	}
}
