package multiplayer

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// LocalConfig describes a split-screen match on one terminal.
type LocalConfig struct {
	Config  config.TetrisConfig
	Keymaps []core.Keymap // one per player, in player order
	Seed    int64         // 0 picks one from the current time
	Input   core.InputSource
	Sink    EventSink
	Clock   clock.Clock
	Logger  *log.Logger
}

// NewLocal builds one driver per keymap and the match that runs them.
// Every driver redraw is forwarded to the sink as a RedrawEvent.
func NewLocal(lc LocalConfig) *Match {
	if lc.Sink == nil {
		lc.Sink = discardSink{}
	}
	if lc.Clock == nil {
		lc.Clock = clock.New()
	}
	if lc.Logger == nil {
		lc.Logger = log.Default()
	}
	rc := core.RuntimeConfig{Players: len(lc.Keymaps), Seed: lc.Seed}
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	sink := lc.Sink
	redraw := func(p core.PlayerID) { sink.Send(RedrawEvent{Player: p}) }

	drivers := make([]*game.Driver, len(lc.Keymaps))
	for i, km := range lc.Keymaps {
		id := core.PlayerFromIndex(i)
		drivers[i] = game.NewDriver(id, game.Options{
			Engine: tetris.Config{
				Width:   lc.Config.Board.Width,
				Height:  lc.Config.Board.Height,
				Visible: lc.Config.Board.Visible,
				Seed:    rc.PlayerSeed(id),
			},
			Keymap:        km,
			Gravity:       lc.Config.Gravity,
			CountdownStep: lc.Config.Timing.CountdownStep,
			Clock:         lc.Clock,
			Logger:        lc.Logger,
			Redraw:        redraw,
		})
	}

	lc.Logger.Debug("local match built", "players", rc.Players, "seed", rc.Seed)
	return NewMatch(drivers, lc.Input, Options{
		GameOverDelay: lc.Config.Timing.GameOverDelay,
		PollInterval:  lc.Config.Timing.PollInterval,
		Clock:         lc.Clock,
		Logger:        lc.Logger,
		Sink:          lc.Sink,
	})
}
