// Package game drives one player's engine in real time: it maps actions to
// engine calls, runs the gravity cycle on a clock and shows the countdown.
package game

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// RedrawFunc is called whenever a player's view changed. It runs while the
// driver holds its lock, so it must not block or call back into the driver.
type RedrawFunc func(core.PlayerID)

// Overlay is the text layer drawn over a player's board.
type Overlay uint8

const (
	OverlayNone Overlay = iota
	OverlayCountdown
	OverlayGameOver
	OverlayDefeat
	OverlayVictory
)

// String returns a human-readable name for the overlay.
func (o Overlay) String() string {
	switch o {
	case OverlayNone:
		return "none"
	case OverlayCountdown:
		return "countdown"
	case OverlayGameOver:
		return "game over"
	case OverlayDefeat:
		return "defeat"
	case OverlayVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Terminal reports whether the overlay ends play for the driver.
func (o Overlay) Terminal() bool {
	return o == OverlayGameOver || o == OverlayDefeat || o == OverlayVictory
}

// SignalKind is the kind of control signal a driver raises.
type SignalKind uint8

const (
	SignalGameOver SignalKind = iota
	SignalRestart
	SignalQuit
)

// String returns a human-readable name for the signal kind.
func (k SignalKind) String() string {
	switch k {
	case SignalGameOver:
		return "game over"
	case SignalRestart:
		return "restart"
	case SignalQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Signal is raised by a driver for whoever owns the match.
type Signal struct {
	Player core.PlayerID
	Kind   SignalKind
}

// DefaultCountdown is the text shown before play starts.
var DefaultCountdown = []string{"3", "2", "1"}

// Options configures a Driver.
type Options struct {
	Engine        tetris.Config
	Keymap        core.Keymap
	Gravity       config.GravityConfig
	CountdownStep time.Duration
	Countdown     []string
	Clock         clock.Clock
	Logger        *log.Logger
	Redraw        RedrawFunc
	Signals       chan<- Signal
	// GameOver receives the game over signal, at most one per Reset. The
	// send blocks, so the receiver must keep a slot free for it. Nil means
	// Signals.
	GameOver      chan<- Signal
}

// View is everything a renderer needs to draw one player.
type View struct {
	Snapshot  tetris.Snapshot
	Keymap    core.Keymap
	Overlay   Overlay
	Countdown string
	FallSpeed time.Duration
}

// Driver owns one engine. Every engine access goes through the driver's
// mutex, and the redraw for a mutation is requested before the lock is
// released.
type Driver struct {
	id      core.PlayerID
	keymap  core.Keymap
	gravity config.GravityConfig
	clock   clock.Clock
	log     *log.Logger
	redraw  RedrawFunc
	signals chan<- Signal
	over    chan<- Signal

	countdownStep time.Duration
	countdownSeq  []string

	mu         sync.Mutex
	engine     *tetris.Engine
	actions    map[core.Action]func() tetris.Result
	knownLevel int
	fallSpeed  time.Duration
	overlay    Overlay
	countdown  string
}

// NewDriver creates a driver for player id. It panics if the keymap does not
// bind every action.
func NewDriver(id core.PlayerID, opts Options) *Driver {
	if missing := opts.Keymap.Missing(); len(missing) > 0 {
		panic("game: keymap for " + id.String() + " misses actions")
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Redraw == nil {
		opts.Redraw = func(core.PlayerID) {}
	}
	if opts.Countdown == nil {
		opts.Countdown = DefaultCountdown
	}
	if opts.Gravity.MinInterval <= 0 {
		opts.Gravity = config.DefaultGravity()
	}

	d := &Driver{
		id:            id,
		keymap:        opts.Keymap.Sorted(),
		gravity:       opts.Gravity,
		clock:         opts.Clock,
		log:           opts.Logger.With("player", id.String()),
		redraw:        opts.Redraw,
		signals:       opts.Signals,
		over:          opts.GameOver,
		countdownStep: opts.CountdownStep,
		countdownSeq:  opts.Countdown,
		engine:        tetris.NewEngine(id, opts.Engine),
	}
	d.actions = map[core.Action]func() tetris.Result{
		core.ActionLeft:     d.engine.Left,
		core.ActionRight:    d.engine.Right,
		core.ActionSoftDrop: d.engine.SoftDrop,
		core.ActionRotate:   func() tetris.Result { return d.engine.Rotate(1) },
		core.ActionHardDrop: d.engine.HardDrop,
		core.ActionHold:     d.engine.Hold,
	}
	d.resetLevel()
	return d
}

// ID returns the player the driver belongs to.
func (d *Driver) ID() core.PlayerID { return d.id }

// Attach routes restart and quit to signals and game over to over. Call it
// before the driver is shared between goroutines.
func (d *Driver) Attach(signals, over chan<- Signal) {
	d.signals = signals
	d.over = over
}

// Keymap returns the driver's bindings in action order.
func (d *Driver) Keymap() core.Keymap { return d.keymap }

func (d *Driver) resetLevel() {
	d.knownLevel = d.engine.KnownLevel()
	d.fallSpeed = d.gravity.FallSpeed(d.knownLevel)
}

// levelUpCheck recomputes the fall speed when the whole level changed.
// Caller must hold d.mu.
func (d *Driver) levelUpCheck() {
	if lvl := d.engine.KnownLevel(); lvl != d.knownLevel {
		d.knownLevel = lvl
		d.fallSpeed = d.gravity.FallSpeed(lvl)
		d.log.Debug("level up", "level", lvl, "fall_speed", d.fallSpeed)
	}
}

// FallSpeed returns the current gravity interval.
func (d *Driver) FallSpeed() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fallSpeed
}

// halted reports whether the driver ignores gameplay input.
// Caller must hold d.mu.
func (d *Driver) halted() bool {
	return d.overlay.Terminal() || d.engine.State() == tetris.StateGameOver
}

// apply runs one engine operation, requests the redraw and returns the
// signal to raise, if any. Caller must hold d.mu.
func (d *Driver) apply(op func() tetris.Result) *Signal {
	r := op()
	if r.Locked {
		d.log.Debug("piece locked", "cleared", r.Cleared, "score", d.engine.Score())
	}
	d.levelUpCheck()
	d.redraw(d.id)
	if r.GameOver() {
		d.log.Info("game over", "score", d.engine.Score(), "shape", r.Over.Shape)
		return &Signal{Player: d.id, Kind: SignalGameOver}
	}
	return nil
}

// Do performs an action. Restart and quit raise signals; everything else
// goes to the engine unless the driver is halted.
func (d *Driver) Do(a core.Action) {
	switch a {
	case core.ActionRestart:
		d.emit(Signal{Player: d.id, Kind: SignalRestart})
		return
	case core.ActionQuit:
		d.emit(Signal{Player: d.id, Kind: SignalQuit})
		return
	}

	op, ok := d.actions[a]
	if !ok {
		return
	}

	d.mu.Lock()
	if d.halted() || d.overlay == OverlayCountdown {
		d.mu.Unlock()
		return
	}
	sig := d.apply(op)
	d.mu.Unlock()

	if sig != nil {
		d.emit(*sig)
	}
}

// Step performs one gravity step.
func (d *Driver) Step() {
	d.mu.Lock()
	if d.halted() {
		d.mu.Unlock()
		return
	}
	sig := d.apply(d.engine.SoftDrop)
	d.mu.Unlock()

	if sig != nil {
		d.emit(*sig)
	}
}

// emit hands a signal to the match. Restart and quit never block and are
// dropped when the match is behind; game over is always delivered. Signals
// are never sent while holding d.mu.
func (d *Driver) emit(s Signal) {
	if s.Kind == SignalGameOver {
		ch := d.over
		if ch == nil {
			ch = d.signals
		}
		if ch != nil {
			ch <- s
		}
		return
	}
	if d.signals == nil {
		return
	}
	select {
	case d.signals <- s:
	default:
		d.log.Warn("signal dropped", "kind", s.Kind)
	}
}

// wait blocks for dur on the driver's clock. It returns false if ctx ended
// first.
func (d *Driver) wait(ctx context.Context, dur time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-d.clock.After(dur):
		return true
	}
}

// Countdown shows the countdown sequence, one step per CountdownStep. It
// never touches the engine.
func (d *Driver) Countdown(ctx context.Context) error {
	for _, text := range d.countdownSeq {
		d.mu.Lock()
		d.overlay = OverlayCountdown
		d.countdown = text
		d.redraw(d.id)
		d.mu.Unlock()

		if !d.wait(ctx, d.countdownStep) {
			return ctx.Err()
		}
	}

	d.mu.Lock()
	if d.overlay == OverlayCountdown {
		d.overlay = OverlayNone
	}
	d.countdown = ""
	d.redraw(d.id)
	d.mu.Unlock()
	return nil
}

// RunGravity drops the active piece one row per fall-speed interval until
// ctx ends. It yields after the mutation and redraw, after the level check,
// and while waiting. A halted driver keeps ticking without effect.
func (d *Driver) RunGravity(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		d.Step()
		runtime.Gosched()

		d.mu.Lock()
		d.levelUpCheck()
		speed := d.fallSpeed
		d.mu.Unlock()
		runtime.Gosched()

		if !d.wait(ctx, speed) {
			return nil
		}
	}
}

// SetOverlay shows a terminal screen or clears the overlay.
func (d *Driver) SetOverlay(o Overlay) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlay = o
	d.redraw(d.id)
}

// Overlay returns the current overlay.
func (d *Driver) Overlay() Overlay {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.overlay
}

// Reset starts a fresh game for the player.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine.Reset()
	d.overlay = OverlayNone
	d.countdown = ""
	d.resetLevel()
	d.redraw(d.id)
	d.log.Debug("reset")
}

// View captures what the renderer needs, including the next three shapes.
func (d *Driver) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return View{
		Snapshot:  d.engine.Snapshot(3),
		Keymap:    d.keymap,
		Overlay:   d.overlay,
		Countdown: d.countdown,
		FallSpeed: d.fallSpeed,
	}
}

// Score returns the player's score.
func (d *Driver) Score() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.Score()
}

// Level returns the player's level.
func (d *Driver) Level() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.Level()
}

// Inspect runs fn with exclusive access to the engine. fn must not keep the
// engine.
func (d *Driver) Inspect(fn func(e *tetris.Engine)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.engine)
}
