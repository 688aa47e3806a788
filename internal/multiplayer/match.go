package multiplayer

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
)

// Defaults used when Options leaves a duration unset.
const (
	DefaultGameOverDelay = 800 * time.Millisecond
	DefaultPollInterval  = 5 * time.Millisecond
)

// maxDrain bounds how many stale keys are discarded after the countdown.
const maxDrain = 1024

var errMatchClosed = errors.New("match closed")

// Options configures a Match.
type Options struct {
	ID            MatchID
	GameOverDelay time.Duration
	PollInterval  time.Duration
	Clock         clock.Clock
	Logger        *log.Logger
	Sink          EventSink
}

// target is one binding of a key code: the driver and the action it fires.
type target struct {
	driver int
	action core.Action
}

// Match runs one driver per player against a single input stream.
type Match struct {
	id      MatchID
	mode    MatchMode
	drivers []*game.Driver
	byID    map[PlayerID]int
	input   core.InputSource
	index   *intmap.Map[core.KeyCode, []target]
	signals chan Signal
	overs   chan Signal

	gameOverDelay time.Duration
	pollInterval  time.Duration
	clock         clock.Clock
	log           *log.Logger
	sink          EventSink

	// Referee state. Only the referee goroutine touches it while Run is
	// active; Reset touches it between runs.
	alive      []bool
	quietUntil time.Time
	ended      bool
	outcome    Outcome
}

// NewMatch creates a match over drivers, which are sorted by player id.
// The match takes over the drivers' signal channels. Game over gets one
// slot per driver, so it is never dropped; restart and quit may be.
func NewMatch(drivers []*game.Driver, input core.InputSource, opts Options) *Match {
	if opts.ID == "" {
		opts.ID = NewMatchID()
	}
	if opts.GameOverDelay <= 0 {
		opts.GameOverDelay = DefaultGameOverDelay
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Sink == nil {
		opts.Sink = discardSink{}
	}
	if input == nil {
		input = core.NewChannelInput(1)
	}

	sorted := make([]*game.Driver, len(drivers))
	copy(sorted, drivers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })

	m := &Match{
		id:            opts.ID,
		mode:          ModeFor(len(sorted)),
		drivers:       sorted,
		byID:          make(map[PlayerID]int, len(sorted)),
		input:         input,
		index:         intmap.New[core.KeyCode, []target](len(sorted) * len(core.Actions())),
		signals:       make(chan Signal, 4*len(sorted)+8),
		overs:         make(chan Signal, len(sorted)),
		gameOverDelay: opts.GameOverDelay,
		pollInterval:  opts.PollInterval,
		clock:         opts.Clock,
		log:           opts.Logger.With("match", string(opts.ID)),
		sink:          opts.Sink,
		alive:         make([]bool, len(sorted)),
	}

	for i, d := range sorted {
		m.byID[d.ID()] = i
		m.alive[i] = true
		d.Attach(m.signals, m.overs)
		for _, b := range d.Keymap() {
			targets, _ := m.index.Get(b.Key)
			m.index.Put(b.Key, append(targets, target{driver: i, action: b.Action}))
		}
	}
	return m
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Mode returns the match mode.
func (m *Match) Mode() MatchMode {
	return m.mode
}

// Drivers returns the drivers in player order.
func (m *Match) Drivers() []*game.Driver {
	return m.drivers
}

// Driver returns the driver of player p.
func (m *Match) Driver(p PlayerID) (*game.Driver, bool) {
	i, ok := m.byID[p]
	if !ok {
		return nil, false
	}
	return m.drivers[i], true
}

// Scores returns every player's score and level in player order.
func (m *Match) Scores() []PlayerScore {
	out := make([]PlayerScore, len(m.drivers))
	for i, d := range m.drivers {
		out[i] = PlayerScore{Player: d.ID(), Score: d.Score(), Level: d.Level()}
	}
	return out
}

// DispatchInput fires every binding of code: drivers in player order, each
// driver's bindings in action order. A code bound by several players (the
// shared restart and quit keys) fires on all of them.
func (m *Match) DispatchInput(code core.KeyCode) {
	targets, ok := m.index.Get(code)
	if !ok {
		return
	}
	for _, t := range targets {
		m.drivers[t.driver].Do(t.action)
	}
}

// Run plays the match: the countdowns in parallel, then the input reader,
// every gravity cycle and the referee as one task group. It returns when a
// player restarts or quits, or with OutcomeCancelled when ctx ends.
func (m *Match) Run(ctx context.Context) (Outcome, error) {
	m.log.Info("match started", "mode", m.mode, "players", len(m.drivers))
	m.sink.Send(MatchStartedEvent{MatchID: m.id, Mode: m.mode, Players: len(m.drivers)})

	countdown, cctx := errgroup.WithContext(ctx)
	for _, d := range m.drivers {
		countdown.Go(func() error { return d.Countdown(cctx) })
	}
	if err := countdown.Wait(); err != nil {
		if ctx.Err() != nil {
			return m.close(OutcomeCancelled), nil
		}
		return m.close(OutcomeQuit), err
	}
	m.drainInput()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.pollInput(gctx) })
	for _, d := range m.drivers {
		g.Go(func() error { return d.RunGravity(gctx) })
	}
	g.Go(func() error { return m.referee(gctx) })

	err := g.Wait()
	switch {
	case errors.Is(err, errMatchClosed):
		return m.close(m.outcome), nil
	case err != nil:
		return m.close(OutcomeQuit), err
	default:
		return m.close(OutcomeCancelled), nil
	}
}

// Play runs the match until a player quits or ctx ends, resetting every
// driver after each restart.
func (m *Match) Play(ctx context.Context) (Outcome, error) {
	for {
		outcome, err := m.Run(ctx)
		if err != nil || outcome != OutcomeRestart {
			return outcome, err
		}
		m.Reset()
	}
}

// Reset prepares the match for another Run. It must not be called while
// Run is active.
func (m *Match) Reset() {
	for i, d := range m.drivers {
		d.Reset()
		m.alive[i] = true
	}
	m.quietUntil = time.Time{}
	m.ended = false
drain:
	for {
		select {
		case <-m.signals:
		case <-m.overs:
		default:
			break drain
		}
	}
	m.log.Debug("match reset")
}

func (m *Match) close(o Outcome) Outcome {
	m.log.Info("match closed", "outcome", o)
	m.sink.Send(MatchClosedEvent{MatchID: m.id, Outcome: o})
	return o
}

// drainInput discards keys typed during the countdown.
func (m *Match) drainInput() {
	for i := 0; i < maxDrain; i++ {
		if m.input.Poll() == core.NoKey {
			return
		}
	}
}

// pollInput reads the shared input without blocking and yields on the
// clock once per poll, whether or not a key was read.
func (m *Match) pollInput(ctx context.Context) error {
	for {
		if k := m.input.Poll(); k != core.NoKey {
			m.DispatchInput(k)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-m.clock.After(m.pollInterval):
		}
	}
}
