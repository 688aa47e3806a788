package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Default board dimensions.
const (
	DefaultWidth   = 10
	DefaultHeight  = 22
	DefaultVisible = 20
)

// points per number of rows cleared at once
var rowClearPoints = [5]int{0, 40, 100, 300, 1200}

// State is the lifecycle phase of the engine.
type State uint8

const (
	StateSpawning State = iota
	StateActive
	StateLocking
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateSpawning:
		return "Spawning"
	case StateActive:
		return "Active"
	case StateLocking:
		return "Locking"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameOver is the terminal condition raised when a new piece cannot spawn.
type GameOver struct {
	Player core.PlayerID
	Shape  Shape // the shape that failed to spawn
}

// Result reports what an engine operation did. Rejected moves and rotations
// return the zero Result.
type Result struct {
	Moved   bool // the active piece changed position or orientation
	Dropped int  // rows travelled by a hard drop
	Locked  bool
	Held    bool
	Cleared int
	Over    *GameOver
}

// GameOver reports whether the operation ended the game.
func (r Result) GameOver() bool {
	return r.Over != nil
}

// Mutated reports whether the board changed.
func (r Result) Mutated() bool {
	return r.Moved || r.Locked || r.Held || r.Over != nil
}

// Piece is the falling piece.
type Piece struct {
	Shape    Shape
	Rotation int // 0..3, clockwise from spawn
	X, Y     int // bottom-left corner of the box
	Box      Box
}

// Cells returns the board cells covered by the piece.
func (p Piece) Cells() []core.Point {
	if p.Box == nil {
		return nil
	}
	return p.Box.Cells(p.X, p.Y)
}

// Config sizes an engine.
type Config struct {
	Width   int
	Height  int
	Visible int
	Seed    int64
}

// DefaultEngineConfig returns the classic 10×22 board with 20 visible rows.
func DefaultEngineConfig() Config {
	return Config{Width: DefaultWidth, Height: DefaultHeight, Visible: DefaultVisible}
}

// Engine is one player's simulation. It owns its board, its queue and its
// scores; nothing outside reaches into them.
type Engine struct {
	player  core.PlayerID
	cfg     Config
	board   *Board
	bag     *Bag
	state   State
	active  Piece
	held    Shape
	score   int
	tenths  int // level * 10
	lines   int
	lastOut *GameOver
}

// NewEngine creates an engine and spawns the first piece.
func NewEngine(player core.PlayerID, cfg Config) *Engine {
	def := DefaultEngineConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Visible <= 0 || cfg.Visible > cfg.Height {
		cfg.Visible = cfg.Height
	}
	e := &Engine{
		player: player,
		cfg:    cfg,
		board:  NewBoard(cfg.Width, cfg.Height),
		bag:    NewBag(cfg.Seed),
	}
	e.reset()
	return e
}

func (e *Engine) reset() {
	e.board.Reset()
	e.bag.Discard()
	e.state = StateSpawning
	e.active = Piece{}
	e.held = ShapeNone
	e.score = 0
	e.tenths = 10
	e.lines = 0
	e.lastOut = nil
	e.spawn()
}

// Reset starts a fresh game on the same engine. The randomizer continues
// from where it was.
func (e *Engine) Reset() Result {
	e.reset()
	return Result{Moved: true, Over: e.lastOut}
}

// spawn pops the next shape and places it at the top of the board,
// horizontally centered.
func (e *Engine) spawn() *GameOver {
	s := e.bag.Pop()
	box := s.Box()
	n := box.Size()
	x := (e.board.Width() - n) / 2
	y := e.board.Height() - n

	cells, fault := e.board.Validate(box, x, y)
	if fault != FaultNone {
		e.state = StateGameOver
		e.active = Piece{}
		e.lastOut = &GameOver{Player: e.player, Shape: s}
		return e.lastOut
	}
	e.board.Commit(cells, s)
	e.active = Piece{Shape: s, X: x, Y: y, Box: box}
	e.state = StateActive
	return nil
}

// lock settles the active piece, clears rows, scores and spawns the next
// piece.
func (e *Engine) lock() Result {
	e.state = StateLocking
	e.board.LockActive()
	cleared := e.board.ClearFullRows()
	e.addScore(cleared)
	e.active = Piece{}
	e.state = StateSpawning
	over := e.spawn()
	return Result{Locked: true, Cleared: cleared, Over: over}
}

func (e *Engine) addScore(cleared int) {
	idx := cleared
	if idx > len(rowClearPoints)-1 {
		idx = len(rowClearPoints) - 1
	}
	e.score += rowClearPoints[idx] * (e.tenths / 10)
	e.tenths += cleared
	e.lines += cleared
}

// Move shifts the active piece. A rejected sideways move does nothing; a
// rejected downward move locks the piece.
func (e *Engine) Move(dx, dy int) Result {
	if e.state != StateActive {
		return Result{}
	}
	x, y := e.active.X+dx, e.active.Y+dy
	cells, fault := e.board.Validate(e.active.Box, x, y)
	if fault == FaultNone {
		e.board.Commit(cells, e.active.Shape)
		e.active.X, e.active.Y = x, y
		return Result{Moved: true}
	}
	if dy < 0 {
		return e.lock()
	}
	return Result{}
}

// Left moves the piece one column left.
func (e *Engine) Left() Result { return e.Move(-1, 0) }

// Right moves the piece one column right.
func (e *Engine) Right() Result { return e.Move(1, 0) }

// SoftDrop moves the piece one row down, locking it if it cannot move.
func (e *Engine) SoftDrop() Result { return e.Move(0, -1) }

// HardDrop moves the piece down until it locks.
func (e *Engine) HardDrop() Result {
	if e.state != StateActive {
		return Result{}
	}
	dropped := 0
	for {
		r := e.Move(0, -1)
		if r.Locked {
			r.Dropped = dropped
			r.Moved = dropped > 0
			return r
		}
		dropped++
	}
}

// Rotate turns the piece clockwise times quarter turns, trying each wall
// kick in table order. If no kick fits the piece stays as it was.
func (e *Engine) Rotate(times int) Result {
	if e.state != StateActive {
		return Result{}
	}
	times = normRot(times)
	if times == 0 {
		return Result{}
	}
	from := e.active.Rotation
	to := normRot(from + times)
	box := e.active.Box.Rotate(times)

	for attempt := 0; ; attempt++ {
		k, ok := Kick(e.active.Shape, from, to, attempt)
		if !ok {
			return Result{}
		}
		x, y := e.active.X+k.X, e.active.Y+k.Y
		cells, fault := e.board.Validate(box, x, y)
		if fault != FaultNone {
			continue
		}
		e.board.Commit(cells, e.active.Shape)
		e.active.Box = box
		e.active.Rotation = to
		e.active.X, e.active.Y = x, y
		return Result{Moved: true}
	}
}

// Hold swaps the active piece with the held one. A previously held shape
// becomes the next spawn; otherwise the queue continues.
func (e *Engine) Hold() Result {
	if e.state != StateActive {
		return Result{}
	}
	cur := e.active.Shape
	e.board.ClearActive()
	if e.held != ShapeNone {
		e.bag.PushFront(e.held)
	}
	e.held = cur
	e.active = Piece{}
	e.state = StateSpawning
	over := e.spawn()
	return Result{Held: true, Over: over}
}

// Player returns the owning player.
func (e *Engine) Player() core.PlayerID { return e.player }

// State returns the lifecycle phase.
func (e *Engine) State() State { return e.state }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Level returns the current level, starting at 1.0.
func (e *Engine) Level() float64 { return float64(e.tenths) / 10 }

// KnownLevel returns floor(Level()).
func (e *Engine) KnownLevel() int { return e.tenths / 10 }

// Lines returns the number of rows cleared so far.
func (e *Engine) Lines() int { return e.lines }

// Held returns the held shape or ShapeNone.
func (e *Engine) Held() Shape { return e.held }

// Next returns the next n shapes in the queue.
func (e *Engine) Next(n int) []Shape { return e.bag.Peek(n) }

// Active returns a copy of the falling piece.
func (e *Engine) Active() (Piece, bool) {
	if e.state != StateActive {
		return Piece{}, false
	}
	p := e.active
	p.Box = p.Box.Clone()
	return p, true
}

// Board returns the board for read-only inspection.
func (e *Engine) Board() *Board { return e.board }

// Config returns the engine dimensions.
func (e *Engine) Config() Config { return e.cfg }

// Ghost returns the cells the active piece would occupy after a hard drop.
func (e *Engine) Ghost() []core.Point {
	if e.state != StateActive {
		return nil
	}
	y := e.active.Y
	var last []core.Point
	for {
		cells, fault := e.board.Validate(e.active.Box, e.active.X, y)
		if fault != FaultNone {
			return last
		}
		last = cells
		y--
	}
}
