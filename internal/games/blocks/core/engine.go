package core

import (
	"math/rand"
	"time"
)

// DefaultLinePoints is the score awarded for each cleared row.
const DefaultLinePoints = 100

// State is the engine's position in its state machine.
type State int

const (
	// StateIdle is the state before the first start and after a reset.
	StateIdle State = iota
	// StateFalling means a piece exists and gravity applies.
	StateFalling
	// StateGameOver is terminal until Start or Reset.
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFalling:
		return "falling"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Options configures a new Engine.
type Options struct {
	Rows       int
	Cols       int
	LinePoints int     // Score per cleared row; DefaultLinePoints when <= 0
	Rand       Rand    // Shape selection; seeded from the clock when nil
	Shapes     []Shape // Spawn pool; the full catalog when empty
}

// GameOverEvent is delivered to game-over handlers when a spawn collides.
type GameOverEvent struct {
	FinalScore int
	Lines      int
}

// TickResult describes what a single gravity tick did.
type TickResult struct {
	Moved      bool // The piece fell one row
	Locked     bool // The piece was locked into the board
	Cleared    int  // Rows cleared by this lock-in
	Spawned    bool // A new piece appeared after the lock-in
	GameOver   bool // The next piece could not spawn
	FinalScore int  // Score at game over (only set when GameOver)
}

// Engine is the falling-block state machine. It owns the board and the
// active piece; callers read state through accessors and mutate it only
// through intents. Not safe for concurrent use.
type Engine struct {
	board      *Board
	shapes     []Shape
	rng        Rand
	linePoints int

	state    State
	piece    Piece
	hasPiece bool
	score    int
	lines    int

	onGameOver []func(GameOverEvent)
}

// New creates an idle engine with an empty board.
func New(opts Options) (*Engine, error) {
	board, err := NewBoard(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		board:      board,
		shapes:     opts.Shapes,
		rng:        opts.Rand,
		linePoints: opts.LinePoints,
	}
	if len(e.shapes) == 0 {
		e.shapes = Shapes()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.linePoints <= 0 {
		e.linePoints = DefaultLinePoints
	}
	return e, nil
}

// OnGameOver registers a handler called once each time the game ends.
func (e *Engine) OnGameOver(fn func(GameOverEvent)) {
	e.onGameOver = append(e.onGameOver, fn)
}

// Reset clears the board, score and game-over flag and returns to idle.
func (e *Engine) Reset() {
	e.board.Clear()
	e.score = 0
	e.lines = 0
	e.hasPiece = false
	e.piece = Piece{}
	e.state = StateIdle
}

// Start resets the game and spawns the first piece. It may be called from
// any state to restart. Returns false if the first spawn already collides.
func (e *Engine) Start() bool {
	e.Reset()
	e.state = StateFalling
	return e.spawn()
}

// Tick applies one step of gravity. If the piece cannot fall it is locked
// into the board, full rows are cleared and scored, and the next piece is
// spawned. Outside StateFalling it does nothing.
func (e *Engine) Tick() TickResult {
	if e.state != StateFalling {
		return TickResult{}
	}
	if e.TryMove(1, 0) {
		return TickResult{Moved: true}
	}

	res := TickResult{Locked: true}
	e.lock()
	res.Cleared = e.clearRows()
	if e.spawn() {
		res.Spawned = true
	} else {
		res.GameOver = true
		res.FinalScore = e.score
	}
	return res
}

// MoveLeft shifts the piece one column left. Returns false if blocked.
func (e *Engine) MoveLeft() bool {
	return e.TryMove(0, -1)
}

// MoveRight shifts the piece one column right. Returns false if blocked.
func (e *Engine) MoveRight() bool {
	return e.TryMove(0, 1)
}

// SoftDrop moves the piece down one row. A blocked soft drop does not lock
// the piece; only Tick locks.
func (e *Engine) SoftDrop() bool {
	return e.TryMove(1, 0)
}

// HardDrop moves the piece down until it rests and returns the number of
// rows travelled. The piece stays active until the next Tick locks it.
func (e *Engine) HardDrop() int {
	n := 0
	for e.TryMove(1, 0) {
		n++
	}
	return n
}

// TryMove shifts the active piece by (dRow, dCol) if the target position is
// free. It returns false without changing anything on collision or when no
// piece is falling.
func (e *Engine) TryMove(dRow, dCol int) bool {
	if e.state != StateFalling || !e.hasPiece {
		return false
	}
	if WouldCollide(e.board, e.piece, dRow, dCol) {
		return false
	}
	e.piece = e.piece.Shifted(dRow, dCol)
	return true
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Lines returns the number of rows cleared since the last start.
func (e *Engine) Lines() int {
	return e.lines
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool {
	return e.state == StateGameOver
}

// Rows returns the board height.
func (e *Engine) Rows() int {
	return e.board.Rows()
}

// Cols returns the board width.
func (e *Engine) Cols() int {
	return e.board.Cols()
}

// Board returns a copy of the locked-in occupancy grid.
func (e *Engine) Board() [][]bool {
	return e.board.Snapshot()
}

// Piece returns the active piece, if any.
func (e *Engine) Piece() (Piece, bool) {
	return e.piece, e.hasPiece
}

// PieceCells returns the absolute cells of the active piece, if any.
func (e *Engine) PieceCells() ([]Cell, bool) {
	if !e.hasPiece {
		return nil, false
	}
	cells := e.piece.Cells()
	return cells[:], true
}

// DropDistance returns how many rows the active piece can still fall, or 0
// when there is none.
func (e *Engine) DropDistance() int {
	if !e.hasPiece {
		return 0
	}
	return DropDistance(e.board, e.piece)
}

// spawn creates the next piece or ends the game.
func (e *Engine) spawn() bool {
	piece, ok := Spawn(e.shapes, e.board, e.rng)
	if !ok {
		e.hasPiece = false
		e.piece = Piece{}
		e.state = StateGameOver
		e.notifyGameOver()
		return false
	}
	e.piece = piece
	e.hasPiece = true
	return true
}

// lock transfers the active piece into the board. Cells still above the
// visible top are dropped.
func (e *Engine) lock() {
	for _, c := range e.piece.Cells() {
		if c.Row >= 0 {
			e.board.Occupy(c.Row, c.Col)
		}
	}
	e.hasPiece = false
	e.piece = Piece{}
}

// clearRows makes one pass from the floor upward, removing and scoring each
// full row it meets. An index is not revisited after a removal shifts the
// row above into it, so of two adjacent full rows only the lower one is
// cleared in this pass.
func (e *Engine) clearRows() int {
	cleared := 0
	for r := e.board.Rows() - 1; r >= 0; r-- {
		if e.board.IsRowFull(r) {
			e.board.RemoveRow(r)
			cleared++
		}
	}
	e.score += cleared * e.linePoints
	e.lines += cleared
	return cleared
}

func (e *Engine) notifyGameOver() {
	ev := GameOverEvent{FinalScore: e.score, Lines: e.lines}
	for _, fn := range e.onGameOver {
		fn(ev)
	}
}
