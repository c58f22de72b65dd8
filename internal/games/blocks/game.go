// Package blocks provides the falling-block puzzle game: it drives the
// engine from per-frame input actions, applies gravity on a fixed cadence and
// draws the playfield into a platform screen.
package blocks

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	platformcore "github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/core"
)

// ID is the stable identifier stored with recorded sessions.
const ID = "blocks"

// seededRand lets the engine keep a single Rand while the game reseeds it on
// every Reset.
type seededRand struct {
	r *rand.Rand
}

func (s *seededRand) Intn(n int) int {
	return s.r.Intn(n)
}

// Game adapts the engine to the platform game contract.
type Game struct {
	cfg    config.BlocksConfig
	logger *log.Logger
	rng    *seededRand
	engine *core.Engine

	tick          uint64
	gravityEvery  int // Simulation ticks per gravity step
	gravityTicker int // Counts ticks until next gravity step
	paused        bool

	// Screen dimensions
	screenW int
	screenH int
}

// New creates a game for the given configuration. The configuration is
// validated; call Reset before the first Step.
func New(cfg config.BlocksConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := &seededRand{r: rand.New(rand.NewSource(1))}
	engine, err := core.New(core.Options{
		Rows:       cfg.Board.Rows,
		Cols:       cfg.Board.Columns,
		LinePoints: cfg.Scoring.LinePoints,
		Rand:       rng,
	})
	if err != nil {
		return nil, fmt.Errorf("blocks: %w", err)
	}

	g := &Game{
		cfg:          cfg,
		logger:       log.New(io.Discard),
		rng:          rng,
		engine:       engine,
		gravityEvery: cfg.Gravity.TicksPerStep(platformcore.DefaultConfig().TickRate),
	}
	engine.OnGameOver(func(ev core.GameOverEvent) {
		g.logger.Debug("game over", "score", ev.FinalScore, "lines", ev.Lines, "tick", g.tick)
	})
	return g, nil
}

// SetLogger sets the logger used for debug events. A nil logger discards.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blockfall"
}

// Config returns the game configuration.
func (g *Game) Config() config.BlocksConfig {
	return g.cfg
}

// Reset reseeds the shape generator and returns to the title state.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng.r = rand.New(rand.NewSource(cfg.Seed))
	g.engine.Reset()
	g.tick = 0
	g.gravityTicker = 0
	g.gravityEvery = g.cfg.Gravity.TicksPerStep(cfg.TickRate)
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Resize updates the screen size without touching the simulation.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
}

// Step advances the game by one tick. Actions are applied in a fixed order
// (start/restart, pause, left, right, soft drop, hard drop) before gravity,
// so a recorded input stream always replays to the same result.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	wasOver := g.engine.GameOver()

	switch g.engine.State() {
	case core.StateIdle:
		if input.Has(platformcore.ActionStart) {
			g.start()
		}
		return g.result(wasOver)

	case core.StateGameOver:
		if input.Has(platformcore.ActionRestart) || input.Has(platformcore.ActionStart) {
			g.start()
		}
		return g.result(wasOver)
	}

	// Handle restart mid-game
	if input.Has(platformcore.ActionRestart) {
		g.start()
		return g.result(wasOver)
	}

	// Handle pause toggle
	if input.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result(wasOver)
	}

	g.processInput(input)

	// Apply gravity on tick interval
	g.gravityTicker++
	if g.gravityTicker >= g.gravityEvery {
		g.gravityTicker = 0
		g.applyGravity()
	}

	return g.result(wasOver)
}

// start begins a new game on the current board dimensions.
func (g *Game) start() {
	g.paused = false
	g.gravityTicker = 0
	if g.engine.Start() {
		g.logger.Debug("game started", "tick", g.tick)
	}
}

// processInput translates actions into engine intents.
func (g *Game) processInput(input platformcore.InputFrame) {
	if input.Has(platformcore.ActionLeft) {
		g.engine.MoveLeft()
	}
	if input.Has(platformcore.ActionRight) {
		g.engine.MoveRight()
	}
	if input.Has(platformcore.ActionSoftDrop) {
		g.engine.SoftDrop()
	}
	if input.Has(platformcore.ActionHardDrop) {
		if n := g.engine.HardDrop(); n > 0 {
			g.logger.Debug("hard drop", "rows", n)
		}
	}
}

// applyGravity runs one engine tick and logs what it did.
func (g *Game) applyGravity() {
	res := g.engine.Tick()
	if !res.Locked {
		return
	}
	g.logger.Debug("piece locked", "cleared", res.Cleared, "score", g.engine.Score(), "tick", g.tick)
	if res.GameOver {
		g.logger.Debug("spawn blocked", "final_score", res.FinalScore)
	}
}

func (g *Game) result(wasOver bool) platformcore.StepResult {
	return platformcore.StepResult{
		State: g.State(),
		Ended: !wasOver && g.engine.GameOver(),
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.engine.Score(),
		Lines:    g.engine.Lines(),
		Started:  g.engine.State() != core.StateIdle,
		GameOver: g.engine.GameOver(),
		Paused:   g.paused,
	}
}

// Engine exposes the underlying engine for read-only inspection.
func (g *Game) Engine() *core.Engine {
	return g.engine
}
