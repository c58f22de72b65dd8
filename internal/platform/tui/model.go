package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/replay"
)

// Options configures a Model.
type Options struct {
	Runtime core.RuntimeConfig
	Config  config.BlocksConfig // Stored with recordings
	Journal Journal             // Nil disables recording
	Logger  *log.Logger         // Nil discards
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	blocksCfg  config.BlocksConfig
	journal    Journal
	logger     *log.Logger
	recorder   *replay.Recorder
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	showHelp   bool
	saved      bool // Whether the current recording has been saved
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game and resets it.
func NewModel(game Game, opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		blocksCfg:  opts.Config,
		journal:    opts.Journal,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
	m.help.ShowAll = true
	m.reset()
	return m
}

// reset restarts the game with the current seed and begins a new recording.
func (m *Model) reset() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.saved = false
	if m.journal != nil {
		m.recorder = replay.NewRecorder(m.game.ID(), m.blocksCfg, m.config)
	}
	m.logger.Debug("game reset", "seed", m.config.Seed)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.ActionFor(msg); action {
	case core.ActionQuit:
		m.finishRecording()
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.showHelp = !m.showHelp
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// A restart after game over gets a fresh seed and recording
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.reset()
		m.inputFrame.Clear()
		m.inputFrame.Set(core.ActionStart)
	}

	// Help freezes the game
	if m.showHelp {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.recorder != nil {
		m.recorder.Record(m.inputFrame)
	}
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Ended {
		m.logger.Info("game over", "score", m.gameState.Score, "lines", m.gameState.Lines)
		m.finishRecording()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// finishRecording saves the current recording once, if a game was played.
func (m *Model) finishRecording() {
	if m.journal == nil || m.recorder == nil || m.saved || !m.gameState.Started {
		return
	}
	m.saved = true

	rec := m.recorder.Finish(m.gameState)
	if err := m.journal.SaveSession(rec); err != nil {
		// Best-effort save, game continues regardless
		m.logger.Warn("could not save session", "id", rec.ID, "error", err)
		return
	}
	m.logger.Info("session saved", "id", rec.ID, "score", rec.FinalScore, "steps", rec.Steps)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		box := helpBoxStyle.Render("Blockfall controls\n\n" + m.help.View(m.keys))
		return lipgloss.Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, box)
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program and returns the final game state.
func Run(game Game, opts Options) (core.GameState, error) {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.State(), nil
	}
	return model.State(), nil
}
