package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var flagNoRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/h     - Move left
  Right/l    - Move right
  Down/j     - Soft drop (one row)
  Space      - Hard drop
  Enter      - Start
  R          - Restart
  P/Esc      - Pause
  ?          - Help
  Q/Ctrl+C   - Quit

Every game is recorded to the session journal unless --no-record is set.

Examples:
  blockfall play
  blockfall play --seed 42
  blockfall play --config ./my-blocks.yaml --log-file /tmp/blockfall.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record games to the journal")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := newLogger(cfg, io.Discard)
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := blocks.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game.SetLogger(logger)

	opts := tui.Options{
		Runtime: rt,
		Config:  cfg,
		Logger:  logger,
	}

	if !flagNoRecord {
		// Open the journal; the game still works without it
		store, storeErr := storage.Open(flagDBPath)
		if storeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open session journal: %v\n", storeErr)
		} else {
			defer store.Close()
			opts.Journal = store
		}
	}

	state, err := tui.Run(game, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}

	if state.Started {
		fmt.Printf("Score: %d  Lines: %d\n", state.Score, state.Lines)
	}
}
