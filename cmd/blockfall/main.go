// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall                 - Play (same as "blockfall play")
//	blockfall play            - Play in this terminal
//	blockfall serve           - Start SSH server for remote play
//	blockfall sessions        - Browse recorded sessions
//	blockfall replay <id>     - Re-run a recorded session headlessly
//	blockfall config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Use a specific config YAML
//	--db <path>           - Set journal path (default: ~/.blockfall/sessions.db)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file (play mode logs nowhere otherwise)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle in your terminal",
	Long: `Blockfall drops shapes onto a grid. Fill a row to clear it and score.
The game ends when a new shape has no room to appear.

Available commands:
  play      - Play in this terminal (default)
  serve     - Start SSH server for remote play
  sessions  - Browse recorded sessions
  replay    - Re-run a recorded session
  config    - Print the effective configuration

Examples:
  blockfall
  blockfall play --seed 42
  blockfall serve --ssh :23235
  blockfall sessions --plain
  blockfall replay 3f2a --verify`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to session journal")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the game configuration or exits.
func loadConfig() config.BlocksConfig {
	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the process logger. Output goes to --log-file when set,
// otherwise to fallback. The returned closer releases the log file.
func newLogger(cfg config.BlocksConfig, fallback io.Writer) (*log.Logger, func()) {
	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		} else {
			out = f
			closer = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
	})

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else if level != "" {
		logger.Warn("unknown log level, using info", "level", level)
	}

	return logger, closer
}
