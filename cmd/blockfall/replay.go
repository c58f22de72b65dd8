package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blocks"
	"github.com/vovakirdan/blockfall/internal/replay"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var flagVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recorded session",
	Long: `Replay a recorded session headlessly and print the final board and score.

The id may be any unique prefix of a session id (see 'blockfall sessions').
With --verify the command fails when the replayed score differs from the
recorded one.

Examples:
  blockfall replay 3f2a9c
  blockfall replay 3f2a9c --verify`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Fail if the replayed score differs from the recording")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}

	ok := replaySession(store, args[0], flagVerify)
	store.Close()
	if !ok {
		os.Exit(1)
	}
}

// replaySession loads and re-runs one session, printing the outcome.
// It reports false on any failure.
func replaySession(store *storage.Store, id string, verify bool) bool {
	rec, err := store.Session(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, storage.ErrAmbiguousID) {
			fmt.Fprintln(os.Stderr, "Use a longer id prefix.")
		}
		return false
	}
	if rec.GameID != blocks.ID {
		fmt.Fprintf(os.Stderr, "Error: session %s was recorded by unknown game %q\n", rec.ID, rec.GameID)
		return false
	}

	game, err := blocks.New(rec.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return false
	}

	play := replay.Play
	if verify {
		play = replay.Verify
	}
	state, err := play(game, rec)

	fmt.Printf("Session %s (seed %d, %d steps)\n\n", rec.ID, rec.Seed, rec.Steps)
	fmt.Println(game.BoardString())
	fmt.Println()
	fmt.Printf("Recorded: score %d, lines %d\n", rec.FinalScore, rec.Lines)
	fmt.Printf("Replayed: score %d, lines %d\n", state.Score, state.Lines)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	if verify {
		fmt.Println("Verified.")
	}
	return true
}
