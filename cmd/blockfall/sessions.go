package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/games/blocks"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse recorded sessions",
	Long: `List the sessions recorded in the journal.

In a terminal this opens an interactive browser: Enter verifies the selected
session by replaying it, D deletes it. With --plain (or when stdout is not a
terminal) a table is printed instead.

Examples:
  blockfall sessions
  blockfall sessions --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table instead of the interactive browser")
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions to print with --plain")
}

func runSessions(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if flagPlain || !term.IsTerminal(fd) {
		printSessions(store)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width, height = w, h
	}

	selected, err := tui.RunSessions(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if selected != "" {
		if !replaySession(store, selected, true) {
			store.Close()
			os.Exit(1)
		}
	}
}

// printSessions writes the recent sessions and totals to stdout.
func printSessions(store *storage.Store) {
	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}

	fmt.Println("Recorded sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blockfall play' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-36s  %-7s  %-5s  %-7s  %-8s  %s\n", "ID", "Score", "Lines", "Steps", "Length", "Started")
	fmt.Printf("  %-36s  %-7s  %-5s  %-7s  %-8s  %s\n", "--", "-----", "-----", "-----", "------", "-------")

	for _, s := range sessions {
		row := tui.SessionRow(s)
		fmt.Printf("  %-36s  %-7s  %-5s  %-7s  %-8s  %s\n",
			s.ID, row[1], row[2], row[3], row[4], s.StartedAt.Local().Format("2006-01-02 15:04"))
	}

	// Show totals
	stats, err := store.GameStats(blocks.ID)
	if err == nil && stats.Sessions > 0 {
		fmt.Println()
		fmt.Printf("Sessions: %d  Best: %d  Average: %.0f  Total lines: %d\n",
			stats.Sessions, stats.BestScore, stats.AvgScore, stats.TotalLines)
	}
}
