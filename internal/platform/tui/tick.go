// Package tui runs a game in the terminal with Bubble Tea: it maps keys to
// actions, steps the game on a fixed tick, renders the screen buffer with
// lipgloss and serves the same loop over SSH with Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

// TickMsg drives one simulation step.
type TickMsg time.Time

// tickInterval is the wall-clock time between steps at rate steps per second.
// Non-positive rates fall back to the default rate.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next step.
func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
