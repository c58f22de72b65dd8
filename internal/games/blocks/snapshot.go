package blocks

import (
	"strings"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	State    string // "idle", "falling" or "game_over"
	Paused   bool
	Score    int
	Lines    int
	HasPiece bool
	Shape    string // Letter of the active shape, empty without a piece
	PieceRow int
	PieceCol int
	Filled   int    // Locked cells on the board
	Board    string // See BoardString
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   g.tick,
		State:  g.engine.State().String(),
		Paused: g.paused,
		Score:  g.engine.Score(),
		Lines:  g.engine.Lines(),
		Board:  g.BoardString(),
	}
	if p, ok := g.engine.Piece(); ok {
		snap.HasPiece = true
		snap.Shape = p.Shape.Kind.String()
		snap.PieceRow = p.Row
		snap.PieceCol = p.Col
	}
	for _, row := range g.engine.Board() {
		for _, filled := range row {
			if filled {
				snap.Filled++
			}
		}
	}
	return snap
}

// BoardString renders the board as text, one line per row: '#' for locked
// blocks, '@' for the active piece and '.' for empty cells.
func (g *Game) BoardString() string {
	grid := g.engine.Board()
	lines := make([][]byte, len(grid))
	for r, row := range grid {
		lines[r] = make([]byte, len(row))
		for c, filled := range row {
			if filled {
				lines[r][c] = '#'
			} else {
				lines[r][c] = '.'
			}
		}
	}

	if cells, ok := g.engine.PieceCells(); ok {
		for _, c := range cells {
			if c.Row >= 0 && c.Row < len(lines) {
				lines[c.Row][c.Col] = '@'
			}
		}
	}

	var sb strings.Builder
	for r, line := range lines {
		if r > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(line)
	}
	return sb.String()
}
