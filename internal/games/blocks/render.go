package blocks

import (
	"fmt"

	platformcore "github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/core"
)

const (
	hudHeight = 2
	cellW     = 2 // Terminal columns per board cell
)

var (
	blockGlyph = []rune("██")
	ghostGlyph = []rune("░░")
	emptyGlyph = []rune(" .")
)

// MinScreenSize returns the smallest screen that fits the board and HUD.
func (g *Game) MinScreenSize() (w, h int) {
	return g.cfg.Board.Columns*cellW + 2, g.cfg.Board.Rows + 2 + hudHeight
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	minW, minH := g.MinScreenSize()
	if dst.Width() < minW || dst.Height() < minH {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	frame := platformcore.NewRect((dst.Width()-minW)/2, hudHeight, minW, minH-hudHeight)
	dst.DrawBox(frame, platformcore.ColorGray)
	g.renderBoard(dst, frame.X+1, frame.Y+1)

	switch g.engine.State() {
	case core.StateIdle:
		g.renderOverlay(dst, "BLOCKFALL", "Press Enter to start")
	case core.StateGameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d  R to restart", g.engine.Score()))
	default:
		if g.paused {
			g.renderOverlay(dst, "Paused", "Press P to continue")
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" Blockfall  Score: %d  Lines: %d", g.engine.Score(), g.engine.Lines())
	dst.DrawColoredText(0, 0, hud, platformcore.ColorBrightWhite)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderBoard draws locked blocks, the landing preview and the active piece
// with the board's top-left cell at (originX, originY).
func (g *Game) renderBoard(dst *platformcore.Screen, originX, originY int) {
	drawCell := func(c core.Cell, glyph []rune, color platformcore.Color) {
		if c.Row < 0 {
			return
		}
		x := originX + c.Col*cellW
		y := originY + c.Row
		for i, r := range glyph {
			dst.SetColored(x+i, y, r, color)
		}
	}

	for r, row := range g.engine.Board() {
		for c, filled := range row {
			if filled {
				drawCell(core.C(r, c), blockGlyph, platformcore.ColorGray)
			} else {
				drawCell(core.C(r, c), emptyGlyph, platformcore.ColorDefault)
			}
		}
	}

	piece, ok := g.engine.Piece()
	if !ok {
		return
	}
	color := platformcore.PieceColor(int(piece.Shape.Kind))

	if d := g.engine.DropDistance(); d > 0 {
		for _, c := range piece.Shifted(d, 0).Cells() {
			drawCell(c, ghostGlyph, color)
		}
	}
	for _, c := range piece.Cells() {
		drawCell(c, blockGlyph, color)
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(boxW, 5)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
