package core

// Rand is the source of randomness used to pick shapes.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Piece is the falling piece: a shape template anchored at (Row, Col).
type Piece struct {
	Shape Shape
	Row   int
	Col   int
}

// Anchor returns the anchor position as a cell.
func (p Piece) Anchor() Cell {
	return Cell{Row: p.Row, Col: p.Col}
}

// Cells returns the absolute board coordinates covered by the piece.
func (p Piece) Cells() [4]Cell {
	var cells [4]Cell
	anchor := p.Anchor()
	for i, off := range p.Shape.Offsets {
		cells[i] = anchor.Add(off)
	}
	return cells
}

// Shifted returns a copy of the piece moved by (dRow, dCol).
func (p Piece) Shifted(dRow, dCol int) Piece {
	p.Row += dRow
	p.Col += dCol
	return p
}

// SpawnPosition returns the anchor where new pieces appear: the top row,
// horizontally centered (integer division).
func SpawnPosition(board *Board) Cell {
	return Cell{Row: 0, Col: board.Cols() / 2}
}

// Spawn picks a shape uniformly at random and anchors it at the spawn
// position. It returns false when any of the piece's cells on the visible
// board is already occupied, which ends the game; no piece is created then.
// Cells above row 0 never collide.
func Spawn(shapes []Shape, board *Board, rng Rand) (Piece, bool) {
	shape := shapes[rng.Intn(len(shapes))]
	return Place(shape, board)
}

// Place anchors a specific shape at the spawn position with the same
// top-row check as Spawn. The check is WouldCollide rather than occupancy
// alone: a cell left or right of the board, or below the floor, also blocks
// the spawn. This only differs from an occupancy check on boards too narrow
// or too short for the shape, where it reports game over instead of placing
// a piece outside the grid.
func Place(shape Shape, board *Board) (Piece, bool) {
	pos := SpawnPosition(board)
	piece := Piece{Shape: shape, Row: pos.Row, Col: pos.Col}
	if WouldCollide(board, piece, 0, 0) {
		return Piece{}, false
	}
	return piece, true
}
