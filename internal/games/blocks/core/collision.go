package core

// WouldCollide reports whether the piece, shifted by (dRow, dCol), would
// leave the playfield or overlap a locked block. A cell collides when its
// column is outside [0, Cols), its row is at or below the floor, or its row
// is visible and the board cell is occupied. Rows above the top are allowed
// and never hit the board.
func WouldCollide(board *Board, piece Piece, dRow, dCol int) bool {
	for _, c := range piece.Shifted(dRow, dCol).Cells() {
		if blocked(board, c) {
			return true
		}
	}
	return false
}

// blocked checks a single absolute cell.
func blocked(board *Board, c Cell) bool {
	if c.Col < 0 || c.Col >= board.Cols() {
		return true
	}
	if c.Row >= board.Rows() {
		return true
	}
	return c.Row >= 0 && board.IsOccupied(c.Row, c.Col)
}

// DropDistance returns how many rows the piece can fall before it would
// collide. It is zero when the piece is already resting.
func DropDistance(board *Board, piece Piece) int {
	n := 0
	for !WouldCollide(board, piece, n+1, 0) {
		n++
	}
	return n
}
