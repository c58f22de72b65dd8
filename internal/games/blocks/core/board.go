// Package core implements the falling-block game rules: the occupancy board,
// the shape catalog, the active piece, collision checks and the engine state
// machine. It has no platform dependencies and no timing logic; callers drive
// it with explicit intents.
package core

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a board is built with a non-positive
// number of rows or columns.
var ErrInvalidDimensions = errors.New("blocks: board dimensions must be positive")

// Board is a fixed-size occupancy grid of locked-in blocks.
// Cells are stored in row-major order: index = row*cols + col.
type Board struct {
	rows  int
	cols  int
	cells []bool
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]bool, rows*cols),
	}, nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

// Clear empties every cell.
func (b *Board) Clear() {
	clear(b.cells)
}

// IsOccupied reports whether the cell at (row, col) holds a block.
// Rows above the visible top are always clear, so a negative row returns
// false. Any other out-of-range coordinate is a programming error.
func (b *Board) IsOccupied(row, col int) bool {
	if row < 0 {
		return false
	}
	b.mustContain(row, col)
	return b.cells[row*b.cols+col]
}

// Occupy marks the cell at (row, col) as holding a block.
func (b *Board) Occupy(row, col int) {
	b.mustContain(row, col)
	b.cells[row*b.cols+col] = true
}

// IsRowFull reports whether every column of the row is occupied.
func (b *Board) IsRowFull(row int) bool {
	b.mustContain(row, 0)
	for _, filled := range b.row(row) {
		if !filled {
			return false
		}
	}
	return true
}

// RemoveRow deletes the given row: every row above it moves down by one
// (row k takes the contents of row k-1) and row 0 becomes empty.
func (b *Board) RemoveRow(row int) {
	b.mustContain(row, 0)
	for k := row; k > 0; k-- {
		copy(b.row(k), b.row(k-1))
	}
	clear(b.row(0))
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	count := 0
	for _, filled := range b.cells {
		if filled {
			count++
		}
	}
	return count
}

// Snapshot returns a copy of the grid as [row][col] occupancy flags.
func (b *Board) Snapshot() [][]bool {
	grid := make([][]bool, b.rows)
	for r := range grid {
		grid[r] = make([]bool, b.cols)
		copy(grid[r], b.row(r))
	}
	return grid
}

// row returns the backing slice of a single row.
func (b *Board) row(r int) []bool {
	return b.cells[r*b.cols : (r+1)*b.cols]
}

func (b *Board) mustContain(row, col int) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		panic(fmt.Sprintf("blocks: cell (%d, %d) outside %dx%d board", row, col, b.rows, b.cols))
	}
}
