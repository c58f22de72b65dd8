package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/blockfall/internal/games/blocks/core"
)

func mustBoard(t *testing.T, rows, cols int) *core.Board {
	t.Helper()
	b, err := core.NewBoard(rows, cols)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d) failed: %v", rows, cols, err)
	}
	return b
}

func fillRow(b *core.Board, row int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, c := range except {
		skip[c] = true
	}
	for c := 0; c < b.Cols(); c++ {
		if !skip[c] {
			b.Occupy(row, c)
		}
	}
}

func TestNewBoardInvalidDimensions(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 10},
		{"zero cols", 20, 0},
		{"negative rows", -1, 10},
		{"negative cols", 20, -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.NewBoard(tc.rows, tc.cols)
			if !errors.Is(err, core.ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestBoardOccupyAndClear(t *testing.T) {
	b := mustBoard(t, 20, 10)

	if b.FilledCount() != 0 {
		t.Fatalf("new board should be empty, got %d filled", b.FilledCount())
	}

	b.Occupy(19, 0)
	b.Occupy(5, 9)

	if !b.IsOccupied(19, 0) || !b.IsOccupied(5, 9) {
		t.Error("occupied cells not reported")
	}
	if b.IsOccupied(19, 1) {
		t.Error("unexpected occupied cell at (19, 1)")
	}

	b.Clear()
	if b.FilledCount() != 0 {
		t.Errorf("expected empty board after Clear, got %d filled", b.FilledCount())
	}
	if b.Rows() != 20 || b.Cols() != 10 {
		t.Errorf("dimensions changed after Clear: %dx%d", b.Rows(), b.Cols())
	}
}

func TestBoardNegativeRowIsClear(t *testing.T) {
	b := mustBoard(t, 4, 4)
	fillRow(b, 0)

	for _, row := range []int{-1, -2, -100} {
		if b.IsOccupied(row, 0) {
			t.Errorf("IsOccupied(%d, 0) = true, rows above the top must be clear", row)
		}
	}
}

func TestBoardOutOfRangePanics(t *testing.T) {
	b := mustBoard(t, 4, 4)

	tests := []struct {
		name string
		fn   func()
	}{
		{"occupy below floor", func() { b.Occupy(4, 0) }},
		{"occupy above top", func() { b.Occupy(-1, 0) }},
		{"occupy left", func() { b.Occupy(0, -1) }},
		{"query right", func() { b.IsOccupied(0, 4) }},
		{"query below floor", func() { b.IsOccupied(4, 0) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tc.fn()
		})
	}
}

func TestBoardRemoveRow(t *testing.T) {
	b := mustBoard(t, 4, 3)
	b.Occupy(0, 0)
	b.Occupy(1, 1)
	b.Occupy(2, 2)
	fillRow(b, 3)

	if !b.IsRowFull(3) {
		t.Fatal("row 3 should be full")
	}
	if b.IsRowFull(2) {
		t.Fatal("row 2 should not be full")
	}

	b.RemoveRow(3)

	want := [][]bool{
		{false, false, false},
		{true, false, false},
		{false, true, false},
		{false, false, true},
	}
	got := b.Snapshot()
	for r := range want {
		for c := range want[r] {
			if got[r][c] != want[r][c] {
				t.Errorf("cell (%d, %d) = %v, expected %v", r, c, got[r][c], want[r][c])
			}
		}
	}
}

func TestBoardSnapshotIsCopy(t *testing.T) {
	b := mustBoard(t, 2, 2)
	snap := b.Snapshot()
	snap[1][1] = true

	if b.IsOccupied(1, 1) {
		t.Error("mutating a snapshot must not change the board")
	}
}
