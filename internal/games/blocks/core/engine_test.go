package core

import (
	"math/rand"
	"testing"
)

// seqRand always picks the catalog index it was built with.
type seqRand struct {
	idx []int
	n   int
}

func (s *seqRand) Intn(n int) int {
	v := s.idx[s.n%len(s.idx)]
	s.n++
	return v % n
}

func newTestEngine(t *testing.T, kinds ...ShapeKind) *Engine {
	t.Helper()
	idx := make([]int, len(kinds))
	for i, k := range kinds {
		idx[i] = int(k)
	}
	e, err := New(Options{Rows: 20, Cols: 10, Rand: &seqRand{idx: idx}})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

func fillBoardRow(b *Board, row int, except ...int) {
	skip := make(map[int]bool)
	for _, c := range except {
		skip[c] = true
	}
	for c := 0; c < b.Cols(); c++ {
		if !skip[c] {
			b.Occupy(row, c)
		}
	}
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {20, 0}, {-5, -5}} {
		if _, err := New(Options{Rows: dims[0], Cols: dims[1]}); err == nil {
			t.Errorf("New(%dx%d) should fail", dims[0], dims[1])
		}
	}
}

func TestEngineStartsIdle(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)

	if e.State() != StateIdle {
		t.Errorf("expected idle, got %v", e.State())
	}
	if _, ok := e.PieceCells(); ok {
		t.Error("idle engine should have no piece")
	}
	if res := e.Tick(); res != (TickResult{}) {
		t.Errorf("tick while idle should do nothing, got %+v", res)
	}
	if e.MoveLeft() || e.MoveRight() || e.SoftDrop() || e.HardDrop() != 0 {
		t.Error("intents while idle should be no-ops")
	}
}

func TestStartSpawnsAtTopCenter(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)

	if !e.Start() {
		t.Fatal("start on an empty board should spawn")
	}
	if e.State() != StateFalling {
		t.Fatalf("expected falling, got %v", e.State())
	}

	p, ok := e.Piece()
	if !ok {
		t.Fatal("expected an active piece")
	}
	if p.Row != 0 || p.Col != 5 {
		t.Errorf("expected anchor (0, 5), got (%d, %d)", p.Row, p.Col)
	}
	if p.Shape.Kind != ShapeSquare {
		t.Errorf("expected square, got %v", p.Shape.Kind)
	}
}

func TestSquareFallsAndLocksAtBottom(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)
	e.Start()

	// The square spans two rows, so its anchor can reach row 18.
	for i := range 18 {
		res := e.Tick()
		if !res.Moved {
			t.Fatalf("tick %d should move the piece, got %+v", i+1, res)
		}
	}
	p, _ := e.Piece()
	if p.Row != 18 {
		t.Fatalf("expected anchor row 18, got %d", p.Row)
	}

	res := e.Tick()
	if !res.Locked || !res.Spawned || res.GameOver {
		t.Fatalf("expected lock and respawn, got %+v", res)
	}
	if res.Cleared != 0 || e.Score() != 0 {
		t.Errorf("no rows should clear: cleared=%d score=%d", res.Cleared, e.Score())
	}

	board := e.Board()
	for _, c := range []Cell{C(18, 5), C(18, 6), C(19, 5), C(19, 6)} {
		if !board[c.Row][c.Col] {
			t.Errorf("expected locked block at %v", c)
		}
	}
	if e.board.FilledCount() != 4 {
		t.Errorf("expected 4 locked cells, got %d", e.board.FilledCount())
	}

	p, ok := e.Piece()
	if !ok || p.Row != 0 || p.Col != 5 {
		t.Errorf("expected a fresh piece at (0, 5), got %+v ok=%v", p, ok)
	}
}

func TestFullBottomRowClears(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)
	e.Start()

	fillBoardRow(e.board, 19, 5, 6)
	e.board.Occupy(18, 0)
	e.board.Occupy(18, 1)

	if n := e.HardDrop(); n != 18 {
		t.Fatalf("expected hard drop of 18 rows, got %d", n)
	}
	res := e.Tick()
	if !res.Locked || res.Cleared != 1 {
		t.Fatalf("expected one cleared row, got %+v", res)
	}
	if e.Score() != 100 {
		t.Errorf("expected score 100, got %d", e.Score())
	}
	if e.Lines() != 1 {
		t.Errorf("expected 1 line, got %d", e.Lines())
	}

	board := e.Board()
	// Row 18 (two blocks plus the square's top half) moved down into row 19.
	for c := range 10 {
		want := c == 0 || c == 1 || c == 5 || c == 6
		if board[19][c] != want {
			t.Errorf("row 19 col %d = %v, expected %v", c, board[19][c], want)
		}
	}
	for c := range 10 {
		if board[0][c] {
			t.Errorf("row 0 col %d should be empty", c)
		}
	}
}

func TestAdjacentFullRowsClearOnePerPass(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)
	e.Start()

	fillBoardRow(e.board, 19, 5, 6)
	fillBoardRow(e.board, 18, 5, 6)
	e.board.Occupy(17, 0)

	e.HardDrop()
	res := e.Tick()
	if res.Cleared != 1 {
		t.Fatalf("expected 1 cleared row, got %d", res.Cleared)
	}
	if e.Score() != 100 {
		t.Errorf("expected score 100, got %d", e.Score())
	}

	// Row 18 shifted into the index already scanned and stays full.
	board := e.Board()
	for c := range 10 {
		if !board[19][c] {
			t.Errorf("row 19 col %d should still be occupied", c)
		}
	}
	if !board[18][0] {
		t.Error("block from row 17 should have moved down to row 18")
	}
	if n := e.board.FilledCount(); n != 11 {
		t.Errorf("expected 11 remaining blocks, got %d", n)
	}
}

func TestClearRowsSinglePass(t *testing.T) {
	tests := []struct {
		name   string
		full   []int
		want   int
		filled int // Blocks left, including the marker
	}{
		{"none", nil, 0, 1},
		{"bottom", []int{19}, 1, 1},
		{"two adjacent", []int{18, 19}, 1, 11},
		{"two apart", []int{15, 19}, 2, 1},
		{"four", []int{16, 17, 18, 19}, 2, 21},
		{"top row", []int{0}, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, ShapeSquare)
			for _, r := range tc.full {
				fillBoardRow(e.board, r)
			}
			e.board.Occupy(10, 3)

			got := e.clearRows()
			if got != tc.want {
				t.Errorf("cleared %d rows, expected %d", got, tc.want)
			}
			if e.Score() != 100*tc.want {
				t.Errorf("score %d, expected %d", e.Score(), 100*tc.want)
			}
			if n := e.board.FilledCount(); n != tc.filled {
				t.Errorf("expected %d blocks left, got %d", tc.filled, n)
			}
		})
	}
}

func TestFillGapAtColumnZero(t *testing.T) {
	e := newTestEngine(t, ShapeL)
	e.Start()
	fillBoardRow(e.board, 19, 0)

	// L cells: (0,0) (0,-1) (0,1) (1,-1); anchor col 1 puts the foot at col 0.
	for range 4 {
		if !e.MoveLeft() {
			t.Fatal("move left should succeed on an open board")
		}
	}
	if e.MoveLeft() {
		t.Fatal("piece at col 1 should be blocked by the left wall")
	}

	e.HardDrop()
	p, _ := e.Piece()
	if p.Row != 18 || p.Col != 1 {
		t.Fatalf("expected anchor (18, 1), got (%d, %d)", p.Row, p.Col)
	}

	res := e.Tick()
	if res.Cleared != 1 || e.Score() != 100 {
		t.Fatalf("expected row 19 to clear for 100 points, got %+v score=%d", res, e.Score())
	}

	board := e.Board()
	for c := range 10 {
		want := c <= 2
		if board[19][c] != want {
			t.Errorf("row 19 col %d = %v, expected %v", c, board[19][c], want)
		}
	}
}

func TestSoftDropDoesNotLock(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)
	e.Start()
	e.HardDrop()

	for range 5 {
		if e.SoftDrop() {
			t.Fatal("soft drop on the floor should fail")
		}
	}
	if _, ok := e.Piece(); !ok {
		t.Fatal("piece should still be active")
	}
	if e.board.FilledCount() != 0 {
		t.Errorf("soft drop must not lock, board has %d cells", e.board.FilledCount())
	}

	if res := e.Tick(); !res.Locked {
		t.Errorf("tick should lock the resting piece, got %+v", res)
	}
}

func TestHardDropRestsOnStack(t *testing.T) {
	for _, kind := range []ShapeKind{ShapeSquare, ShapeLine, ShapeS, ShapeZ, ShapeT, ShapeL, ShapeJ} {
		t.Run(kind.String(), func(t *testing.T) {
			e := newTestEngine(t, kind)
			e.Start()
			for r := 12; r < 20; r++ {
				e.board.Occupy(r, 5)
			}
			e.board.Occupy(15, 4)

			e.HardDrop()
			p, _ := e.Piece()
			if !WouldCollide(e.board, p, 1, 0) {
				t.Error("after hard drop the piece must not be able to fall further")
			}
			if WouldCollide(e.board, p, 0, 0) {
				t.Error("hard drop left the piece overlapping the board")
			}
			if e.board.FilledCount() != 9 {
				t.Error("hard drop must not lock")
			}
		})
	}
}

func TestHorizontalMovesStopAtWalls(t *testing.T) {
	e := newTestEngine(t, ShapeLine)
	e.Start()

	// Line spans cols -1..+2 around the anchor at col 5.
	moves := 0
	for e.MoveRight() {
		moves++
	}
	if moves != 2 {
		t.Errorf("expected 2 right moves, got %d", moves)
	}

	moves = 0
	for e.MoveLeft() {
		moves++
	}
	if moves != 6 {
		t.Errorf("expected 6 left moves, got %d", moves)
	}
	p, _ := e.Piece()
	if p.Row != 0 {
		t.Errorf("horizontal moves changed the row to %d", p.Row)
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)

	var events []GameOverEvent
	e.OnGameOver(func(ev GameOverEvent) {
		events = append(events, ev)
	})

	e.Start()
	e.score = 300
	e.board.Occupy(0, 5)

	if e.spawn() {
		t.Fatal("spawn over an occupied top-center cell should fail")
	}
	if !e.GameOver() || e.State() != StateGameOver {
		t.Fatalf("expected game over, got %v", e.State())
	}
	if e.Score() != 300 {
		t.Errorf("score changed on game over: %d", e.Score())
	}
	if _, ok := e.PieceCells(); ok {
		t.Error("no piece should exist after a failed spawn")
	}
	if len(events) != 1 || events[0].FinalScore != 300 {
		t.Errorf("expected one game over event with score 300, got %+v", events)
	}
}

func TestTickReportsGameOver(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)
	e.Start()

	// A block at row 3 stops the square after one row, so it locks across
	// rows 1-2 and the next spawn overlaps it.
	e.board.Occupy(3, 5)
	res := e.Tick()
	if !res.Moved {
		t.Fatalf("first tick should move, got %+v", res)
	}
	res = e.Tick()
	if !res.Locked || !res.GameOver || res.Spawned {
		t.Fatalf("expected lock then game over, got %+v", res)
	}
	if res.FinalScore != 0 {
		t.Errorf("expected final score 0, got %d", res.FinalScore)
	}
}

func TestGameOverIgnoresIntents(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)
	e.Start()
	e.board.Occupy(0, 5)
	e.spawn()

	before := e.Board()
	if e.MoveLeft() || e.MoveRight() || e.SoftDrop() || e.HardDrop() != 0 {
		t.Error("intents after game over should be no-ops")
	}
	if res := e.Tick(); res != (TickResult{}) {
		t.Errorf("tick after game over should do nothing, got %+v", res)
	}
	after := e.Board()
	for r := range before {
		for c := range before[r] {
			if before[r][c] != after[r][c] {
				t.Fatalf("board changed at (%d, %d) after game over", r, c)
			}
		}
	}

	if !e.Start() {
		t.Fatal("start after game over should begin a new game")
	}
	if e.board.FilledCount() != 0 || e.Score() != 0 {
		t.Error("start should clear the board and score")
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, ShapeT)
	e.Start()
	e.board.Occupy(19, 0)
	e.score = 500
	e.lines = 5

	e.Reset()
	if e.State() != StateIdle || e.Score() != 0 || e.Lines() != 0 {
		t.Errorf("reset left state=%v score=%d lines=%d", e.State(), e.Score(), e.Lines())
	}
	if e.board.FilledCount() != 0 {
		t.Error("reset should clear the board")
	}
	if _, ok := e.Piece(); ok {
		t.Error("reset should drop the active piece")
	}
}

func TestCustomLinePoints(t *testing.T) {
	e, err := New(Options{Rows: 4, Cols: 5, LinePoints: 40, Rand: &seqRand{idx: []int{0}}})
	if err != nil {
		t.Fatal(err)
	}
	fillBoardRow(e.board, 3)
	fillBoardRow(e.board, 2)
	e.clearRows()
	if e.Score() != 80 {
		t.Errorf("expected 80, got %d", e.Score())
	}
}

func TestEngineDeterminism(t *testing.T) {
	run := func() ([][]bool, int, int) {
		e, err := New(Options{Rows: 20, Cols: 10, Rand: rand.New(rand.NewSource(12345))})
		if err != nil {
			t.Fatal(err)
		}
		e.Start()
		for i := range 600 {
			switch i % 7 {
			case 1:
				e.MoveLeft()
			case 3:
				e.MoveRight()
				e.MoveRight()
			case 5:
				e.HardDrop()
			}
			e.Tick()
		}
		return e.Board(), e.Score(), int(e.State())
	}

	b1, s1, st1 := run()
	b2, s2, st2 := run()
	if s1 != s2 || st1 != st2 {
		t.Fatalf("runs diverged: score %d vs %d, state %d vs %d", s1, s2, st1, st2)
	}
	for r := range b1 {
		for c := range b1[r] {
			if b1[r][c] != b2[r][c] {
				t.Fatalf("boards diverged at (%d, %d)", r, c)
			}
		}
	}
}
