package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks"
)

func newGame(t *testing.T) *blocks.Game {
	t.Helper()
	g, err := blocks.New(config.DefaultBlocksConfig())
	require.NoError(t, err)
	return g
}

// playSession drives a game with a scripted input stream while recording it.
func playSession(t *testing.T, seed int64, steps int) (*blocks.Game, Recording) {
	t.Helper()
	rt := core.RuntimeConfig{Seed: seed, TickRate: 60, ScreenW: 80, ScreenH: 24}
	g := newGame(t)
	g.Reset(rt)
	rec := NewRecorder(g.ID(), g.Config(), rt)

	input := core.NewInputFrame()
	for i := range steps {
		input.Clear()
		switch {
		case i == 0:
			input.Set(core.ActionStart)
		case i%40 == 0:
			input.Set(core.ActionHardDrop)
		case i%9 == 0:
			input.Set(core.ActionLeft)
			input.Set(core.ActionSoftDrop)
		case i%4 == 0:
			input.Set(core.ActionRight)
		}
		rec.Record(input)
		g.Step(input)
	}
	return g, rec.Finish(g.State())
}

func TestRecorderSkipsEmptyFrames(t *testing.T) {
	rec := NewRecorder(blocks.ID, config.DefaultBlocksConfig(), core.RuntimeConfig{Seed: 1, TickRate: 60})

	rec.Record(core.FrameOf(core.ActionStart))
	rec.Record(core.NewInputFrame())
	rec.Record(core.NewInputFrame())
	rec.Record(core.FrameOf(core.ActionRight, core.ActionLeft))

	out := rec.Finish(core.GameState{Score: 300, Lines: 3})
	assert.Equal(t, uint64(4), out.Steps)
	assert.Equal(t, []Event{
		{Step: 1, Actions: []core.Action{core.ActionStart}},
		{Step: 4, Actions: []core.Action{core.ActionLeft, core.ActionRight}},
	}, out.Events)
	assert.Equal(t, 300, out.FinalScore)
	assert.Equal(t, 3, out.Lines)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, rec.ID(), out.ID)
}

func TestFinishReturnsIndependentCopy(t *testing.T) {
	rec := NewRecorder(blocks.ID, config.DefaultBlocksConfig(), core.RuntimeConfig{Seed: 1})
	rec.Record(core.FrameOf(core.ActionStart))
	first := rec.Finish(core.GameState{})

	rec.Record(core.FrameOf(core.ActionLeft))
	assert.Len(t, first.Events, 1)
	assert.Len(t, rec.Finish(core.GameState{}).Events, 2)
}

func TestPlayReproducesSession(t *testing.T) {
	original, rec := playSession(t, 2024, 4000)

	g := newGame(t)
	state, err := Play(g, rec)
	require.NoError(t, err)

	assert.Equal(t, original.State(), state)
	assert.Equal(t, original.Snapshot().Board, g.Snapshot().Board)
	assert.Equal(t, original.Snapshot().Tick, g.Snapshot().Tick)
}

func TestVerify(t *testing.T) {
	_, rec := playSession(t, 77, 2500)

	_, err := Verify(newGame(t), rec)
	require.NoError(t, err)

	rec.FinalScore += 100
	_, err = Verify(newGame(t), rec)
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestPlayRejectsBadEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		steps  uint64
	}{
		{
			name: "out of order",
			events: []Event{
				{Step: 5, Actions: []core.Action{core.ActionStart}},
				{Step: 3, Actions: []core.Action{core.ActionLeft}},
			},
			steps: 10,
		},
		{
			name:   "past the end",
			events: []Event{{Step: 11, Actions: []core.Action{core.ActionStart}}},
			steps:  10,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := Recording{Seed: 1, TickRate: 60, Events: tc.events, Steps: tc.steps}
			_, err := Play(newGame(t), rec)
			assert.Error(t, err)
		})
	}
}
