// Package replay records the inputs of a play session and re-runs them
// headlessly. Games are deterministic for a given seed and input stream, so a
// recording is just the seed, the configuration and the non-empty input frames.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

// ErrMismatch is returned by Verify when a replay does not reproduce the
// recorded outcome.
var ErrMismatch = errors.New("replay: outcome mismatch")

// Event is the set of actions pressed on one simulation step.
type Event struct {
	Step    uint64 // 1-based step index
	Actions []core.Action
}

// Recording is a complete, replayable session.
type Recording struct {
	ID         string
	GameID     string
	Seed       int64
	TickRate   int
	Config     config.BlocksConfig
	Events     []Event // Only steps with at least one action, in step order
	Steps      uint64  // Total steps simulated
	FinalScore int
	Lines      int
	StartedAt  time.Time
	EndedAt    time.Time
}

// Recorder captures input frames as they are fed to a game.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording with a fresh id.
func NewRecorder(gameID string, cfg config.BlocksConfig, rt core.RuntimeConfig) *Recorder {
	return &Recorder{
		rec: Recording{
			ID:        uuid.NewString(),
			GameID:    gameID,
			Seed:      rt.Seed,
			TickRate:  rt.TickRate,
			Config:    cfg,
			StartedAt: time.Now().UTC(),
		},
	}
}

// ID returns the recording id.
func (r *Recorder) ID() string {
	return r.rec.ID
}

// Record notes the frame for the next step. Call it once per Step, with the
// same frame, before or after stepping.
func (r *Recorder) Record(in core.InputFrame) {
	r.rec.Steps++
	if in.Empty() {
		return
	}
	r.rec.Events = append(r.rec.Events, Event{Step: r.rec.Steps, Actions: in.List()})
}

// Steps returns the number of steps recorded so far.
func (r *Recorder) Steps() uint64 {
	return r.rec.Steps
}

// Finish stamps the outcome and returns the recording. The recorder may keep
// recording afterwards; each Finish returns an independent copy.
func (r *Recorder) Finish(state core.GameState) Recording {
	r.rec.FinalScore = state.Score
	r.rec.Lines = state.Lines
	r.rec.EndedAt = time.Now().UTC()

	out := r.rec
	out.Events = make([]Event, len(r.rec.Events))
	copy(out.Events, r.rec.Events)
	return out
}

// Stepper is the part of a game needed to replay it.
type Stepper interface {
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	State() core.GameState
}

// Play resets the game with the recording's seed and feeds it every step.
// It returns the final game state.
func Play(g Stepper, rec Recording) (core.GameState, error) {
	g.Reset(core.RuntimeConfig{
		Seed:     rec.Seed,
		TickRate: rec.TickRate,
	})

	empty := core.NewInputFrame()
	next := 0
	for step := uint64(1); step <= rec.Steps; step++ {
		frame := empty
		if next < len(rec.Events) {
			ev := rec.Events[next]
			if ev.Step < step {
				return core.GameState{}, fmt.Errorf("replay: event %d at step %d is out of order", next, ev.Step)
			}
			if ev.Step == step {
				frame = core.FrameOf(ev.Actions...)
				next++
			}
		}
		g.Step(frame)
	}

	if next < len(rec.Events) {
		return core.GameState{}, fmt.Errorf("replay: event at step %d is past the last step %d", rec.Events[next].Step, rec.Steps)
	}
	return g.State(), nil
}

// Verify replays the recording and checks the score and cleared lines.
func Verify(g Stepper, rec Recording) (core.GameState, error) {
	state, err := Play(g, rec)
	if err != nil {
		return state, err
	}
	if state.Score != rec.FinalScore || state.Lines != rec.Lines {
		return state, fmt.Errorf("%w: recorded score %d (%d lines), replayed %d (%d lines)",
			ErrMismatch, rec.FinalScore, rec.Lines, state.Score, state.Lines)
	}
	return state, nil
}
