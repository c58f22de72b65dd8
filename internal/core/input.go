package core

import (
	"fmt"
	"sort"
	"strings"
)

// Action is a semantic player intent, independent of the physical key.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left, h - shift piece left
	ActionRight           // Right, l - shift piece right
	ActionSoftDrop        // Down, j - move piece down one row
	ActionHardDrop        // Space - drop piece until it rests
	ActionStart           // Enter - start a game from the title screen
	ActionRestart         // R - start over after game over
	ActionPause           // P - pause/unpause
	ActionHelp            // ? - toggle help
	ActionQuit            // Q, Ctrl+C - exit
)

var actionNames = map[Action]string{
	ActionNone:     "none",
	ActionLeft:     "left",
	ActionRight:    "right",
	ActionSoftDrop: "soft_drop",
	ActionHardDrop: "hard_drop",
	ActionStart:    "start",
	ActionRestart:  "restart",
	ActionPause:    "pause",
	ActionHelp:     "help",
	ActionQuit:     "quit",
}

// String returns the action's stable name, also used in recordings.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) (Action, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("core: unknown action %q", name)
}

// InputFrame holds every action triggered during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, set := range f.Actions {
		if set {
			return false
		}
	}
	return true
}

// List returns the triggered actions in ascending order.
func (f InputFrame) List() []Action {
	out := make([]Action, 0, len(f.Actions))
	for a, set := range f.Actions {
		if set {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	return FrameOf(f.List()...)
}
