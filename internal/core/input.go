package core

// Action represents a semantic spectator command, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionPause              // P - pause/unpause the simulation
	ActionRestart            // R - restart the match with the same roster
	ActionReset              // N - clear roster and arena, then start a fresh match
	ActionSpawnRock          // F - drop a falling rock
	ActionSpawnCar           // C - send in a runaway car
	ActionToggleDebug        // D - toggle collider overlays
	ActionResults            // Tab - show the results table
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionReset:
		return "Reset"
	case ActionSpawnRock:
		return "SpawnRock"
	case ActionSpawnCar:
		return "SpawnCar"
	case ActionToggleDebug:
		return "ToggleDebug"
	case ActionResults:
		return "Results"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two ticks.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Touches are arena-space points clicked this frame.
	Touches []Vec
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Touch records a click at an arena-space point.
func (f *InputFrame) Touch(p Vec) {
	f.Touches = append(f.Touches, p)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Touches = f.Touches[:0]
}
