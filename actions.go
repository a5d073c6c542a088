package racecore

// Action names one input the player can hold.
type Action string

const (
	ActionLeft  Action = "left"
	ActionRight Action = "right"
	ActionAccel Action = "accel"
	ActionBrake Action = "brake"
	ActionJump  Action = "jump"
	ActionStart Action = "start"
	ActionRun   Action = "run"
	ActionQuit  Action = "quit"
)

// AllActions lists every known action.
func AllActions() []Action {
	return []Action{ActionLeft, ActionRight, ActionAccel, ActionBrake, ActionJump, ActionStart, ActionRun, ActionQuit}
}

// Actions is the snapshot of currently held inputs for one tick.
// A nil Actions reads as all released.
type Actions map[Action]bool

// NewActions returns a snapshot with every known action released.
func NewActions() Actions {
	a := make(Actions, len(AllActions()))
	a.Reset()
	return a
}

// Get reports whether action is held.
func (a Actions) Get(action Action) bool {
	return a[action]
}

// Set marks action as held or released.
func (a Actions) Set(action Action, held bool) {
	a[action] = held
}

// Reset releases every known action.
func (a Actions) Reset() {
	for _, action := range AllActions() {
		a[action] = false
	}
}

// Clone returns an independent copy.
func (a Actions) Clone() Actions {
	out := make(Actions, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
