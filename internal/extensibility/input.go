package extensibility

import "github.com/comalice/racecore"

// ScriptedInput replays a fixed sequence of action snapshots, one per poll.
// Once the script runs out the last snapshot is repeated; an empty script
// yields all-released snapshots.
type ScriptedInput struct {
	script []racecore.Actions
	pos    int
}

// NewScriptedInput creates an input replaying script.
func NewScriptedInput(script ...racecore.Actions) *ScriptedInput {
	return &ScriptedInput{script: script}
}

// HoldInput returns an input that holds the given actions on every poll.
func HoldInput(held ...racecore.Action) *ScriptedInput {
	a := racecore.NewActions()
	for _, action := range held {
		a.Set(action, true)
	}
	return NewScriptedInput(a)
}

// Poll returns a copy of the next snapshot.
func (in *ScriptedInput) Poll() racecore.Actions {
	if len(in.script) == 0 {
		return racecore.NewActions()
	}
	a := in.script[min(in.pos, len(in.script)-1)]
	if in.pos < len(in.script) {
		in.pos++
	}
	return a.Clone()
}

// Polls returns how many snapshots have been consumed from the script.
func (in *ScriptedInput) Polls() int {
	return in.pos
}
