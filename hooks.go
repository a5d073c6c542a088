package racecore

// Hooks receives the session's audio/visual cues. Implementations run inline on
// the loop goroutine and should return quickly.
type Hooks interface {
	// OnCountdownTick fires on Reset with the starting value and on every
	// decrement, including the one that reaches 0.
	OnCountdownTick(remaining int)
	// OnGoPromptShown fires once per attempt, on the first tick the GO prompt is shown.
	OnGoPromptShown()
	// OnPhaseChange fires on every phase change.
	OnPhaseChange(from, to Phase)
}

// HookFuncs adapts optional functions to Hooks. Nil fields are skipped, so the
// zero value is a no-op.
type HookFuncs struct {
	CountdownTick func(remaining int)
	GoPromptShown func()
	PhaseChange   func(from, to Phase)
}

func (h HookFuncs) OnCountdownTick(remaining int) {
	if h.CountdownTick != nil {
		h.CountdownTick(remaining)
	}
}

func (h HookFuncs) OnGoPromptShown() {
	if h.GoPromptShown != nil {
		h.GoPromptShown()
	}
}

func (h HookFuncs) OnPhaseChange(from, to Phase) {
	if h.PhaseChange != nil {
		h.PhaseChange(from, to)
	}
}

type multiHooks []Hooks

// MultiHooks fans every cue out to hooks in order. Nil entries are dropped.
func MultiHooks(hooks ...Hooks) Hooks {
	var m multiHooks
	for _, h := range hooks {
		if h != nil {
			m = append(m, h)
		}
	}
	return m
}

func (m multiHooks) OnCountdownTick(remaining int) {
	for _, h := range m {
		h.OnCountdownTick(remaining)
	}
}

func (m multiHooks) OnGoPromptShown() {
	for _, h := range m {
		h.OnGoPromptShown()
	}
}

func (m multiHooks) OnPhaseChange(from, to Phase) {
	for _, h := range m {
		h.OnPhaseChange(from, to)
	}
}
