package racecore

import "fmt"

// Phase is the stage of a race attempt.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseRacing
	PhaseCompleting
	PhaseEnded
)

var phaseNames = [...]string{
	PhaseCountdown:  "countdown",
	PhaseRacing:     "racing",
	PhaseCompleting: "completing",
	PhaseEnded:      "ended",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Status tells the driving loop whether to keep ticking.
type Status int

const (
	StatusActive Status = iota
	StatusEnded
)

func (s Status) String() string {
	if s == StatusEnded {
		return "ended"
	}
	return "active"
}

// transition is an eventless transition between phases. A transition whose source
// and target match is internal: its action runs but no phase change is reported.
type transition struct {
	from   Phase
	to     Phase
	label  string
	guard  func(s *Session) bool
	action func(s *Session)
}

// Table order matters: the first transition out of the current phase whose guard
// passes is taken, then the table is consulted again from the new phase.
var transitions = []*transition{
	{from: PhaseCountdown, to: PhaseRacing, label: "countdown done", guard: countdownDone},
	{from: PhaseCountdown, to: PhaseCountdown, label: "deadline passed", guard: countdownDue, action: decrementCountdown},
	{from: PhaseRacing, to: PhaseCompleting, label: "race complete", guard: completionSignaled},
	{from: PhaseCompleting, to: PhaseEnded, label: "hold expired", guard: holdExpired},
}

func countdownDone(s *Session) bool {
	return s.countdown == 0
}

func countdownDue(s *Session) bool {
	return s.countdown > 0 && s.now.Sub(s.countdownDeadline) > s.cfg.CountdownInterval
}

func decrementCountdown(s *Session) {
	s.countdownDeadline = s.now
	s.countdown--
	s.hooks.OnCountdownTick(s.countdown)
}

func completionSignaled(s *Session) bool {
	return s.raceComplete
}

func holdExpired(s *Session) bool {
	return s.completionHold > s.cfg.CompletionHold.Seconds()
}

// TransitionInfo describes one row of the phase transition table.
type TransitionInfo struct {
	From  Phase
	To    Phase
	Label string
}

// Transitions lists the phase transition table in evaluation order.
func Transitions() []TransitionInfo {
	out := make([]TransitionInfo, 0, len(transitions))
	for _, t := range transitions {
		out = append(out, TransitionInfo{From: t.from, To: t.to, Label: t.label})
	}
	return out
}

// pickTransition grabs the first transition out of phase whose guard passes.
func (s *Session) pickTransition() *transition {
	for _, t := range transitions {
		if t.from != s.phase {
			continue
		}
		if t.guard != nil && !t.guard(s) {
			continue
		}
		return t
	}
	return nil
}

// settle takes eventless transitions until none applies. Every guard is
// falsified by its own transition, so the loop is bounded by the table size.
func (s *Session) settle() {
	for range len(transitions) + 1 {
		t := s.pickTransition()
		if t == nil {
			return
		}
		if t.action != nil {
			t.action(s)
		}
		if t.to != t.from {
			from := s.phase
			s.phase = t.to
			s.hooks.OnPhaseChange(from, t.to)
		}
	}
}
