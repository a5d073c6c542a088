// Package racecore drives one race attempt through its phases: a wall-clock
// anchored countdown, racing with an accumulated lap timer, a hold after the
// finish, and the end of the session.
//
// A Session is single-owner. The driving loop calls Tick (or Advance) once per
// frame from one goroutine; no method is safe for concurrent use.
package racecore

import (
	"fmt"
	"math"
	"time"

	"github.com/comalice/racecore/clock"
)

// OverlayKind says what the start overlay shows this tick.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayLight
	OverlayGo
)

// Overlay is the start indicator to draw: a countdown light or the GO prompt.
type Overlay struct {
	Kind  OverlayKind
	Light int // countdown value shown, set for OverlayLight
}

// State is a copy of the session's timers and flags.
type State struct {
	Phase                 Phase     `json:"phase" yaml:"phase"`
	Countdown             int       `json:"countdown" yaml:"countdown"`
	CountdownDeadline     time.Time `json:"countdownDeadline" yaml:"countdown_deadline"`
	LapTime               float64   `json:"lapTime" yaml:"lap_time"`
	GoPromptElapsed       float64   `json:"goPromptElapsed" yaml:"go_prompt_elapsed"`
	GoPromptShown         bool      `json:"goPromptShown" yaml:"go_prompt_shown"`
	CompletionHoldElapsed float64   `json:"completionHoldElapsed" yaml:"completion_hold_elapsed"`
	RaceComplete          bool      `json:"raceComplete" yaml:"race_complete"`
}

// Option configures a Session.
type Option func(*Session)

// WithHooks installs the cue hooks.
func WithHooks(h Hooks) Option {
	return func(s *Session) {
		if h != nil {
			s.hooks = h
		}
	}
}

// Session is one race attempt.
type Session struct {
	clk   *clock.FrameClock
	cfg   Config
	hooks Hooks

	phase             Phase
	countdown         int
	countdownDeadline time.Time
	lapTime           float64
	goPromptElapsed   float64
	goPromptShown     bool
	completionHold    float64
	raceComplete      bool
	overlay           Overlay

	now time.Time // sample for the tick being processed
}

// NewSession creates a session paced by clk. The session starts in the reset state
// without firing any hook; call Reset to begin an attempt.
func NewSession(clk *clock.FrameClock, cfg Config, opts ...Option) (*Session, error) {
	if clk == nil {
		return nil, fmt.Errorf("%w: nil frame clock", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		clk:   clk,
		cfg:   cfg,
		hooks: HookFuncs{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.init(clk.Now())
	return s, nil
}

func (s *Session) init(now time.Time) {
	s.phase = PhaseCountdown
	s.countdown = s.cfg.CountdownFrom
	s.countdownDeadline = now
	s.lapTime = 0
	s.goPromptElapsed = 0
	s.goPromptShown = false
	s.completionHold = 0
	s.raceComplete = false
	s.now = now
	s.overlay = Overlay{}
	if s.countdown > 0 {
		s.overlay = Overlay{Kind: OverlayLight, Light: s.countdown}
	}
}

// Reset starts a fresh attempt: Countdown(from) with all timers zeroed, and fires
// the initial countdown cue. A zero countdown moves straight to racing.
func (s *Session) Reset() {
	s.init(s.clk.Now())
	s.hooks.OnCountdownTick(s.countdown)
	s.settle()
}

// Tick advances the frame clock (blocking for the pacing delay when capped) and
// feeds the elapsed time to Advance.
func (s *Session) Tick(raceComplete bool) (Status, error) {
	dt := s.clk.Advance()
	return s.AdvanceAt(s.clk.Now(), dt, raceComplete)
}

// Advance applies one tick of dt seconds, sampling the clock for the countdown.
func (s *Session) Advance(dt float64, raceComplete bool) (Status, error) {
	return s.AdvanceAt(s.clk.Now(), dt, raceComplete)
}

// AdvanceAt applies one tick of dt seconds observed at now.
//
// The countdown is paced by now against its deadline, not by dt. Lap time and
// the completion hold accumulate dt only once racing started, and the lap timer
// keeps running through the hold. A raceComplete signal is ignored during the
// countdown and latched afterwards. After the session ended, AdvanceAt is a no-op.
func (s *Session) AdvanceAt(now time.Time, dt float64, raceComplete bool) (Status, error) {
	if math.IsNaN(dt) || dt < 0 {
		return s.Status(), fmt.Errorf("%w: dt %v must be >= 0", ErrInvalidInput, dt)
	}
	if s.phase == PhaseEnded {
		return StatusEnded, nil
	}

	s.now = now
	if s.phase != PhaseCountdown {
		s.lapTime += dt
		if raceComplete {
			s.raceComplete = true
		}
		if s.raceComplete {
			s.completionHold += dt
		}
	}

	s.settle()
	s.updateOverlay(dt)
	return s.Status(), nil
}

// updateOverlay picks the start indicator and runs the GO prompt sub-timer.
func (s *Session) updateOverlay(dt float64) {
	s.overlay = Overlay{}
	switch s.phase {
	case PhaseCountdown:
		if s.countdown > 0 {
			s.overlay = Overlay{Kind: OverlayLight, Light: s.countdown}
		}
	case PhaseRacing, PhaseCompleting:
		if s.goPromptElapsed < s.cfg.GoPrompt.Seconds() {
			if !s.goPromptShown {
				s.goPromptShown = true
				s.hooks.OnGoPromptShown()
			}
			s.goPromptElapsed += dt
			s.overlay = Overlay{Kind: OverlayGo}
		}
	}
}

// Status reports whether the session is still active.
func (s *Session) Status() Status {
	if s.phase == PhaseEnded {
		return StatusEnded
	}
	return StatusActive
}

func (s *Session) Phase() Phase            { return s.phase }
func (s *Session) Countdown() int          { return s.countdown }
func (s *Session) LapTime() float64        { return s.lapTime }
func (s *Session) RaceComplete() bool      { return s.raceComplete }
func (s *Session) Overlay() Overlay        { return s.overlay }
func (s *Session) Config() Config          { return s.cfg }
func (s *Session) Clock() *clock.FrameClock { return s.clk }

// Snapshot returns a copy of the session's state.
func (s *Session) Snapshot() State {
	return State{
		Phase:                 s.phase,
		Countdown:             s.countdown,
		CountdownDeadline:     s.countdownDeadline,
		LapTime:               s.lapTime,
		GoPromptElapsed:       s.goPromptElapsed,
		GoPromptShown:         s.goPromptShown,
		CompletionHoldElapsed: s.completionHold,
		RaceComplete:          s.raceComplete,
	}
}
