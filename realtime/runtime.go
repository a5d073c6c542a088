package realtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/comalice/racecore"
	"github.com/comalice/racecore/clock"
)

// ErrTickPanic wraps a panic recovered while processing a tick.
var ErrTickPanic = errors.New("tick panicked")

// DefaultTitle prefixes the caption handed to the renderer.
const DefaultTitle = "Racing Game Demo"

// Option configures a Loop.
type Option func(*Loop)

// WithHooks adds cue hooks called alongside the loop's own event recording.
func WithHooks(h racecore.Hooks) Option {
	return func(l *Loop) { l.hooks = h }
}

// WithTrack sets the track. Without one the race never completes.
func WithTrack(t Track) Option {
	return func(l *Loop) { l.track = t }
}

// WithInput sets the input source. Without one no action is ever held.
func WithInput(in Input) Option {
	return func(l *Loop) { l.input = in }
}

// WithRenderer sets the renderer.
func WithRenderer(r Renderer) Option {
	return func(l *Loop) { l.renderer = r }
}

// WithPublisher sets where tick events go.
func WithPublisher(p Publisher) Option {
	return func(l *Loop) { l.publisher = p }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithMaxTicks stops Run after n ticks. 0 means no limit.
func WithMaxTicks(n uint64) Option {
	return func(l *Loop) { l.maxTicks = n }
}

// WithTitle sets the caption title.
func WithTitle(title string) Option {
	return func(l *Loop) { l.title = title }
}

// Loop runs race attempts on a frame clock.
type Loop struct {
	clk     *clock.FrameClock
	cfg     racecore.Config
	session *racecore.Session
	counter *clock.FrameCounter

	hooks     racecore.Hooks
	track     Track
	input     Input
	renderer  Renderer
	publisher Publisher
	logger    zerolog.Logger
	maxTicks  uint64
	title     string

	tickNum uint64
	seq     uint64
	pending []Event
}

// NewLoop creates a loop around clk. The session is configured from cfg.
func NewLoop(clk *clock.FrameClock, cfg racecore.Config, opts ...Option) (*Loop, error) {
	if clk == nil {
		return nil, fmt.Errorf("%w: nil frame clock", racecore.ErrInvalidConfig)
	}
	l := &Loop{
		clk:    clk,
		cfg:    cfg,
		logger: zerolog.Nop(),
		title:  DefaultTitle,
	}
	for _, opt := range opts {
		opt(l)
	}

	session, err := racecore.NewSession(clk, cfg, racecore.WithHooks(racecore.MultiHooks(recorder{l: l}, l.hooks)))
	if err != nil {
		return nil, err
	}
	l.session = session
	l.counter = clock.NewFrameCounter(clk.Source(), time.Second)
	return l, nil
}

// Run resets the session and ticks until it ends, the quit action is held, ctx is
// done, or the tick limit is hit. The returned result is filled in either way; on
// error its Outcome is empty.
func (l *Loop) Run(ctx context.Context) (racecore.RaceResult, error) {
	l.tickNum = 0
	l.pending = l.pending[:0]
	l.counter = clock.NewFrameCounter(l.clk.Source(), time.Second)

	result := racecore.RaceResult{
		ID:            ksuid.New().String(),
		StartedAt:     l.clk.Now(),
		ConfigVersion: l.cfg.Version(),
	}
	logger := l.logger.With().Str("race", result.ID).Logger()

	l.session.Reset()
	l.flush(logger)
	logger.Info().Float64("cap_hz", l.clk.Cap()).Int("countdown", l.session.Countdown()).Msg("race started")

	var outcome racecore.Outcome
	for outcome == "" {
		if ctx.Err() != nil {
			outcome = racecore.OutcomeCancelled
			break
		}
		if l.maxTicks > 0 && l.tickNum >= l.maxTicks {
			outcome = racecore.OutcomeTickLimit
			break
		}

		status, quit, err := l.processTick()
		l.flush(logger)
		if err != nil {
			logger.Error().Err(err).Uint64("tick", l.tickNum).Msg("tick failed")
			l.finish(&result, "")
			return result, err
		}
		l.tickNum++

		switch {
		case quit:
			outcome = racecore.OutcomeQuit
		case status == racecore.StatusEnded:
			outcome = racecore.OutcomeFinished
		}
	}

	l.finish(&result, outcome)
	logger.Info().
		Str("outcome", string(outcome)).
		Float64("lap_time", result.LapTime).
		Uint64("ticks", result.Ticks).
		Float64("fps", result.SmoothedFPS).
		Msg("race stopped")
	return result, nil
}

func (l *Loop) finish(result *racecore.RaceResult, outcome racecore.Outcome) {
	result.EndedAt = l.clk.Now()
	result.Outcome = outcome
	result.LapTime = l.session.LapTime()
	result.Completed = l.session.Phase() == racecore.PhaseEnded
	result.Ticks = l.tickNum
	if rate, err := l.clk.SmoothedRate(); err == nil {
		result.SmoothedFPS = rate
	}
	result.MeasuredFPS = l.counter.FPS()
}

// flush publishes the pending events in order.
func (l *Loop) flush(logger zerolog.Logger) {
	if len(l.pending) == 0 {
		return
	}
	sortEvents(l.pending)
	for _, ev := range l.pending {
		logger.Debug().
			Str("event", string(ev.Type)).
			Stringer("phase", ev.Phase).
			Int("countdown", ev.Countdown).
			Uint64("tick", ev.Tick).
			Msg("cue")
		if l.publisher == nil {
			continue
		}
		if err := l.publisher.Publish(ev); err != nil {
			logger.Warn().Err(err).Uint64("seq", ev.Seq).Msg("publish failed")
		}
	}
	l.pending = l.pending[:0]
}

// Session returns the loop's session.
func (l *Loop) Session() *racecore.Session {
	return l.session
}

// TickNumber returns the number of ticks processed by the current or last Run.
func (l *Loop) TickNumber() uint64 {
	return l.tickNum
}
