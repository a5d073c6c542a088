// Package clock paces a frame loop to a maximum rate and measures the real time
// that passes between frames.
//
// A FrameClock is single-owner: the driving loop calls Advance once per frame and
// nothing else touches it concurrently.
//
// # Pacing
//
// When a cap is set, Advance blocks the calling goroutine for
// max(1/cap - elapsed, 0). The baseline for the next frame is the timestamp sampled
// before that delay, so the returned elapsed of the next frame includes the stall.
// Every instantaneous rate sample is 1/(delay+elapsed), and delay+elapsed is never
// shorter than 1/cap, so no sample exceeds the cap.
//
// The real frame timeline differs from the samples. With w seconds of work per
// frame, a capped loop alternates between a stall of 1/cap - w and no stall at
// all, because the stall is counted again as the next frame's elapsed. Real frames
// run at about 2/(1/cap + w) per second while the samples read the cap.
package clock

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/comalice/racecore/internal/primitives"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrNoSamples     = errors.New("no rate samples")
)

// DefaultHistorySize is the number of instantaneous rate samples averaged by SmoothedRate.
const DefaultHistorySize = 50

// TimeSource supplies monotonic time and the blocking pacing delay.
type TimeSource interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemTime is the default TimeSource backed by the time package.
// time.Now carries a monotonic reading, so Sub is immune to wall clock jumps.
var SystemTime TimeSource = systemTime{}

type systemTime struct{}

func (systemTime) Now() time.Time        { return time.Now() }
func (systemTime) Sleep(d time.Duration) { time.Sleep(d) }

// Option configures a FrameClock.
type Option func(*FrameClock)

// WithTimeSource replaces the system time source.
func WithTimeSource(src TimeSource) Option {
	return func(c *FrameClock) {
		c.src = src
	}
}

// WithHistorySize sets how many rate samples SmoothedRate averages.
func WithHistorySize(n int) Option {
	return func(c *FrameClock) {
		c.historySize = n
	}
}

// FrameClock caps a loop's tick rate and reports a smoothed rate estimate.
type FrameClock struct {
	src         TimeSource
	last        time.Time
	capHz       float64
	interval    float64 // seconds, 0 when uncapped
	historySize int
	history     *primitives.Ring[float64]
	rate        float64
	delay       float64
}

// New creates a FrameClock capped at capHz ticks per second. A capHz of 0 disables
// the cap. The first Advance measures from construction time.
func New(capHz float64, opts ...Option) (*FrameClock, error) {
	c := &FrameClock{
		src:         SystemTime,
		historySize: DefaultHistorySize,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.src == nil {
		return nil, fmt.Errorf("%w: nil time source", ErrInvalidConfig)
	}
	if c.historySize < 1 {
		return nil, fmt.Errorf("%w: history size %d must be at least 1", ErrInvalidConfig, c.historySize)
	}
	if err := c.SetCap(capHz); err != nil {
		return nil, err
	}

	c.history = primitives.NewRing[float64](c.historySize)
	c.last = c.src.Now()
	return c, nil
}

// SetCap changes the rate cap. It takes effect on the next Advance.
func (c *FrameClock) SetCap(capHz float64) error {
	if math.IsNaN(capHz) || math.IsInf(capHz, 0) || capHz < 0 {
		return fmt.Errorf("%w: cap %v must be a finite value >= 0", ErrInvalidConfig, capHz)
	}
	c.capHz = capHz
	c.interval = 0
	if capHz > 0 {
		c.interval = 1 / capHz
	}
	return nil
}

// Advance samples the time source, blocks for the pacing delay when capped, records
// an instantaneous rate sample, and returns the seconds elapsed since the previous call.
func (c *FrameClock) Advance() float64 {
	now := c.src.Now()
	elapsed := now.Sub(c.last).Seconds()

	var delay float64
	if c.interval > 0 {
		delay = max(c.interval-elapsed, 0)
		if delay > 0 {
			c.src.Sleep(seconds(delay))
		}
	}

	// Baseline is the pre-delay sample.
	c.last = now
	c.delay = delay

	if elapsed > 0 {
		c.rate = 1 / (delay + elapsed)
		c.history.Push(c.rate)
	}

	return elapsed
}

// Rate returns the most recent instantaneous rate, 0 before the first sample.
func (c *FrameClock) Rate() float64 {
	return c.rate
}

// SmoothedRate returns the mean of the retained rate samples.
// It returns ErrNoSamples until a tick with nonzero elapsed time has been observed.
func (c *FrameClock) SmoothedRate() (float64, error) {
	mean, ok := primitives.Mean(c.history.Values())
	if !ok {
		return 0, ErrNoSamples
	}
	return mean, nil
}

// Samples returns the retained rate samples, oldest first.
func (c *FrameClock) Samples() []float64 {
	return c.history.Values()
}

// LastDelay returns the pacing delay applied by the most recent Advance.
func (c *FrameClock) LastDelay() time.Duration {
	return seconds(c.delay)
}

// Cap returns the configured cap, 0 when uncapped.
func (c *FrameClock) Cap() float64 {
	return c.capHz
}

// Now samples the clock's time source without advancing it.
func (c *FrameClock) Now() time.Time {
	return c.src.Now()
}

// Source returns the clock's time source.
func (c *FrameClock) Source() TimeSource {
	return c.src
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
