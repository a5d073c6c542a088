// Package testutil provides deterministic collaborators for tests.
package testutil

import "time"

// FakeTime is a manually driven time source. Sleep advances the current time.
// Not safe for concurrent use.
type FakeTime struct {
	current time.Time
	sleeps  []time.Duration
}

// NewFakeTime returns a FakeTime starting at start.
func NewFakeTime(start time.Time) *FakeTime {
	return &FakeTime{current: start}
}

// Now returns the current fake time.
func (f *FakeTime) Now() time.Time { return f.current }

// Sleep records d and advances the clock by it.
func (f *FakeTime) Sleep(d time.Duration) {
	f.sleeps = append(f.sleeps, d)
	f.current = f.current.Add(d)
}

// Advance moves the clock forward by d without recording a sleep.
func (f *FakeTime) Advance(d time.Duration) { f.current = f.current.Add(d) }

// Set jumps the clock to t.
func (f *FakeTime) Set(t time.Time) { f.current = t }

// Sleeps returns every duration passed to Sleep, in call order.
func (f *FakeTime) Sleeps() []time.Duration {
	out := make([]time.Duration, len(f.sleeps))
	copy(out, f.sleeps)
	return out
}

// Epoch is a fixed start time for tests.
var Epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
