package extensibility

import "github.com/comalice/racecore"

// TimedTrack completes once the player has held accel for Target seconds.
// With AnyInput set every racing second counts, throttle or not.
type TimedTrack struct {
	Target   float64
	AnyInput bool

	driven float64
}

// NewTimedTrack returns a track that completes after target seconds of throttle.
func NewTimedTrack(target float64) *TimedTrack {
	return &TimedTrack{Target: target}
}

// Update accumulates dt while accel is held and reports completion.
func (t *TimedTrack) Update(dt float64, actions racecore.Actions) bool {
	if t.AnyInput || actions.Get(racecore.ActionAccel) {
		t.driven += dt
	}
	return t.driven >= t.Target
}

// Driven returns the counted seconds.
func (t *TimedTrack) Driven() float64 {
	return t.driven
}

// Reset clears the counted time.
func (t *TimedTrack) Reset() {
	t.driven = 0
}
