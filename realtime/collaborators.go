package realtime

import "github.com/comalice/racecore"

// Track is the world simulation. Update is called once per tick after the
// countdown is over and reports whether the race has been completed.
type Track interface {
	Update(dt float64, actions racecore.Actions) (complete bool)
}

// Input supplies the snapshot of held actions for the coming tick.
type Input interface {
	Poll() racecore.Actions
}

// Frame is what a renderer draws for one tick.
type Frame struct {
	Tick    uint64
	Phase   racecore.Phase
	Overlay racecore.Overlay
	LapTime float64
	Rate    float64 // smoothed, 0 until the first sample
	Caption string
}

// Renderer draws a frame.
type Renderer interface {
	Render(f Frame)
}

// Publisher receives the events raised by a tick.
type Publisher interface {
	Publish(ev Event) error
}
