package clock

import "time"

// FrameCounter counts frames over a fixed update interval. Unlike FrameClock's
// smoothed estimate it reports how many frames actually completed per second.
type FrameCounter struct {
	src            TimeSource
	UpdateInterval time.Duration

	fps        float64
	frametime  time.Duration
	frameCount int
	lastCount  time.Time
	lastUpdate time.Time
}

// NewFrameCounter creates a counter that refreshes its reading every updateInterval.
func NewFrameCounter(src TimeSource, updateInterval time.Duration) *FrameCounter {
	if src == nil {
		src = SystemTime
	}
	now := src.Now()
	return &FrameCounter{
		src:            src,
		UpdateInterval: updateInterval,
		lastCount:      now,
		lastUpdate:     now,
	}
}

func (fc *FrameCounter) update() {
	fc.frameCount++
	now := fc.src.Now()

	elapsed := now.Sub(fc.lastUpdate)
	if elapsed >= fc.UpdateInterval && elapsed > 0 {
		fc.fps = float64(fc.frameCount) / elapsed.Seconds()
		fc.frametime = now.Sub(fc.lastCount)
		fc.frameCount = 0
		fc.lastUpdate = now
	}

	fc.lastCount = now
}

// Count records one frame and returns the latest reading.
func (fc *FrameCounter) Count() (fps float64, frametime time.Duration) {
	fc.update()
	return fc.fps, fc.frametime
}

// FPS returns the latest reading without recording a frame.
func (fc *FrameCounter) FPS() float64 {
	return fc.fps
}
