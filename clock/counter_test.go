package clock

import (
	"math"
	"testing"
	"time"

	"github.com/comalice/racecore/testutil"
)

func TestFrameCounter(t *testing.T) {
	ft := testutil.NewFakeTime(testutil.Epoch)
	fc := NewFrameCounter(ft, 100*time.Millisecond)

	var fps float64
	var frametime time.Duration
	for range 10 {
		ft.Advance(10 * time.Millisecond)
		fps, frametime = fc.Count()
	}
	if math.Abs(fps-100) > 1e-6 {
		t.Errorf("fps = %v, want 100", fps)
	}
	if frametime != 10*time.Millisecond {
		t.Errorf("frametime = %v, want 10ms", frametime)
	}
}

func TestFrameCounterHoldsBetweenUpdates(t *testing.T) {
	ft := testutil.NewFakeTime(testutil.Epoch)
	fc := NewFrameCounter(ft, time.Second)
	ft.Advance(10 * time.Millisecond)
	if fps, _ := fc.Count(); fps != 0 {
		t.Errorf("fps before first interval = %v, want 0", fps)
	}
	if fc.FPS() != 0 {
		t.Errorf("FPS() = %v, want 0", fc.FPS())
	}
}
