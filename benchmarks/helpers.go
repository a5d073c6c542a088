// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"time"

	"github.com/comalice/racecore"
	"github.com/comalice/racecore/clock"
	"github.com/comalice/racecore/testutil"
)

// FrameStep is the simulated work per frame, roughly 60 FPS.
const FrameStep = 16 * time.Millisecond

// NewFakeClock returns an uncapped clock on fake time.
func NewFakeClock(historySize int) (*clock.FrameClock, *testutil.FakeTime) {
	ft := testutil.NewFakeTime(testutil.Epoch)
	clk, err := clock.New(0, clock.WithTimeSource(ft), clock.WithHistorySize(historySize))
	if err != nil {
		panic(err)
	}
	return clk, ft
}

// NewRacingSession returns a session already past its countdown.
func NewRacingSession() (*racecore.Session, *testutil.FakeTime) {
	cfg := racecore.DefaultConfig()
	cfg.CountdownFrom = 0
	clk, ft := NewFakeClock(cfg.HistorySize)
	s, err := racecore.NewSession(clk, cfg)
	if err != nil {
		panic(err)
	}
	s.Reset()
	return s, ft
}

// SampleResult returns a populated result with the given id.
func SampleResult(id string) racecore.RaceResult {
	return racecore.RaceResult{
		ID:            id,
		StartedAt:     testutil.Epoch,
		EndedAt:       testutil.Epoch.Add(12 * time.Second),
		Outcome:       racecore.OutcomeFinished,
		LapTime:       8.5,
		Completed:     true,
		Ticks:         720,
		SmoothedFPS:   59.9,
		MeasuredFPS:   60,
		ConfigVersion: racecore.DefaultConfig().Version(),
	}
}
