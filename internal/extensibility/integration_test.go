package extensibility

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/comalice/racecore"
	"github.com/comalice/racecore/clock"
	"github.com/comalice/racecore/realtime"
	"github.com/comalice/racecore/testutil"
)

func TestRaceWithCollaborators(t *testing.T) {
	ft := testutil.NewFakeTime(testutil.Epoch)
	cfg := racecore.DefaultConfig()
	cfg.CapHz = 20
	clk, err := cfg.NewClock(clock.WithTimeSource(ft))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	track := NewTimedTrack(0.5)
	renderer := NewLogRenderer(logger)

	loop, err := realtime.NewLoop(clk, cfg,
		realtime.WithTrack(track),
		realtime.WithInput(HoldInput(racecore.ActionAccel)),
		realtime.WithRenderer(renderer),
		realtime.WithHooks(NewLoggingHooks(nil, logger)),
		realtime.WithMaxTicks(10_000),
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := loop.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Outcome != racecore.OutcomeFinished {
		t.Fatalf("Outcome = %q after %d ticks, want finished", result.Outcome, result.Ticks)
	}
	if track.Driven() < 0.5 {
		t.Errorf("Driven() = %v, want >= 0.5", track.Driven())
	}
	if result.LapTime <= cfg.CompletionHold.Seconds() {
		t.Errorf("LapTime = %v, want more than the hold", result.LapTime)
	}
	if result.SmoothedFPS > cfg.CapHz+1e-9 {
		t.Errorf("SmoothedFPS = %v exceeds cap %v", result.SmoothedFPS, cfg.CapHz)
	}

	out := buf.String()
	for _, want := range []string{`"light":3`, `"light":1`, `GO!`, `"to":"ended"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s", want)
		}
	}
}
