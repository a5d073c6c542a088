package benchmarks

import (
	"context"
	"testing"

	"github.com/comalice/racecore"
	"github.com/comalice/racecore/clock"
	"github.com/comalice/racecore/realtime"
)

func BenchmarkSessionAdvance(b *testing.B) {
	s, ft := NewRacingSession()
	b.ReportAllocs()
	for b.Loop() {
		ft.Advance(FrameStep)
		if _, err := s.Advance(FrameStep.Seconds(), false); err != nil {
			b.Fatal(err)
		}
	}
}

type stepInput struct{ advance func() }

func (in stepInput) Poll() racecore.Actions {
	in.advance()
	return nil
}

// BenchmarkLoopTicks measures whole frames through the loop: clock, input,
// session and event publishing.
func BenchmarkLoopTicks(b *testing.B) {
	clk, ft := NewFakeClock(clock.DefaultHistorySize)
	loop, err := realtime.NewLoop(clk, racecore.DefaultConfig(),
		realtime.WithInput(stepInput{advance: func() { ft.Advance(FrameStep) }}),
		realtime.WithMaxTicks(1000),
	)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := loop.Run(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportMetric(1000, "ticks/op")
}
