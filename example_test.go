package racecore_test

import (
	"fmt"
	"time"

	"github.com/comalice/racecore"
	"github.com/comalice/racecore/clock"
	"github.com/comalice/racecore/testutil"
)

func ExampleSession() {
	ft := testutil.NewFakeTime(testutil.Epoch)
	clk, _ := clock.New(0, clock.WithTimeSource(ft))
	session, _ := racecore.NewSession(clk, racecore.DefaultConfig(), racecore.WithHooks(racecore.HookFuncs{
		CountdownTick: func(n int) { fmt.Println("countdown", n) },
		PhaseChange:   func(from, to racecore.Phase) { fmt.Println(from, "->", to) },
	}))

	session.Reset()
	for range 3 {
		ft.Advance(1100 * time.Millisecond)
		session.Advance(1.1, false)
	}
	session.Advance(0.5, true)
	status, _ := session.Advance(3.0, false)
	fmt.Println(status, session.LapTime())
	// Output:
	// countdown 3
	// countdown 2
	// countdown 1
	// countdown 0
	// countdown -> racing
	// racing -> completing
	// completing -> ended
	// ended 3.5
}

func ExampleCaption() {
	fmt.Println(racecore.Caption("Racing Game Demo", 59.94, nil))
	fmt.Println(racecore.Caption("Racing Game Demo", 0, clock.ErrNoSamples))
	// Output:
	// Racing Game Demo: 59.94
	// Racing Game Demo: --
}
