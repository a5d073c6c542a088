package realtime

import (
	"fmt"

	"github.com/comalice/racecore"
)

// processTick runs one frame. A panic in a collaborator is returned as ErrTickPanic.
func (l *Loop) processTick() (status racecore.Status, quit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: tick %d: %v", ErrTickPanic, l.tickNum, r)
		}
	}()

	// Phase 1: pace and measure
	dt := l.clk.Advance()
	now := l.clk.Now()
	l.counter.Count()

	// Phase 2: input
	var actions racecore.Actions
	if l.input != nil {
		actions = l.input.Poll()
	}
	if actions.Get(racecore.ActionQuit) {
		return l.session.Status(), true, nil
	}

	// Phase 3: world, only once the countdown is over
	complete := false
	if l.track != nil && l.session.Phase() != racecore.PhaseCountdown {
		complete = l.track.Update(dt, actions)
	}

	// Phase 4: session
	status, err = l.session.AdvanceAt(now, dt, complete)
	if err != nil {
		return status, false, err
	}

	// Phase 5: draw
	if l.renderer != nil {
		rate, rateErr := l.clk.SmoothedRate()
		l.renderer.Render(Frame{
			Tick:    l.tickNum,
			Phase:   l.session.Phase(),
			Overlay: l.session.Overlay(),
			LapTime: l.session.LapTime(),
			Rate:    rate,
			Caption: racecore.Caption(l.title, rate, rateErr),
		})
	}
	return status, false, nil
}
