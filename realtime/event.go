package realtime

import (
	"slices"
	"time"

	"github.com/comalice/racecore"
)

// EventType names the cue an Event reports.
type EventType string

const (
	EventCountdown EventType = "countdown"
	EventGo        EventType = "go"
	EventPhase     EventType = "phase"
)

// Event is one hook firing, stamped with when it happened in the loop.
type Event struct {
	Type      EventType      `json:"type"`
	Phase     racecore.Phase `json:"phase"` // phase after the cue
	From      racecore.Phase `json:"from"`  // set for EventPhase
	Countdown int            `json:"countdown"`
	LapTime   float64        `json:"lapTime"`
	Tick      uint64         `json:"tick"`
	Seq       uint64         `json:"seq"`
	At        time.Time      `json:"at"`
}

// sortEvents orders events by sequence number.
func sortEvents(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})
}

// recorder turns session cues into pending events.
type recorder struct {
	l *Loop
}

func (r recorder) record(ev Event) {
	l := r.l
	ev.Tick = l.tickNum
	ev.Seq = l.seq
	ev.At = l.clk.Now()
	ev.LapTime = l.session.LapTime()
	l.seq++
	l.pending = append(l.pending, ev)
}

func (r recorder) OnCountdownTick(remaining int) {
	r.record(Event{Type: EventCountdown, Phase: r.l.session.Phase(), Countdown: remaining})
}

func (r recorder) OnGoPromptShown() {
	r.record(Event{Type: EventGo, Phase: r.l.session.Phase()})
}

func (r recorder) OnPhaseChange(from, to racecore.Phase) {
	r.record(Event{Type: EventPhase, Phase: to, From: from, Countdown: r.l.session.Countdown()})
}
