package production

import (
	"errors"
	"testing"
	"time"

	"github.com/comalice/racecore"
	"github.com/comalice/racecore/realtime"
)

func TestChannelPublisher_Delivery(t *testing.T) {
	ch := make(chan realtime.Event, 10)
	p := NewChannelPublisher(ch)

	ev := realtime.Event{Type: realtime.EventPhase, From: racecore.PhaseRacing, Phase: racecore.PhaseCompleting, Seq: 7}
	if err := p.Publish(ev); err != nil {
		t.Errorf("Publish failed: %v", err)
	}

	select {
	case got := <-ch:
		if got != ev {
			t.Errorf("delivered %+v, want %+v", got, ev)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No event delivered")
	}
}

func TestChannelPublisher_BackpressureDrop(t *testing.T) {
	ch := make(chan realtime.Event, 1)
	p := NewChannelPublisher(ch)
	ch <- realtime.Event{} // Fill buffer

	if err := p.Publish(realtime.Event{Seq: 1}); !errors.Is(err, ErrDropped) {
		t.Errorf("Publish on full channel error = %v, want ErrDropped", err)
	}
	if p.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", p.Dropped())
	}
	if len(ch) != 1 {
		t.Errorf("channel holds %d events, want 1", len(ch))
	}
}

func TestChannelPublisher_Close(t *testing.T) {
	ch := make(chan realtime.Event, 1)
	p := NewChannelPublisher(ch)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-ch; ok {
		t.Error("channel still open after Close")
	}
}
