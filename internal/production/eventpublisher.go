package production

import (
	"errors"
	"sync/atomic"

	"github.com/comalice/racecore/realtime"
)

// ErrDropped reports an event dropped because the channel was full.
var ErrDropped = errors.New("event dropped")

// ChannelPublisher forwards loop events to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch      chan<- realtime.Event
	dropped atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- realtime.Event) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ev realtime.Event) error {
	select {
	case p.ch <- ev:
		return nil
	default:
		p.dropped.Add(1)
		return ErrDropped
	}
}

// Dropped returns how many events were dropped so far.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
