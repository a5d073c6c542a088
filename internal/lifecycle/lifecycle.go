// Package lifecycle ties goroutines of the demo process to one cancellable
// context.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

// Group is a WaitGroup whose goroutines share Ctx. Cancel stops them all.
type Group struct {
	sync.WaitGroup
	Ctx    context.Context
	Cancel context.CancelFunc
}

// New returns a Group derived from parent.
func New(parent context.Context) *Group {
	ctx, cancel := context.WithCancel(parent)
	return &Group{Ctx: ctx, Cancel: cancel}
}

// WithSignal also cancels Ctx when one of signals arrives. Call stop to release
// the signal handler.
func (g *Group) WithSignal(signals ...os.Signal) (stop context.CancelFunc) {
	g.Ctx, stop = signal.NotifyContext(g.Ctx, signals...)
	return
}

// Go runs f on a new goroutine with the group's context.
func (g *Group) Go(f func(context.Context)) {
	g.WaitGroup.Go(func() {
		f(g.Ctx)
	})
}

// Shutdown cancels the group and waits for every goroutine to return.
func (g *Group) Shutdown() {
	g.Cancel()
	g.Wait()
}
