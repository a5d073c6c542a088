// Package realtime drives a race session frame by frame.
//
// A Loop owns one FrameClock and one Session and runs on the caller's goroutine.
// Each tick:
//  1. advances the frame clock (blocking for the pacing delay when capped)
//  2. polls the input snapshot; a held quit action stops the loop
//  3. updates the track once the countdown is over
//  4. advances the session with the tick's dt and the track's completion signal
//  5. renders the frame (overlay, lap time, caption)
//  6. publishes the cue events the tick produced, in sequence order
//
// Nothing is shared across goroutines. Collaborators that block slow every
// following tick; the frame clock measures such stalls in the next dt.
//
// # Example Usage
//
//	clk, _ := cfg.NewClock()
//	loop, _ := realtime.NewLoop(clk, cfg,
//		realtime.WithTrack(track),
//		realtime.WithRenderer(renderer),
//	)
//	result, err := loop.Run(ctx)
//
// # Event Ordering Guarantees
//
// Events carry the tick number they were raised on and a sequence number that
// increases over the loop's lifetime. Within a tick they are published in
// sequence order, so the same inputs and time source always yield the same
// event stream.
package realtime
