// Package primitives provides the small, dependency-free data structures shared by
// the clock and the race session.
//
// Core invariants:
//   - Ring never holds more than its capacity; the oldest value is evicted first
//   - Single-owner values, no locking (callers drive them from one loop goroutine)
//   - Fingerprints are deterministic for equal inputs
package primitives
