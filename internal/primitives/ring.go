package primitives

// Ring is a bounded FIFO. Pushing into a full ring evicts the oldest value.
// The zero value is unusable; construct with NewRing.
type Ring[T any] struct {
	buf   []T
	start int
	size  int
}

// NewRing creates a ring holding at most capacity values.
// A capacity below 1 is raised to 1.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v, evicting the oldest value when the ring is full.
func (r *Ring[T]) Push(v T) {
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = v
		r.size++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

// Len returns the number of values held.
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the maximum number of values the ring holds.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Values returns a copy of the held values, oldest first.
func (r *Ring[T]) Values() []T {
	out := make([]T, r.size)
	for i := range r.size {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Clear drops all values, keeping the capacity.
func (r *Ring[T]) Clear() {
	clear(r.buf)
	r.start = 0
	r.size = 0
}

// Mean returns the arithmetic mean of values and false when values is empty.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
