package governor

// Ring is a fixed-capacity ring of float samples with a running sum.
type Ring struct {
	buf  []float64
	next int
	n    int
	sum  float64
}

// NewRing returns a ring holding at most capacity samples (minimum 1).
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]float64, capacity)}
}

// Push stores v, overwriting the oldest sample once the ring is full.
func (r *Ring) Push(v float64) {
	if r.n == len(r.buf) {
		r.sum -= r.buf[r.next]
	} else {
		r.n++
	}
	r.buf[r.next] = v
	r.sum += v
	r.next = (r.next + 1) % len(r.buf)
}

// Len returns the number of stored samples.
func (r *Ring) Len() int { return r.n }

// Cap returns the ring capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Full reports whether the ring holds Cap samples.
func (r *Ring) Full() bool { return r.n == len(r.buf) }

// Mean returns the average of the stored samples, or 0 when empty.
func (r *Ring) Mean() float64 {
	if r.n == 0 {
		return 0
	}
	return r.sum / float64(r.n)
}

// Reset drops all samples.
func (r *Ring) Reset() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.next, r.n, r.sum = 0, 0, 0
}
