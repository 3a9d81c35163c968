// Package spawn buffers particle requests between frames. External callers
// push bursts at any time; the frame loop drains the queue once per frame.
package spawn

import (
	"image/color"
	"math"

	"nocturne-fx/internal/core"
	"nocturne-fx/internal/particle"
)

const (
	DefaultMaxPending = 256
	DefaultBurstCap   = 20
	DefaultPerFrame   = 10

	baseBurst         = 5
	monetaryThreshold = 100.0
	monetaryPerUnit   = 50.0
)

// Request asks for Count particles. Ambient requests spawn theme particles
// at random positions and ignore Pos, Kind and Magnitude.
type Request struct {
	Pos          core.Vec2
	Kind         particle.Kind
	Count        int
	Magnitude    float64
	HasMagnitude bool
	Ambient      bool

	// Color overrides the event palette when non-nil.
	Color *color.NRGBA
}

// Valid reports whether r can be turned into particles.
func (r Request) Valid() bool {
	if r.Count <= 0 {
		return false
	}
	if r.Ambient {
		return true
	}
	if !r.Kind.Valid() || !r.Pos.Finite() {
		return false
	}
	if math.IsNaN(r.Magnitude) || math.IsInf(r.Magnitude, 0) {
		return false
	}
	return true
}

// Queue is a bounded request buffer. It is not safe for concurrent use;
// the engine and its host share one goroutine.
type Queue struct {
	MaxPending int
	BurstCap   int

	pending []Request
	spare   []Request
	dropped int
}

// NewQueue returns a queue with the default bounds.
func NewQueue() *Queue {
	return &Queue{MaxPending: DefaultMaxPending, BurstCap: DefaultBurstCap}
}

// Push enqueues req. Invalid requests and requests beyond MaxPending are
// dropped and counted; Push never fails loudly.
func (q *Queue) Push(req Request) bool {
	if !req.Valid() {
		q.dropped++
		return false
	}
	limit := q.MaxPending
	if limit <= 0 {
		limit = DefaultMaxPending
	}
	if len(q.pending) >= limit {
		q.dropped++
		return false
	}
	q.pending = append(q.pending, req)
	return true
}

// Burst enqueues an event burst of kind at pos. The count is derived from
// the magnitude, multiplied by scale and clamped to [1, BurstCap].
func (q *Queue) Burst(pos core.Vec2, kind particle.Kind, magnitude float64, hasMagnitude bool, scale float64) bool {
	if !kind.IsEvent() {
		q.dropped++
		return false
	}
	return q.Push(Request{
		Pos:          pos,
		Kind:         kind,
		Count:        q.BurstCount(kind, magnitude, hasMagnitude, scale),
		Magnitude:    magnitude,
		HasMagnitude: hasMagnitude,
	})
}

// BurstCount computes the particle count of a burst.
func (q *Queue) BurstCount(kind particle.Kind, magnitude float64, hasMagnitude bool, scale float64) int {
	limit := q.BurstCap
	if limit <= 0 {
		limit = DefaultBurstCap
	}
	n := float64(baseBurst)
	if hasMagnitude && kind.Monetary() {
		if m := math.Abs(magnitude); m > monetaryThreshold {
			n = math.Min(float64(DefaultBurstCap), math.Floor(m/monetaryPerUnit))
		}
	}
	if scale > 0 && !math.IsInf(scale, 0) {
		n *= scale
	}
	return int(core.Clamp(math.Round(n), 1, float64(limit)))
}

// Replenish returns how many ambient particles to add this frame to move
// have toward target, at most perFrame.
func Replenish(have, target, perFrame int) int {
	if perFrame <= 0 {
		perFrame = DefaultPerFrame
	}
	need := target - have
	if need <= 0 {
		return 0
	}
	if need > perFrame {
		return perFrame
	}
	return need
}

// Drain returns the pending requests and empties the queue. The returned
// slice stays valid until the next Drain; pushes made while it is being
// processed land in the other buffer.
func (q *Queue) Drain() []Request {
	out := q.pending
	q.pending = q.spare[:0]
	q.spare = out
	return out
}

// Len returns the number of pending requests.
func (q *Queue) Len() int { return len(q.pending) }

// Dropped returns the number of requests rejected since the last Reset.
func (q *Queue) Dropped() int { return q.dropped }

// Reset discards pending requests and the drop counter.
func (q *Queue) Reset() {
	q.pending = q.pending[:0]
	q.dropped = 0
}
