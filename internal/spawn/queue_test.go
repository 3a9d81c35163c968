package spawn

import (
	"math"
	"testing"

	"nocturne-fx/internal/core"
	"nocturne-fx/internal/particle"
)

func TestPushRejectsMalformed(t *testing.T) {
	q := NewQueue()
	bad := []Request{
		{Kind: particle.KindProfit, Count: 0},
		{Kind: particle.KindProfit, Count: -3},
		{Kind: particle.Kind(200), Count: 1},
		{Kind: particle.KindLoss, Count: 1, Pos: core.Vec2{X: math.NaN()}},
		{Kind: particle.KindLoss, Count: 1, Magnitude: math.Inf(1), HasMagnitude: true},
		{Kind: particle.KindProfit, Count: 3, Magnitude: math.NaN()},
	}
	for i, r := range bad {
		if q.Push(r) {
			t.Fatalf("request %d should be rejected: %+v", i, r)
		}
	}
	if q.Len() != 0 || q.Dropped() != len(bad) {
		t.Fatalf("expected %d drops and nothing pending, got %d/%d", len(bad), q.Dropped(), q.Len())
	}
	if !q.Push(Request{Kind: particle.KindOrder, Count: 2}) {
		t.Fatal("valid request rejected")
	}
}

func TestBurstRejectsAmbientKinds(t *testing.T) {
	q := NewQueue()
	if q.Burst(core.Vec2{}, particle.KindSparkle, 0, false, 1) {
		t.Fatal("ambient kinds are not bursts")
	}
}

func TestFloodIsBounded(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 10000; i++ {
		q.Burst(core.Vec2{X: 10, Y: 10}, particle.KindAlert, 0, false, 1)
	}
	if q.Len() != DefaultMaxPending {
		t.Fatalf("pending should stop at %d, got %d", DefaultMaxPending, q.Len())
	}
	if q.Dropped() != 10000-DefaultMaxPending {
		t.Fatalf("unexpected drop count %d", q.Dropped())
	}
}

func TestBurstCount(t *testing.T) {
	q := NewQueue()
	cases := []struct {
		name  string
		kind  particle.Kind
		m     float64
		has   bool
		scale float64
		want  int
	}{
		{"order base", particle.KindOrder, 0, false, 1, 5},
		{"small profit", particle.KindProfit, 10, true, 1, 5},
		{"threshold", particle.KindProfit, 100, true, 1, 5},
		{"profit 400", particle.KindProfit, 400, true, 1, 8},
		{"loss magnitude is absolute", particle.KindLoss, -600, true, 1, 12},
		{"saturates", particle.KindProfit, 1e9, true, 1, 20},
		{"scale doubles", particle.KindAlert, 0, false, 2, 10},
		{"scale clamps", particle.KindProfit, 1000, true, 2, 20},
		{"scale floors at one", particle.KindOrder, 0, false, 0.01, 1},
		{"alert ignores magnitude", particle.KindAlert, 5000, true, 1, 5},
	}
	for _, tc := range cases {
		if got := q.BurstCount(tc.kind, tc.m, tc.has, tc.scale); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestReplenish(t *testing.T) {
	cases := []struct{ have, target, per, want int }{
		{0, 50, 10, 10},
		{45, 50, 10, 5},
		{50, 50, 10, 0},
		{80, 50, 10, 0},
		{0, 3, 0, 3},
	}
	for _, tc := range cases {
		if got := Replenish(tc.have, tc.target, tc.per); got != tc.want {
			t.Fatalf("Replenish(%d,%d,%d)=%d want %d", tc.have, tc.target, tc.per, got, tc.want)
		}
	}
}

func TestDrainSwapsBuffers(t *testing.T) {
	q := NewQueue()
	q.Push(Request{Ambient: true, Count: 3})
	q.Burst(core.Vec2{X: 1}, particle.KindProfit, 500, true, 1)
	first := q.Drain()
	if len(first) != 2 || q.Len() != 0 {
		t.Fatalf("drain returned %d, %d left", len(first), q.Len())
	}
	q.Push(Request{Ambient: true, Count: 7})
	if first[0].Count != 3 || !first[0].Ambient {
		t.Fatal("pushing during processing must not clobber the drained batch")
	}
	second := q.Drain()
	if len(second) != 1 || second[0].Count != 7 {
		t.Fatalf("unexpected second batch %+v", second)
	}
	if q.Push(Request{Ambient: true}) {
		t.Fatal("empty ambient request should be rejected")
	}
}
