package core

import (
	"math"
	"testing"
	"time"
)

func TestWrapStaysInRange(t *testing.T) {
	cases := []struct {
		v, span, want float64
	}{
		{v: 105, span: 100, want: 5},
		{v: -3, span: 100, want: 97},
		{v: 250, span: 100, want: 50},
		{v: 0, span: 100, want: 0},
		{v: 42, span: 0, want: 42},
		{v: -1e-14, span: 800, want: 0},
	}
	for _, tc := range cases {
		got := Wrap(tc.v, tc.span)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Wrap(%v, %v) = %v, want %v", tc.v, tc.span, got, tc.want)
		}
		if tc.span > 0 && (got < 0 || got >= tc.span) {
			t.Fatalf("Wrap(%v, %v) = %v escapes [0, span)", tc.v, tc.span, got)
		}
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 32; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		v := r.Range(3, 5)
		if v < 3 || v >= 5 {
			t.Fatalf("Range produced %v outside [3,5)", v)
		}
		s := r.Signed(4)
		if s < -2 || s >= 2 {
			t.Fatalf("Signed produced %v outside [-2,2)", s)
		}
	}
	if got := r.Range(2, 2); got != 2 {
		t.Fatalf("degenerate Range should return lo, got %v", got)
	}
}

func TestFixedStepPacing(t *testing.T) {
	base := time.Unix(0, 0)
	now := base
	fs := NewFixedStep(50)
	fs.SetClock(func() time.Time { return now })

	if !fs.ShouldStep() {
		t.Fatal("first call should tick with a primed accumulator")
	}
	if r := fs.Remaining(); r != 20*time.Millisecond {
		t.Fatalf("remaining after a tick = %v, want 20ms", r)
	}
	now = now.Add(5 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("should not tick before a full step elapses")
	}
	if r := fs.Remaining(); r != 15*time.Millisecond {
		t.Fatalf("remaining = %v, want 15ms", r)
	}
	now = now.Add(15 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected tick after 20ms at 50 TPS")
	}

	// A long stall yields one tick, not a backlog.
	now = now.Add(time.Second)
	ticks := 0
	for i := 0; i < 5; i++ {
		if fs.ShouldStep() {
			ticks++
		}
	}
	if ticks > 2 {
		t.Fatalf("stall replayed %d ticks", ticks)
	}
}

func TestSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{{
		Name:   "Governor",
		Params: []Parameter{FloatParam("low", "Low", 45), IntParam("cap", "Cap", 200)},
	}}}
	p, ok := snap.Lookup("cap")
	if !ok || p.Value != "200" || p.Type != ParamTypeInt {
		t.Fatalf("unexpected lookup result %+v ok=%v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("lookup of unknown key should fail")
	}
}
