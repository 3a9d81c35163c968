package demo

import (
	"math"
	"testing"
	"time"

	"nocturne-fx/internal/core"
)

func TestEmitterCadence(t *testing.T) {
	e := NewEmitter(3)
	bounds := core.Size{W: 640, H: 480}
	var fired []time.Duration
	for now := time.Duration(0); now <= 120*time.Second; now += 10 * time.Millisecond {
		b, ok := e.Tick(now, bounds)
		if !ok {
			continue
		}
		fired = append(fired, now)
		if b.Pos.X < 0 || b.Pos.X >= 640 || b.Pos.Y < 0 || b.Pos.Y >= 480 {
			t.Fatalf("burst outside bounds: %+v", b.Pos)
		}
		if !b.Kind.IsEvent() {
			t.Fatalf("demo burst of ambient kind %v", b.Kind)
		}
		if b.Kind.Monetary() {
			m := math.Abs(b.Magnitude)
			if !b.HasMagnitude || m < 50 || m > 550 {
				t.Fatalf("magnitude out of range: %+v", b)
			}
		}
	}
	if len(fired) < 20 || len(fired) > 61 {
		t.Fatalf("unexpected burst count %d over two minutes", len(fired))
	}
	for i := 1; i < len(fired); i++ {
		gap := fired[i] - fired[i-1]
		if gap < 2*time.Second || gap > 5*time.Second+10*time.Millisecond {
			t.Fatalf("gap %v outside 2-5s", gap)
		}
	}
}

func TestEmitterIdleOnEmptySurface(t *testing.T) {
	e := NewEmitter(1)
	e.Tick(0, core.Size{})
	if _, ok := e.Tick(time.Minute, core.Size{}); ok {
		t.Fatal("no bursts on an empty surface")
	}
}
