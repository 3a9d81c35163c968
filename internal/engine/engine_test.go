package engine

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"
	"time"

	"nocturne-fx/internal/core"
	"nocturne-fx/internal/governor"
	"nocturne-fx/internal/particle"
	"nocturne-fx/internal/render"
	"nocturne-fx/internal/spawn"
	"nocturne-fx/internal/theme"
)

type harness struct {
	loop *Loop
	rec  *render.Recorder
	eng  *Engine
	now  time.Duration
}

func newHarness(t *testing.T, themeID string, opts Options) *harness {
	t.Helper()
	h := &harness{loop: NewLoop(), rec: render.NewRecorder(800, 600)}
	h.eng = Attach(h.loop, h.rec, themeID, opts)
	return h
}

func (h *harness) run(n int, step time.Duration, check func(i int)) {
	for i := 0; i < n; i++ {
		h.now += step
		h.loop.Fire(h.now)
		if check != nil {
			check(i)
		}
	}
}

func quietOptions() Options {
	o := DefaultOptions()
	o.Interactive = false
	o.Intensity = governor.IntensityMedium
	return o
}

func TestConvergesToTargetAtSixtyFPS(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	if got := h.eng.Diagnostics().Particles; got != 50 {
		t.Fatalf("attach should seed to target, got %d", got)
	}
	h.run(120, slice, func(i int) {
		d := h.eng.Diagnostics()
		if d.State != governor.Full {
			t.Fatalf("frame %d: expected Full, got %v", i, d.State)
		}
		if diff := d.Particles - d.Target; diff < -1 || diff > 1 {
			t.Fatalf("frame %d: %d particles for target %d", i, d.Particles, d.Target)
		}
	})
	d := h.eng.Diagnostics()
	if d.Target != 50 || d.Frames != 120 {
		t.Fatalf("unexpected diagnostics %+v", d)
	}
	if d.FPS < 59.9 || d.FPS > 60.1 {
		t.Fatalf("rolling fps should settle at 60, got %v", d.FPS)
	}
	if h.rec.Frames() != 120 {
		t.Fatalf("expected 120 painted frames, got %d", h.rec.Frames())
	}
}

func TestDetachIsIdempotent(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	if !h.loop.Pending() || h.loop.Listeners() != 1 {
		t.Fatal("attach should register a frame callback and a listener")
	}
	h.eng.Detach()
	h.eng.Detach()
	if h.loop.Pending() || h.loop.Listeners() != 0 {
		t.Fatal("detach should leave no registered callbacks")
	}
	if h.eng.State() != StateTornDown || h.eng.Diagnostics().Particles != 0 {
		t.Fatal("detach should release the store")
	}
	if h.loop.Fire(time.Second) {
		t.Fatal("no frame should run after detach")
	}
	if h.eng.SpawnBurst(core.Vec2{X: 1, Y: 1}, particle.KindAlert) || h.eng.SetTheme("neon") {
		t.Fatal("a torn down engine should refuse work")
	}
	h.eng.SetPaused(false)
	if h.eng.State() != StateTornDown || h.loop.Pending() {
		t.Fatal("resume must not revive a torn down engine")
	}
}

func TestPauseKeepsStateAndResumes(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	h.run(10, slice, nil)
	before := append([]particle.Particle(nil), h.eng.store.Particles()...)

	h.loop.SetPaused(true)
	if h.eng.State() != StatePaused || h.loop.Pending() {
		t.Fatal("pause should stop re-registering")
	}
	h.loop.Fire(h.now + time.Hour)
	after := h.eng.store.Particles()
	if len(after) != len(before) {
		t.Fatal("pause must not destroy particles")
	}
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("particle %d changed while paused", i)
		}
	}

	h.loop.SetPaused(false)
	if h.eng.State() != StateRunning || !h.loop.Pending() {
		t.Fatal("resume should re-register")
	}
	// A long gap while paused must not produce a huge step.
	h.now += time.Hour
	ages := map[uint64]float64{}
	for _, p := range h.eng.store.Particles() {
		ages[p.ID] = p.Age
	}
	h.loop.Fire(h.now)
	for _, p := range h.eng.store.Particles() {
		if old, ok := ages[p.ID]; ok && p.Age-old > 1+1e-9 {
			t.Fatalf("first frame after resume should step one slice, aged %v", p.Age-old)
		}
	}
	if h.eng.Diagnostics().Frames != 11 {
		t.Fatalf("expected 11 frames, got %d", h.eng.Diagnostics().Frames)
	}
}

func TestDtIsClamped(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	h.run(1, slice, nil)
	ages := map[uint64]float64{}
	for _, p := range h.eng.store.Particles() {
		ages[p.ID] = p.Age
	}
	h.run(1, 10*time.Second, nil)
	for _, p := range h.eng.store.Particles() {
		if old, ok := ages[p.ID]; ok && p.Age-old > maxDt+1e-9 {
			t.Fatalf("dt should be clamped to %v, aged %v", maxDt, p.Age-old)
		}
	}
}

func TestZeroAreaSkipsRender(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	h.run(2, slice, nil)
	painted := h.rec.Frames()
	h.loop.Resize(0, 0)
	var ages float64
	for _, p := range h.eng.store.Particles() {
		ages += p.Age
	}
	h.run(5, slice, nil)
	if h.rec.Frames() != painted {
		t.Fatal("render should be skipped on a zero-area surface")
	}
	var later float64
	for _, p := range h.eng.store.Particles() {
		later += p.Age
	}
	if later <= ages {
		t.Fatal("physics should keep stepping while render is skipped")
	}
	h.loop.Resize(800, 600)
	h.run(1, slice, nil)
	if h.rec.Frames() != painted+1 {
		t.Fatal("render should resume once the surface has area")
	}
}

func TestResizeKeepsParticles(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	n := h.eng.Diagnostics().Particles
	h.eng.Resize(100, 80)
	if h.eng.Diagnostics().Particles != n {
		t.Fatal("resize must not reset particle state")
	}
	h.run(3, slice, nil)
	for _, p := range h.eng.store.Particles() {
		if !p.Kind.IsEvent() && (p.Pos.X < 0 || p.Pos.X >= 100 || p.Pos.Y < 0 || p.Pos.Y >= 80) {
			t.Fatalf("ambient particle outside new bounds: %+v", p.Pos)
		}
	}
}

func TestThemeSwitchKeepsEvents(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	h.eng.SpawnBurst(core.Vec2{X: 400, Y: 300}, particle.KindOrder)
	h.run(1, slice, nil)
	_, events := h.eng.store.Counts()
	if events == 0 {
		t.Fatal("burst should have produced event particles")
	}

	if !h.eng.SetTheme("neon") {
		t.Fatal("neon should be accepted")
	}
	ambient, eventsAfter := h.eng.store.Counts()
	if eventsAfter != events {
		t.Fatalf("theme switch dropped events: %d -> %d", events, eventsAfter)
	}
	if ambient != 50 {
		t.Fatalf("theme switch should reseed ambient to target, got %d", ambient)
	}
	neon, _ := theme.Lookup("neon")
	allowed := map[particle.Kind]bool{}
	for _, k := range neon.Kinds() {
		allowed[k] = true
	}
	for _, p := range h.eng.store.Particles() {
		if !p.Kind.IsEvent() && !allowed[p.Kind] {
			t.Fatalf("ambient kind %v not part of neon", p.Kind)
		}
	}

	if h.eng.SetTheme("plaid") || h.eng.Theme().ID != "neon" {
		t.Fatal("unknown theme should be ignored")
	}
}

func TestUnknownThemeAtAttachFallsBack(t *testing.T) {
	var buf bytes.Buffer
	opts := quietOptions()
	opts.Logger = log.New(&buf, "", 0)
	h := newHarness(t, "plaid", opts)
	if h.eng.Theme().ID != theme.DefaultID {
		t.Fatalf("expected default theme, got %q", h.eng.Theme().ID)
	}
	if !strings.Contains(buf.String(), "unknown theme") {
		t.Fatalf("fallback should be logged, got %q", buf.String())
	}
}

func TestFloodStaysWithinCap(t *testing.T) {
	opts := quietOptions()
	opts.Cap = 120
	h := newHarness(t, "cult", opts)
	for i := 0; i < 10000; i++ {
		h.eng.SpawnBurstValue(core.Vec2{X: 400, Y: 300}, particle.KindProfit, 1e6)
	}
	h.run(30, slice, func(i int) {
		if n := h.eng.Diagnostics().Particles; n > opts.Cap {
			t.Fatalf("frame %d: %d particles exceed cap %d", i, n, opts.Cap)
		}
	})
	if d := h.eng.Diagnostics(); d.Dropped != 10000-256 || d.Pending != 0 {
		t.Fatalf("unexpected queue counters %+v", d)
	}
}

func TestMalformedBurstsDropped(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	if h.eng.SpawnBurst(core.Vec2{X: 1, Y: 1}, particle.KindGlow) {
		t.Fatal("ambient kind is not a burst")
	}
	if h.eng.SpawnBurst(core.Vec2{X: 1, Y: 1}, particle.Kind(99)) {
		t.Fatal("unknown kind accepted")
	}
	if h.eng.Diagnostics().Pending != 0 {
		t.Fatal("nothing should be pending")
	}
}

func TestSpawnRejectsNonFiniteMagnitude(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	for _, m := range []float64{math.NaN(), math.Inf(-1)} {
		if h.eng.Spawn(spawn.Request{Pos: core.Vec2{X: 10, Y: 10}, Kind: particle.KindProfit, Count: 3, Magnitude: m}) {
			t.Fatalf("magnitude %v accepted", m)
		}
	}
	h.run(1, slice, nil)
	d := h.eng.Diagnostics()
	if d.Events != 0 || d.Dropped != 2 {
		t.Fatalf("expected no events and 2 drops, got %+v", d)
	}
	for _, p := range h.eng.store.Particles() {
		if !(p.Size > 0) {
			t.Fatalf("particle with invalid size %v", p.Size)
		}
	}
}

func TestBurstFloodDoesNotStarveAmbient(t *testing.T) {
	opts := quietOptions()
	opts.Cap = 2000
	opts.Intensity = governor.IntensityLow
	h := newHarness(t, "cult", opts)
	if got := h.eng.Diagnostics().Ambient; got != 20 {
		t.Fatalf("expected 20 seeded ambient particles, got %d", got)
	}
	h.eng.SetIntensity(governor.IntensityMedium)
	for i := 0; i < 300; i++ {
		h.eng.SpawnBurst(core.Vec2{X: 400, Y: 300}, particle.KindOrder)
	}
	h.run(1, slice, nil)
	d := h.eng.Diagnostics()
	if d.Ambient != 30 {
		t.Fatalf("ambient top-up should proceed under a flood, got %d", d.Ambient)
	}
	if d.Dropped != 300-256 {
		t.Fatalf("only burst overflow should count as dropped, got %d", d.Dropped)
	}
}

func TestGovernorReducesTarget(t *testing.T) {
	var buf bytes.Buffer
	opts := quietOptions()
	opts.Logger = log.New(&buf, "", 0)
	h := newHarness(t, "cult", opts)
	h.run(80, 30*time.Millisecond, nil)
	d := h.eng.Diagnostics()
	if d.State != governor.Reduced || d.Target != 25 || d.Flips != 1 {
		t.Fatalf("expected one flip to reduced target 25, got %v/%d/%d", d.State, d.Target, d.Flips)
	}
	if !strings.Contains(buf.String(), "governor: full -> reduced") {
		t.Fatalf("transition should be logged, got %q", buf.String())
	}
	h.run(80, slice, nil)
	if d := h.eng.Diagnostics(); d.State != governor.Full || d.Target != 50 || d.Flips != 2 {
		t.Fatalf("expected recovery to full, got %v/%d/%d", d.State, d.Target, d.Flips)
	}
}

func TestManualModeFixesTarget(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	h.eng.SetMode(governor.ModeLow)
	h.run(80, 30*time.Millisecond, nil)
	d := h.eng.Diagnostics()
	if d.Target != 12 || d.State != governor.Full {
		t.Fatalf("low mode should fix the target at 12, got %d (%v)", d.Target, d.State)
	}
	h.eng.SetIntensity(governor.IntensityUltra)
	h.run(1, slice, nil)
	if got := h.eng.Diagnostics().Target; got != 50 {
		t.Fatalf("ultra at low mode should target 50, got %d", got)
	}
}

func TestPointerIsBufferedUntilNextFrame(t *testing.T) {
	h := newHarness(t, "cult", DefaultOptions())
	h.loop.PointerMove(10, 20)
	if h.eng.pointer.Active {
		t.Fatal("pointer must not apply mid-frame")
	}
	h.run(1, slice, nil)
	if !h.eng.pointer.Active || h.eng.pointer.Pos != (core.Vec2{X: 10, Y: 20}) {
		t.Fatalf("pointer not applied: %+v", h.eng.pointer)
	}
	h.loop.PointerLeave()
	h.run(1, slice, nil)
	if h.eng.pointer.Active {
		t.Fatal("pointer should be inactive after leave")
	}
}

func TestInteractivityFollowsTheme(t *testing.T) {
	h := newHarness(t, "shadow", DefaultOptions())
	if h.eng.stepper.Interactive {
		t.Fatal("shadow is not interactive")
	}
	h.eng.SetTheme("cult")
	if !h.eng.stepper.Interactive {
		t.Fatal("cult is interactive when the option allows it")
	}
}

func TestOnBurstCallback(t *testing.T) {
	var got []particle.Kind
	var mags []float64
	opts := quietOptions()
	opts.OnBurst = func(k particle.Kind, m float64) {
		got = append(got, k)
		mags = append(mags, m)
	}
	h := newHarness(t, "cult", opts)
	h.eng.SpawnBurstValue(core.Vec2{X: 10, Y: 10}, particle.KindLoss, -300)
	h.eng.SpawnBurst(core.Vec2{X: 10, Y: 10}, particle.KindAlert)
	h.run(1, slice, nil)
	if len(got) != 2 || got[0] != particle.KindLoss || mags[0] != -300 || got[1] != particle.KindAlert {
		t.Fatalf("unexpected callbacks %v %v", got, mags)
	}
}

func TestAreaScaling(t *testing.T) {
	opts := quietOptions()
	opts.AreaScaling = true
	h := newHarness(t, "cult", opts)
	// 800x600 is ~0.23 of the reference area.
	if got := h.eng.Diagnostics().Target; got != 11 {
		t.Fatalf("expected scaled target 11, got %d", got)
	}
	h.eng.Resize(3840, 2160)
	h.run(1, slice, nil)
	if got := h.eng.Diagnostics().Target; got != 100 {
		t.Fatalf("scaling should saturate at 2x, got %d", got)
	}
}

func TestParametersAndSetters(t *testing.T) {
	h := newHarness(t, "cult", quietOptions())
	snap := h.eng.Parameters()
	if p, ok := snap.Lookup("fps_low"); !ok || p.Value != "45" {
		t.Fatalf("fps_low %+v", p)
	}
	if h.eng.SetFloatParameter("fps_low", 60) {
		t.Fatal("low watermark above high should be rejected")
	}
	if !h.eng.SetFloatParameter("reduction", 0.25) {
		t.Fatal("reduction rejected")
	}
	if !h.eng.SetIntParameter("cap", 30) {
		t.Fatal("cap rejected")
	}
	if d := h.eng.Diagnostics(); d.Particles > 30 || d.Target != 30 {
		t.Fatalf("cap should bound store and target, got %+v", d)
	}
	if !h.eng.SetIntParameter("base", 10) {
		t.Fatal("base rejected")
	}
	if got := h.eng.Diagnostics().Target; got != 10 {
		t.Fatalf("base override should set target, got %d", got)
	}
	if h.eng.SetIntParameter("nope", 1) || h.eng.SetFloatParameter("nope", 1) {
		t.Fatal("unknown keys should be rejected")
	}
	if len(h.eng.ParameterControls()) == 0 {
		t.Fatal("controls should not be empty")
	}
}

func TestOptionsFromMap(t *testing.T) {
	o := OptionsFromMap(map[string]string{
		"intensity":   "high",
		"mode":        "balanced",
		"interactive": "false",
		"cap":         "300",
		"seed":        "7",
		"fps_low":     "30",
		"fps_high":    "50",
		"reduction":   "0.4",
		"speed":       "bogus",
	})
	if o.Intensity != governor.IntensityHigh || o.Mode != governor.ModeBalanced || o.Interactive {
		t.Fatalf("enum overrides not applied: %+v", o)
	}
	if o.Cap != 300 || o.Seed != 7 || o.SpeedFactor != 1 {
		t.Fatalf("numeric overrides wrong: %+v", o)
	}
	if o.Governor.Low != 30 || o.Governor.High != 50 || o.Governor.ReductionFactor != 0.4 {
		t.Fatalf("governor overrides wrong: %+v", o.Governor)
	}
	if d := OptionsFromMap(nil); d.Cap != DefaultCap {
		t.Fatal("nil map should yield defaults")
	}
}

func TestDeterministicForSeed(t *testing.T) {
	a := newHarness(t, "cosmic", quietOptions())
	b := newHarness(t, "cosmic", quietOptions())
	a.run(30, slice, nil)
	b.run(30, slice, nil)
	pa, pb := a.eng.store.Particles(), b.eng.store.Particles()
	if len(pa) != len(pb) {
		t.Fatal("same seed should give the same population")
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs between identical runs", i)
		}
	}
}
