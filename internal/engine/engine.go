// Package engine runs the particle effect: one frame callback drains the
// spawn queue, steps and reaps particles, paints the survivors and feeds the
// frame duration to the governor before re-registering.
//
// An Engine is confined to its host's goroutine. External inputs (bursts,
// pointer moves) are buffered and applied at the start of the next frame.
package engine

import (
	"log"
	"math"
	"time"

	"nocturne-fx/internal/core"
	"nocturne-fx/internal/governor"
	"nocturne-fx/internal/particle"
	"nocturne-fx/internal/render"
	"nocturne-fx/internal/spawn"
	"nocturne-fx/internal/theme"
)

// State is the scheduler state.
type State uint8

const (
	StateRunning State = iota + 1
	StatePaused
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateTornDown:
		return "torn down"
	}
	return "uninitialized"
}

// slice is the unit of dt: one 60 Hz frame.
const (
	slice = time.Second / 60
	maxDt = 4.0
)

// Engine owns one particle store, spawn queue and governor for a single
// (surface, theme) pair.
type Engine struct {
	host        Host
	canvas      render.Canvas
	unsubscribe func()
	token       FrameToken

	opts Options
	log  *log.Logger

	theme      theme.Config
	store      *particle.Store
	factory    *particle.Factory
	stepper    *particle.Stepper
	dispatcher *render.Dispatcher
	gov        *governor.Governor
	queue      *spawn.Queue

	bounds     core.Size
	pointer    particle.Pointer
	pendingPtr particle.Pointer
	ptrDirty   bool

	state  State
	last   time.Duration
	fresh  bool
	frames uint64
	drawn  int

	base   int
	target int
}

// Attach builds an engine for canvas, seeds it to the current target and
// registers with host. Unknown theme ids fall back to the default theme.
func Attach(host Host, canvas render.Canvas, themeID string, opts Options) *Engine {
	opts = opts.normalized()
	th, ok := theme.Lookup(themeID)
	if !ok {
		opts.Logger.Printf("unknown theme %q, using %q", themeID, theme.DefaultID)
		th = theme.Default()
	}

	e := &Engine{
		host:       host,
		canvas:     canvas,
		opts:       opts,
		log:        opts.Logger,
		store:      particle.NewStore(opts.Cap),
		factory:    particle.NewFactory(opts.Seed),
		dispatcher: render.NewDispatcher(),
		gov:        governor.New(opts.Governor),
		queue:      spawn.NewQueue(),
		state:      StateRunning,
		fresh:      true,
	}
	if canvas != nil {
		e.bounds = canvas.Size()
	}
	e.stepper = particle.NewStepper(e.bounds)
	e.stepper.SpeedFactor = opts.SpeedFactor
	e.dispatcher.Trail = opts.Trail
	e.gov.SetMode(opts.Mode)
	e.applyTheme(th)
	e.seedAmbient()

	if host != nil {
		e.unsubscribe = host.Subscribe(e)
	}
	e.schedule()
	return e
}

func (e *Engine) applyTheme(th theme.Config) {
	e.theme = th
	e.stepper.Interactive = e.opts.Interactive && th.Interactive
	e.dispatcher.Glow = th.Glow
}

// seedAmbient fills the store to the current target at once.
func (e *Engine) seedAmbient() {
	e.target = e.targetCapacity()
	if e.bounds.Empty() {
		return
	}
	ambient, _ := e.store.Counts()
	for i := ambient; i < e.target; i++ {
		if _, ok := e.store.Add(e.factory.AmbientAnywhere(e.theme.Profile, e.bounds)); !ok {
			break
		}
	}
}

func (e *Engine) schedule() {
	if e.host == nil || e.state != StateRunning || e.token != 0 {
		return
	}
	e.token = e.host.RequestFrame(e.frame)
}

func (e *Engine) frame(now time.Duration) {
	e.token = 0
	if e.state != StateRunning {
		return
	}

	dt := 1.0
	var elapsed time.Duration
	if e.fresh {
		e.fresh = false
	} else {
		elapsed = now - e.last
		dt = core.Clamp(float64(elapsed)/float64(slice), 0, maxDt)
	}
	e.last = now

	if e.ptrDirty {
		e.pointer = e.pendingPtr
		e.ptrDirty = false
	}

	e.target = e.targetCapacity()
	e.drain()
	e.stepper.StepAll(e.store, dt, e.pointer)
	e.store.Reap()

	e.drawn = 0
	if e.canvas != nil && !e.bounds.Empty() && !e.canvas.Size().Empty() {
		e.dispatcher.Begin(e.canvas)
		e.drawn = e.dispatcher.Paint(e.canvas, e.store.Particles())
	}

	if elapsed > 0 {
		prev := e.gov.State()
		if e.gov.Sample(elapsed) {
			e.target = e.targetCapacity()
			e.log.Printf("governor: %s -> %s at %.1f fps, target %d", prev, e.gov.State(), e.gov.FPS(), e.target)
		}
	}
	e.frames++
	e.schedule()
}

// drain tops up the ambient population by at most PerFrame, then turns
// pending requests into particles. The top-up bypasses the queue so a
// burst flood cannot starve it.
func (e *Engine) drain() {
	ambient, _ := e.store.Counts()
	e.spawnAmbient(spawn.Replenish(ambient, e.target, e.opts.PerFrame))
	for _, req := range e.queue.Drain() {
		if req.Ambient {
			e.spawnAmbient(req.Count)
			continue
		}
		for i := 0; i < req.Count; i++ {
			e.store.AddEvent(e.factory.Event(req.Kind, req.Pos, req.Magnitude, req.Color))
		}
		if e.opts.OnBurst != nil {
			e.opts.OnBurst(req.Kind, req.Magnitude)
		}
	}
}

func (e *Engine) spawnAmbient(n int) {
	if e.bounds.Empty() {
		return
	}
	for i := 0; i < n; i++ {
		if _, ok := e.store.Add(e.factory.AmbientAnywhere(e.theme.Profile, e.bounds)); !ok {
			return
		}
	}
}

// targetCapacity derives the ambient target from intensity, area, governor
// state or manual mode, and the hard cap.
func (e *Engine) targetCapacity() int {
	base := e.base
	if base <= 0 {
		base = e.opts.Intensity.Base()
	}
	if e.opts.AreaScaling && !e.bounds.Empty() {
		k := math.Min(float64(e.bounds.Area())/referenceArea, 2)
		base = int(math.Max(1, math.Floor(float64(base)*k)))
	}
	t := e.gov.TargetCapacity(base)
	if t > e.store.Cap() {
		t = e.store.Cap()
	}
	return t
}

// Detach unregisters from the host and releases particles. Calling it
// again is a no-op.
func (e *Engine) Detach() {
	if e.state == StateTornDown {
		return
	}
	if e.token != 0 && e.host != nil {
		e.host.CancelFrame(e.token)
	}
	e.token = 0
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.store.Clear()
	e.queue.Reset()
	e.state = StateTornDown
}

// SetTheme swaps the theme and reseeds ambient particles. Event particles
// in flight are kept. Unknown ids are ignored.
func (e *Engine) SetTheme(id string) bool {
	if e.state == StateTornDown {
		return false
	}
	th, ok := theme.Lookup(id)
	if !ok {
		e.log.Printf("ignoring unknown theme %q", id)
		return false
	}
	e.store.RemoveAmbient()
	e.applyTheme(th)
	e.seedAmbient()
	return true
}

// Theme returns the active theme.
func (e *Engine) Theme() theme.Config { return e.theme }

// SetIntensity changes the base ambient population.
func (e *Engine) SetIntensity(i governor.Intensity) {
	e.opts.Intensity = i
	e.base = 0
}

// SetMode changes the performance mode.
func (e *Engine) SetMode(m governor.Mode) { e.gov.SetMode(m) }

// Mode returns the performance mode.
func (e *Engine) Mode() governor.Mode { return e.gov.Mode() }

// SpawnBurst enqueues an event burst without a magnitude.
func (e *Engine) SpawnBurst(pos core.Vec2, kind particle.Kind) bool {
	return e.burst(pos, kind, 0, false)
}

// SpawnBurstValue enqueues an event burst whose size, alpha and count follow
// magnitude for profit and loss.
func (e *Engine) SpawnBurstValue(pos core.Vec2, kind particle.Kind, magnitude float64) bool {
	return e.burst(pos, kind, magnitude, true)
}

func (e *Engine) burst(pos core.Vec2, kind particle.Kind, magnitude float64, has bool) bool {
	if e.state == StateTornDown {
		return false
	}
	return e.queue.Burst(pos, kind, magnitude, has, e.opts.Intensity.BurstScale())
}

// Spawn enqueues a raw request. Counts are clamped to the burst cap.
func (e *Engine) Spawn(req spawn.Request) bool {
	if e.state == StateTornDown {
		return false
	}
	if req.Count > e.queue.BurstCap {
		req.Count = e.queue.BurstCap
	}
	return e.queue.Push(req)
}

// PointerMove buffers a pointer position for the next frame.
func (e *Engine) PointerMove(x, y float64) {
	pos := core.Vec2{X: x, Y: y}
	if !pos.Finite() {
		return
	}
	e.pendingPtr = particle.Pointer{Pos: pos, Active: true}
	e.ptrDirty = true
}

// PointerLeave deactivates the pointer from the next frame on.
func (e *Engine) PointerLeave() {
	e.pendingPtr = particle.Pointer{}
	e.ptrDirty = true
}

// Resize updates the wrap bounds. Particles are kept.
func (e *Engine) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	e.bounds = core.Size{W: w, H: h}
	e.stepper.Bounds = e.bounds
}

// SetPaused stops or resumes the frame loop without touching particles.
// The first frame after resuming steps by one slice.
func (e *Engine) SetPaused(paused bool) {
	switch {
	case paused && e.state == StateRunning:
		if e.token != 0 && e.host != nil {
			e.host.CancelFrame(e.token)
		}
		e.token = 0
		e.state = StatePaused
	case !paused && e.state == StatePaused:
		e.state = StateRunning
		e.fresh = true
		e.schedule()
	}
}

// State returns the scheduler state.
func (e *Engine) State() State { return e.state }

// Diagnostics is a read-only snapshot for overlays.
type Diagnostics struct {
	FPS       float64
	Particles int
	Ambient   int
	Events    int
	Drawn     int
	Pending   int
	Dropped   int
	State     governor.State
	Flips     int
	Mode      governor.Mode
	Target    int
	Cap       int
	Theme     string
	Paused    bool
	Frames    uint64
}

// Diagnostics reports the current counters.
func (e *Engine) Diagnostics() Diagnostics {
	ambient, events := e.store.Counts()
	return Diagnostics{
		FPS:       e.gov.FPS(),
		Particles: e.store.Len(),
		Ambient:   ambient,
		Events:    events,
		Drawn:     e.drawn,
		Pending:   e.queue.Len(),
		Dropped:   e.queue.Dropped(),
		State:     e.gov.State(),
		Flips:     e.gov.Transitions(),
		Mode:      e.gov.Mode(),
		Target:    e.target,
		Cap:       e.store.Cap(),
		Theme:     e.theme.ID,
		Paused:    e.state == StatePaused,
		Frames:    e.frames,
	}
}
