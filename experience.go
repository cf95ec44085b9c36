package folio

import (
	"context"
	"errors"
	"image"
	"math"
)

// Key is a keyboard key the experience reacts to.
type Key uint8

const (
	KeyEscape Key = iota + 1
	KeyLeft
	KeyRight
)

// Options wires an Experience to its surroundings. Every field may be nil.
type Options struct {
	Log    Logger
	Cursor CursorSink
	Opener LinkOpener
	Store  EntityStore
}

// Experience owns every piece of interaction state for one room. It is
// driven by Update once per tick and by the Handle* entry points between
// ticks, all on the same goroutine.
type Experience struct {
	Config Config

	Root       *Node
	Camera     *Camera
	Registry   *Registry
	Pointer    *PointerTracker
	Hover      *HoverMachine
	Dispatcher *Dispatcher
	Modals     *ModalController
	Tweener    *Tweener
	Video      *FrameLoop

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	log    Logger
	store  EntityStore
	width  float64
	height float64

	load      *LoadTask
	installed bool
	loadErr   error
	// LoadingOpacity is the loading overlay opacity, faded out once the
	// room is installed.
	LoadingOpacity float64

	hitTester   HitTester
	clickTester HitTester
	hits        []Hit
	spinning    []*Node
	elapsed     float64

	press       pressState
	injectQueue []syntheticEvent
	runner      *TestRunner

	screenshotQueue []string

	debug bool
	stats frameStats
}

// NewExperience creates an experience for cfg. The room is empty until
// Load or Install is called.
func NewExperience(cfg Config, opts Options) *Experience {
	log := opts.Log
	if log == nil {
		log = NopLogger{}
	}
	e := &Experience{
		Config:         cfg,
		Root:           NewGroup("Scene"),
		Tweener:        NewTweener(),
		Registry:       NewRegistry(log),
		ScreenshotDir:  "screenshots",
		log:            log,
		store:          opts.Store,
		width:          float64(cfg.Width),
		height:         float64(cfg.Height),
		LoadingOpacity: 1,
	}
	emit := e.emit

	e.Camera = NewCamera(e.width, e.height)
	e.applyCamera(cfg.Camera)
	e.Camera.SetTickRate(cfg.TPS)

	e.Pointer = NewPointerTracker(e.width, e.height)
	e.Hover = NewHoverMachine(cfg.Hover, e.Registry, e.Tweener, opts.Cursor, emit)
	e.Modals = NewModalController(cfg.Modals, cfg.ModalOrder, e.Tweener, cfg.ModalFade, emit, log)
	e.Modals.Layout(e.width, e.height)
	e.Dispatcher = NewDispatcher(cfg.Links, cfg.Bindings, e.Modals, opts.Opener, nil, log, emit)
	return e
}

func (e *Experience) applyCamera(c CameraConfig) {
	cam := e.Camera
	cam.Position = c.Position
	cam.Target = c.Target
	cam.FOV = c.FOV
	cam.Near = c.Near
	cam.Far = c.Far
	cam.EnableDamping = c.Damping
	if c.MinDistance > 0 {
		cam.MinDistance = c.MinDistance
	}
	if c.MaxDistance > 0 {
		cam.MaxDistance = c.MaxDistance
	}
}

func (e *Experience) emit(ev InteractionEvent) {
	if e.store != nil {
		e.store.EmitEvent(ev)
	}
}

// Log returns the experience's logger.
func (e *Experience) Log() Logger {
	return e.log
}

// Load starts loading src in the background. The room is installed by the
// first Update after the load finishes.
func (e *Experience) Load(ctx context.Context, src RoomSource) {
	e.load = LoadRoom(ctx, src)
}

// Loading reports whether a started load has not been installed yet.
func (e *Experience) Loading() bool {
	return e.load != nil && !e.installed
}

// LoadProgress returns the load progress in [0, 1].
func (e *Experience) LoadProgress() float64 {
	if e.load == nil {
		return 0
	}
	return e.load.Progress()
}

// LoadErr returns the load failure, if any.
func (e *Experience) LoadErr() error {
	return e.loadErr
}

// Install populates the scene from a loaded room: registers the targets,
// binds the screen video and collects spinning nodes. Install runs at most
// once; later calls are ignored.
func (e *Experience) Install(room *Room) {
	if e.installed {
		return
	}
	e.installed = true
	if room == nil || room.Root == nil {
		return
	}
	e.Root = room.Root

	e.Registry.RegisterTargets(room.Lookup, e.Config.Targets)
	e.Hover.SetRegistry(e.Registry)

	e.Root.Traverse(func(n *Node) {
		if n.Spin != 0 {
			e.spinning = append(e.spinning, n)
		}
	})

	if screen := room.Lookup(e.Config.ScreenNode); screen != nil && screen.IsMesh() {
		e.bindScreen(screen, room.Frames)
	} else if e.Config.ScreenNode != "" {
		e.log.Warningf("%s not found", e.Config.ScreenNode)
	}
	e.debugCheckTree()
	UpdateWorld(e.Root)
}

func (e *Experience) bindScreen(screen *Node, frames []image.Image) {
	if len(frames) == 0 {
		frames = TestPattern(64, 40, 24)
	}
	v := NewFrameLoop(frames, e.Config.VideoFPS, e.Config.Autoplay)
	mat := NewBasicMaterial(ColorWhite)
	mat.ToneMapped = false
	screen.Material = mat
	v.Bind(mat)
	FitToAspect(screen, v.Aspect())
	if err := v.Play(); err != nil {
		e.log.Errorf("video play blocked: %v", err)
	}
	e.Video = v
	e.Dispatcher.SetVideo(v)
}

func (e *Experience) pollLoad() {
	if e.load == nil || e.installed || !e.load.Finished() {
		return
	}
	room, err := e.load.Result()
	if err != nil {
		e.loadErr = err
		e.log.Errorf("%v", err)
		e.installed = true
		return
	}
	e.Install(room)
}

// Update advances the experience by dt seconds.
func (e *Experience) Update(dt float64) {
	e.pollLoad()
	if e.runner != nil {
		e.runner.step(e)
	}
	e.processInjected()

	e.Camera.Update()
	speed := e.Config.AnimationSpeed
	for _, n := range e.spinning {
		r := n.Rotation
		r[1] = math.Mod(r[1]+n.Spin*dt*speed, 2*math.Pi)
		n.SetRotation(r)
	}
	e.Tweener.Update(float32(dt))
	if e.Video != nil {
		e.Video.Update(dt)
	}

	UpdateWorld(e.Root)
	e.hits = e.hitTester.Query(e.Pointer.State(), e.Camera, e.Registry.Objects())
	e.Hover.Update(e.hits, e.Pointer.State())

	if e.installed && e.LoadingOpacity > 0 {
		if fade := float64(e.Config.LoadingFade); fade > 0 {
			e.LoadingOpacity = math.Max(0, e.LoadingOpacity-dt/fade)
		} else {
			e.LoadingOpacity = 0
		}
	}
	e.elapsed += dt
	e.stats.record(dt, len(e.hits), e.Tweener.Len())
	e.debugLog()
}

// Elapsed returns the seconds of simulated time since creation.
func (e *Experience) Elapsed() float64 {
	return e.elapsed
}

// Hits returns the hit list of the last Update, nearest first.
func (e *Experience) Hits() []Hit {
	return e.hits
}

// HandlePointerMove records a pointer move at pixel (x, y).
func (e *Experience) HandlePointerMove(x, y float64) {
	e.Pointer.OnPointerMove(x, y)
}

// HandleClick handles a primary-button click at pixel (x, y). The open
// modal's controls and backdrop take the click first; otherwise the hit
// under the pointer is dispatched.
func (e *Experience) HandleClick(x, y float64) Selection {
	e.gesture()
	e.Pointer.OnPointerMove(x, y)
	if e.Modals.HandleClick(x, y) {
		return Selection{Kind: SelectOverlay}
	}
	return e.dispatch()
}

// HandleTap handles a touch lifted at pixel (x, y).
func (e *Experience) HandleTap(x, y float64) Selection {
	e.gesture()
	e.Pointer.OnTouchEnd(x, y)
	if e.Modals.HandleClick(x, y) {
		return Selection{Kind: SelectOverlay}
	}
	return e.dispatch()
}

func (e *Experience) dispatch() Selection {
	UpdateWorld(e.Root)
	hits := e.clickTester.Query(e.Pointer.State(), e.Camera, e.Registry.Objects())
	return e.Dispatcher.Dispatch(hits, e.Pointer.State())
}

func (e *Experience) gesture() {
	if e.Video != nil {
		e.Video.Gesture()
	}
}

// HandleDrag orbits the camera by a pointer drag of (dx, dy) pixels.
func (e *Experience) HandleDrag(dx, dy float64) {
	e.Camera.Rotate(dx, dy)
}

// HandleWheel dollies the camera by wheel steps; positive moves closer.
func (e *Experience) HandleWheel(steps float64) {
	e.Camera.Dolly(steps)
}

// HandleResize updates the viewport: camera aspect, pointer conversion,
// modal layout and slider widths.
func (e *Experience) HandleResize(width, height float64) {
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height
	e.Camera.SetViewport(width, height)
	e.Pointer.SetViewport(width, height)
	e.Modals.Layout(width, height)
}

// Size returns the viewport size in pixels.
func (e *Experience) Size() (width, height float64) {
	return e.width, e.height
}

// HandleKey reacts to a key press: Escape closes the open modal, arrows
// page its slider.
func (e *Experience) HandleKey(k Key) {
	e.gesture()
	m := e.Modals.Open()
	if m == nil {
		return
	}
	switch k {
	case KeyEscape:
		e.Modals.Hide(m.Key)
	case KeyLeft:
		if m.Slider != nil {
			m.Slider.Prev()
		}
	case KeyRight:
		if m.Slider != nil {
			m.Slider.Next()
		}
	}
}

// SetTestRunner attaches a scripted runner stepped at the start of every
// Update.
func (e *Experience) SetTestRunner(r *TestRunner) {
	e.runner = r
}

// SetDebug enables per-second frame statistics on the log.
func (e *Experience) SetDebug(on bool) {
	e.debug = on
}

// errLoadNotStarted is returned by WaitLoaded when Load was never called.
var errLoadNotStarted = errors.New("folio: load not started")

// WaitLoaded blocks until the started load finishes or ctx is done, then
// installs the room. Tests and headless runs use it instead of polling.
func (e *Experience) WaitLoaded(ctx context.Context) error {
	if e.load == nil {
		return errLoadNotStarted
	}
	select {
	case <-e.load.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	e.pollLoad()
	return e.loadErr
}
