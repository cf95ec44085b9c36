package folio

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// TickSource drives an Experience. The ebiten game loop is one; tests use
// ManualTicker.
type TickSource interface {
	// Run calls step once per tick until it returns an error or the source
	// stops.
	Run(step func(dt float64) error) error
}

// ManualTicker fires a fixed number of ticks on demand.
type ManualTicker struct {
	DT   float64
	step func(dt float64) error
}

// NewManualTicker creates a ticker with a fixed step of dt seconds.
func NewManualTicker(dt float64) *ManualTicker {
	return &ManualTicker{DT: dt}
}

// Run records the step function. Ticks happen through Tick.
func (t *ManualTicker) Run(step func(dt float64) error) error {
	t.step = step
	return nil
}

// Tick fires n ticks, stopping at the first error.
func (t *ManualTicker) Tick(n int) error {
	if t.step == nil {
		return errors.New("manual ticker: not running")
	}
	for i := 0; i < n; i++ {
		if err := t.step(t.DT); err != nil {
			return err
		}
	}
	return nil
}

// Drive attaches the experience to src.
func (e *Experience) Drive(src TickSource) error {
	return src.Run(func(dt float64) error {
		e.Update(dt)
		return nil
	})
}

// RunConfig holds window options for Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS draws the FPS widget in the corner.
	ShowFPS bool
	// ExitOnScriptDone ends Run once an attached test runner finishes.
	ExitOnScriptDone bool
}

// errScriptDone ends the game loop after a scripted run.
var errScriptDone = errors.New("folio: script done")

// game adapts an Experience to ebiten.Game.
type game struct {
	exp      *Experience
	renderer *Renderer
	cfg      RunConfig
	fps      *fpsWidget
}

func (g *game) Update() error {
	g.exp.pollInput()
	g.exp.Update(1 / float64(ebiten.TPS()))
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	if g.cfg.ExitOnScriptDone && g.exp.runner != nil && g.exp.runner.Done() && len(g.exp.screenshotQueue) == 0 {
		return errScriptDone
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.exp)
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.exp.flushScreenshots(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.exp.HandleResize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the experience from ebiten's game loop
// until the window closes. It blocks.
func Run(exp *Experience, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = exp.Config.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = exp.Config.Height
	}
	if cfg.Title == "" {
		cfg.Title = exp.Config.Title
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(exp.Config.TPS)
	exp.Camera.SetTickRate(exp.Config.TPS)

	g := &game{exp: exp, renderer: NewRenderer(exp.Config), cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSWidget()
	}
	err := ebiten.RunGame(g)
	if errors.Is(err, errScriptDone) {
		return nil
	}
	return err
}
