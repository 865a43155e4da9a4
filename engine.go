package grin

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
)

// Engine plays one or more shows. Every tick it advances the shows, works
// out which rectangles changed, and repaints only those. It implements
// ebiten.Game; Step runs the same cycle headlessly against any Canvas.
type Engine struct {
	rt     *Runtime
	shows  []*Show
	ctx    *renderContextBase
	bounds Rect

	frame       int64
	fullRepaint bool
	stats       FrameStats

	layers       layers
	screenBounds Rect
	hooks        []func(e *Engine) error
	testRunner   *TestRunner
	overlay      *debugOverlay

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewEngine creates an engine for shows, sized from the runtime config.
func NewEngine(rt *Runtime, shows ...*Show) *Engine {
	cfg := rt.Config
	e := &Engine{
		rt:            rt,
		shows:         shows,
		ctx:           newRenderContextBase(len(cfg.Engine.DrawTargets), cfg.Engine.MaxDirtyRects),
		bounds:        cfg.Bounds(),
		fullRepaint:   true,
		ScreenshotDir: "screenshots",
	}
	if cfg.Engine.Debug {
		e.overlay = newDebugOverlay()
	}
	return e
}

// Runtime returns the engine's runtime.
func (e *Engine) Runtime() *Runtime { return e.rt }

// Shows returns the shows being played.
func (e *Engine) Shows() []*Show { return e.shows }

// AddShow adds a show, painted above those already added.
func (e *Engine) AddShow(s *Show) {
	e.shows = append(e.shows, s)
	e.fullRepaint = true
}

// OnUpdate registers fn to run at the start of every ebiten Update, before
// the shows advance. Returning an error stops the game.
func (e *Engine) OnUpdate(fn func(e *Engine) error) {
	e.hooks = append(e.hooks, fn)
}

// Invalidate forces the next frame to repaint everything.
func (e *Engine) Invalidate() {
	e.fullRepaint = true
}

// Stats returns the statistics of the most recent frame.
func (e *Engine) Stats() FrameStats { return e.stats }

func (e *Engine) clearColor(target int) Color {
	if target > 0 {
		return ColorTransparent
	}
	if len(e.shows) > 0 {
		return e.shows[0].ClearColor()
	}
	return e.rt.Config.Clear()
}

// advance moves every show one frame forward and collects the dirty
// rectangles. It must be bracketed by the scheduler's frame gate.
func (e *Engine) advance() {
	e.frame++
	e.stats = FrameStats{Frame: e.frame}
	t0 := time.Now()
	for _, s := range e.shows {
		s.NextFrame()
	}
	e.stats.AdvanceTime = time.Since(t0)

	t0 = time.Now()
	e.ctx.begin()
	for _, s := range e.shows {
		s.AddDisplayAreas(e.ctx)
	}
	if e.fullRepaint {
		e.ctx.invalidate(e.bounds)
		e.fullRepaint = false
	}
	if e.overlay != nil {
		e.ctx.areas[0].Add(e.overlay.rect)
	}
	e.stats.Records = e.ctx.collect(e.bounds)
	e.stats.CollectTime = time.Since(t0)
}

// paint repaints the dirty rectangles of every target. canvasFor returns
// the canvas a target is painted on.
func (e *Engine) paint(canvasFor func(target int) Canvas) {
	t0 := time.Now()
	for t, area := range e.ctx.areas {
		c := canvasFor(t)
		for _, r := range area.Rects() {
			c.Reset(t)
			c.SetClip(r)
			if !area.IsGuaranteed(r) {
				prev := c.SetTarget(t)
				c.FillRect(r, e.clearColor(t))
				c.SetTarget(prev)
				e.stats.Erased++
			}
			for _, s := range e.shows {
				s.Paint(c)
			}
			e.stats.DirtyRects++
			e.stats.DirtyPixels += r.Area()
		}
	}
	e.stats.PaintTime = time.Since(t0)
}

func (e *Engine) finishFrame() {
	e.ctx.painted()
	e.rt.Metrics.frame(e.stats.DirtyRects)
	e.debugLog(e.stats)
}

// Step runs one full frame headlessly. Target t is painted on
// targets[min(t, len(targets)-1)].
func (e *Engine) Step(targets ...Canvas) FrameStats {
	if len(targets) == 0 {
		panic(errors.AssertionFailedf("grin: step needs at least one canvas"))
	}
	e.rt.Setup.FrameBegin()
	defer e.rt.Setup.FrameEnd()
	e.advance()
	e.paint(func(t int) Canvas {
		return targets[min(t, len(targets)-1)]
	})
	e.finishFrame()
	return e.stats
}

// Update implements ebiten.Game.
func (e *Engine) Update() error {
	for _, h := range e.hooks {
		if err := h(e); err != nil {
			return err
		}
	}
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.rt.Setup.FrameBegin()
	defer e.rt.Setup.FrameEnd()
	e.advance()
	if e.testRunner != nil && e.testRunner.Done() && e.testRunner.ExitOnDone && len(e.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game. The screen keeps its content between frames,
// so only dirty rectangles are repainted.
func (e *Engine) Draw(screen *ebiten.Image) {
	e.rt.Setup.FrameBegin()
	defer e.rt.Setup.FrameEnd()

	b := screen.Bounds()
	sb := Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
	n := len(e.ctx.areas)
	if e.layers.ensure(n, e.bounds.Width, e.bounds.Height) || sb != e.screenBounds {
		e.screenBounds = sb
		e.ctx.invalidate(e.bounds)
	}

	screenCanvas := NewEbitenCanvas(screen)
	canvases := make([]Canvas, n)
	canvases[0] = screenCanvas
	for i := 1; i < n; i++ {
		canvases[i] = NewEbitenCanvas(e.layers.images[i-1])
	}
	// The screen under a repainted layer rectangle is repainted too, so the
	// layer is never blended over its own previous composite.
	var dirty []Rect
	if n > 1 {
		for _, a := range e.ctx.areas[1:] {
			for _, r := range a.Rects() {
				e.ctx.areas[0].Add(r)
			}
		}
		dirty = append(dirty, e.ctx.areas[0].Rects()...)
	}
	e.paint(func(t int) Canvas { return canvases[t] })
	for _, r := range dirty {
		e.layers.composite(screen, r)
	}
	e.flushScreenshots(screen)
	if e.overlay != nil {
		e.overlay.draw(screen, e.stats)
	}
	e.finishFrame()
}

// Layout implements ebiten.Game. The logical screen is the configured size.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.bounds.Width, e.bounds.Height
}

// RunGame opens a window and plays the engine until the window is closed or
// a hook returns an error.
func RunGame(e *Engine, title string) error {
	cfg := e.rt.Config.Screen
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TicksPerSecond)
	ebiten.SetScreenClearedEveryFrame(false)
	if err := ebiten.RunGame(e); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "grin: run game")
	}
	return nil
}
