package grin

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Canvas is the paint surface features draw on. Draw calls take coordinates
// in the calling feature's space; the canvas adds its current origin and
// clips to its current clip rectangle, which is kept in device coordinates.
//
// A canvas paints one draw target at a time. SetTarget switches the target
// that subsequent draw calls are routed to and returns the previous one;
// draw calls routed to any target other than the one being painted are
// dropped.
type Canvas interface {
	Bounds() Rect
	// Reset prepares the canvas to paint the given draw target: clip is the
	// full bounds, origin is (0, 0), composite is BlendNone at full alpha.
	Reset(target int)
	PaintTarget() int
	SetTarget(target int) int

	SetClip(r Rect)
	Clip() Rect
	Translate(dx, dy int)
	Origin() (x, y int)
	Composite() (BlendMode, uint8)
	SetComposite(mode BlendMode, alpha uint8)

	FillRect(r Rect, c Color)
	StrokeRect(r Rect, c Color, width int)
	DrawImage(img *ebiten.Image, x, y int)
	DrawImageScaled(img *ebiten.Image, dst Rect)
	DrawText(s string, face text.Face, x, y int, c Color)
}

// canvasState is the clip/origin/composite/routing bookkeeping shared by the
// Canvas implementations.
type canvasState struct {
	bounds Rect
	clip   Rect
	ox, oy int
	mode   BlendMode
	alpha  uint8
	pass   int
	route  int
}

func (c *canvasState) Bounds() Rect { return c.bounds }

func (c *canvasState) Reset(target int) {
	c.clip = c.bounds
	c.ox, c.oy = 0, 0
	c.mode = BlendNone
	c.alpha = 255
	c.pass = target
	c.route = 0
}

func (c *canvasState) PaintTarget() int { return c.pass }

func (c *canvasState) SetTarget(target int) int {
	prev := c.route
	c.route = target
	return prev
}

func (c *canvasState) SetClip(r Rect) { c.clip = r.Intersect(c.bounds) }
func (c *canvasState) Clip() Rect     { return c.clip }

func (c *canvasState) Translate(dx, dy int) {
	c.ox += dx
	c.oy += dy
}

func (c *canvasState) Origin() (int, int) { return c.ox, c.oy }

func (c *canvasState) Composite() (BlendMode, uint8) { return c.mode, c.alpha }

func (c *canvasState) SetComposite(mode BlendMode, alpha uint8) {
	c.mode = mode
	c.alpha = alpha
}

// device converts r from feature to device coordinates and clips it.
func (c *canvasState) device(r Rect) Rect {
	return r.Translate(c.ox, c.oy).Intersect(c.clip)
}

func (c *canvasState) routed() bool { return c.route == c.pass }

// ---------------------------------------------------------------------------
// ebiten

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// to fill rectangles through DrawImage, so fills honour the blend mode.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// ebitenCanvas paints onto an *ebiten.Image. Clipping uses SubImage, which
// keeps the parent image's coordinate system.
type ebitenCanvas struct {
	canvasState
	dst *ebiten.Image
}

// NewEbitenCanvas wraps dst as a Canvas.
func NewEbitenCanvas(dst *ebiten.Image) Canvas {
	b := dst.Bounds()
	c := &ebitenCanvas{dst: dst}
	c.bounds = Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
	c.Reset(0)
	return c
}

func (c *ebitenCanvas) clipped() *ebiten.Image {
	r := c.clip
	return c.dst.SubImage(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)).(*ebiten.Image)
}

func (c *ebitenCanvas) options() *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	op.Blend = c.mode.EbitenBlend()
	return op
}

func (c *ebitenCanvas) scaleColor(op *ebiten.DrawImageOptions, col Color) {
	a := float32(col.A) * float32(c.alpha) / 255
	op.ColorScale.Scale(float32(col.R)*a, float32(col.G)*a, float32(col.B)*a, a)
}

func (c *ebitenCanvas) FillRect(r Rect, col Color) {
	if !c.routed() {
		return
	}
	d := c.device(r)
	if d.Empty() {
		return
	}
	op := c.options()
	op.GeoM.Scale(float64(d.Width), float64(d.Height))
	op.GeoM.Translate(float64(d.X), float64(d.Y))
	c.scaleColor(op, col)
	c.dst.DrawImage(ensureWhitePixel(), op)
}

func (c *ebitenCanvas) StrokeRect(r Rect, col Color, width int) {
	strokeRect(c, r, col, width)
}

func (c *ebitenCanvas) DrawImage(img *ebiten.Image, x, y int) {
	if img == nil || !c.routed() {
		return
	}
	b := img.Bounds()
	if c.device(Rect{X: x, Y: y, Width: b.Dx(), Height: b.Dy()}).Empty() {
		return
	}
	op := c.options()
	op.GeoM.Translate(float64(x+c.ox), float64(y+c.oy))
	op.ColorScale.ScaleAlpha(float32(c.alpha) / 255)
	c.clipped().DrawImage(img, op)
}

func (c *ebitenCanvas) DrawImageScaled(img *ebiten.Image, dst Rect) {
	if img == nil || !c.routed() || c.device(dst).Empty() {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := c.options()
	op.GeoM.Scale(float64(dst.Width)/float64(b.Dx()), float64(dst.Height)/float64(b.Dy()))
	op.GeoM.Translate(float64(dst.X+c.ox), float64(dst.Y+c.oy))
	op.ColorScale.ScaleAlpha(float32(c.alpha) / 255)
	c.clipped().DrawImage(img, op)
}

func (c *ebitenCanvas) DrawText(s string, face text.Face, x, y int, col Color) {
	if face == nil || !c.routed() || c.clip.Empty() {
		return
	}
	op := &text.DrawOptions{}
	op.Blend = c.mode.EbitenBlend()
	op.GeoM.Translate(float64(x+c.ox), float64(y+c.oy))
	c.scaleColor(&op.DrawImageOptions, col)
	text.Draw(c.clipped(), s, face, op)
}

func strokeRect(c Canvas, r Rect, col Color, width int) {
	if width <= 0 || r.Empty() {
		return
	}
	w := min(width, r.Width, r.Height)
	c.FillRect(Rect{X: r.X, Y: r.Y, Width: r.Width, Height: w}, col)
	c.FillRect(Rect{X: r.X, Y: r.Y + r.Height - w, Width: r.Width, Height: w}, col)
	c.FillRect(Rect{X: r.X, Y: r.Y + w, Width: w, Height: r.Height - 2*w}, col)
	c.FillRect(Rect{X: r.X + r.Width - w, Y: r.Y + w, Width: w, Height: r.Height - 2*w}, col)
}

// ---------------------------------------------------------------------------
// recording

// CanvasOp is one draw call captured by a RecordingCanvas. Rect is in device
// coordinates and already clipped.
type CanvasOp struct {
	Kind   string // "fill", "image", "text"
	Rect   Rect
	Color  Color
	Mode   BlendMode
	Alpha  uint8
	Text   string
	Target int
}

// RecordingCanvas logs draw calls instead of producing pixels. It is used by
// headless playback and tests.
type RecordingCanvas struct {
	canvasState
	Ops []CanvasOp
}

// NewRecordingCanvas creates a recording canvas of the given size.
func NewRecordingCanvas(width, height int) *RecordingCanvas {
	c := &RecordingCanvas{}
	c.bounds = Rect{Width: width, Height: height}
	c.Reset(0)
	return c
}

// Clear drops the recorded ops.
func (c *RecordingCanvas) Clear() {
	c.Ops = c.Ops[:0]
}

func (c *RecordingCanvas) record(kind string, r Rect, col Color, s string) {
	if !c.routed() {
		return
	}
	d := c.device(r)
	if d.Empty() {
		return
	}
	c.Ops = append(c.Ops, CanvasOp{
		Kind:   kind,
		Rect:   d,
		Color:  col,
		Mode:   c.mode,
		Alpha:  c.alpha,
		Text:   s,
		Target: c.pass,
	})
}

func (c *RecordingCanvas) FillRect(r Rect, col Color) {
	c.record("fill", r, col, "")
}

func (c *RecordingCanvas) StrokeRect(r Rect, col Color, width int) {
	strokeRect(c, r, col, width)
}

func (c *RecordingCanvas) DrawImage(img *ebiten.Image, x, y int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	c.record("image", Rect{X: x, Y: y, Width: b.Dx(), Height: b.Dy()}, Color{}, "")
}

func (c *RecordingCanvas) DrawImageScaled(img *ebiten.Image, dst Rect) {
	if img == nil {
		return
	}
	c.record("image", dst, Color{}, "")
}

func (c *RecordingCanvas) DrawText(s string, face text.Face, x, y int, col Color) {
	w, h := 0, 0
	if face != nil {
		fw, fh := text.Measure(s, face, 0)
		w, h = int(fw+0.5), int(fh+0.5)
	}
	c.record("text", Rect{X: x, Y: y, Width: w, Height: h}, col, s)
}

// OpsOfKind returns the recorded ops of one kind.
func (c *RecordingCanvas) OpsOfKind(kind string) []CanvasOp {
	var out []CanvasOp
	for _, op := range c.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
