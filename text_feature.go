package grin

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var defaultFace text.Face

// DefaultFace returns the 7x13 bitmap face used when a Text has no face.
func DefaultFace() text.Face {
	if defaultFace == nil {
		defaultFace = text.NewGoXFace(basicfont.Face7x13)
	}
	return defaultFace
}

// Text draws lines of text, top-aligned at (x, y), over an optional
// background box.
type Text struct {
	featureBase
	x, y       int
	lines      []string
	face       text.Face
	color      Color
	background *Color
	record     DrawRecord
}

// NewText creates a text feature. A nil face uses DefaultFace.
func NewText(s *Show, name string, x, y int, lines []string, face text.Face, c Color, background *Color) *Text {
	if face == nil {
		face = DefaultFace()
	}
	t := &Text{x: x, y: y, lines: lines, face: face, color: c, background: background}
	t.init(s, name, t)
	return t
}

func (t *Text) setSetupMode(mode bool) int { return 0 }
func (t *Text) setActivateMode(mode bool)  {}

// Lines returns the text.
func (t *Text) Lines() []string { return t.lines }

// SetLines replaces the text. It must be called on the model goroutine.
func (t *Text) SetLines(lines []string) {
	t.lines = lines
	t.record.SetChanged()
}

func (t *Text) lineHeight() int {
	m := t.face.Metrics()
	return int(math.Ceil(m.HAscent + m.HDescent + m.HLineGap))
}

func (t *Text) area() Rect {
	w := 0
	for _, l := range t.lines {
		lw, _ := text.Measure(l, t.face, 0)
		w = max(w, int(math.Ceil(lw)))
	}
	return Rect{X: t.x, Y: t.y, Width: w, Height: len(t.lines) * t.lineHeight()}
}

func (t *Text) MarkDisplayAreasChanged() { t.record.SetChanged() }

func (t *Text) AddDisplayAreas(ctx RenderContext) {
	t.record.SetAreaRect(t.area())
	ctx.AddArea(&t.record)
}

func (t *Text) PaintFrame(c Canvas) {
	if t.background != nil {
		c.FillRect(t.area(), *t.background)
	}
	lh := t.lineHeight()
	for i, l := range t.lines {
		c.DrawText(l, t.face, t.x, t.y+i*lh, t.color)
	}
}

func (t *Text) X() int { return t.x }
func (t *Text) Y() int { return t.y }

func (t *Text) makeNewClone() Feature {
	n := &Text{x: t.x, y: t.y, lines: t.lines, face: t.face, color: t.color, background: t.background}
	n.initClone(&t.featureBase, n)
	return n
}
