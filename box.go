package grin

// BoxStyle describes how a Box is drawn. A nil Fill or Outline is not drawn.
type BoxStyle struct {
	Fill         *Color
	Outline      *Color
	OutlineWidth int
	// Scale, when set, scales the box through a four-field scaling model.
	Scale *InterpolatedModel
}

// Box is a filled and/or outlined rectangle.
type Box struct {
	featureBase
	rect   Rect
	style  BoxStyle
	record DrawRecord
}

// NewBox creates a box covering rect.
func NewBox(s *Show, name string, rect Rect, style BoxStyle) *Box {
	if style.Outline != nil && style.OutlineWidth <= 0 {
		style.OutlineWidth = 1
	}
	b := &Box{rect: rect, style: style}
	b.init(s, name, b)
	return b
}

func (b *Box) setSetupMode(mode bool) int { return 0 }
func (b *Box) setActivateMode(mode bool)  {}

func (b *Box) area() Rect {
	if b.style.Scale != nil {
		return b.style.Scale.ScaleRect(b.rect)
	}
	return b.rect
}

func (b *Box) MarkDisplayAreasChanged() { b.record.SetChanged() }

func (b *Box) AddDisplayAreas(ctx RenderContext) {
	b.record.SetAreaRect(b.area())
	ctx.AddArea(&b.record)
}

func (b *Box) PaintFrame(c Canvas) {
	r := b.area()
	if b.style.Fill != nil {
		c.FillRect(r, *b.style.Fill)
	}
	if b.style.Outline != nil {
		c.StrokeRect(r, *b.style.Outline, b.style.OutlineWidth)
	}
}

func (b *Box) X() int { return b.rect.X }
func (b *Box) Y() int { return b.rect.Y }

func (b *Box) makeNewClone() Feature {
	n := &Box{rect: b.rect, style: b.style}
	n.initClone(&b.featureBase, n)
	return n
}

func (b *Box) initializeClone(original Feature, clones map[int]Feature) {
	if m := original.(*Box).style.Scale; m != nil {
		if c, ok := clones[m.ID()].(*InterpolatedModel); ok {
			b.style.Scale = c
		}
	}
}
