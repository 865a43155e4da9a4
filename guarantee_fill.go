package grin

// GuaranteeFill promises that its part covers a rectangle completely and
// opaquely, so the engine need not erase beneath it. Small gaps the part
// leaves are patched by filler rectangles painted before the part, in the
// show's clear colour on the default target and transparent on layers.
type GuaranteeFill struct {
	modifier
	guaranteed Rect
	fills      []Rect

	guaranteeRecord DrawRecord
	fillRecord      DrawRecord
}

// NewGuaranteeFill creates a guarantee of area over part, patched by fills.
func NewGuaranteeFill(s *Show, name string, area Rect, fills []Rect, part Feature) *GuaranteeFill {
	g := &GuaranteeFill{guaranteed: area, fills: fills}
	g.part = part
	g.init(s, name, g)
	return g
}

// Guaranteed returns the guaranteed rectangle.
func (g *GuaranteeFill) Guaranteed() Rect { return g.guaranteed }

func (g *GuaranteeFill) MarkDisplayAreasChanged() {
	g.fillRecord.SetChanged()
	g.part.MarkDisplayAreasChanged()
}

func (g *GuaranteeFill) AddDisplayAreas(ctx RenderContext) {
	g.guaranteeRecord.SetAreaRect(g.guaranteed)
	g.guaranteeRecord.resetFlags()
	ctx.GuaranteeAreaFilled(&g.guaranteeRecord)
	if len(g.fills) > 0 {
		var u Rect
		for _, f := range g.fills {
			u = u.Union(f)
		}
		g.fillRecord.SetAreaRect(u)
		ctx.AddArea(&g.fillRecord)
	}
	g.part.AddDisplayAreas(ctx)
}

func (g *GuaranteeFill) PaintFrame(c Canvas) {
	if len(g.fills) > 0 {
		mode, a := c.Composite()
		c.SetComposite(BlendNone, 255)
		bg := g.show.ClearColor()
		if c.PaintTarget() > 0 {
			// Layers above the default are erased to transparent.
			bg = ColorTransparent
		}
		for _, f := range g.fills {
			c.FillRect(f, bg)
		}
		c.SetComposite(mode, a)
	}
	g.part.PaintFrame(c)
}

func (g *GuaranteeFill) makeNewClone() Feature {
	n := &GuaranteeFill{guaranteed: g.guaranteed, fills: g.fills}
	n.initClone(&g.featureBase, n)
	return n
}

func (g *GuaranteeFill) initializeClone(original Feature, clones map[int]Feature) {
	g.cloneFrom(&original.(*GuaranteeFill).modifier, clones)
}
