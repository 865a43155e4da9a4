package grin

// Translator moves its part by the (FieldX, FieldY) of a translation model.
// In relative mode the model gives the offset directly. In absolute mode the
// model gives the position the part's upper-left corner should be moved to,
// measured against where the part was when the show was initialized.
//
// The model is not a child: it is activated and advanced by whoever lists
// it, and must come before the translator in frame order.
type Translator struct {
	modifier
	model        *InterpolatedModel
	absolute     bool
	baseX, baseY int
	based        bool

	// Snapshot taken in AddDisplayAreas and reused by PaintFrame.
	dx, dy int
	hidden bool
	ctx    translateContext
}

// NewTranslator creates a translator of part driven by model.
func NewTranslator(s *Show, name string, model *InterpolatedModel, absolute bool, part Feature) *Translator {
	t := &Translator{model: model, absolute: absolute}
	t.part = part
	t.init(s, name, t)
	return t
}

// Model returns the translation model.
func (t *Translator) Model() *InterpolatedModel { return t.model }

// Initialize records the part's resting position for absolute mode. Clones
// inherit the original's.
func (t *Translator) Initialize() {
	if t.absolute && !t.based {
		t.baseX, t.baseY = t.part.X(), t.part.Y()
		t.based = true
	}
}

func (t *Translator) snapshot() {
	x, y := t.model.X(), t.model.Y()
	t.hidden = x == Offscreen || y == Offscreen
	if t.hidden {
		return
	}
	t.dx, t.dy = x-t.baseX, y-t.baseY
}

func (t *Translator) AddDisplayAreas(ctx RenderContext) {
	t.snapshot()
	if t.hidden {
		return
	}
	t.ctx.parent = ctx
	t.ctx.dx, t.ctx.dy = t.dx, t.dy
	t.part.AddDisplayAreas(&t.ctx)
}

func (t *Translator) PaintFrame(c Canvas) {
	if t.hidden {
		return
	}
	c.Translate(t.dx, t.dy)
	t.part.PaintFrame(c)
	c.Translate(-t.dx, -t.dy)
}

func (t *Translator) X() int { return t.part.X() + t.dx }
func (t *Translator) Y() int { return t.part.Y() + t.dy }

func (t *Translator) makeNewClone() Feature {
	n := &Translator{absolute: t.absolute, baseX: t.baseX, baseY: t.baseY, based: t.based}
	n.initClone(&t.featureBase, n)
	return n
}

// initializeClone follows the model onto its clone when the model was part
// of the cloned graph, and shares it otherwise.
func (t *Translator) initializeClone(original Feature, clones map[int]Feature) {
	o := original.(*Translator)
	t.cloneFrom(&o.modifier, clones)
	t.model = o.model
	if c, ok := clones[o.model.ID()].(*InterpolatedModel); ok {
		t.model = c
	}
}
