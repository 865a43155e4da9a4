package grin

// RenderContext collects the draw records of one frame. Features report into
// it from AddDisplayAreas; modifiers hand their children a decorator that
// rewrites each record before passing it on to the parent context.
type RenderContext interface {
	// AddArea reports a record drawn this frame.
	AddArea(r *DrawRecord)
	// GuaranteeAreaFilled declares that r's area will be completely and
	// opaquely painted this frame, so nothing beneath it needs erasing.
	GuaranteeAreaFilled(r *DrawRecord)
	// SetTarget switches the draw target for subsequent records and returns
	// the previous one.
	SetTarget(target int) int
}

// renderContextBase is the root context owned by the engine. It computes
// each frame's dirty rectangles from the difference between the records
// reported this frame and those reported the frame before.
type renderContextBase struct {
	frame   int64
	target  int
	areas   []*RenderArea
	current []*DrawRecord
	last    []*DrawRecord
}

func newRenderContextBase(numTargets, maxRects int) *renderContextBase {
	c := &renderContextBase{areas: make([]*RenderArea, max(numTargets, 1))}
	for i := range c.areas {
		c.areas[i] = NewRenderArea(maxRects)
	}
	return c
}

// begin starts collecting a new frame. Dirty rectangles not yet painted
// carry over; guarantees do not.
func (c *renderContextBase) begin() {
	c.frame++
	c.target = 0
	for _, a := range c.areas {
		a.resetGuarantees()
	}
}

// painted clears the dirty rectangles once they have been repainted.
func (c *renderContextBase) painted() {
	for _, a := range c.areas {
		a.Reset()
	}
}

func (c *renderContextBase) clampTarget(t int) int {
	if t < 0 {
		return 0
	}
	if t >= len(c.areas) {
		return len(c.areas) - 1
	}
	return t
}

func (c *renderContextBase) AddArea(r *DrawRecord) {
	if r.frame == c.frame {
		// Reported twice in one frame; keep the union so neither copy is lost.
		c.areas[c.target].Add(r.area)
		return
	}
	r.wasDrawn = r.frame != 0 && r.frame == c.frame-1
	r.frame = c.frame
	r.target = c.target
	c.current = append(c.current, r)
}

func (c *renderContextBase) GuaranteeAreaFilled(r *DrawRecord) {
	if r.semiTransparent {
		return
	}
	c.areas[c.target].Guarantee(r.area)
}

func (c *renderContextBase) SetTarget(target int) int {
	prev := c.target
	c.target = c.clampTarget(target)
	return prev
}

// invalidate marks every target as needing a full repaint of bounds.
func (c *renderContextBase) invalidate(bounds Rect) {
	for _, a := range c.areas {
		a.Add(bounds)
	}
}

// collect turns the frame's records into dirty rectangles and rolls the
// records over to the next frame. It returns the number of records seen.
func (c *renderContextBase) collect(bounds Rect) int {
	for _, r := range c.current {
		switch {
		case !r.wasDrawn:
			c.areas[r.target].Add(r.area)
		case r.changed || r.area != r.lastArea || r.target != r.lastTarget:
			c.areas[r.lastTarget].Add(r.lastArea)
			c.areas[r.target].Add(r.area)
		}
	}
	for _, r := range c.last {
		if r.frame != c.frame {
			c.areas[c.clampTarget(r.lastTarget)].Add(r.lastArea)
		}
	}
	n := len(c.current)
	for _, r := range c.current {
		r.lastArea = r.area
		r.lastTarget = r.target
		r.resetFlags()
	}
	for _, a := range c.areas {
		a.Clip(bounds)
	}
	c.last, c.current = c.current, c.last[:0]
	return n
}

// ---------------------------------------------------------------------------
// decorators

// translateContext offsets every record by (dx, dy).
type translateContext struct {
	parent RenderContext
	dx, dy int
}

func (t *translateContext) AddArea(r *DrawRecord) {
	r.applyTranslation(t.dx, t.dy)
	t.parent.AddArea(r)
}

func (t *translateContext) GuaranteeAreaFilled(r *DrawRecord) {
	r.applyTranslation(t.dx, t.dy)
	t.parent.GuaranteeAreaFilled(r)
}

func (t *translateContext) SetTarget(target int) int { return t.parent.SetTarget(target) }

// clipContext intersects every record with a clip rectangle.
type clipContext struct {
	parent RenderContext
	clip   Rect
}

func (c *clipContext) AddArea(r *DrawRecord) {
	r.addClip(c.clip)
	c.parent.AddArea(r)
}

func (c *clipContext) GuaranteeAreaFilled(r *DrawRecord) {
	r.addClip(c.clip)
	c.parent.GuaranteeAreaFilled(r)
}

func (c *clipContext) SetTarget(target int) int { return c.parent.SetTarget(target) }

// blendContext taints records drawn with blending. While blending, opaque
// fill guarantees from below no longer hold and are dropped. changed forces
// a repaint of every record, used when the blend alpha moved.
type blendContext struct {
	parent   RenderContext
	blending bool
	changed  bool
}

func (b *blendContext) AddArea(r *DrawRecord) {
	if b.blending {
		r.SetSemiTransparent()
	}
	if b.changed {
		r.SetChanged()
	}
	b.parent.AddArea(r)
}

func (b *blendContext) GuaranteeAreaFilled(r *DrawRecord) {
	if b.blending {
		return
	}
	b.parent.GuaranteeAreaFilled(r)
}

func (b *blendContext) SetTarget(target int) int { return b.parent.SetTarget(target) }
