package grin

// Clipped restricts its part to a rectangle, both for painting and for the
// areas it reports.
type Clipped struct {
	modifier
	region Rect
	ctx    clipContext
}

// NewClipped clips part to region.
func NewClipped(s *Show, name string, region Rect, part Feature) *Clipped {
	c := &Clipped{region: region}
	c.part = part
	c.init(s, name, c)
	return c
}

// Region returns the clip rectangle.
func (c *Clipped) Region() Rect { return c.region }

func (c *Clipped) AddDisplayAreas(ctx RenderContext) {
	c.ctx.parent = ctx
	c.ctx.clip = c.region
	c.part.AddDisplayAreas(&c.ctx)
}

func (c *Clipped) PaintFrame(cv Canvas) {
	old := cv.Clip()
	ox, oy := cv.Origin()
	clip := old.Intersect(c.region.Translate(ox, oy))
	if clip.Empty() {
		return
	}
	cv.SetClip(clip)
	c.part.PaintFrame(cv)
	cv.SetClip(old)
}

func (c *Clipped) makeNewClone() Feature {
	n := &Clipped{region: c.region}
	n.initClone(&c.featureBase, n)
	return n
}

func (c *Clipped) initializeClone(original Feature, clones map[int]Feature) {
	c.cloneFrom(&original.(*Clipped).modifier, clones)
}
