package grin

// SrcOver paints its part with source-over blending instead of the default
// copy. Its part's records become semi-transparent, and any opaque fill the
// part guarantees no longer holds.
type SrcOver struct {
	modifier
	ctx blendContext
}

// NewSrcOver wraps part.
func NewSrcOver(s *Show, name string, part Feature) *SrcOver {
	o := &SrcOver{}
	o.part = part
	o.init(s, name, o)
	return o
}

func (o *SrcOver) AddDisplayAreas(ctx RenderContext) {
	o.ctx = blendContext{parent: ctx, blending: true}
	o.part.AddDisplayAreas(&o.ctx)
}

func (o *SrcOver) PaintFrame(c Canvas) {
	mode, a := c.Composite()
	c.SetComposite(BlendNormal, a)
	o.part.PaintFrame(c)
	c.SetComposite(mode, a)
}

func (o *SrcOver) makeNewClone() Feature {
	n := &SrcOver{}
	n.initClone(&o.featureBase, n)
	return n
}

func (o *SrcOver) initializeClone(original Feature, clones map[int]Feature) {
	o.cloneFrom(&original.(*SrcOver).modifier, clones)
}
