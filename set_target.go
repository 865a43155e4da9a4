package grin

// SetTarget routes its part to another draw target. The previous target is
// restored after the part has been visited.
type SetTarget struct {
	modifier
	target int
}

// NewSetTarget routes part to the draw target with the given index. Use
// Show.DrawTargetIndex to look an index up by name.
func NewSetTarget(s *Show, name string, target int, part Feature) *SetTarget {
	t := &SetTarget{target: target}
	t.part = part
	t.init(s, name, t)
	return t
}

// Target returns the draw target index.
func (t *SetTarget) Target() int { return t.target }

func (t *SetTarget) AddDisplayAreas(ctx RenderContext) {
	prev := ctx.SetTarget(t.target)
	t.part.AddDisplayAreas(ctx)
	ctx.SetTarget(prev)
}

func (t *SetTarget) PaintFrame(c Canvas) {
	prev := c.SetTarget(t.target)
	t.part.PaintFrame(c)
	c.SetTarget(prev)
}

func (t *SetTarget) makeNewClone() Feature {
	n := &SetTarget{target: t.target}
	n.initClone(&t.featureBase, n)
	return n
}

func (t *SetTarget) initializeClone(original Feature, clones map[int]Feature) {
	t.cloneFrom(&original.(*SetTarget).modifier, clones)
}
