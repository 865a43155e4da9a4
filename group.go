package grin

import (
	"github.com/cockroachdb/errors"
)

// Group activates all of its visible parts together. Every part is set up
// with the group; the visible set starts as all parts and can be swapped at
// runtime with ResetVisibleParts without rerunning setup.
type Group struct {
	featureBase
	parts           []Feature
	visible         []Feature
	numSetupChecked int
}

// NewGroup creates a group over parts.
func NewGroup(s *Show, name string, parts ...Feature) *Group {
	g := &Group{parts: parts, visible: append([]Feature(nil), parts...)}
	g.init(s, name, g)
	return g
}

// Parts returns the parts set up with the group.
func (g *Group) Parts() []Feature { return g.parts }

// VisibleParts returns the parts activated with the group.
func (g *Group) VisibleParts() []Feature { return g.visible }

func (g *Group) setSetupMode(mode bool) int {
	if !mode {
		for _, p := range g.parts {
			p.Unsetup()
		}
		return 0
	}
	g.numSetupChecked = 0
	n := 0
	for _, p := range g.parts {
		n += p.Setup()
	}
	return n
}

// NeedsMoreSetup reports whether any part is still setting up. Parts found
// ready are not polled again until the next setup cycle.
func (g *Group) NeedsMoreSetup() bool {
	if checking() {
		debugCheckSetup(g, "needsMoreSetup")
	}
	for g.numSetupChecked < len(g.parts) {
		if g.parts[g.numSetupChecked].NeedsMoreSetup() {
			return true
		}
		g.numSetupChecked++
	}
	return false
}

func (g *Group) setActivateMode(mode bool) {
	for _, p := range g.visible {
		if mode {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}
}

// ResetVisibleParts replaces the visible set. Every new part must already be
// set up. While the group is activated, parts entering the set are activated
// before parts leaving it are deactivated; parts in both sets see no call.
func (g *Group) ResetVisibleParts(parts []Feature) {
	if checking() {
		for _, p := range parts {
			debugCheckSetup(p, "resetVisibleParts")
		}
		g.show.checkReplacementSet(g, parts)
	}
	old := g.visible
	if g.activated {
		for _, p := range parts {
			if !containsFeature(old, p) {
				p.Activate()
			}
		}
		for _, p := range old {
			if !containsFeature(parts, p) {
				p.Deactivate()
			}
		}
	}
	g.visible = append([]Feature(nil), parts...)
}

func (g *Group) NextFrame() {
	for _, p := range g.visible {
		p.NextFrame()
	}
}

func (g *Group) MarkDisplayAreasChanged() {
	for _, p := range g.visible {
		p.MarkDisplayAreasChanged()
	}
}

func (g *Group) AddDisplayAreas(ctx RenderContext) {
	for _, p := range g.visible {
		p.AddDisplayAreas(ctx)
	}
}

func (g *Group) PaintFrame(c Canvas) {
	for _, p := range g.visible {
		p.PaintFrame(c)
	}
}

// X returns the leftmost X of the visible parts.
func (g *Group) X() int {
	if len(g.visible) == 0 {
		return 0
	}
	x := g.visible[0].X()
	for _, p := range g.visible[1:] {
		x = min(x, p.X())
	}
	return x
}

// Y returns the topmost Y of the visible parts.
func (g *Group) Y() int {
	if len(g.visible) == 0 {
		return 0
	}
	y := g.visible[0].Y()
	for _, p := range g.visible[1:] {
		y = min(y, p.Y())
	}
	return y
}

func (g *Group) children() []Feature {
	out := g.parts
	for _, v := range g.visible {
		if !containsFeature(g.parts, v) {
			if len(out) == len(g.parts) {
				out = append([]Feature(nil), g.parts...)
			}
			out = append(out, v)
		}
	}
	return out
}

func (g *Group) makeNewClone() Feature {
	c := &Group{}
	c.initClone(&g.featureBase, c)
	return c
}

// initializeClone maps the parts onto their clones. A cloned group starts
// with every part visible.
func (g *Group) initializeClone(original Feature, clones map[int]Feature) {
	o, ok := original.(*Group)
	if !ok {
		panic(errors.AssertionFailedf("grin: group clone of %T", original))
	}
	g.parts = make([]Feature, len(o.parts))
	for i, p := range o.parts {
		g.parts[i] = cloneRef(p, clones)
	}
	g.visible = append([]Feature(nil), g.parts...)
}
