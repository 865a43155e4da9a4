package grin

import (
	"github.com/cockroachdb/errors"
)

// Assembly holds named parts of which exactly one, the current part, is
// activated. All parts are set up with the assembly so the selection can
// change at any time.
type Assembly struct {
	featureBase
	partNames       []string
	parts           []Feature
	current         Feature
	numSetupChecked int
}

// NewAssembly creates an assembly. names and parts are parallel; the first
// part starts as current.
func NewAssembly(s *Show, name string, names []string, parts []Feature) *Assembly {
	if len(names) != len(parts) || len(parts) == 0 {
		panic(errors.AssertionFailedf("grin: assembly %q needs one name per part and at least one part", name))
	}
	a := &Assembly{partNames: names, parts: parts, current: parts[0]}
	a.init(s, name, a)
	return a
}

// Parts returns the assembly's parts.
func (a *Assembly) Parts() []Feature { return a.parts }

// PartNames returns the part names, parallel to Parts.
func (a *Assembly) PartNames() []string { return a.partNames }

// CurrentPart returns the selected part.
func (a *Assembly) CurrentPart() Feature { return a.current }

// FindPart returns the part with the given name, or nil.
func (a *Assembly) FindPart(name string) Feature {
	for i, n := range a.partNames {
		if n == name {
			return a.parts[i]
		}
	}
	return nil
}

// SetCurrentPart selects the named part. It reports whether the name was
// found.
func (a *Assembly) SetCurrentPart(name string) bool {
	f := a.FindPart(name)
	if f == nil {
		return false
	}
	a.SetCurrentFeature(f)
	return true
}

// SetCurrentFeature selects f, which must be one of the parts. While the
// assembly is activated the new part is activated before the old part is
// deactivated, so there is never a frame with no part showing. The show's
// director is told about every change.
func (a *Assembly) SetCurrentFeature(f Feature) {
	if f == a.current {
		return
	}
	if checking() && !containsFeature(a.parts, f) {
		panic(errors.AssertionFailedf("grin: %q is not a part of assembly %q", f.Name(), a.name))
	}
	old := a.current
	a.current = f
	if a.activated {
		f.Activate()
		old.Deactivate()
	}
	a.show.Director().NotifyAssemblyPartSelected(a, f, old, a.activated)
}

func (a *Assembly) setSetupMode(mode bool) int {
	if !mode {
		for _, p := range a.parts {
			p.Unsetup()
		}
		return 0
	}
	a.numSetupChecked = 0
	n := 0
	for _, p := range a.parts {
		n += p.Setup()
	}
	return n
}

// NeedsMoreSetup reports whether any part is still setting up.
func (a *Assembly) NeedsMoreSetup() bool {
	if checking() {
		debugCheckSetup(a, "needsMoreSetup")
	}
	for a.numSetupChecked < len(a.parts) {
		if a.parts[a.numSetupChecked].NeedsMoreSetup() {
			return true
		}
		a.numSetupChecked++
	}
	return false
}

func (a *Assembly) setActivateMode(mode bool) {
	if mode {
		a.current.Activate()
	} else {
		a.current.Deactivate()
	}
}

func (a *Assembly) NextFrame()                        { a.current.NextFrame() }
func (a *Assembly) MarkDisplayAreasChanged()          { a.current.MarkDisplayAreasChanged() }
func (a *Assembly) AddDisplayAreas(ctx RenderContext) { a.current.AddDisplayAreas(ctx) }
func (a *Assembly) PaintFrame(c Canvas)               { a.current.PaintFrame(c) }
func (a *Assembly) X() int                            { return a.current.X() }
func (a *Assembly) Y() int                            { return a.current.Y() }
func (a *Assembly) children() []Feature               { return a.parts }

func (a *Assembly) makeNewClone() Feature {
	c := &Assembly{partNames: a.partNames}
	c.initClone(&a.featureBase, c)
	return c
}

func (a *Assembly) initializeClone(original Feature, clones map[int]Feature) {
	o := original.(*Assembly)
	a.parts = make([]Feature, len(o.parts))
	for i, p := range o.parts {
		a.parts[i] = cloneRef(p, clones)
	}
	a.current = cloneRef(o.current, clones)
}
