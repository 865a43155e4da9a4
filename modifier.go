package grin

import (
	"github.com/cockroachdb/errors"
)

// modifier is the shared shell of the single-child features. Everything is
// delegated to the part; concrete modifiers override what they change.
type modifier struct {
	featureBase
	part Feature
}

// Part returns the wrapped feature.
func (m *modifier) Part() Feature { return m.part }

func (m *modifier) setSetupMode(mode bool) int {
	if mode {
		return m.part.Setup()
	}
	m.part.Unsetup()
	return 0
}

func (m *modifier) NeedsMoreSetup() bool {
	if checking() && m.setupCount == 0 {
		panic(errors.AssertionFailedf("grin: needsMoreSetup on feature %q that is not set up", m.name))
	}
	return m.part.NeedsMoreSetup()
}

func (m *modifier) setActivateMode(mode bool) {
	if mode {
		m.part.Activate()
	} else {
		m.part.Deactivate()
	}
}

func (m *modifier) NextFrame()                        { m.part.NextFrame() }
func (m *modifier) MarkDisplayAreasChanged()          { m.part.MarkDisplayAreasChanged() }
func (m *modifier) AddDisplayAreas(ctx RenderContext) { m.part.AddDisplayAreas(ctx) }
func (m *modifier) PaintFrame(c Canvas)               { m.part.PaintFrame(c) }
func (m *modifier) X() int                            { return m.part.X() }
func (m *modifier) Y() int                            { return m.part.Y() }
func (m *modifier) children() []Feature               { return []Feature{m.part} }

func (m *modifier) cloneFrom(o *modifier, clones map[int]Feature) {
	m.part = cloneRef(o.part, clones)
}
