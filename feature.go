package grin

import (
	"github.com/cockroachdb/errors"
)

// Feature is a node in the scene graph. A feature is visual (it reports draw
// records and paints) or purely logical (an interpolation model that other
// features read from).
//
// Lifecycle, driven by the owning Show on the model goroutine:
//
//	Initialize      once, after the show is built
//	Setup           entering a segment that needs the feature; may start
//	                asynchronous work on the setup scheduler
//	Activate        becoming visible
//	NextFrame       once per frame while activated
//	Deactivate      leaving the visible state
//	Unsetup         leaving the segment
//	Destroy         once, at show teardown
//
// Setup calls are counted so that a feature shared by several parents enters
// setup mode once. Activation is not counted: at most one ancestor path may
// have a feature activated at a time.
type Feature interface {
	ID() int
	Name() string
	Show() *Show

	Initialize()
	Destroy()

	// Setup enters the setup state and returns the number of features that
	// still have asynchronous setup work outstanding.
	Setup() int
	Unsetup()
	IsSetup() bool
	// NeedsMoreSetup reports whether asynchronous setup is still in
	// progress. Only valid between Setup and Unsetup; once it returns false
	// it keeps returning false until the next Unsetup.
	NeedsMoreSetup() bool
	// DoSomeSetup performs a bounded unit of setup work. It runs on the setup
	// goroutine, is idempotent once setup completes, and is a no-op if
	// Unsetup raced in.
	DoSomeSetup()

	Activate()
	Deactivate()
	IsActivated() bool

	NextFrame()
	MarkDisplayAreasChanged()
	AddDisplayAreas(ctx RenderContext)
	PaintFrame(c Canvas)

	// X and Y give the upper-left corner of the feature in its own
	// coordinate space, before any ancestor translation.
	X() int
	Y() int

	base() *featureBase
	children() []Feature
	makeNewClone() Feature
	initializeClone(original Feature, clones map[int]Feature)
}

// featureModes is implemented by every concrete feature. featureBase calls
// it on the transitions into and out of setup and activation.
type featureModes interface {
	setSetupMode(mode bool) int
	setActivateMode(mode bool)
}

// featureBase carries identity and the setup/activate bookkeeping shared by
// all features. Concrete features embed it and override the no-op defaults.
type featureBase struct {
	id         int
	name       string
	show       *Show
	self       featureModes
	setupCount int
	activated  bool
}

func (b *featureBase) init(s *Show, name string, self featureModes) {
	b.show = s
	b.name = name
	b.self = self
	b.id = s.register(self.(Feature))
}

// initClone gives a clone a fresh id in the original's show.
func (b *featureBase) initClone(original *featureBase, self featureModes) {
	b.init(original.show, original.name, self)
}

func (b *featureBase) base() *featureBase { return b }

// ID returns the feature's stable integer id within its show.
func (b *featureBase) ID() int { return b.id }

// Name returns the feature's name. Clones share the name of their original.
func (b *featureBase) Name() string { return b.name }

// Show returns the show that owns the feature.
func (b *featureBase) Show() *Show { return b.show }

// Setup increments the setup count, entering setup mode on the first call.
func (b *featureBase) Setup() int {
	b.setupCount++
	if b.setupCount > 1 {
		return 0
	}
	return b.self.setSetupMode(true)
}

// Unsetup decrements the setup count, leaving setup mode on the last call.
func (b *featureBase) Unsetup() {
	if checking() {
		if b.setupCount <= 0 {
			panic(errors.AssertionFailedf("grin: unsetup of feature %q without matching setup", b.name))
		}
		if b.setupCount == 1 && b.activated {
			panic(errors.AssertionFailedf("grin: unsetup of activated feature %q", b.name))
		}
	}
	b.setupCount--
	if b.setupCount == 0 {
		b.self.setSetupMode(false)
	}
}

// IsSetup reports whether the feature is between Setup and Unsetup.
func (b *featureBase) IsSetup() bool { return b.setupCount > 0 }

// Activate makes the feature visible. The feature must be set up and not
// already activated.
func (b *featureBase) Activate() {
	if checking() {
		if b.activated {
			panic(errors.AssertionFailedf("grin: feature %q activated twice", b.name))
		}
		if b.setupCount == 0 {
			panic(errors.AssertionFailedf("grin: activate of feature %q that is not set up", b.name))
		}
	}
	b.activated = true
	b.self.setActivateMode(true)
}

// Deactivate reverses Activate.
func (b *featureBase) Deactivate() {
	if checking() && !b.activated {
		panic(errors.AssertionFailedf("grin: deactivate of feature %q that is not activated", b.name))
	}
	b.activated = false
	b.self.setActivateMode(false)
}

// IsActivated reports whether the feature is between Activate and Deactivate.
func (b *featureBase) IsActivated() bool { return b.activated }

func (b *featureBase) Initialize()                       {}
func (b *featureBase) Destroy()                          {}
func (b *featureBase) DoSomeSetup()                      {}
func (b *featureBase) NextFrame()                        {}
func (b *featureBase) MarkDisplayAreasChanged()          {}
func (b *featureBase) AddDisplayAreas(ctx RenderContext) {}
func (b *featureBase) PaintFrame(c Canvas)               {}
func (b *featureBase) X() int                            { return 0 }
func (b *featureBase) Y() int                            { return 0 }
func (b *featureBase) children() []Feature               { return nil }

// NeedsMoreSetup is false for features without asynchronous setup.
func (b *featureBase) NeedsMoreSetup() bool {
	if checking() && b.setupCount == 0 {
		panic(errors.AssertionFailedf("grin: needsMoreSetup on feature %q that is not set up", b.name))
	}
	return false
}

// initializeClone is a no-op for features that hold no references to other
// features.
func (b *featureBase) initializeClone(original Feature, clones map[int]Feature) {}

// Clone copies the subgraph rooted at f. The clone map is keyed by original
// feature id, so a DAG cloned through one map yields exactly one clone per
// original node; pass the same map to several Clone calls to share clones
// between them. f must be set up and not activated. The returned clone is
// set up, and the caller owns its Unsetup and Destroy.
func Clone(f Feature, clones map[int]Feature) Feature {
	if checking() {
		if !f.IsSetup() {
			panic(errors.AssertionFailedf("grin: clone of feature %q that is not set up", f.Name()))
		}
		if f.IsActivated() {
			panic(errors.AssertionFailedf("grin: clone of activated feature %q", f.Name()))
		}
	}
	if clones == nil {
		clones = make(map[int]Feature)
	}
	var created []clonePair
	c := cloneNode(f, clones, &created)
	for _, p := range created {
		p.clone.initializeClone(p.original, clones)
	}
	for _, p := range created {
		p.clone.Initialize()
	}
	c.Setup()
	return c
}

type clonePair struct {
	original, clone Feature
}

func cloneNode(f Feature, clones map[int]Feature, created *[]clonePair) Feature {
	if c, ok := clones[f.ID()]; ok {
		return c
	}
	c := f.makeNewClone()
	clones[f.ID()] = c
	*created = append(*created, clonePair{original: f, clone: c})
	for _, child := range f.children() {
		cloneNode(child, clones, created)
	}
	return c
}

// cloneRef returns the clone of f if one was made, or f itself when f lies
// outside the cloned subgraph.
func cloneRef(f Feature, clones map[int]Feature) Feature {
	if c, ok := clones[f.ID()]; ok {
		return c
	}
	return f
}

// reachable adds the ids of f and every feature under it to set.
func reachable(f Feature, set map[int]struct{}) {
	if _, ok := set[f.ID()]; ok {
		return
	}
	set[f.ID()] = struct{}{}
	for _, c := range f.children() {
		reachable(c, set)
	}
}

// containsFeature reports whether list holds f (by identity).
func containsFeature(list []Feature, f Feature) bool {
	for _, x := range list {
		if x == f {
			return true
		}
	}
	return false
}
