package grin

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Show owns a feature graph, its segments, and the command queue that
// drives it.
//
// All feature state is mutated on the model goroutine with mu held. The
// engine takes mu around NextFrame, AddDisplayAreas and Paint; commands and
// director callbacks run inside NextFrame and may call the mutation methods
// (ActivateSegment, Assembly.SetCurrentFeature, ...) directly. Other
// goroutines either queue a Command with RunCommand or use Do.
type Show struct {
	mu   sync.Mutex
	rt   *Runtime
	name string

	features    []Feature
	byName      map[string]Feature
	segments    []*Segment
	segByName   map[string]*Segment
	current     *Segment
	director    Director
	clearColor  Color
	initialized bool
	destroyed   bool
	tweens      []*FieldTween

	// Reachable ids of each group's visible replacement set, by group id.
	replacementSets map[int]map[int]struct{}

	// setupSignal is raised by the setup goroutine when a feature finishes
	// its background work; awaitingSetup is true until the current
	// segment's OnSetupDone commands have been queued.
	setupSignal   atomic.Bool
	awaitingSetup bool

	cmdMu   sync.Mutex
	pending []Command
}

// NewShow creates an empty show. Features register themselves with the
// show as they are constructed.
func NewShow(rt *Runtime, name string) *Show {
	return &Show{
		rt:              rt,
		name:            name,
		byName:          make(map[string]Feature),
		segByName:       make(map[string]*Segment),
		director:        DirectorBase{},
		clearColor:      rt.Config.Clear(),
		replacementSets: make(map[int]map[int]struct{}),
	}
}

// Name returns the show name.
func (s *Show) Name() string { return s.name }

// Runtime returns the runtime the show was built with.
func (s *Show) Runtime() *Runtime { return s.rt }

// Images returns the runtime's image registry.
func (s *Show) Images() *ImageRegistry { return s.rt.Images }

func (s *Show) logger() *slog.Logger { return s.rt.Logger }

// register adds f to the arena and returns its id. The first feature with a
// given name is the one Lookup finds.
func (s *Show) register(f Feature) int {
	id := len(s.features)
	s.features = append(s.features, f)
	if name := f.Name(); name != "" {
		if _, ok := s.byName[name]; !ok {
			s.byName[name] = f
		}
	}
	return id
}

// Lookup returns the feature with the given name, or nil.
func (s *Show) Lookup(name string) Feature { return s.byName[name] }

// Feature returns the feature with the given id, or nil.
func (s *Show) Feature(id int) Feature {
	if id < 0 || id >= len(s.features) {
		return nil
	}
	return s.features[id]
}

// NumFeatures returns the number of registered features, clones included.
func (s *Show) NumFeatures() int { return len(s.features) }

// SetDirector installs d. A nil d restores the no-op director.
func (s *Show) SetDirector(d Director) {
	if d == nil {
		d = DirectorBase{}
	}
	s.director = d
}

// Director returns the show's director.
func (s *Show) Director() Director { return s.director }

// ClearColor returns the colour dirty areas are erased to.
func (s *Show) ClearColor() Color { return s.clearColor }

// SetClearColor changes the erase colour.
func (s *Show) SetClearColor(c Color) { s.clearColor = c }

// DrawTargets returns the configured draw target names.
func (s *Show) DrawTargets() []string { return s.rt.Config.Engine.DrawTargets }

// DrawTargetIndex returns the index of the named draw target, or -1.
func (s *Show) DrawTargetIndex(name string) int {
	for i, t := range s.rt.Config.Engine.DrawTargets {
		if t == name {
			return i
		}
	}
	return -1
}

// AddSegment registers seg under its name.
func (s *Show) AddSegment(seg *Segment) {
	if _, dup := s.segByName[seg.Name]; dup && checking() {
		panic(errors.AssertionFailedf("grin: duplicate segment %q in show %q", seg.Name, s.name))
	}
	s.segments = append(s.segments, seg)
	s.segByName[seg.Name] = seg
}

// Segment returns the named segment, or nil.
func (s *Show) Segment(name string) *Segment { return s.segByName[name] }

// Segments returns the segments in registration order.
func (s *Show) Segments() []*Segment { return s.segments }

// CurrentSegment returns the current segment, or nil before the first
// activation.
func (s *Show) CurrentSegment() *Segment { return s.current }

// Initialize calls Initialize on every feature registered so far. It must be
// called once, after the graph is built and before the first segment is
// activated.
func (s *Show) Initialize() {
	if s.initialized {
		panic(errors.AssertionFailedf("grin: show %q initialized twice", s.name))
	}
	s.initialized = true
	n := len(s.features)
	for i := 0; i < n; i++ {
		s.features[i].Initialize()
	}
	if checking() {
		for _, seg := range s.segments {
			for _, f := range seg.Active {
				debugCheckGraphDepth(f, s.logger())
			}
		}
	}
}

// ActivateSegment makes seg current. The new segment's features are set up
// first; then its active features that were not already shown are
// activated, the old segment's features that are no longer shown are
// deactivated, and finally the old segment's setup is released. OnEntry
// commands are queued to run after.
func (s *Show) ActivateSegment(seg *Segment) {
	if checking() && !s.initialized {
		panic(errors.AssertionFailedf("grin: segment %q activated before show %q was initialized", seg.Name, s.name))
	}
	old := s.current
	for _, f := range seg.setupSet() {
		f.Setup()
	}
	s.current = seg
	for _, f := range seg.Active {
		if old == nil || !containsFeature(old.Active, f) {
			f.Activate()
		}
	}
	if old != nil {
		for _, f := range old.Active {
			if !containsFeature(seg.Active, f) {
				f.Deactivate()
			}
		}
		for _, f := range old.setupSet() {
			f.Unsetup()
		}
	}
	s.awaitingSetup = true
	s.setupSignal.Store(true)
	s.queueCommands(seg.OnEntry)
	s.logger().Debug("segment activated", slog.String("show", s.name), slog.String("segment", seg.Name))
	s.director.NotifySegmentActivated(seg, old)
}

// scheduleSetup asks the setup goroutine for a unit of work on f.
func (s *Show) scheduleSetup(f Feature) {
	s.rt.Setup.Schedule(f)
}

// featureSetupDone is called from the setup goroutine when a feature has
// finished its background work.
func (s *Show) featureSetupDone() {
	s.setupSignal.Store(true)
}

func (s *Show) queueCommands(cmds []Command) {
	if len(cmds) == 0 {
		return
	}
	s.cmdMu.Lock()
	s.pending = append(s.pending, cmds...)
	s.cmdMu.Unlock()
}

// RunCommand queues c to run at the start of the next frame. It is safe to
// call from any goroutine.
func (s *Show) RunCommand(c Command) {
	s.queueCommands([]Command{c})
}

// Do runs fn with the show lock held.
func (s *Show) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// AddTween adds a field tween advanced once per frame.
func (s *Show) AddTween(t *FieldTween) {
	s.tweens = append(s.tweens, t)
}

func (s *Show) runCommands() {
	for {
		s.cmdMu.Lock()
		cmds := s.pending
		s.pending = nil
		s.cmdMu.Unlock()
		if len(cmds) == 0 {
			return
		}
		for _, c := range cmds {
			c.Execute(s)
		}
	}
}

func (s *Show) checkSetupDone() {
	if !s.awaitingSetup || s.current == nil || !s.setupSignal.Swap(false) {
		return
	}
	for _, f := range s.current.setupSet() {
		if f.NeedsMoreSetup() {
			return
		}
	}
	s.awaitingSetup = false
	s.queueCommands(s.current.OnSetupDone)
}

func (s *Show) advanceTweens() {
	live := s.tweens[:0]
	for _, t := range s.tweens {
		t.Update(1)
		if !t.Done {
			live = append(live, t)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
}

// NextFrame advances the show by one frame: queued commands run, setup
// completion is checked, tweens and active features advance, and commands
// queued by the advance run before the director is told.
func (s *Show) NextFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextFrameLocked()
}

func (s *Show) nextFrameLocked() {
	if s.destroyed {
		return
	}
	s.runCommands()
	s.checkSetupDone()
	s.advanceTweens()
	if s.current != nil {
		for _, f := range s.current.Active {
			f.NextFrame()
		}
	}
	s.runCommands()
	s.director.NotifyNextFrame()
}

// AddDisplayAreas reports the current segment's draw records.
func (s *Show) AddDisplayAreas(ctx RenderContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.destroyed {
		return
	}
	for _, f := range s.current.Active {
		f.AddDisplayAreas(ctx)
	}
}

// Paint paints the current segment onto c.
func (s *Show) Paint(c Canvas) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.destroyed {
		return
	}
	for _, f := range s.current.Active {
		f.PaintFrame(c)
	}
}

// MarkDisplayAreasChanged forces every active feature to repaint.
func (s *Show) MarkDisplayAreasChanged() {
	if s.current == nil {
		return
	}
	for _, f := range s.current.Active {
		f.MarkDisplayAreasChanged()
	}
}

// Destroy leaves the current segment and destroys every feature. The show
// cannot be used afterwards.
func (s *Show) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	if cur := s.current; cur != nil {
		for _, f := range cur.Active {
			f.Deactivate()
		}
		for _, f := range cur.setupSet() {
			f.Unsetup()
		}
		s.current = nil
	}
	for _, f := range s.features {
		f.Destroy()
	}
	s.destroyed = true
}

// checkReplacementSet verifies that the parts g is about to show share no
// feature with each other, nor with the parts any other group shows.
func (s *Show) checkReplacementSet(g *Group, parts []Feature) {
	union := make(map[int]struct{})
	for _, p := range parts {
		set := make(map[int]struct{})
		reachable(p, set)
		for id := range set {
			if _, dup := union[id]; dup {
				panic(errors.AssertionFailedf("grin: group %q: visible parts share feature %q", g.name, s.features[id].Name()))
			}
			union[id] = struct{}{}
		}
	}
	for gid, other := range s.replacementSets {
		if gid == g.id {
			continue
		}
		for id := range union {
			if _, ok := other[id]; ok {
				panic(errors.AssertionFailedf("grin: group %q shows feature %q already shown by group %q",
					g.name, s.features[id].Name(), s.features[gid].Name()))
			}
		}
	}
	s.replacementSets[g.id] = union
}
