package grin

import (
	"testing"
)

func TestSegmentTransitionOrder(t *testing.T) {
	s := newTestShow(t)
	var log []string
	shared := newRecordingFeature(s, "shared", &log)
	a := newRecordingFeature(s, "a", &log)
	b := newRecordingFeature(s, "b", &log)
	next := newRecordingFeature(s, "next", &log)

	one := &Segment{Name: "S:One", Active: []Feature{shared, a}, Setup: []Feature{next}}
	two := &Segment{Name: "S:Two", Active: []Feature{shared, b}}
	s.AddSegment(one)
	s.AddSegment(two)
	s.Initialize()

	s.ActivateSegment(one)
	want := "setup:shared setup:a setup:next activate:shared activate:a"
	if got := joined(log); got != want {
		t.Fatalf("first activation log = %q\nwant %q", got, want)
	}

	log = log[:0]
	s.ActivateSegment(two)
	want = "setup:b activate:b deactivate:a unsetup:a unsetup:next"
	if got := joined(log); got != want {
		t.Errorf("transition log = %q\nwant %q", got, want)
	}
	if s.CurrentSegment() != two {
		t.Error("current segment not updated")
	}
}

func TestActivateSegmentBeforeInitializePanics(t *testing.T) {
	s := newTestShow(t)
	seg := &Segment{Name: "S:X"}
	s.AddSegment(seg)
	expectPanic(t, "before show", func() { s.ActivateSegment(seg) })
}

func TestDuplicateSegmentPanics(t *testing.T) {
	s := newTestShow(t)
	s.AddSegment(&Segment{Name: "S:X"})
	expectPanic(t, "duplicate segment", func() { s.AddSegment(&Segment{Name: "S:X"}) })
}

func TestSegmentCommands(t *testing.T) {
	s := newTestShow(t)
	var log []string
	s.SetDirector(recordingDirector{log: &log})
	loading := newRecordingFeature(s, "img", nil)
	loading.pending = true

	note := func(msg string) Command {
		return CommandFunc(func(*Show) { log = append(log, msg) })
	}
	intro := &Segment{
		Name:        "S:Intro",
		Active:      []Feature{loading},
		OnEntry:     []Command{note("entry")},
		OnSetupDone: []Command{note("ready")},
		Next:        []Command{ActivateSegmentCommand{Segment: "S:Menu"}},
	}
	menu := &Segment{Name: "S:Menu"}
	s.AddSegment(intro)
	s.AddSegment(menu)
	s.Initialize()

	s.RunCommand(ActivateSegmentCommand{Segment: "S:Intro"})
	s.NextFrame()
	if got := joined(log); got != "segment:<nil>->S:Intro entry" {
		t.Fatalf("log = %q", got)
	}

	// Still loading: no setup-done commands.
	s.NextFrame()
	if len(log) != 2 {
		t.Fatalf("setup-done ran early: %q", joined(log))
	}

	loading.pending = false
	s.featureSetupDone()
	s.NextFrame()
	if got := log[len(log)-1]; got != "ready" {
		t.Fatalf("last log entry = %q, want ready", got)
	}
	s.NextFrame()
	if n := len(log); log[n-1] != "ready" {
		t.Error("setup-done commands ran twice")
	}

	s.RunCommand(SegmentDoneCommand{})
	s.NextFrame()
	if s.CurrentSegment() != menu {
		t.Errorf("current = %v, want S:Menu after SegmentDoneCommand", s.CurrentSegment().Name)
	}
	if got := log[len(log)-1]; got != "segment:S:Intro->S:Menu" {
		t.Errorf("last log entry = %q", got)
	}

	// Unknown segments are logged and ignored.
	s.RunCommand(ActivateSegmentCommand{Segment: "S:Nope"})
	s.NextFrame()
	if s.CurrentSegment() != menu {
		t.Error("unknown segment changed the current segment")
	}
}

func TestShowAdvancesActiveFeatures(t *testing.T) {
	s := newTestShow(t)
	a := newRecordingFeature(s, "a", nil)
	idle := newRecordingFeature(s, "idle", nil)
	seg := &Segment{Name: "S:One", Active: []Feature{a}, Setup: []Feature{idle}}
	s.AddSegment(seg)
	s.Initialize()
	s.ActivateSegment(seg)
	for i := 0; i < 3; i++ {
		s.NextFrame()
	}
	if a.frames != 3 || idle.frames != 0 {
		t.Errorf("frames: active = %d, setup-only = %d; want 3, 0", a.frames, idle.frames)
	}
}

func TestShowDestroy(t *testing.T) {
	s := newTestShow(t)
	var log []string
	a := newRecordingFeature(s, "a", &log)
	img := NewFixedImage(s, "img", 0, 0, "a.png", nil)
	seg := &Segment{Name: "S:One", Active: []Feature{a, img}}
	s.AddSegment(seg)
	s.Initialize()
	s.ActivateSegment(seg)
	log = log[:0]

	s.Destroy()
	if got := joined(log); got != "deactivate:a unsetup:a" {
		t.Errorf("destroy log = %q", got)
	}
	if s.Images().Len() != 0 {
		t.Errorf("%d images still registered after destroy", s.Images().Len())
	}
	s.Destroy()
	s.NextFrame()
}

func TestShowDrawTargetIndex(t *testing.T) {
	rt := newTestRuntime(t, func(c *Config) {
		c.Engine.DrawTargets = []string{"T:Default", "T:Overlay"}
	})
	s := NewShow(rt, "t")
	if s.DrawTargetIndex("T:Overlay") != 1 || s.DrawTargetIndex("T:Missing") != -1 {
		t.Error("DrawTargetIndex wrong")
	}
}

func TestShowDo(t *testing.T) {
	s := newTestShow(t)
	ran := false
	s.Do(func() { ran = true })
	if !ran {
		t.Error("Do did not run fn")
	}
}

func TestShowDestroyWithQueuedSetup(t *testing.T) {
	rt := newTestRuntime(t)
	s := NewShow(rt, "gone")
	img := NewFixedImage(s, "img", 0, 0, "a.png", nil)
	seq := NewImageSequence(s, "seq", 0, 0, []string{"b.png", ""}, nil, 1, NoRepeat, nil)
	seg := &Segment{Name: "S:One", Active: []Feature{img, seq}}
	s.AddSegment(seg)
	s.Initialize()
	s.ActivateSegment(seg)
	if rt.Setup.Pending() != 2 {
		t.Fatalf("pending = %d, want both images queued", rt.Setup.Pending())
	}

	// Another show on the same runtime keeps playing.
	other := NewShow(rt, "other")
	keep := NewFixedImage(other, "keep", 0, 0, "c.png", nil)
	keepSeg := &Segment{Name: "S:Keep", Active: []Feature{keep}}
	other.AddSegment(keepSeg)
	other.Initialize()
	other.ActivateSegment(keepSeg)

	s.Destroy()
	rt.Setup.Drain()

	if img.Image().IsLoaded() || seq.images[0].IsLoaded() {
		t.Error("destroyed show's images were decoded")
	}
	if !keep.Image().IsLoaded() {
		t.Error("surviving show's image not loaded")
	}
	if s.Images().Len() != 1 {
		t.Errorf("%d images registered, want only the surviving show's", s.Images().Len())
	}
}
