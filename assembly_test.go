package grin

import "testing"

func newTestAssembly(s *Show, log *[]string) (*Assembly, *recordingFeature, *recordingFeature) {
	on := newRecordingFeature(s, "on", log)
	off := newRecordingFeature(s, "off", log)
	return NewAssembly(s, "button", []string{"on", "off"}, []Feature{on, off}), on, off
}

func TestAssemblyActivatesNewPartFirst(t *testing.T) {
	s := newTestShow(t)
	var log []string
	s.SetDirector(recordingDirector{log: &log})
	a, on, off := newTestAssembly(s, &log)

	a.Setup()
	if got := joined(log); got != "setup:on setup:off" {
		t.Fatalf("setup log = %q, want every part set up", got)
	}
	a.Activate()
	log = log[:0]

	a.SetCurrentFeature(off)
	want := "activate:off deactivate:on selected:button:on->off:true"
	if got := joined(log); got != want {
		t.Errorf("log = %q\nwant  %q", got, want)
	}
	if a.CurrentPart() != Feature(off) || on.IsActivated() || !off.IsActivated() {
		t.Error("assembly state does not match the selection")
	}
}

func TestAssemblySelectSamePartIsNoOp(t *testing.T) {
	s := newTestShow(t)
	var log []string
	s.SetDirector(recordingDirector{log: &log})
	a, on, _ := newTestAssembly(s, &log)
	a.Setup()
	a.Activate()
	log = log[:0]

	a.SetCurrentFeature(on)
	if len(log) != 0 {
		t.Errorf("reselecting the current part logged %q", joined(log))
	}
}

func TestAssemblySelectWhileInactive(t *testing.T) {
	s := newTestShow(t)
	var log []string
	s.SetDirector(recordingDirector{log: &log})
	a, _, _ := newTestAssembly(s, &log)
	a.Setup()
	log = log[:0]

	if !a.SetCurrentPart("off") {
		t.Fatal("SetCurrentPart(off) = false")
	}
	if got := joined(log); got != "selected:button:on->off:false" {
		t.Errorf("log = %q, want only the director notification", got)
	}
	if a.SetCurrentPart("missing") {
		t.Error("SetCurrentPart(missing) = true")
	}

	log = log[:0]
	a.Activate()
	if got := joined(log); got != "activate:off" {
		t.Errorf("activation log = %q, want the selected part only", got)
	}
}

func TestAssemblyForeignPartPanics(t *testing.T) {
	s := newTestShow(t)
	a, _, _ := newTestAssembly(s, nil)
	stranger := newRecordingFeature(s, "x", nil)
	a.Setup()
	expectPanic(t, "not a part", func() { a.SetCurrentFeature(stranger) })
}

func TestNewAssemblyMismatchedNamesPanics(t *testing.T) {
	s := newTestShow(t)
	p := newRecordingFeature(s, "p", nil)
	expectPanic(t, "one name per part", func() {
		NewAssembly(s, "bad", []string{"a", "b"}, []Feature{p})
	})
}

func TestSetPartCommand(t *testing.T) {
	s := newTestShow(t)
	a, _, off := newTestAssembly(s, nil)
	a.Setup()
	a.Activate()

	s.RunCommand(SetPartCommand{Assembly: a, Part: "off"})
	s.RunCommand(SetPartCommand{Assembly: a, Part: "nope"})
	s.NextFrame()
	if a.CurrentPart() != Feature(off) {
		t.Errorf("current part = %q, want off", a.CurrentPart().Name())
	}
}

func TestAssemblyCloneKeepsSelection(t *testing.T) {
	s := newTestShow(t)
	a, _, _ := newTestAssembly(s, nil)
	a.Setup()
	a.SetCurrentPart("off")

	ca := Clone(a, nil).(*Assembly)
	if ca.CurrentPart().Name() != "off" {
		t.Errorf("clone current part = %q, want off", ca.CurrentPart().Name())
	}
	if ca.CurrentPart() == a.CurrentPart() {
		t.Error("clone current part is the original's")
	}
	if ca.FindPart("off") != ca.CurrentPart() {
		t.Error("clone parts and selection disagree")
	}
}
