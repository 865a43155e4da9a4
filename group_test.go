package grin

import "testing"

func newPartsABC(s *Show, log *[]string) (a, b, c *recordingFeature) {
	return newRecordingFeature(s, "A", log), newRecordingFeature(s, "B", log), newRecordingFeature(s, "C", log)
}

func TestGroupResetVisiblePartsOnlyTouchesDifference(t *testing.T) {
	s := newTestShow(t)
	var log []string
	a, b, c := newPartsABC(s, &log)
	g := NewGroup(s, "g", a, b, c)
	g.Setup()
	g.Activate()
	log = log[:0]

	g.ResetVisibleParts([]Feature{a, c})
	if got := joined(log); got != "deactivate:B" {
		t.Errorf("log = %q, want only B deactivated", got)
	}
	if !a.IsActivated() || b.IsActivated() || !c.IsActivated() {
		t.Error("activation state does not match the visible set")
	}

	log = log[:0]
	g.ResetVisibleParts([]Feature{b})
	if got := joined(log); got != "activate:B deactivate:A deactivate:C" {
		t.Errorf("log = %q, want B activated before A and C deactivated", got)
	}
}

func TestGroupResetWhileInactive(t *testing.T) {
	s := newTestShow(t)
	var log []string
	a, b, c := newPartsABC(s, &log)
	g := NewGroup(s, "g", a, b, c)
	g.Setup()
	log = log[:0]

	g.ResetVisibleParts([]Feature{c})
	if len(log) != 0 {
		t.Errorf("inactive group reset should not change activation, log = %q", joined(log))
	}
	g.Activate()
	if got := joined(log); got != "activate:C" {
		t.Errorf("log = %q, want only C activated", got)
	}
}

func TestGroupResetRequiresSetup(t *testing.T) {
	s := newTestShow(t)
	a, b, _ := newPartsABC(s, nil)
	stranger := newRecordingFeature(s, "X", nil)
	g := NewGroup(s, "g", a, b)
	g.Setup()
	expectPanic(t, "not set up", func() { g.ResetVisibleParts([]Feature{stranger}) })
}

func TestGroupReplacementSetsMustBeDisjoint(t *testing.T) {
	s := newTestShow(t)
	a, b, _ := newPartsABC(s, nil)
	g1 := NewGroup(s, "g1", a, b)
	g2 := NewGroup(s, "g2", a, b)
	g1.Setup()
	g2.Setup()

	g1.ResetVisibleParts([]Feature{a})
	expectPanic(t, "already shown", func() { g2.ResetVisibleParts([]Feature{a}) })

	wrapped := NewSrcOver(s, "w", b)
	wrapped.Setup()
	expectPanic(t, "share feature", func() { g1.ResetVisibleParts([]Feature{b, wrapped}) })
}

func TestGroupNeedsMoreSetupIsMonotonic(t *testing.T) {
	s := newTestShow(t)
	a, b, c := newPartsABC(s, nil)
	a.pending, b.pending = true, true
	g := NewGroup(s, "g", a, b, c)
	if n := g.Setup(); n != 2 {
		t.Errorf("Setup() = %d, want 2 outstanding", n)
	}

	if !g.NeedsMoreSetup() {
		t.Fatal("group with loading parts reports ready")
	}
	a.pending = false
	if !g.NeedsMoreSetup() {
		t.Fatal("group ready while b still loading")
	}
	b.pending = false
	if g.NeedsMoreSetup() {
		t.Fatal("group not ready after all parts finished")
	}
	// A part flipping back cannot make the group un-ready within the same
	// setup cycle.
	a.pending = true
	if g.NeedsMoreSetup() {
		t.Error("NeedsMoreSetup went back to true")
	}

	g.Unsetup()
	g.Setup()
	if !g.NeedsMoreSetup() {
		t.Error("a new setup cycle should poll the parts again")
	}
}

func TestGroupPosition(t *testing.T) {
	s := newTestShow(t)
	a, b, _ := newPartsABC(s, nil)
	a.rect = Rect{X: 10, Y: 5, Width: 1, Height: 1}
	b.rect = Rect{X: 3, Y: 8, Width: 1, Height: 1}
	g := NewGroup(s, "g", a, b)
	if g.X() != 3 || g.Y() != 5 {
		t.Errorf("group at (%d, %d), want (3, 5)", g.X(), g.Y())
	}
}

func TestGroupCloneShowsAllParts(t *testing.T) {
	s := newTestShow(t)
	a, b, c := newPartsABC(s, nil)
	g := NewGroup(s, "g", a, b, c)
	g.Setup()
	g.ResetVisibleParts([]Feature{b})

	cg := Clone(g, nil).(*Group)
	if len(cg.VisibleParts()) != 3 {
		t.Errorf("clone has %d visible parts, want 3", len(cg.VisibleParts()))
	}
	for i, p := range cg.Parts() {
		if p == g.Parts()[i] {
			t.Errorf("part %d was not cloned", i)
		}
	}
}
