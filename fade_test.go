package grin

import "testing"

func newTestFade(s *Show, part Feature, end []Command) *Fade {
	return NewFade(s, "fade", part, []FadeKey{
		{Frame: 0, Alpha: 0},
		{Frame: 5, Alpha: 128},
		{Frame: 10, Alpha: 255},
	}, 1, NoRepeat, end)
}

func TestFadeRampAndEndCommands(t *testing.T) {
	s := newTestShow(t)
	part := newRecordingFeature(s, "p", nil)
	calls := 0
	f := newTestFade(s, part, []Command{CommandFunc(func(*Show) { calls++ })})
	f.Setup()
	f.Activate()

	if f.Alpha() != 0 {
		t.Fatalf("alpha at frame 0 = %d, want 0", f.Alpha())
	}
	prev := 0
	for i := 1; i <= 10; i++ {
		f.NextFrame()
		if f.Alpha() < prev {
			t.Errorf("frame %d: alpha %d went down from %d", i, f.Alpha(), prev)
		}
		prev = f.Alpha()
		if i == 5 && prev != 128 {
			t.Errorf("alpha at frame 5 = %d, want 128", prev)
		}
	}
	if prev != 255 || !f.Done() {
		t.Fatalf("after ten frames alpha = %d done = %t, want 255 and done", prev, f.Done())
	}
	s.NextFrame()
	if calls != 1 {
		t.Fatalf("end commands ran %d times, want 1", calls)
	}

	// Further frames change nothing and queue nothing.
	for i := 0; i < 5; i++ {
		f.NextFrame()
		s.NextFrame()
	}
	if calls != 1 || f.Alpha() != 255 || f.CurrentFrame() != 10 {
		t.Errorf("after settling calls = %d alpha = %d frame = %d", calls, f.Alpha(), f.CurrentFrame())
	}
	if part.frames != 15 {
		t.Errorf("part advanced %d frames, want 15", part.frames)
	}
}

func TestFadeReporting(t *testing.T) {
	s := newTestShow(t)
	part := newRecordingFeature(s, "p", nil)
	part.rect = Rect{X: 0, Y: 0, Width: 10, Height: 10}
	f := newTestFade(s, part, nil)
	f.Setup()
	f.Activate()
	ctx := newRenderContextBase(1, 4)

	// Invisible: nothing reported.
	ctx.begin()
	f.AddDisplayAreas(ctx)
	if len(ctx.current) != 0 {
		t.Fatalf("alpha 0 reported %d records", len(ctx.current))
	}
	ctx.collect(Rect{Width: 100, Height: 100})
	ctx.painted()

	// Partly visible: semi-transparent and changed.
	f.NextFrame()
	ctx.begin()
	f.AddDisplayAreas(ctx)
	if len(ctx.current) != 1 {
		t.Fatalf("reported %d records, want 1", len(ctx.current))
	}
	if r := ctx.current[0]; !r.SemiTransparent() || !r.Changed() {
		t.Errorf("record semi = %t changed = %t, want both", r.SemiTransparent(), r.Changed())
	}
	ctx.collect(Rect{Width: 100, Height: 100})
	ctx.painted()

	// Opaque and settled: repainted once more for the alpha change, then
	// not at all.
	for i := 0; i < 9; i++ {
		f.NextFrame()
	}
	ctx.begin()
	f.AddDisplayAreas(ctx)
	if r := ctx.current[0]; r.SemiTransparent() || !r.Changed() {
		t.Errorf("opaque record semi = %t changed = %t, want changed only", r.SemiTransparent(), r.Changed())
	}
	ctx.collect(Rect{Width: 100, Height: 100})
	ctx.painted()

	f.NextFrame()
	ctx.begin()
	f.AddDisplayAreas(ctx)
	ctx.collect(Rect{Width: 100, Height: 100})
	if n := len(ctx.areas[0].Rects()); n != 0 {
		t.Errorf("settled fade produced %d dirty rects", n)
	}
}

func TestFadePaintComposite(t *testing.T) {
	s := newTestShow(t)
	part := newRecordingFeature(s, "p", nil)
	part.rect = Rect{Width: 4, Height: 4}
	f := newTestFade(s, part, nil)
	f.Setup()
	f.Activate()
	c := NewRecordingCanvas(10, 10)

	f.PaintFrame(c)
	if len(c.Ops) != 0 {
		t.Fatalf("alpha 0 painted %d ops", len(c.Ops))
	}
	for i := 0; i < 5; i++ {
		f.NextFrame()
	}
	f.PaintFrame(c)
	if len(c.Ops) != 1 {
		t.Fatalf("painted %d ops, want 1", len(c.Ops))
	}
	if op := c.Ops[0]; op.Mode != BlendNormal || op.Alpha != 128 {
		t.Errorf("op mode = %v alpha = %d, want normal 128", op.Mode, op.Alpha)
	}
	if mode, a := c.Composite(); mode != BlendNone || a != 255 {
		t.Errorf("composite not restored: %v %d", mode, a)
	}
}

func TestNewFadeRejectsBadKeys(t *testing.T) {
	s := newTestShow(t)
	part := newRecordingFeature(s, "p", nil)
	expectPanic(t, "starting at frame 0", func() {
		NewFade(s, "f", part, []FadeKey{{Frame: 1, Alpha: 0}}, 1, NoRepeat, nil)
	})
	expectPanic(t, "goes backwards", func() {
		NewFade(s, "f", part, []FadeKey{{Frame: 0}, {Frame: 4}, {Frame: 2}}, 1, NoRepeat, nil)
	})
}
