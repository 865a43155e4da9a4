package grin

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func newKnob(t *testing.T, v int) *InterpolatedModel {
	t.Helper()
	s := newTestShow(t)
	m := NewInterpolatedModel(s, "knob", []Keyframe{{Frame: 0, Values: []int{v}}}, 1, NoRepeat, nil)
	startModel(m)
	return m
}

func TestFieldTweenReachesTarget(t *testing.T) {
	m := newKnob(t, 10)
	tw := TweenField(m, 0, 50, 4, nil)
	for i := 0; i < 4; i++ {
		tw.Update(1)
	}
	if !tw.Done {
		t.Error("tween not done after its duration")
	}
	if got := m.Field(0); got != 50 {
		t.Errorf("field = %d, want 50", got)
	}

	m.SetField(0, 3)
	tw.Update(1)
	if m.Field(0) != 3 {
		t.Error("finished tween wrote the field")
	}
}

func TestFieldTweenDefaultsToLinear(t *testing.T) {
	m := newKnob(t, 0)
	tw := TweenField(m, 0, 100, 4, nil)
	tw.Update(1)
	if got := m.Field(0); got != 25 {
		t.Errorf("after a quarter = %d, want 25", got)
	}
}

func TestFieldTweenEasingChangesCurve(t *testing.T) {
	lin := newKnob(t, 0)
	quad := newKnob(t, 0)
	a := TweenField(lin, 0, 100, 10, ease.Linear)
	b := TweenField(quad, 0, 100, 10, ease.InQuad)
	a.Update(3)
	b.Update(3)
	if lin.Field(0) == quad.Field(0) {
		t.Errorf("linear and InQuad agree at 30%%: %d", lin.Field(0))
	}
}

func TestFieldTweenZeroFrames(t *testing.T) {
	m := newKnob(t, 0)
	tw := TweenField(m, 0, 9, 0, nil)
	tw.Update(1)
	if !tw.Done || m.Field(0) != 9 {
		t.Errorf("done = %t field = %d", tw.Done, m.Field(0))
	}
}
