package grin

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FieldTween eases one settable field of an InterpolatedModel from its
// current value to a target over a number of frames. Tweens added to a show
// with AddTween are advanced once per frame before the features, and
// dropped when done.
type FieldTween struct {
	tween *gween.Tween
	model *InterpolatedModel
	field int
	Done  bool
}

// TweenField creates a tween of model field toward to, lasting frames
// frames. A nil fn means linear.
func TweenField(model *InterpolatedModel, field, to, frames int, fn ease.TweenFunc) *FieldTween {
	if fn == nil {
		fn = ease.Linear
	}
	return &FieldTween{
		tween: gween.New(float32(model.Field(field)), float32(to), float32(max(frames, 1)), fn),
		model: model,
		field: field,
	}
}

// Update advances the tween by dt frames and writes the rounded value to
// the field.
func (t *FieldTween) Update(dt float32) {
	if t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	t.model.SetField(t.field, int(math.Round(float64(val))))
	t.Done = finished
}
