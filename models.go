package grin

import "math"

// Field indices shared by the stock models.
const (
	FieldX      = 0
	FieldY      = 1
	FieldScaleX = 2 // permille
	FieldScaleY = 3 // permille
)

// Offscreen as a translation coordinate hides the translated subtree for
// as long as the model holds it.
const Offscreen = math.MinInt32

// TranslationKey is one keyframe of a translation model.
type TranslationKey struct {
	Frame int
	X, Y  int
}

// NewTranslation creates a two-field model (FieldX, FieldY) for a
// Translator.
func NewTranslation(s *Show, name string, keys []TranslationKey, loopCount, repeatFrame int, endCommands []Command) *InterpolatedModel {
	kf := make([]Keyframe, len(keys))
	for i, k := range keys {
		kf[i] = Keyframe{Frame: k.Frame, Values: []int{k.X, k.Y}}
	}
	return NewInterpolatedModel(s, name, kf, loopCount, repeatFrame, endCommands)
}

// ScaleKey is one keyframe of a scaling model. X and Y are the scaling
// origin; ScaleX and ScaleY are in thousandths (1000 is unscaled).
type ScaleKey struct {
	Frame          int
	X, Y           int
	ScaleX, ScaleY int
}

// NewScalingModel creates a four-field model (FieldX, FieldY, FieldScaleX,
// FieldScaleY).
func NewScalingModel(s *Show, name string, keys []ScaleKey, loopCount, repeatFrame int, endCommands []Command) *InterpolatedModel {
	kf := make([]Keyframe, len(keys))
	for i, k := range keys {
		kf[i] = Keyframe{Frame: k.Frame, Values: []int{k.X, k.Y, k.ScaleX, k.ScaleY}}
	}
	return NewInterpolatedModel(s, name, kf, loopCount, repeatFrame, endCommands)
}

// ScaleRect scales r about the model's (X, Y) origin by its permille scale
// factors. Models with fewer than four fields return r unchanged.
func (m *InterpolatedModel) ScaleRect(r Rect) Rect {
	if len(m.fields) <= FieldScaleY {
		return r
	}
	ox, oy := m.fields[FieldX], m.fields[FieldY]
	sx, sy := m.fields[FieldScaleX], m.fields[FieldScaleY]
	x0 := ox + scalePermille(r.X-ox, sx)
	y0 := oy + scalePermille(r.Y-oy, sy)
	x1 := ox + scalePermille(r.X+r.Width-ox, sx)
	y1 := oy + scalePermille(r.Y+r.Height-oy, sy)
	return Rect{X: x0, Y: y0, Width: max(x1-x0, 0), Height: max(y1-y0, 0)}
}
