package grin

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/tanema/gween/ease"
)

// Keyframe gives every field of an InterpolatedModel a value at Frame. Ease,
// when set, shapes the segment from this keyframe to the next; otherwise the
// segment is linear.
type Keyframe struct {
	Frame  int
	Values []int
	Ease   ease.TweenFunc
}

// InterpolatedModel is a logical feature whose integer fields are animated
// between keyframes. Other features (Translator, Box, FixedImage) read its
// fields. It advances only while activated, and restarts at frame 0 on each
// activation.
type InterpolatedModel struct {
	featureBase
	clock     keyframeClock
	keyframes []Keyframe
	fields    []int
	fixed     []bool
}

// NewInterpolatedModel creates a model. keyframes must be non-empty, start
// at frame 0, be non-decreasing, and carry the same number of values each.
func NewInterpolatedModel(s *Show, name string, keyframes []Keyframe, loopCount, repeatFrame int, endCommands []Command) *InterpolatedModel {
	if err := validateKeyframes(keyframes); err != nil {
		panic(errors.Wrapf(err, "grin: model %q", name))
	}
	m := &InterpolatedModel{keyframes: keyframes}
	m.init(s, name, m)
	n := len(keyframes[0].Values)
	m.fields = make([]int, n)
	m.fixed = make([]bool, n)
	for f := 0; f < n; f++ {
		m.fixed[f] = true
		for _, k := range keyframes {
			if k.Values[f] != keyframes[0].Values[f] {
				m.fixed[f] = false
				break
			}
		}
	}
	last := keyframes[len(keyframes)-1].Frame
	m.clock.init(s, last, loopCount, repeatFrame, endCommands, m.seek)
	m.seek(0)
	return m
}

func validateKeyframes(keyframes []Keyframe) error {
	if len(keyframes) == 0 {
		return errors.New("no keyframes")
	}
	if keyframes[0].Frame != 0 {
		return errors.Newf("first keyframe at frame %d, want 0", keyframes[0].Frame)
	}
	n := len(keyframes[0].Values)
	for i, k := range keyframes {
		if len(k.Values) != n {
			return errors.Newf("keyframe %d has %d values, want %d", i, len(k.Values), n)
		}
		if i > 0 && k.Frame < keyframes[i-1].Frame {
			return errors.Newf("keyframe %d at frame %d precedes frame %d", i, k.Frame, keyframes[i-1].Frame)
		}
	}
	return nil
}

// seek recomputes every non-fixed field for frame t.
func (m *InterpolatedModel) seek(t int) {
	kf := m.keyframes
	if len(kf) == 1 {
		copy(m.fields, kf[0].Values)
		return
	}
	i := sort.Search(len(kf), func(j int) bool { return kf[j].Frame > t }) - 1
	i = min(max(i, 0), len(kf)-2)
	k0, k1 := kf[i], kf[i+1]
	for f := range m.fields {
		if m.fixed[f] {
			continue
		}
		m.fields[f] = interpolate(k0.Values[f], k1.Values[f], k0.Frame, k1.Frame, t, k0.Ease)
	}
}

// interpolate returns the value at frame t between (k0, v0) and (k1, v1),
// rounding half away from zero.
func interpolate(v0, v1, k0, k1, t int, fn ease.TweenFunc) int {
	if k1 == k0 {
		return v1
	}
	if fn != nil {
		frac := fn(float32(t-k0), 0, 1, float32(k1-k0))
		return v0 + int(math.Round(float64(frac)*float64(v1-v0)))
	}
	return divRound(v1*(t-k0)+v0*(k1-t), k1-k0)
}

// divRound divides n by a positive d, rounding half away from zero.
func divRound(n, d int) int {
	if n >= 0 {
		return (n + d/2) / d
	}
	return (n - d/2) / d
}

// scalePermille applies a scale factor given in thousandths to v, rounding
// half away from zero.
func scalePermille(v, permille int) int {
	p := v * permille
	if p >= 0 {
		return (p + 500) / 1000
	}
	return (p - 500) / 1000
}

func (m *InterpolatedModel) setSetupMode(mode bool) int { return 0 }

func (m *InterpolatedModel) setActivateMode(mode bool) {
	if mode {
		m.clock.reset()
	}
}

// NextFrame advances the model by one frame.
func (m *InterpolatedModel) NextFrame() {
	m.clock.advance()
}

// NumFields returns the number of animated fields.
func (m *InterpolatedModel) NumFields() int { return len(m.fields) }

// Field returns the current value of field i.
func (m *InterpolatedModel) Field(i int) int { return m.fields[i] }

// IsFieldSettable reports whether field i has the same value in every
// keyframe and may therefore be set with SetField.
func (m *InterpolatedModel) IsFieldSettable(i int) bool { return m.fixed[i] }

// SetField sets a field that is not animated. Setting an animated field is a
// contract violation.
func (m *InterpolatedModel) SetField(i, value int) {
	if checking() && !m.fixed[i] {
		panic(errors.AssertionFailedf("grin: model %q field %d is animated and cannot be set", m.name, i))
	}
	m.fields[i] = value
}

// CurrentFrame returns the frame the model is on.
func (m *InterpolatedModel) CurrentFrame() int { return m.clock.currFrame }

// Done reports whether the model has run out of loops.
func (m *InterpolatedModel) Done() bool { return m.clock.done }

// X returns the model's FieldX, or 0 for a model without fields.
func (m *InterpolatedModel) X() int {
	if len(m.fields) > FieldX {
		return m.fields[FieldX]
	}
	return 0
}

// Y returns the model's FieldY, or 0 for a model with fewer than two fields.
func (m *InterpolatedModel) Y() int {
	if len(m.fields) > FieldY {
		return m.fields[FieldY]
	}
	return 0
}

func (m *InterpolatedModel) makeNewClone() Feature {
	c := &InterpolatedModel{
		keyframes: m.keyframes,
		fields:    append([]int(nil), m.fields...),
		fixed:     m.fixed,
	}
	c.initClone(&m.featureBase, c)
	c.clock = m.clock
	c.clock.seek = c.seek
	return c
}
