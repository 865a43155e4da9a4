package grin

import (
	"github.com/cockroachdb/errors"
	"github.com/tanema/gween/ease"
)

// FadeKey is one alpha keyframe of a Fade. Alpha runs from 0 (invisible) to
// 255 (opaque).
type FadeKey struct {
	Frame int
	Alpha int
	Ease  ease.TweenFunc
}

// Fade blends its part with a keyframed alpha. At alpha 0 the part is
// neither reported nor painted; between 0 and 255 its records are
// semi-transparent and fill guarantees below it are dropped.
type Fade struct {
	modifier
	keys  []FadeKey
	clock keyframeClock

	alpha         int
	reportedAlpha int
	ctx           blendContext
}

// NewFade creates a fade of part. keys follow the same rules as model
// keyframes: non-empty, starting at frame 0, non-decreasing.
func NewFade(s *Show, name string, part Feature, keys []FadeKey, loopCount, repeatFrame int, endCommands []Command) *Fade {
	if len(keys) == 0 || keys[0].Frame != 0 {
		panic(errors.AssertionFailedf("grin: fade %q needs keyframes starting at frame 0", name))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i].Frame < keys[i-1].Frame {
			panic(errors.AssertionFailedf("grin: fade %q keyframe %d goes backwards", name, i))
		}
	}
	f := &Fade{keys: keys, reportedAlpha: -1}
	f.part = part
	f.init(s, name, f)
	f.clock.init(s, keys[len(keys)-1].Frame, loopCount, repeatFrame, endCommands, f.seek)
	f.seek(0)
	return f
}

func (f *Fade) seek(t int) {
	k := f.keys
	if len(k) == 1 {
		f.alpha = clampAlpha(k[0].Alpha)
		return
	}
	i := 0
	for i < len(k)-2 && k[i+1].Frame <= t {
		i++
	}
	f.alpha = clampAlpha(interpolate(k[i].Alpha, k[i+1].Alpha, k[i].Frame, k[i+1].Frame, t, k[i].Ease))
}

func clampAlpha(a int) int {
	return min(max(a, 0), 255)
}

// Alpha returns the current alpha.
func (f *Fade) Alpha() int { return f.alpha }

// CurrentFrame returns the frame the fade is on.
func (f *Fade) CurrentFrame() int { return f.clock.currFrame }

// Done reports whether the fade has run out of loops.
func (f *Fade) Done() bool { return f.clock.done }

func (f *Fade) setActivateMode(mode bool) {
	if mode {
		f.clock.reset()
		f.reportedAlpha = -1
	}
	f.modifier.setActivateMode(mode)
}

func (f *Fade) NextFrame() {
	f.clock.advance()
	f.part.NextFrame()
}

func (f *Fade) MarkDisplayAreasChanged() {
	f.reportedAlpha = -1
	f.part.MarkDisplayAreasChanged()
}

func (f *Fade) AddDisplayAreas(ctx RenderContext) {
	changed := f.alpha != f.reportedAlpha
	f.reportedAlpha = f.alpha
	if f.alpha == 0 {
		return
	}
	f.ctx = blendContext{parent: ctx, blending: f.alpha < 255, changed: changed}
	f.part.AddDisplayAreas(&f.ctx)
}

func (f *Fade) PaintFrame(c Canvas) {
	switch f.alpha {
	case 0:
		return
	case 255:
		f.part.PaintFrame(c)
		return
	}
	mode, a := c.Composite()
	c.SetComposite(BlendNormal, uint8(int(a)*f.alpha/255))
	f.part.PaintFrame(c)
	c.SetComposite(mode, a)
}

func (f *Fade) makeNewClone() Feature {
	n := &Fade{keys: f.keys, alpha: f.alpha, reportedAlpha: -1}
	n.initClone(&f.featureBase, n)
	n.clock = f.clock
	n.clock.seek = n.seek
	return n
}

func (f *Fade) initializeClone(original Feature, clones map[int]Feature) {
	f.cloneFrom(&original.(*Fade).modifier, clones)
}
