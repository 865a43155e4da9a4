package grin

// DrawRecord describes one thing a feature draws: where it is this frame,
// whether its pixels changed, and which draw target it lands on. Each leaf
// feature owns its records and reuses the same *DrawRecord every frame; the
// engine recognises "was this on screen last frame" by record identity, so
// a fresh record per frame would repaint everything.
//
// A leaf calls SetArea in its own coordinates, then hands the record to the
// RenderContext. Ancestor modifiers rewrite it on the way up (translation,
// clipping, semi-transparency) before it reaches the engine.
type DrawRecord struct {
	area            Rect
	changed         bool
	semiTransparent bool
	target          int

	// Previous frame, as painted.
	lastArea   Rect
	lastTarget int

	frame    int64 // frame in which the record was last added
	wasDrawn bool  // record was added in the frame before frame
}

// SetArea sets the record's rectangle for this frame, in the reporting
// feature's coordinates. A negative width or height is clamped to zero.
func (r *DrawRecord) SetArea(x, y, width, height int) {
	r.area = Rect{X: x, Y: y, Width: max(width, 0), Height: max(height, 0)}
}

// SetAreaRect is SetArea with a Rect.
func (r *DrawRecord) SetAreaRect(a Rect) {
	r.SetArea(a.X, a.Y, a.Width, a.Height)
}

// SetChanged forces the record's area to be repainted this frame even if it
// did not move.
func (r *DrawRecord) SetChanged() {
	r.changed = true
}

// SetSemiTransparent marks the record as drawn with blending, so its pixels
// depend on whatever lies beneath it.
func (r *DrawRecord) SetSemiTransparent() {
	r.semiTransparent = true
}

// Area returns the record's current rectangle.
func (r *DrawRecord) Area() Rect {
	return r.area
}

// Changed reports whether the record is marked changed this frame.
func (r *DrawRecord) Changed() bool {
	return r.changed
}

// SemiTransparent reports whether the record is marked semi-transparent this
// frame.
func (r *DrawRecord) SemiTransparent() bool {
	return r.semiTransparent
}

// Target returns the draw target the record was last added to.
func (r *DrawRecord) Target() int {
	return r.target
}

func (r *DrawRecord) applyTranslation(dx, dy int) {
	r.area = r.area.Translate(dx, dy)
}

func (r *DrawRecord) addClip(clip Rect) {
	r.area = r.area.Intersect(clip)
}

// resetFlags clears the per-frame flags once the frame has been consumed.
func (r *DrawRecord) resetFlags() {
	r.changed = false
	r.semiTransparent = false
}
