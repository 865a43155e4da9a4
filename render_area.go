package grin

// DefaultMaxDirtyRects is the per-target limit on separate dirty rectangles
// before the cheapest pair is merged.
const DefaultMaxDirtyRects = 4

// RenderArea accumulates the dirty rectangles of one draw target for one
// frame. Overlapping rectangles are merged as they arrive; when more than
// maxRects remain, the pair whose union wastes the fewest pixels is merged.
// It also tracks rectangles that the scene guarantees to paint opaquely, so
// erasing beneath them can be skipped.
type RenderArea struct {
	rects      []Rect
	guaranteed []Rect
	maxRects   int
}

// NewRenderArea creates an area holding at most maxRects rectangles. A
// non-positive maxRects means DefaultMaxDirtyRects.
func NewRenderArea(maxRects int) *RenderArea {
	if maxRects <= 0 {
		maxRects = DefaultMaxDirtyRects
	}
	return &RenderArea{maxRects: maxRects}
}

// Add records r as needing repaint. Empty rectangles are ignored.
func (a *RenderArea) Add(r Rect) {
	if r.Empty() {
		return
	}
	for i := 0; i < len(a.rects); {
		if a.rects[i].ContainsRect(r) {
			return
		}
		if a.rects[i].Intersects(r) || r.ContainsRect(a.rects[i]) {
			r = r.Union(a.rects[i])
			a.removeAt(i)
			i = 0
			continue
		}
		i++
	}
	a.rects = append(a.rects, r)
	for len(a.rects) > a.maxRects {
		a.mergeCheapestPair()
	}
}

// Guarantee records that r will be completely and opaquely painted this
// frame.
func (a *RenderArea) Guarantee(r Rect) {
	if r.Empty() {
		return
	}
	a.guaranteed = append(a.guaranteed, r)
}

// IsGuaranteed reports whether r lies entirely inside one guaranteed
// rectangle.
func (a *RenderArea) IsGuaranteed(r Rect) bool {
	for _, g := range a.guaranteed {
		if g.ContainsRect(r) {
			return true
		}
	}
	return false
}

// Rects returns the dirty rectangles. The returned slice MUST NOT be mutated.
func (a *RenderArea) Rects() []Rect {
	return a.rects
}

// Clip intersects every dirty rectangle with bounds, dropping those that
// fall outside.
func (a *RenderArea) Clip(bounds Rect) {
	out := a.rects[:0]
	for _, r := range a.rects {
		if c := r.Intersect(bounds); !c.Empty() {
			out = append(out, c)
		}
	}
	a.rects = out
}

// Reset empties the area, keeping buffers.
func (a *RenderArea) Reset() {
	a.rects = a.rects[:0]
	a.guaranteed = a.guaranteed[:0]
}

// resetGuarantees drops the guarantees but keeps dirty rectangles that have
// not been painted yet.
func (a *RenderArea) resetGuarantees() {
	a.guaranteed = a.guaranteed[:0]
}

func (a *RenderArea) removeAt(i int) {
	copy(a.rects[i:], a.rects[i+1:])
	a.rects = a.rects[:len(a.rects)-1]
}

// mergeCheapestPair merges the two rectangles whose union adds the fewest
// pixels not already covered by either.
func (a *RenderArea) mergeCheapestPair() {
	bi, bj := 0, 1
	best := -1
	for i := 0; i < len(a.rects); i++ {
		for j := i + 1; j < len(a.rects); j++ {
			u := a.rects[i].Union(a.rects[j])
			waste := u.Area() - a.rects[i].Area() - a.rects[j].Area()
			if best < 0 || waste < best {
				best, bi, bj = waste, i, j
			}
		}
	}
	merged := a.rects[bi].Union(a.rects[bj])
	a.removeAt(bj)
	a.removeAt(bi)
	// The merged rectangle may now overlap others; Add folds those in.
	a.Add(merged)
}
