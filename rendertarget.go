package grin

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Draw target layers ---

// layerPool manages reusable offscreen ebiten.Images keyed by power-of-two
// dimensions. The engine paints every draw target after the first into its
// own layer and composites the layers onto the screen.
type layerPool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *layerPool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if stack := p.buckets[key]; len(stack) > 0 {
		img := stack[len(stack)-1]
		p.buckets[key] = stack[:len(stack)-1]
		img.Clear()
		return img
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool. It is cleared on the next Acquire.
func (p *layerPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// layers holds one offscreen image per draw target beyond the first.
type layers struct {
	pool   layerPool
	images []*ebiten.Image
	w, h   int
}

// ensure sizes the layer set for n targets of w x h. It reports whether the
// layers were (re)allocated, in which case their content is gone.
func (l *layers) ensure(n, w, h int) bool {
	if len(l.images) == n-1 && l.w == w && l.h == h {
		return false
	}
	for _, img := range l.images {
		l.pool.Release(img)
	}
	l.images = l.images[:0]
	for i := 1; i < n; i++ {
		l.images = append(l.images, l.pool.Acquire(w, h))
	}
	l.w, l.h = w, h
	return true
}

// composite copies r of every layer onto screen, above what target 0 left
// there.
func (l *layers) composite(screen *ebiten.Image, r Rect) {
	sub := screen.SubImage(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)).(*ebiten.Image)
	for _, img := range l.images {
		src := img.SubImage(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(r.X), float64(r.Y))
		op.Blend = ebiten.BlendSourceOver
		sub.DrawImage(src, op)
	}
}
