package grin

// FixedImage draws one image at a fixed position, optionally scaled by a
// four-field scaling model. Its image is loaded in the background while the
// feature is set up. An image that fails to load draws nothing.
type FixedImage struct {
	featureBase
	x, y   int
	file   string
	scale  *InterpolatedModel
	image  *ManagedImage
	record DrawRecord

	// released is set once Destroy has dropped the registry reference. The
	// image pointer itself stays valid so a queued DoSomeSetup finds an
	// unprepared image and does nothing.
	released bool
}

// NewFixedImage creates an image feature for the named asset.
func NewFixedImage(s *Show, name string, x, y int, file string, scale *InterpolatedModel) *FixedImage {
	f := &FixedImage{x: x, y: y, file: file, scale: scale}
	f.init(s, name, f)
	f.image = s.Images().Get(file)
	return f
}

// Image returns the managed image.
func (f *FixedImage) Image() *ManagedImage { return f.image }

func (f *FixedImage) Destroy() {
	if !f.released {
		f.show.Images().Unget(f.image)
		f.released = true
	}
}

func (f *FixedImage) setSetupMode(mode bool) int {
	if !mode {
		f.image.Unprepare()
		return 0
	}
	f.image.Prepare()
	if f.image.IsLoaded() {
		return 0
	}
	f.show.scheduleSetup(f)
	return 1
}

func (f *FixedImage) setActivateMode(mode bool) {}

// NeedsMoreSetup reports whether the image is still loading.
func (f *FixedImage) NeedsMoreSetup() bool {
	if checking() {
		debugCheckSetup(f, "needsMoreSetup")
	}
	return !f.image.IsLoaded()
}

// DoSomeSetup loads the image. A load that lost interest is a no-op.
func (f *FixedImage) DoSomeSetup() {
	f.image.Load()
	f.show.featureSetupDone()
}

func (f *FixedImage) area() Rect {
	w, h := f.image.Size()
	r := Rect{X: f.x, Y: f.y, Width: w, Height: h}
	if f.scale != nil {
		r = f.scale.ScaleRect(r)
	}
	return r
}

func (f *FixedImage) MarkDisplayAreasChanged() { f.record.SetChanged() }

func (f *FixedImage) AddDisplayAreas(ctx RenderContext) {
	r := f.area()
	if r.Empty() {
		return
	}
	f.record.SetAreaRect(r)
	ctx.AddArea(&f.record)
}

func (f *FixedImage) PaintFrame(c Canvas) {
	img := f.image.Image()
	if img == nil {
		return
	}
	if f.scale != nil {
		c.DrawImageScaled(img, f.area())
		return
	}
	c.DrawImage(img, f.x, f.y)
}

func (f *FixedImage) X() int { return f.x }
func (f *FixedImage) Y() int { return f.y }

func (f *FixedImage) makeNewClone() Feature {
	n := &FixedImage{x: f.x, y: f.y, file: f.file, scale: f.scale}
	n.initClone(&f.featureBase, n)
	n.image = n.show.Images().Get(f.file)
	return n
}

func (f *FixedImage) initializeClone(original Feature, clones map[int]Feature) {
	if f.scale != nil {
		if c, ok := clones[f.scale.ID()].(*InterpolatedModel); ok {
			f.scale = c
		}
	}
}
