package grin

// ImageSequence flips through a list of images, one per frame. An empty file
// name is a blank frame. It loops and ends like a keyframed model, and may
// be offset by a translation model.
type ImageSequence struct {
	featureBase
	x, y   int
	files  []string
	images []*ManagedImage
	model  *InterpolatedModel
	clock  keyframeClock

	index           int
	reportedIndex   int
	numSetupChecked int
	record          DrawRecord
	released        bool
}

// NewImageSequence creates a sequence at (x, y). model may be nil.
func NewImageSequence(s *Show, name string, x, y int, files []string, model *InterpolatedModel, loopCount, repeatFrame int, endCommands []Command) *ImageSequence {
	q := &ImageSequence{x: x, y: y, files: files, model: model, reportedIndex: -1}
	q.init(s, name, q)
	q.acquire()
	q.clock.init(s, len(files)-1, loopCount, repeatFrame, endCommands, q.seek)
	return q
}

func (q *ImageSequence) acquire() {
	q.images = make([]*ManagedImage, len(q.files))
	for i, f := range q.files {
		if f != "" {
			q.images[i] = q.show.Images().Get(f)
		}
	}
}

func (q *ImageSequence) seek(i int) { q.index = i }

// Index returns the frame currently shown.
func (q *ImageSequence) Index() int { return q.index }

// Done reports whether the sequence has run out of loops.
func (q *ImageSequence) Done() bool { return q.clock.done }

// Destroy drops the registry references. The slice is left intact since the
// setup goroutine may still be reading it.
func (q *ImageSequence) Destroy() {
	if q.released {
		return
	}
	for _, m := range q.images {
		if m != nil {
			q.show.Images().Unget(m)
		}
	}
	q.released = true
}

func (q *ImageSequence) setSetupMode(mode bool) int {
	if !mode {
		for _, m := range q.images {
			if m != nil {
				m.Unprepare()
			}
		}
		return 0
	}
	q.numSetupChecked = 0
	pending := false
	for _, m := range q.images {
		if m != nil {
			m.Prepare()
			pending = pending || !m.IsLoaded()
		}
	}
	if !pending {
		return 0
	}
	q.show.scheduleSetup(q)
	return 1
}

// NeedsMoreSetup reports whether any image is still loading.
func (q *ImageSequence) NeedsMoreSetup() bool {
	if checking() {
		debugCheckSetup(q, "needsMoreSetup")
	}
	for q.numSetupChecked < len(q.images) {
		if m := q.images[q.numSetupChecked]; m != nil && !m.IsLoaded() {
			return true
		}
		q.numSetupChecked++
	}
	return false
}

// DoSomeSetup loads one image and reschedules itself while images remain.
func (q *ImageSequence) DoSomeSetup() {
	var next *ManagedImage
	for _, m := range q.images {
		if m != nil && !m.IsLoaded() {
			next = m
			break
		}
	}
	if next == nil {
		q.show.featureSetupDone()
		return
	}
	next.Load()
	if !next.IsLoaded() {
		// Unprepared while loading.
		return
	}
	q.show.scheduleSetup(q)
}

func (q *ImageSequence) setActivateMode(mode bool) {
	if mode {
		q.clock.reset()
		q.reportedIndex = -1
	}
}

func (q *ImageSequence) NextFrame() { q.clock.advance() }

func (q *ImageSequence) offset() (int, int) {
	if q.model == nil {
		return q.x, q.y
	}
	return q.x + q.model.X(), q.y + q.model.Y()
}

func (q *ImageSequence) current() *ManagedImage {
	if q.index < 0 || q.index >= len(q.images) {
		return nil
	}
	return q.images[q.index]
}

func (q *ImageSequence) MarkDisplayAreasChanged() { q.record.SetChanged() }

func (q *ImageSequence) AddDisplayAreas(ctx RenderContext) {
	m := q.current()
	if m == nil {
		return
	}
	w, h := m.Size()
	if w == 0 || h == 0 {
		return
	}
	x, y := q.offset()
	q.record.SetArea(x, y, w, h)
	if q.index != q.reportedIndex {
		q.record.SetChanged()
		q.reportedIndex = q.index
	}
	ctx.AddArea(&q.record)
}

func (q *ImageSequence) PaintFrame(c Canvas) {
	m := q.current()
	if m == nil {
		return
	}
	if img := m.Image(); img != nil {
		x, y := q.offset()
		c.DrawImage(img, x, y)
	}
}

func (q *ImageSequence) X() int { return q.x }
func (q *ImageSequence) Y() int { return q.y }

func (q *ImageSequence) makeNewClone() Feature {
	n := &ImageSequence{x: q.x, y: q.y, files: q.files, model: q.model, reportedIndex: -1}
	n.initClone(&q.featureBase, n)
	n.acquire()
	n.clock = q.clock
	n.clock.seek = n.seek
	n.index = q.index
	return n
}

func (q *ImageSequence) initializeClone(original Feature, clones map[int]Feature) {
	if q.model != nil {
		if c, ok := clones[q.model.ID()].(*InterpolatedModel); ok {
			q.model = c
		}
	}
}
