package grin

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
)

type imageState uint8

const (
	imageUnloaded imageState = iota
	imageReadyToLoad
	imageLoading
	imageLoaded
)

func (s imageState) String() string {
	switch s {
	case imageUnloaded:
		return "unloaded"
	case imageReadyToLoad:
		return "readyToLoad"
	case imageLoading:
		return "loading"
	case imageLoaded:
		return "loaded"
	}
	return "unknown"
}

// ManagedImage is a shared, lazily loaded image. Its reference count, held
// under the registry lock, decides how long it stays registered. Its
// prepare count decides whether its pixels should be resident: Prepare
// declares interest, Load (on the setup goroutine) decodes, and the last
// Unprepare releases the pixels.
//
// Decoding and releasing are done outside mu. While a release is in
// progress flushing is set and Load waits for it. A decode whose generation
// no longer matches when it completes was abandoned by Unprepare, and its
// result is thrown away.
type ManagedImage struct {
	name     string
	registry *ImageRegistry
	refCount int // guarded by registry.mu

	mu           sync.Mutex
	cond         sync.Cond
	state        imageState
	prepareCount int
	flushing     bool
	generation   uint64
	img          *ebiten.Image
	width        int
	height       int
}

func newManagedImage(name string, r *ImageRegistry) *ManagedImage {
	m := &ManagedImage{name: name, registry: r}
	m.cond.L = &m.mu
	return m
}

// Name returns the asset name.
func (m *ManagedImage) Name() string { return m.name }

// Prepare declares interest in the pixels. The image becomes ready to load
// if it was unloaded.
func (m *ManagedImage) Prepare() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prepareCount++
	if m.state == imageUnloaded {
		m.state = imageReadyToLoad
	}
}

// Unprepare withdraws interest. The last Unprepare unloads the image,
// abandoning a load in flight.
func (m *ManagedImage) Unprepare() {
	m.mu.Lock()
	if checking() && m.prepareCount <= 0 {
		m.mu.Unlock()
		panic(errors.AssertionFailedf("grin: unprepare of image %q without matching prepare", m.name))
	}
	m.prepareCount--
	if m.prepareCount > 0 {
		m.mu.Unlock()
		return
	}
	var release *ebiten.Image
	switch m.state {
	case imageReadyToLoad:
		m.state = imageUnloaded
	case imageLoading:
		m.generation++
		m.state = imageUnloaded
	case imageLoaded:
		release = m.img
		m.img = nil
		m.width, m.height = 0, 0
		m.state = imageUnloaded
		m.flushing = true
	}
	m.cond.Broadcast()
	m.mu.Unlock()

	if release == nil {
		return
	}
	m.registry.release(release)

	m.mu.Lock()
	m.flushing = false
	m.cond.Broadcast()
	m.mu.Unlock()
}

// Load decodes the image if it is ready to load, blocking the caller. It
// does nothing if the image is already loaded or being loaded, or if no one
// has prepared it. A failed decode leaves the image loaded with zero size.
func (m *ManagedImage) Load() {
	m.mu.Lock()
	for m.flushing {
		m.cond.Wait()
	}
	if m.state != imageReadyToLoad {
		m.mu.Unlock()
		return
	}
	m.state = imageLoading
	gen := m.generation
	m.mu.Unlock()

	img, err := m.registry.decode(m.name)

	m.mu.Lock()
	if m.generation != gen || m.state != imageLoading {
		m.mu.Unlock()
		if img != nil {
			m.registry.release(img)
		}
		return
	}
	if err != nil {
		m.registry.logger.Warn("image load failed",
			slog.String("image", m.name),
			slog.Any("error", err))
		img = nil
	}
	m.img = img
	if img != nil {
		b := img.Bounds()
		m.width, m.height = b.Dx(), b.Dy()
	}
	m.state = imageLoaded
	m.cond.Broadcast()
	m.mu.Unlock()
}

// WaitLoaded blocks until the image is loaded or no longer prepared.
func (m *ManagedImage) WaitLoaded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.prepareCount > 0 && m.state != imageLoaded {
		m.cond.Wait()
	}
}

// IsLoaded reports whether the image has finished loading.
func (m *ManagedImage) IsLoaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == imageLoaded
}

// Image returns the decoded image, or nil if not loaded or the load failed.
func (m *ManagedImage) Image() *ebiten.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.img
}

// Size returns the pixel size, which is zero until loaded and after a
// failed load.
func (m *ManagedImage) Size() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

func (m *ManagedImage) snapshot() (imageState, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.prepareCount
}
