package grin

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Decoder turns asset bytes into an image.
type Decoder func(r io.Reader) (*ebiten.Image, error)

// Releaser frees an image's pixels.
type Releaser func(img *ebiten.Image)

func decodeEbiten(r io.Reader) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromReader(r)
	return img, err
}

func releaseEbiten(img *ebiten.Image) {
	img.Deallocate()
}

// ImageRegistry is the per-runtime cache of ManagedImages by name. Get and
// Unget count references; an image is unregistered when its last reference
// goes away.
type ImageRegistry struct {
	mu     sync.Mutex
	images map[string]*ManagedImage

	source   AssetSource
	decoder  Decoder
	releaser Releaser
	logger   *slog.Logger
	metrics  *Metrics
}

// NewImageRegistry creates a registry reading from source. A nil logger
// discards logs; nil metrics are not recorded.
func NewImageRegistry(source AssetSource, logger *slog.Logger, metrics *Metrics) *ImageRegistry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ImageRegistry{
		images:   make(map[string]*ManagedImage),
		source:   source,
		decoder:  decodeEbiten,
		releaser: releaseEbiten,
		logger:   logger,
		metrics:  metrics,
	}
}

// SetCodec replaces how images are decoded and released. Nil arguments keep
// the current function.
func (r *ImageRegistry) SetCodec(d Decoder, rel Releaser) {
	if d != nil {
		r.decoder = d
	}
	if rel != nil {
		r.releaser = rel
	}
}

// Get returns the image registered under name, registering it on first use,
// and adds a reference.
func (r *ImageRegistry) Get(name string) *ManagedImage {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.images[name]
	if !ok {
		m = newManagedImage(name, r)
		r.images[name] = m
		r.metrics.imageRegistered(1)
	}
	m.refCount++
	return m
}

// Unget drops a reference. The last reference unregisters the image, which
// must no longer be prepared by then.
func (r *ImageRegistry) Unget(m *ManagedImage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if checking() {
		if r.images[m.name] != m {
			panic(errors.AssertionFailedf("grin: unget of unregistered image %q", m.name))
		}
		if m.refCount <= 0 {
			panic(errors.AssertionFailedf("grin: unget of image %q without matching get", m.name))
		}
	}
	m.refCount--
	if m.refCount > 0 {
		return
	}
	if checking() {
		if _, prepared := m.snapshot(); prepared > 0 {
			panic(errors.AssertionFailedf("grin: image %q unregistered while still prepared", m.name))
		}
	}
	delete(r.images, m.name)
	r.metrics.imageRegistered(-1)
}

// Lookup returns the registered image with the given name without adding a
// reference.
func (r *ImageRegistry) Lookup(name string) (*ManagedImage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.images[name]
	return m, ok
}

// Len returns the number of registered images.
func (r *ImageRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.images)
}

// decode reads and decodes one asset. It is called without any lock held.
func (r *ImageRegistry) decode(name string) (*ebiten.Image, error) {
	start := time.Now()
	if r.source == nil {
		r.metrics.imageLoaded(time.Since(start), false)
		return nil, errors.Wrapf(ErrAssetNotFound, "%q: no asset source", name)
	}
	rc, err := r.source.Open(name)
	if err != nil {
		r.metrics.imageLoaded(time.Since(start), false)
		return nil, err
	}
	defer rc.Close()
	img, err := r.decoder(rc)
	if err != nil {
		r.metrics.imageLoaded(time.Since(start), false)
		return nil, errors.Wrapf(err, "grin: decode %q", name)
	}
	r.metrics.imageLoaded(time.Since(start), true)
	return img, nil
}

func (r *ImageRegistry) release(img *ebiten.Image) {
	r.releaser(img)
}
