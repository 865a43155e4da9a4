package grin

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Frames             prometheus.Counter
	ImagesLoaded       prometheus.Counter
	ImageLoadFailures  prometheus.Counter
	SetupWork          prometheus.Counter
	SetupQueueDepth    prometheus.Gauge
	ImagesRegistered   prometheus.Gauge
	ImageLoadLatency   prometheus.Histogram
	DirtyRectsPerFrame prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grin_frames_total",
			Help: "Frames advanced and painted.",
		}),
		ImagesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grin_images_loaded_total",
			Help: "Images decoded successfully.",
		}),
		ImageLoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grin_image_load_failures_total",
			Help: "Images that failed to open or decode.",
		}),
		SetupWork: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grin_setup_work_total",
			Help: "Units of background setup work performed.",
		}),
		SetupQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "grin_setup_queue_depth",
			Help: "Features waiting for background setup.",
		}),
		ImagesRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "grin_images_registered",
			Help: "Images currently held by the registry.",
		}),
		ImageLoadLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "grin_image_load_seconds",
			Help:    "Time to open and decode an image.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		DirtyRectsPerFrame: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "grin_dirty_rects_per_frame",
			Help:    "Rectangles repainted per frame, over all draw targets.",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.Frames,
			m.ImagesLoaded,
			m.ImageLoadFailures,
			m.SetupWork,
			m.SetupQueueDepth,
			m.ImagesRegistered,
			m.ImageLoadLatency,
			m.DirtyRectsPerFrame,
		)
	}
	return m
}

func (m *Metrics) frame(dirtyRects int) {
	if m == nil {
		return
	}
	m.Frames.Inc()
	m.DirtyRectsPerFrame.Observe(float64(dirtyRects))
}

func (m *Metrics) imageLoaded(d time.Duration, ok bool) {
	if m == nil {
		return
	}
	m.ImageLoadLatency.Observe(d.Seconds())
	if ok {
		m.ImagesLoaded.Inc()
	} else {
		m.ImageLoadFailures.Inc()
	}
}

func (m *Metrics) imageRegistered(delta float64) {
	if m == nil {
		return
	}
	m.ImagesRegistered.Add(delta)
}

func (m *Metrics) setupWork(queueDepth int) {
	if m == nil {
		return
	}
	m.SetupWork.Inc()
	m.SetupQueueDepth.Set(float64(queueDepth))
}

func (m *Metrics) setupQueued(queueDepth int) {
	if m == nil {
		return
	}
	m.SetupQueueDepth.Set(float64(queueDepth))
}
