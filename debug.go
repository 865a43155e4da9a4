package grin

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/phanxgames/grin/internal/invariants"
)

// globalDebug mirrors the most recently set debug flag so that feature
// operations (which run on several goroutines and may lack an Engine) can
// check it cheaply.
var globalDebug atomic.Bool

// checking reports whether contract checks run. They are always on in
// invariant builds and can be switched on at runtime with SetDebugMode.
func checking() bool {
	return invariants.Enabled || globalDebug.Load()
}

// SetDebugMode enables or disables runtime contract checks and per-frame
// timing logs.
func SetDebugMode(enabled bool) {
	globalDebug.Store(enabled)
}

// FrameStats holds per-frame timing and redraw metrics.
type FrameStats struct {
	Frame       int64
	Records     int // draw records reported this frame
	DirtyRects  int // rectangles repainted
	Erased      int // rectangles erased before painting
	DirtyPixels int
	AdvanceTime time.Duration
	CollectTime time.Duration
	PaintTime   time.Duration
}

// debugLog prints timing and redraw stats when debug mode is on.
func (e *Engine) debugLog(stats FrameStats) {
	if !globalDebug.Load() {
		return
	}
	e.rt.Logger.Debug("frame",
		slog.Int64("frame", stats.Frame),
		slog.Duration("advance", stats.AdvanceTime),
		slog.Duration("collect", stats.CollectTime),
		slog.Duration("paint", stats.PaintTime),
		slog.Int("records", stats.Records),
		slog.Int("dirty_rects", stats.DirtyRects),
		slog.Int("erased", stats.Erased),
		slog.Int("dirty_pixels", stats.DirtyPixels),
	)
}

// debugCheckSetup panics when f is used in a way that requires it to be set up.
func debugCheckSetup(f Feature, op string) {
	if !f.IsSetup() {
		panic(errors.AssertionFailedf("grin: %s on feature %q that is not set up", op, f.Name()))
	}
}

// debugCheckGraphDepth warns if the subgraph under f is deeper than the
// threshold.
const debugMaxGraphDepth = 32

func debugCheckGraphDepth(f Feature, logger *slog.Logger) {
	if d := graphDepth(f, 0); d > debugMaxGraphDepth {
		logger.Warn("feature graph is deep",
			slog.String("feature", f.Name()),
			slog.Int("depth", d),
			slog.Int("threshold", debugMaxGraphDepth))
	}
}

func graphDepth(f Feature, depth int) int {
	depth++
	if depth > debugMaxGraphDepth {
		return depth
	}
	deepest := depth
	for _, c := range f.children() {
		if d := graphDepth(c, depth); d > deepest {
			deepest = d
		}
	}
	return deepest
}
