package grin

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next drawn frame. Call it from
// Update or from an OnUpdate hook.
//
// The capture is taken after the dirty rectangles are repainted and the
// layers composited, but before the debug overlay. The composite is written
// to ScreenshotDir as <frame>_<segments>_<label>.png, where segments names
// the current segment of every show. With more than one draw target each
// layer is also written on its own, suffixed with its target name.
func (e *Engine) Screenshot(label string) {
	e.screenshotQueue = append(e.screenshotQueue, label)
}

// screenshotName returns the file name for label on draw target t.
func (e *Engine) screenshotName(label string, t int) string {
	var segs []string
	for _, s := range e.shows {
		if cur := s.CurrentSegment(); cur != nil {
			segs = append(segs, cur.Name)
		}
	}
	where := "none"
	if len(segs) > 0 {
		where = strings.Join(segs, "+")
	}
	name := fmt.Sprintf("%06d_%s_%s", e.frame, sanitizeLabel(where), sanitizeLabel(label))
	if t > 0 {
		name += "_" + sanitizeLabel(e.rt.Config.Engine.DrawTargets[t])
	}
	return name + ".png"
}

// flushScreenshots writes every queued capture. screen holds the composite;
// the engine's layers hold targets 1 and up.
func (e *Engine) flushScreenshots(screen *ebiten.Image) {
	if len(e.screenshotQueue) == 0 {
		return
	}
	defer func() { e.screenshotQueue = e.screenshotQueue[:0] }()

	if err := os.MkdirAll(e.ScreenshotDir, 0o755); err != nil {
		e.rt.Logger.Error("screenshot: mkdir", slog.String("dir", e.ScreenshotDir), slog.Any("error", err))
		return
	}

	targets := []*image.RGBA{readPixels(screen, e.bounds)}
	for _, l := range e.layers.images {
		targets = append(targets, readPixels(l, e.bounds))
	}
	for _, label := range e.screenshotQueue {
		for t, img := range targets {
			path := filepath.Join(e.ScreenshotDir, e.screenshotName(label, t))
			if err := writePNG(path, img); err != nil {
				e.rt.Logger.Error("screenshot", slog.Any("error", err))
				continue
			}
			e.rt.Logger.Info("screenshot written",
				slog.String("path", path),
				slog.Int64("frame", e.frame),
				slog.Int("dirty_rects", e.stats.DirtyRects))
		}
	}
}

// readPixels copies r of src. ebiten pixels are premultiplied, which is
// what image.RGBA holds, so the PNG encoder converts them.
func readPixels(src *ebiten.Image, r Rect) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	sub := src.SubImage(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)).(*ebiten.Image)
	sub.ReadPixels(img.Pix)
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "grin: create %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "grin: encode %s", path)
	}
	return errors.Wrapf(f.Close(), "grin: close %s", path)
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.', r == '+':
			return r
		}
		return '_'
	}, label)
}
