package grin

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugOverlay shows FPS, TPS and the last frame's redraw numbers in the
// top-left corner. The engine repaints its rectangle every frame so it never
// leaves trails on the retained screen.
type debugOverlay struct {
	img        *ebiten.Image
	rect       Rect
	lastUpdate int64
}

func newDebugOverlay() *debugOverlay {
	// 160x48 is enough for three lines of ebitenutil.DebugPrint.
	return &debugOverlay{rect: Rect{Width: 160, Height: 48}}
}

func (o *debugOverlay) draw(screen *ebiten.Image, stats FrameStats) {
	if o.img == nil {
		o.img = ebiten.NewImage(o.rect.Width, o.rect.Height)
	}
	// Refresh the text about twice a second at 24 ticks.
	if o.lastUpdate == 0 || stats.Frame-o.lastUpdate >= 12 {
		o.lastUpdate = stats.Frame
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f  TPS: %.1f\nrects: %d  erased: %d\npixels: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), stats.DirtyRects, stats.Erased, stats.DirtyPixels))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(o.rect.X), float64(o.rect.Y))
	screen.DrawImage(o.img, op)
}
