package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/grin"
	"github.com/tanema/gween/ease"
)

const (
	segIntro = "S:Intro"
	segMenu  = "S:Menu"
)

var menuParts = []string{"new", "load", "quit"}

type demo struct {
	show   *grin.Show
	cursor *grin.Assembly
	sel    int
}

func mustColor(hex string) grin.Color {
	c, err := grin.ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// buildDemo lays out a two-segment show: a title that fades in over a
// sliding bar, then a menu whose highlight is an assembly part.
func buildDemo(rt *grin.Runtime) *demo {
	s := grin.NewShow(rt, "demo")
	screen := rt.Config.Bounds()
	d := &demo{show: s}

	bg := mustColor("#1e1e28")
	accent := mustColor("#50b4ff")
	dim := mustColor("#3c3c50")

	backdrop := grin.NewGuaranteeFill(s, "backdrop", screen, nil,
		grin.NewBox(s, "backdrop-box", screen, grin.BoxStyle{Fill: &bg}))

	title := grin.NewText(s, "title", 40, 40, []string{"grin", "press any arrow key"}, nil, grin.ColorWhite, nil)
	fadeIn := grin.NewFade(s, "title-fade", title,
		[]grin.FadeKey{{Frame: 0, Alpha: 0, Ease: ease.OutQuad}, {Frame: 36, Alpha: 255}},
		1, grin.NoRepeat, []grin.Command{grin.SegmentDoneCommand{}})

	slide := grin.NewTranslation(s, "slide", []grin.TranslationKey{
		{Frame: 0, X: 0, Y: 0},
		{Frame: 48, X: screen.Width - 80, Y: 0},
		{Frame: 96, X: 0, Y: 0},
	}, grin.LoopInfinite, grin.NoRepeat, nil)
	bar := grin.NewTranslator(s, "bar", slide, false,
		grin.NewBox(s, "bar-box", grin.Rect{X: 0, Y: screen.Height - 40, Width: 80, Height: 16}, grin.BoxStyle{Fill: &accent}))

	var items []grin.Feature
	var highlights []grin.Feature
	for i, name := range menuParts {
		r := grin.Rect{X: 40, Y: 120 + i*40, Width: 200, Height: 30}
		items = append(items, grin.NewBox(s, "item-"+name, r, grin.BoxStyle{Fill: &dim}))
		highlights = append(highlights, grin.NewBox(s, "hi-"+name, r, grin.BoxStyle{Outline: &accent, OutlineWidth: 2}))
	}
	menu := grin.NewGroup(s, "menu", items...)
	d.cursor = grin.NewAssembly(s, "cursor", menuParts, highlights)

	s.AddSegment(&grin.Segment{
		Name:   segIntro,
		Active: []grin.Feature{backdrop, slide, bar, fadeIn},
		Setup:  []grin.Feature{menu, d.cursor},
		Next:   []grin.Command{grin.ActivateSegmentCommand{Segment: segMenu}},
	})
	s.AddSegment(&grin.Segment{
		Name:   segMenu,
		Active: []grin.Feature{backdrop, slide, bar, fadeIn, menu, d.cursor},
	})
	return d
}

// handleKeys moves the menu highlight with the arrow keys and takes a
// screenshot on F12.
func (d *demo) handleKeys(e *grin.Engine) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		e.Screenshot("manual")
	}
	step := 0
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		step = 1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		step = len(menuParts) - 1
	}
	if step != 0 {
		d.sel = (d.sel + step) % len(menuParts)
		d.show.RunCommand(grin.SetPartCommand{Assembly: d.cursor, Part: menuParts[d.sel]})
	}
	return nil
}
