// Package grin is a retained-mode presentation engine for [Ebitengine].
//
// A show is a graph of features: boxes, images, image sequences and text at
// the leaves, with groups, assemblies and modifiers (clipping, translation,
// fading, draw target selection) above them. Features are wired once at load
// time and then driven frame by frame; grin works out which rectangles of the
// screen changed and repaints only those.
//
// # Quick start
//
//	cfg, err := grin.LoadConfig("show.toml")
//	if err != nil { ... }
//	rt, err := grin.NewRuntime(cfg, grin.RuntimeOptions{})
//	if err != nil { ... }
//	defer rt.Close()
//
//	s := grin.NewShow(rt, "menu")
//	bg := grin.NewFixedImage(s, "F:Background", 0, 0, "menu.png", 1)
//	title := grin.NewText(s, "F:Title", 40, 40, []string{"Main menu"}, grin.DefaultFace(), grin.ColorWhite, nil)
//	s.AddSegment(&grin.Segment{
//		Name:   "S:Menu",
//		Active: []grin.Feature{bg, title},
//	})
//	s.Initialize()
//	s.ActivateSegment(s.Segment("S:Menu"))
//
//	e := grin.NewEngine(rt, s)
//	if err := rt.Start(ctx); err != nil { ... }
//	return grin.RunGame(e, "menu")
//
// # Feature lifecycle
//
// Every feature moves through four modes. Setup and Unsetup are counted:
// a feature shared by two segments stays set up until both let it go.
// Activate and Deactivate are strict and may only alternate. While set up,
// a feature reports NeedsMoreSetup until its assets are loaded; the
// [SetupScheduler] does that work off the frame loop, one step at a time,
// and never while a frame is being advanced or painted.
//
// # Repainting
//
// Each drawable owns a [DrawRecord]. Every frame, features report their
// records to a [RenderContext]; modifiers wrap the context to translate,
// clip or taint records on the way up. The engine compares each record
// with the previous frame and turns moved, changed, new and vanished
// records into at most a handful of dirty rectangles per draw target.
// Paint then runs once per dirty rectangle with the canvas clipped to it.
//
// # Animation
//
// Keyframed models ([InterpolatedModel], [Fade], [ImageSequence]) step one
// frame per tick, loop a set number of times, and queue [Command]s when they
// finish. [TweenFieldCommand] and [TweenField] drive a settable model field
// with a gween ease instead.
//
// # Headless use
//
// [Engine.Step] runs one frame against any [Canvas]. [RecordingCanvas]
// records what was drawn, which makes repaint behaviour easy to test.
//
// [Ebitengine]: https://ebitengine.org
package grin
