package grin

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestMain(m *testing.M) {
	SetDebugMode(true)
	os.Exit(m.Run())
}

// Test assets hold "WxH" instead of pixels; fakeDecode turns them into blank
// images of that size.
var testAssets = fstest.MapFS{
	"a.png":   {Data: []byte("8x6")},
	"b.png":   {Data: []byte("4x4")},
	"c.png":   {Data: []byte("2x3")},
	"bad.png": {Data: []byte("not an image")},
}

func fakeDecode(r io.Reader) (*ebiten.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var w, h int
	if _, err := fmt.Sscanf(string(data), "%dx%d", &w, &h); err != nil {
		return nil, errors.Newf("cannot decode %q", data)
	}
	return ebiten.NewImage(w, h), nil
}

func fakeRelease(*ebiten.Image) {}

func newTestRuntime(t *testing.T, mutate ...func(*Config)) *Runtime {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Screen.Width, cfg.Screen.Height = 320, 240
	for _, fn := range mutate {
		fn(&cfg)
	}
	rt, err := NewRuntime(cfg, RuntimeOptions{
		Logger: slog.New(slog.DiscardHandler),
		Source: FSSource{FS: testAssets},
	})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	rt.Images.SetCodec(fakeDecode, fakeRelease)
	return rt
}

func newTestShow(t *testing.T) *Show {
	t.Helper()
	return NewShow(newTestRuntime(t), "test")
}

// expectPanic runs fn and fails the test unless it panics with a message
// containing want.
func expectPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", want)
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, want) {
			t.Errorf("panic = %q, want it to contain %q", msg, want)
		}
	}()
	fn()
}

// recordingFeature logs its mode transitions to a shared journal and draws a
// filled rectangle.
type recordingFeature struct {
	featureBase
	log     *[]string
	pending bool
	frames  int
	rect    Rect
	color   Color
	record  DrawRecord
}

func newRecordingFeature(s *Show, name string, log *[]string) *recordingFeature {
	f := &recordingFeature{log: log, color: ColorWhite}
	f.init(s, name, f)
	return f
}

func (f *recordingFeature) note(event string) {
	if f.log != nil {
		*f.log = append(*f.log, event+":"+f.name)
	}
}

func (f *recordingFeature) setSetupMode(mode bool) int {
	if !mode {
		f.note("unsetup")
		return 0
	}
	f.note("setup")
	if f.pending {
		return 1
	}
	return 0
}

func (f *recordingFeature) setActivateMode(mode bool) {
	if mode {
		f.note("activate")
	} else {
		f.note("deactivate")
	}
}

func (f *recordingFeature) NeedsMoreSetup() bool { return f.pending }

func (f *recordingFeature) NextFrame() { f.frames++ }

func (f *recordingFeature) MarkDisplayAreasChanged() { f.record.SetChanged() }

func (f *recordingFeature) AddDisplayAreas(ctx RenderContext) {
	if f.rect.Empty() {
		return
	}
	f.record.SetAreaRect(f.rect)
	ctx.AddArea(&f.record)
}

func (f *recordingFeature) PaintFrame(c Canvas) {
	if !f.rect.Empty() {
		c.FillRect(f.rect, f.color)
	}
}

func (f *recordingFeature) X() int { return f.rect.X }
func (f *recordingFeature) Y() int { return f.rect.Y }

func (f *recordingFeature) makeNewClone() Feature {
	n := &recordingFeature{log: f.log, rect: f.rect, color: f.color}
	n.initClone(&f.featureBase, n)
	return n
}

func joined(log []string) string { return strings.Join(log, " ") }

// recordingDirector logs director callbacks.
type recordingDirector struct {
	DirectorBase
	log *[]string
}

func (d recordingDirector) NotifyAssemblyPartSelected(a *Assembly, selected, old Feature, activated bool) {
	*d.log = append(*d.log, fmt.Sprintf("selected:%s:%s->%s:%t", a.Name(), old.Name(), selected.Name(), activated))
}

func (d recordingDirector) NotifySegmentActivated(seg, old *Segment) {
	name := "<nil>"
	if old != nil {
		name = old.Name
	}
	*d.log = append(*d.log, fmt.Sprintf("segment:%s->%s", name, seg.Name))
}
