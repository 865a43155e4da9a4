package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/grin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("[screen]\nwidth = 800\nheight = 600\n"), 0o644))
	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[screen]\nwidth = -1\n"), 0o644))

	cmd := newCheck()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{good})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "800x600")

	cmd = newCheck()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{bad})
	assert.Error(t, cmd.Execute())
}

func TestDemoPlaysHeadless(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	rt, err := grin.NewRuntime(cfg, grin.RuntimeOptions{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	d := buildDemo(rt)
	e := grin.NewEngine(rt, d.show)
	d.show.Initialize()
	d.show.RunCommand(grin.ActivateSegmentCommand{Segment: segIntro})

	c := grin.NewRecordingCanvas(cfg.Screen.Width, cfg.Screen.Height)
	for i := 0; i < 48; i++ {
		e.Step(c)
	}
	require.NotNil(t, d.show.CurrentSegment())
	assert.Equal(t, segMenu, d.show.CurrentSegment().Name, "the title fade should hand over to the menu")

	d.show.RunCommand(grin.SetPartCommand{Assembly: d.cursor, Part: "quit"})
	c.Clear()
	stats := e.Step(c)
	assert.Equal(t, "hi-quit", d.cursor.CurrentPart().Name())
	assert.Positive(t, stats.DirtyRects)
}
