package grin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Rect{Width: 1920, Height: 1080}, cfg.Bounds())
	assert.Equal(t, ColorBlack, cfg.Clear())
	assert.Equal(t, []string{"T:Default"}, cfg.Engine.DrawTargets)
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[screen]
width = 640
height = 480
clear_color = "#ff0000"

[engine]
debug = true
draw_targets = ["T:Default", "T:Overlay"]

[assets]
search_path = ["assets", "shared"]
`))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Screen.Width)
	assert.Equal(t, 24, cfg.Screen.TicksPerSecond, "unset keys keep their default")
	assert.Equal(t, Color{1, 0, 0, 1}, cfg.Clear())
	assert.True(t, cfg.Engine.Debug)
	assert.Equal(t, DefaultMaxDirtyRects, cfg.Engine.MaxDirtyRects)
	assert.Equal(t, []string{"assets", "shared"}, cfg.Assets.SearchPath)
}

func TestParseConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"syntax", "[screen\nwidth = 1", "parse config"},
		{"size", "[screen]\nwidth = 0", "screen size"},
		{"tps", "[screen]\nticks_per_second = -1", "ticks_per_second"},
		{"rects", "[engine]\nmax_dirty_rects = 0", "max_dirty_rects"},
		{"no targets", "[engine]\ndraw_targets = []", "draw target"},
		{"dup targets", "[engine]\ndraw_targets = [\"a\", \"a\"]", "duplicate draw target"},
		{"queue", "[setup]\nqueue_capacity = 0", "queue_capacity"},
		{"color", "[screen]\nclear_color = \"red\"", "clear_color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.toml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "show.toml")
	require.NoError(t, os.WriteFile(path, []byte("[screen]\nwidth = 800\nheight = 600\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Rect{Width: 800, Height: 600}, cfg.Bounds())

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestNewRuntimeRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Screen.Width = 0
	_, err := NewRuntime(cfg, RuntimeOptions{})
	assert.Error(t, err)
}
