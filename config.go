package grin

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// Config is the engine configuration, usually read from a TOML file.
type Config struct {
	Screen ScreenConfig `toml:"screen"`
	Engine EngineConfig `toml:"engine"`
	Setup  SetupConfig  `toml:"setup"`
	Assets AssetsConfig `toml:"assets"`
}

type ScreenConfig struct {
	Width          int `toml:"width"`
	Height         int `toml:"height"`
	TicksPerSecond int `toml:"ticks_per_second"`
	// "#rrggbb" or "#rrggbbaa"
	ClearColor string `toml:"clear_color"`
}

type EngineConfig struct {
	Debug bool `toml:"debug"`
	// Dirty rectangles kept apart per draw target before merging.
	MaxDirtyRects int `toml:"max_dirty_rects"`
	// Draw target names; index 0 is the default target.
	DrawTargets []string `toml:"draw_targets"`
}

type SetupConfig struct {
	QueueCapacity int `toml:"queue_capacity"`
}

type AssetsConfig struct {
	SearchPath []string `toml:"search_path"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Screen: ScreenConfig{
			Width:          1920,
			Height:         1080,
			TicksPerSecond: 24,
			ClearColor:     "#000000",
		},
		Engine: EngineConfig{
			MaxDirtyRects: DefaultMaxDirtyRects,
			DrawTargets:   []string{"T:Default"},
		},
		Setup:  SetupConfig{QueueCapacity: 32},
		Assets: AssetsConfig{SearchPath: []string{"."}},
	}
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "grin: parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "grin: read config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return errors.Newf("grin: screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height)
	case c.Screen.TicksPerSecond <= 0:
		return errors.Newf("grin: ticks_per_second %d must be positive", c.Screen.TicksPerSecond)
	case c.Engine.MaxDirtyRects <= 0:
		return errors.Newf("grin: max_dirty_rects %d must be positive", c.Engine.MaxDirtyRects)
	case len(c.Engine.DrawTargets) == 0:
		return errors.New("grin: at least one draw target is required")
	case c.Setup.QueueCapacity <= 0:
		return errors.Newf("grin: queue_capacity %d must be positive", c.Setup.QueueCapacity)
	}
	seen := make(map[string]bool, len(c.Engine.DrawTargets))
	for _, t := range c.Engine.DrawTargets {
		if seen[t] {
			return errors.Newf("grin: duplicate draw target %q", t)
		}
		seen[t] = true
	}
	if _, err := ParseHexColor(c.Screen.ClearColor); err != nil {
		return errors.Wrap(err, "grin: clear_color")
	}
	return nil
}

// Clear returns the parsed clear colour, or black if it does not parse.
func (c Config) Clear() Color {
	col, err := ParseHexColor(c.Screen.ClearColor)
	if err != nil {
		return ColorBlack
	}
	return col
}

// Bounds returns the screen rectangle.
func (c Config) Bounds() Rect {
	return Rect{Width: c.Screen.Width, Height: c.Screen.Height}
}
