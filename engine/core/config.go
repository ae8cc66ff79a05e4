package core

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config for the engine run.
type Config struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	VSync      bool       `toml:"vsync"`
	ClearColor [4]float32 `toml:"clear_color"` // RGBA

	// Glyph atlas texture dimensions.
	AtlasWidth  int `toml:"atlas_width"`
	AtlasHeight int `toml:"atlas_height"`

	// FontPath is a TTF/OTF file; empty selects the bundled Go Regular face.
	FontPath string  `toml:"font_path"`
	FontSize float32 `toml:"font_size"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Title:       "trellis",
		Width:       1280,
		Height:      720,
		VSync:       true,
		ClearColor:  [4]float32{0, 0, 0, 1},
		AtlasWidth:  512,
		AtlasHeight: 512,
		FontSize:    30,
		LogLevel:    "info",
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.AtlasWidth <= 0 || c.AtlasHeight <= 0 {
		return fmt.Errorf("atlas size must be positive, got %dx%d", c.AtlasWidth, c.AtlasHeight)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.FontSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
