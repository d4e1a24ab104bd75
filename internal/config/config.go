// Package config loads the editor configuration from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/guides"
	"github.com/ha1tch/deluxepixel/internal/raster"
	"github.com/ha1tch/deluxepixel/internal/symmetry"
	"github.com/ha1tch/deluxepixel/internal/tools"
)

// FileName is the config file name inside Dir().
const FileName = "config.toml"

// Pixel size limits
const (
	MinPixelSize = 1
	MaxPixelSize = 16
)

type Config struct {
	Canvas          CanvasConfig    `toml:"canvas"`
	Tools           ToolsConfig     `toml:"tools"`
	History         HistoryConfig   `toml:"history"`
	Guides          GuidesConfig    `toml:"guides"`
	Palette         []string        `toml:"palette"`
	ProjectDir      string          `toml:"project_dir"`
	CharacterGender string          `toml:"character_gender"`
	Sections        []SectionConfig `toml:"sections"`
}

type CanvasConfig struct {
	Width     int `toml:"width"`
	Height    int `toml:"height"`
	PixelSize int `toml:"pixel_size"`
}

type ToolsConfig struct {
	Color      string        `toml:"color"`
	BrushSize  int           `toml:"brush_size"`
	BrushAlpha float64       `toml:"brush_alpha"`
	Symmetry   bool          `toml:"symmetry"`
	Axis       symmetry.Axis `toml:"axis"`
	FillShapes bool          `toml:"fill_shapes"`
}

type HistoryConfig struct {
	Limit int `toml:"limit"`
}

type GuidesConfig struct {
	ShowGrid   bool `toml:"show_grid"`
	ShowGuides bool `toml:"show_guides"`
	GridStep   int  `toml:"grid_step"`
}

type SectionConfig struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	X      int    `toml:"x"`
	Y      int    `toml:"y"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Color  string `toml:"color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{Width: 512, Height: 512, PixelSize: 8},
		Tools: ToolsConfig{
			Color:      "#000000",
			BrushSize:  4,
			BrushAlpha: tools.DefaultBrushAlpha,
			Axis:       symmetry.Vertical,
		},
		History: HistoryConfig{Limit: 100},
		Guides:  GuidesConfig{ShowGrid: true, ShowGuides: true, GridStep: 16},
		Palette: []string{
			"#000000", "#FFFFFF", "#E62937", "#00E430", "#0079F1",
			"#FDF900", "#FFA100", "#C87AFF", "#FF6DC2", "#7F6A4F",
			"#828282", "#505050", "#C8C8C8", "#66BFFF", "#FF00FF",
			"#FF0080", "#80FF00", "#0080FF",
		},
		ProjectDir:      filepath.Join(dataDir(), "projects"),
		CharacterGender: "neutral",
	}
}

// Dir returns the directory holding the config file.
func Dir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "deluxepixel")
}

func dataDir() string {
	return filepath.Join(xdgOrFallback("XDG_DATA_HOME", filepath.Join(os.Getenv("HOME"), ".local", "share")), "deluxepixel")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), FileName)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg.Normalize(), nil
}

// Write stores cfg at path, creating the directory when needed.
func Write(path string, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// InitIfNot writes the defaults to path unless a file already exists there.
// It reports whether a file was written.
func InitIfNot(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("check config %s: %w", path, err)
	}
	return true, Write(path, Default())
}

// Normalize clamps every field to its supported range.
func (c Config) Normalize() Config {
	d := Default()
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = d.Canvas.Width
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = d.Canvas.Height
	}
	c.Canvas.Width = min(c.Canvas.Width, document.MaxSide)
	c.Canvas.Height = min(c.Canvas.Height, document.MaxSide)
	c.Canvas.PixelSize = ClampPixelSize(c.Canvas.PixelSize)
	c.Tools.BrushSize = tools.ClampBrushSize(c.Tools.BrushSize)
	if c.Tools.BrushAlpha <= 0 || c.Tools.BrushAlpha > 1 {
		c.Tools.BrushAlpha = d.Tools.BrushAlpha
	}
	if _, err := raster.ParseHex(c.Tools.Color); err != nil {
		c.Tools.Color = d.Tools.Color
	}
	if c.History.Limit < 0 {
		c.History.Limit = 0
	}
	if c.Guides.GridStep <= 0 {
		c.Guides.GridStep = 1
	}
	if c.ProjectDir == "" {
		c.ProjectDir = d.ProjectDir
	}
	return c
}

// ClampPixelSize limits a zoom factor to 1..16.
func ClampPixelSize(n int) int {
	if n < MinPixelSize {
		return MinPixelSize
	}
	if n > MaxPixelSize {
		return MaxPixelSize
	}
	return n
}

// ToolState builds the initial tool settings.
func (c Config) ToolState() tools.State {
	st := tools.DefaultState()
	if col, err := raster.ParseHex(c.Tools.Color); err == nil {
		st.Color = col
	}
	st.BrushSize = tools.ClampBrushSize(c.Tools.BrushSize)
	if c.Tools.BrushAlpha > 0 && c.Tools.BrushAlpha <= 1 {
		st.BrushAlpha = c.Tools.BrushAlpha
	}
	st.SymmetryEnabled = c.Tools.Symmetry
	st.Axis = c.Tools.Axis
	st.FillShapes = c.Tools.FillShapes
	return st
}

// PaletteColors parses the palette, skipping invalid entries.
func (c Config) PaletteColors() []raster.Color {
	out := make([]raster.Color, 0, len(c.Palette))
	for _, s := range c.Palette {
		if col, err := raster.ParseHex(s); err == nil {
			out = append(out, col)
		}
	}
	return out
}

// CharacterSections returns the configured sections, or the defaults for
// the canvas when none are configured.
func (c Config) CharacterSections() []guides.Section {
	if len(c.Sections) == 0 {
		return guides.DefaultSections(c.Canvas.Width, c.Canvas.Height)
	}
	out := make([]guides.Section, 0, len(c.Sections))
	for _, s := range c.Sections {
		col, err := raster.ParseHex(s.Color)
		if err != nil {
			col = raster.White
		}
		out = append(out, guides.Section{
			ID:    s.ID,
			Name:  s.Name,
			Area:  raster.Rect{X0: s.X, Y0: s.Y, X1: s.X + s.Width, Y1: s.Y + s.Height},
			Color: col,
		})
	}
	return out
}

func xdgOrFallback(xdg string, fallback string) string {
	if dir := os.Getenv(xdg); dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return dir
		}
	}
	return fallback
}
