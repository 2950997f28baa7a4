// Package config provides the appearance and sharing configuration for
// localsketch. Configuration is optional: without a file the defaults
// apply. Values only affect appearance and the share endpoint, never
// drawing behavior.
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"
)

// Default values used when no configuration file is given.
const (
	// DefaultStrokeColor is the default stroke color.
	DefaultStrokeColor = "#df4b26"
	// DefaultStrokeWidth is the default stroke width in pixels.
	DefaultStrokeWidth = 5.0
	// DefaultWindowWidth is the default window width in pixels.
	DefaultWindowWidth = 640
	// DefaultWindowHeight is the default window height in pixels.
	DefaultWindowHeight = 480
	// DefaultSharePort is the default port for the LAN mirror endpoint.
	DefaultSharePort = 8787
)

// MaxStrokeWidth bounds the configurable stroke width.
const MaxStrokeWidth = 100.0

// Config is the complete localsketch configuration.
type Config struct {
	// Stroke holds the line style of the sketch surface.
	Stroke StrokeConfig `toml:"stroke"`
	// Window holds the initial window geometry.
	Window WindowConfig `toml:"window"`
	// Share holds the LAN mirror settings.
	Share ShareConfig `toml:"share"`
}

// StrokeConfig holds the line style. Caps and joins are always round
// and are not configurable.
type StrokeConfig struct {
	// Color is the stroke color, as #rgb or #rrggbb hex or an SVG 1.1
	// color name such as "black" or "steelblue".
	Color string `toml:"color"`
	// Width is the stroke width in pixels.
	Width float64 `toml:"width"`
}

// WindowConfig holds the initial window geometry in pixels.
type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// ShareConfig holds the LAN mirror settings.
type ShareConfig struct {
	// Port is the TCP port the mirror endpoint listens on.
	Port int `toml:"port"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Stroke: StrokeConfig{
			Color: DefaultStrokeColor,
			Width: DefaultStrokeWidth,
		},
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Share: ShareConfig{
			Port: DefaultSharePort,
		},
	}
}

// Load reads the TOML file at path on top of the defaults and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all fields and returns an error naming every invalid
// one, or nil.
func (c Config) Validate() error {
	var errs []ValidationError
	if _, err := ParseColor(c.Stroke.Color); err != nil {
		errs = append(errs, ValidationError{Field: "stroke.color", Message: err.Error()})
	}
	if c.Stroke.Width <= 0 {
		errs = append(errs, ValidationError{Field: "stroke.width", Message: fmt.Sprintf("must be positive, got %v", c.Stroke.Width)})
	} else if c.Stroke.Width > MaxStrokeWidth {
		errs = append(errs, ValidationError{Field: "stroke.width", Message: fmt.Sprintf("must be at most %v, got %v", MaxStrokeWidth, c.Stroke.Width)})
	}
	if c.Window.Width <= 0 {
		errs = append(errs, ValidationError{Field: "window.width", Message: fmt.Sprintf("must be positive, got %d", c.Window.Width)})
	}
	if c.Window.Height <= 0 {
		errs = append(errs, ValidationError{Field: "window.height", Message: fmt.Sprintf("must be positive, got %d", c.Window.Height)})
	}
	if c.Share.Port < 1 || c.Share.Port > 65535 {
		errs = append(errs, ValidationError{Field: "share.port", Message: fmt.Sprintf("must be in 1..65535, got %d", c.Share.Port)})
	}
	if len(errs) == 0 {
		return nil
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// StrokeColor returns the parsed stroke color. The config must have
// been validated; on a parse failure the default color is returned.
func (c Config) StrokeColor() color.Color {
	col, err := ParseColor(c.Stroke.Color)
	if err != nil {
		col, _ = ParseColor(DefaultStrokeColor)
	}
	return col
}

// ParseColor parses #rgb or #rrggbb hex notation or an SVG 1.1 color
// name into an opaque color.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, fmt.Errorf("empty color")
	}
	if !strings.HasPrefix(s, "#") {
		if col, ok := colornames.Map[s]; ok {
			return col, nil
		}
		return nil, fmt.Errorf("unknown color name %q", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		// #rgb expands each digit, #fa0 -> #ffaa00.
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return nil, fmt.Errorf("hex color %q must have 3 or 6 digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad hex color %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
