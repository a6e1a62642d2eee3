// Package config loads stick layouts from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/thumbstick"
)

// Stick kinds.
const (
	KindNormalized = "normalized" // thumbstick.Stick
	KindDelta      = "delta"      // thumbstick.DeltaStick
)

// Default surface sizes per kind.
const (
	DefaultNormalizedSize = 100.0
	DefaultDeltaSize      = 200.0
)

var (
	ErrUnknownKind     = errors.New("unknown stick kind")
	ErrUnknownLockAxis = errors.New("unknown lock axis")
)

// StickSpec describes one stick and the surface it sits on. Fields that do
// not apply to the stick's kind are ignored.
type StickSpec struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // "normalized" (default) or "delta"

	// normalized
	Radius     float64  `yaml:"radius,omitempty"`
	LockX      bool     `yaml:"lock_x,omitempty"` // keeps horizontal motion only
	LockY      bool     `yaml:"lock_y,omitempty"` // keeps vertical motion only
	ThrottleMs *int     `yaml:"throttle_ms,omitempty"`
	DeadZone   *float64 `yaml:"dead_zone,omitempty"`

	// delta
	BaseRadius  float64 `yaml:"base_radius,omitempty"`
	StickRadius float64 `yaml:"stick_radius,omitempty"`
	LockAxis    string  `yaml:"lock_axis,omitempty"` // "", "x" or "y"
	BaseImage   string  `yaml:"base_image,omitempty"`
	StickImage  string  `yaml:"stick_image,omitempty"`

	// surface, in screen pixels
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// WindowConfig configures the demo window.
type WindowConfig struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	ShowFPS bool   `yaml:"show_fps"`
}

// LogConfig configures internal/logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config aggregates a stick layout.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Log    LogConfig    `yaml:"log"`
	Sticks []StickSpec  `yaml:"sticks"`
}

// Default returns the two-stick layout of the original demo plus a
// normalized stick.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: "thumbstick", Width: 640, Height: 480},
		Log:    LogConfig{Level: "info", Format: "console"},
		Sticks: []StickSpec{
			{Name: "move", Kind: KindNormalized, X: 270, Y: 40, Width: DefaultNormalizedSize, Height: DefaultNormalizedSize},
			{Name: "horizontal", Kind: KindDelta, LockAxis: "x", X: 40, Y: 240, Width: DefaultDeltaSize, Height: DefaultDeltaSize},
			{Name: "vertical", Kind: KindDelta, LockAxis: "y", X: 400, Y: 240, Width: DefaultDeltaSize, Height: DefaultDeltaSize},
		},
	}
}

// Load reads a YAML file and returns the configuration with defaults
// applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes, applies defaults and validates every stick.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	def := Default()
	if cfg.Window.Title == "" {
		cfg.Window.Title = def.Window.Title
	}
	if cfg.Window.Width <= 0 {
		cfg.Window.Width = def.Window.Width
	}
	if cfg.Window.Height <= 0 {
		cfg.Window.Height = def.Window.Height
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if len(cfg.Sticks) == 0 {
		cfg.Sticks = def.Sticks
	}

	seen := make(map[string]bool, len(cfg.Sticks))
	for i := range cfg.Sticks {
		s := &cfg.Sticks[i]
		if s.Name == "" {
			return nil, fmt.Errorf("sticks[%d]: name is required", i)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("sticks[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
		if err := s.normalize(); err != nil {
			return nil, fmt.Errorf("stick %q: %w", s.Name, err)
		}
	}
	return &cfg, nil
}

func (s *StickSpec) normalize() error {
	size := DefaultNormalizedSize
	switch s.Kind {
	case "", KindNormalized:
		s.Kind = KindNormalized
	case KindDelta:
		size = DefaultDeltaSize
		if _, err := parseAxis(s.LockAxis); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
	if s.Width <= 0 {
		s.Width = size
	}
	if s.Height <= 0 {
		s.Height = size
	}
	return nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Stick returns the stick with the given name.
func (c *Config) Stick(name string) (StickSpec, bool) {
	for _, s := range c.Sticks {
		if s.Name == name {
			return s, true
		}
	}
	return StickSpec{}, false
}

// Bounds returns the stick's surface rectangle.
func (s StickSpec) Bounds() thumbstick.Rect {
	return thumbstick.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// StickConfig converts a normalized stick. Unset fields keep the
// thumbstick defaults; throttle_ms and dead_zone may be set to 0.
func (s StickSpec) StickConfig() thumbstick.StickConfig {
	cfg := thumbstick.DefaultStickConfig()
	cfg.Name = s.Name
	if s.Radius > 0 {
		cfg.Radius = s.Radius
	}
	cfg.LockX = s.LockX
	cfg.LockY = s.LockY
	if s.ThrottleMs != nil {
		cfg.ThrottleTime = time.Duration(*s.ThrottleMs) * time.Millisecond
	}
	if s.DeadZone != nil {
		cfg.DeadZone = *s.DeadZone
	}
	return cfg
}

// DeltaConfig converts a delta stick. An invalid lock axis, which Load
// rejects, is treated as unlocked.
func (s StickSpec) DeltaConfig() thumbstick.DeltaConfig {
	cfg := thumbstick.DefaultDeltaConfig()
	cfg.Name = s.Name
	if s.BaseRadius > 0 {
		cfg.BaseRadius = s.BaseRadius
	}
	if s.StickRadius > 0 {
		cfg.StickRadius = s.StickRadius
	}
	cfg.LockAxis, _ = parseAxis(s.LockAxis)
	return cfg
}

func parseAxis(s string) (thumbstick.Axis, error) {
	switch s {
	case "":
		return thumbstick.AxisNone, nil
	case "x":
		return thumbstick.AxisX, nil
	case "y":
		return thumbstick.AxisY, nil
	}
	return thumbstick.AxisNone, fmt.Errorf("%w: %q", ErrUnknownLockAxis, s)
}
