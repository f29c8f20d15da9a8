package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dejong/internal/attractor"
	"github.com/san-kum/dejong/internal/render"
)

const (
	DefaultWidth      = 400
	DefaultHeight     = 400
	DefaultQuantum    = 10000
	DefaultExposure   = 1.0
	DefaultGamma      = 1.0
	DefaultForeground = "#ffffff"
	DefaultBackground = "#000000"
)

type Config struct {
	Width   int        `yaml:"width"`
	Height  int        `yaml:"height"`
	Quantum int        `yaml:"quantum"`
	Seed    int64      `yaml:"seed"`
	Map     MapConfig  `yaml:"map"`
	Look    LookConfig `yaml:"look"`
}

type MapConfig struct {
	A          float64 `yaml:"a"`
	B          float64 `yaml:"b"`
	C          float64 `yaml:"c"`
	D          float64 `yaml:"d"`
	Zoom       float64 `yaml:"zoom"`
	XOffset    float64 `yaml:"x_offset"`
	YOffset    float64 `yaml:"y_offset"`
	Rotation   float64 `yaml:"rotation"`
	BlurRadius float64 `yaml:"blur_radius"`
	BlurRatio  float64 `yaml:"blur_ratio"`
}

type LookConfig struct {
	Exposure   float64 `yaml:"exposure"`
	Gamma      float64 `yaml:"gamma"`
	Foreground string  `yaml:"foreground"`
	Background string  `yaml:"background"`
}

func DefaultConfig() *Config {
	p := attractor.Default()
	return &Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Quantum: DefaultQuantum,
		Seed:    1,
		Map:     FromParams(p),
		Look: LookConfig{
			Exposure:   DefaultExposure,
			Gamma:      DefaultGamma,
			Foreground: DefaultForeground,
			Background: DefaultBackground,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Quantum <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantum, c.Quantum)
	}
	if c.Map.Zoom < attractor.MinZoom {
		return fmt.Errorf("%w: zoom %g below %g", ErrInvalidMap, c.Map.Zoom, attractor.MinZoom)
	}
	if c.Map.BlurRatio < 0 || c.Map.BlurRatio > 1 {
		return fmt.Errorf("%w: blur_ratio %g outside [0, 1]", ErrInvalidMap, c.Map.BlurRatio)
	}
	if c.Look.Gamma <= 0 {
		return fmt.Errorf("%w: gamma %g", ErrInvalidLook, c.Look.Gamma)
	}
	if _, err := ParseColor(c.Look.Foreground); err != nil {
		return err
	}
	if _, err := ParseColor(c.Look.Background); err != nil {
		return err
	}
	return nil
}

func FromParams(p attractor.Params) MapConfig {
	return MapConfig{
		A: p.A, B: p.B, C: p.C, D: p.D,
		Zoom:       p.Zoom,
		XOffset:    p.XOffset,
		YOffset:    p.YOffset,
		Rotation:   p.Rotation,
		BlurRadius: p.BlurRadius,
		BlurRatio:  p.BlurRatio,
	}
}

func (m MapConfig) Params() attractor.Params {
	return attractor.Params{
		A: m.A, B: m.B, C: m.C, D: m.D,
		Zoom:       m.Zoom,
		XOffset:    m.XOffset,
		YOffset:    m.YOffset,
		Rotation:   m.Rotation,
		BlurRadius: m.BlurRadius,
		BlurRatio:  m.BlurRatio,
	}
}

// RenderLook converts the look section. Colours must already be valid.
func (l LookConfig) RenderLook() (render.Look, error) {
	fg, err := ParseColor(l.Foreground)
	if err != nil {
		return render.Look{}, err
	}
	bg, err := ParseColor(l.Background)
	if err != nil {
		return render.Look{}, err
	}
	return render.Look{Exposure: l.Exposure, Gamma: l.Gamma, Foreground: fg, Background: bg}, nil
}

// Apply copies the map and look sections into st. The histogram is left
// alone; callers decide whether the change needs a restart.
func (c *Config) Apply(st *render.State) error {
	look, err := c.Look.RenderLook()
	if err != nil {
		return err
	}
	st.Params = c.Map.Params()
	st.Look = look
	return nil
}

// ParseColor accepts #rgb and #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
