package config

import "sort"

func preset(a, b, c, d float64, fg, bg string) *Config {
	cfg := DefaultConfig()
	cfg.Map.A, cfg.Map.B, cfg.Map.C, cfg.Map.D = a, b, c, d
	cfg.Look.Foreground, cfg.Look.Background = fg, bg
	return cfg
}

var Presets = map[string]*Config{
	"classic": preset(1.41, -2.28, 2.42, -2.18, "#ffffff", "#000000"),
	"feather": preset(2.01, -2.53, 1.61, -0.33, "#ffe8b0", "#101018"),
	"wisp":    preset(-2.7, -0.09, -0.86, -2.2, "#a0e0ff", "#000010"),
	"moth":    preset(-2.24, 0.43, -0.65, -2.43, "#ffc080", "#100800"),
	"ribbon":  preset(-2.0, -2.0, -1.2, 2.0, "#c0ffc0", "#000800"),
	"shell":   preset(1.641, 1.902, 0.316, 1.525, "#ffffff", "#202040"),
	"lace":    preset(0.970, -1.899, 1.381, -1.506, "#000000", "#ffffff"),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
