package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// Palette is a foreground/background pair for the tone map, plus the
// accent the panels are drawn with.
type Palette struct {
	Name       string
	Foreground color.RGBA
	Background color.RGBA
	Accent     lipgloss.Color
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

var (
	PaletteMono    = Palette{Name: "mono", Foreground: rgb(0xffffff), Background: rgb(0x000000), Accent: "#ffffff"}
	PaletteInk     = Palette{Name: "ink", Foreground: rgb(0x000000), Background: rgb(0xffffff), Accent: "#888888"}
	PaletteEmber   = Palette{Name: "ember", Foreground: rgb(0xffc080), Background: rgb(0x100800), Accent: "#ff8800"}
	PaletteGlacier = Palette{Name: "glacier", Foreground: rgb(0xa0e0ff), Background: rgb(0x000010), Accent: "#00a8cc"}
	PaletteMoss    = Palette{Name: "moss", Foreground: rgb(0xc0ffc0), Background: rgb(0x000800), Accent: "#00cc00"}
	PaletteNeon    = Palette{Name: "neon", Foreground: rgb(0xff00ff), Background: rgb(0x0a0a0a), Accent: "#00ffff"}

	Palettes = []Palette{
		PaletteMono,
		PaletteInk,
		PaletteEmber,
		PaletteGlacier,
		PaletteMoss,
		PaletteNeon,
	}
)

// GetPalette returns a palette by name, falling back to mono.
func GetPalette(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return PaletteMono
}

// NextPalette returns the palette after the one named, wrapping around.
func NextPalette(name string) Palette {
	for i, p := range Palettes {
		if p.Name == name {
			return Palettes[(i+1)%len(Palettes)]
		}
	}
	return Palettes[0]
}

func PaletteNames() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}
