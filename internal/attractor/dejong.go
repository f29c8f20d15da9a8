package attractor

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ErrUnknownParam is returned by SetParam for names Params does not carry.
var ErrUnknownParam = errors.New("attractor: unknown parameter")

// MinZoom is the smallest zoom SetParam accepts.
const MinZoom = 0.01

// Params are the map coefficients plus the view and blur settings.
type Params struct {
	A, B, C, D float64

	Zoom     float64
	XOffset  float64
	YOffset  float64
	Rotation float64 // radians

	BlurRadius float64
	BlurRatio  float64 // probability in [0, 1]
}

func Default() Params {
	return Params{A: 1.41, B: -2.28, C: 2.42, D: -2.18, Zoom: 1}
}

// Next applies one iteration of the map.
func (p Params) Next(x, y float64) (float64, float64) {
	return math.Sin(p.A*y) - math.Cos(p.B*x), math.Sin(p.C*x) - math.Cos(p.D*y)
}

// Project applies rotation, zoom and offsets to a map point. The result is
// still in map units; the renderer scales [-2, 2] onto the pixel grid.
func (p Params) Project(x, y float64) (float64, float64) {
	if p.Rotation != 0 {
		s, c := math.Sincos(p.Rotation)
		x, y = x*c-y*s, x*s+y*c
	}
	return x*p.Zoom + p.XOffset, y*p.Zoom + p.YOffset
}

// Blur jitters a point inside a disk of BlurRadius with probability
// BlurRatio.
func (p Params) Blur(rng *rand.Rand, x, y float64) (float64, float64) {
	if p.BlurRadius <= 0 || p.BlurRatio <= 0 || rng.Float64() >= p.BlurRatio {
		return x, y
	}
	r := p.BlurRadius * math.Sqrt(rng.Float64())
	s, c := math.Sincos(rng.Float64() * 2 * math.Pi)
	return x + r*c, y + r*s
}

func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"a": p.A, "b": p.B, "c": p.C, "d": p.D,
		"zoom": p.Zoom, "xoffset": p.XOffset, "yoffset": p.YOffset, "rotation": p.Rotation,
		"blur_radius": p.BlurRadius, "blur_ratio": p.BlurRatio,
	}
}

func (p *Params) SetParam(n string, v float64) error {
	switch n {
	case "a":
		p.A = v
	case "b":
		p.B = v
	case "c":
		p.C = v
	case "d":
		p.D = v
	case "zoom":
		p.Zoom = math.Max(v, MinZoom)
	case "xoffset":
		p.XOffset = v
	case "yoffset":
		p.YOffset = v
	case "rotation":
		p.Rotation = v
	case "blur_radius":
		p.BlurRadius = v
	case "blur_ratio":
		p.BlurRatio = math.Min(math.Max(v, 0), 1)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, n)
	}
	return nil
}

// ParamNames lists the tunable names in a stable order.
func ParamNames() []string {
	names := make([]string, 0, 10)
	for k := range Default().GetParams() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Randomize draws each coefficient uniformly from [-6, 6).
func (p *Params) Randomize(rng *rand.Rand) {
	p.A = randomCoefficient(rng)
	p.B = randomCoefficient(rng)
	p.C = randomCoefficient(rng)
	p.D = randomCoefficient(rng)
}

func randomCoefficient(rng *rand.Rand) float64 { return rng.Float64()*12 - 6 }
