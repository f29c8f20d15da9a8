// Package render accumulates de Jong samples into a density histogram and
// tone-maps the histogram into an RGBA pixel buffer.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/san-kum/dejong/internal/attractor"
)

// Look holds the tone-mapping settings. Changing it never invalidates the
// histogram.
type Look struct {
	Exposure   float64
	Gamma      float64
	Foreground color.RGBA
	Background color.RGBA
}

func DefaultLook() Look {
	return Look{
		Exposure:   1.0,
		Gamma:      1.0,
		Foreground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Background: color.RGBA{A: 255},
	}
}

// State is the render state owned by a single controller. Pixels always has
// Width*Height*4 bytes and Histogram Width*Height buckets.
type State struct {
	Width, Height int

	Pixels     []byte
	Histogram  []uint32
	Iterations uint64
	Density    uint32
	Dirty      bool

	Params attractor.Params
	Look   Look

	x, y float64
	rng  *rand.Rand
}

func New(width, height int, seed int64) (*State, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	s := &State{
		Params: attractor.Default(),
		Look:   DefaultLook(),
		rng:    rand.New(rand.NewSource(seed)),
	}
	s.alloc(width, height)
	return s, nil
}

func (s *State) alloc(width, height int) {
	s.Width, s.Height = width, height
	s.Pixels = make([]byte, width*height*4)
	s.Histogram = make([]uint32, width*height)
	s.Iterations = 0
	s.Density = 0
}

// Resize recreates the buffers at the new size. Accumulated samples are
// dropped and the state is marked dirty.
func (s *State) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	s.alloc(width, height)
	s.Dirty = true
	return nil
}

// Clear drops every accumulated sample. The map point keeps its position so
// the orbit resumes on the attractor.
func (s *State) Clear() {
	clear(s.Histogram)
	s.Iterations = 0
	s.Density = 0
}

// RunIterations advances the map by exactly n samples.
func (s *State) RunIterations(n int) {
	if n <= 0 {
		return
	}
	w, h := s.Width, s.Height
	scale := float64(min(w, h)) / 4
	cx, cy := float64(w)/2, float64(h)/2

	for i := 0; i < n; i++ {
		s.x, s.y = s.Params.Next(s.x, s.y)
		px, py := s.Params.Blur(s.rng, s.x, s.y)
		px, py = s.Params.Project(px, py)

		ix := int(math.Floor(px*scale + cx))
		iy := int(math.Floor(py*scale + cy))
		if ix < 0 || iy < 0 || ix >= w || iy >= h {
			continue
		}
		idx := iy*w + ix
		s.Histogram[idx]++
		if s.Histogram[idx] > s.Density {
			s.Density = s.Histogram[idx]
		}
	}
	s.Iterations += uint64(n)
}

// UpdatePixels overwrites the whole pixel buffer from the histogram.
func (s *State) UpdatePixels() {
	look := s.Look
	gamma := look.Gamma
	if gamma <= 0 {
		gamma = 1
	}
	invGamma := 1 / gamma
	fg, bg := look.Foreground, look.Background

	norm := 0.0
	if s.Density > 0 {
		norm = 1 / math.Log1p(float64(s.Density))
	}

	for i, count := range s.Histogram {
		p := s.Pixels[i*4 : i*4+4 : i*4+4]
		if count == 0 || norm == 0 {
			p[0], p[1], p[2], p[3] = bg.R, bg.G, bg.B, 255
			continue
		}
		l := clamp01(look.Exposure * math.Log1p(float64(count)) * norm)
		l = math.Pow(l, invGamma)
		p[0] = lerp(bg.R, fg.R, l)
		p[1] = lerp(bg.G, fg.G, l)
		p[2] = lerp(bg.B, fg.B, l)
		p[3] = 255
	}
}

// Image returns an RGBA view sharing the pixel buffer.
func (s *State) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    s.Pixels,
		Stride: s.Width * 4,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
