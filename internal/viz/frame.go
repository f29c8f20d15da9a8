package viz

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// 4x4 Bayer thresholds, scaled to (0, 1).
var bayer = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

func threshold(x, y int) float64 {
	return (bayer[y%4][x%4] + 0.5) / 16
}

// Downscale resamples src to w x h sub-pixels.
func Downscale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// FitCells picks the largest cell grid within cols x rows that keeps the
// frame's aspect ratio. Terminal cells are taken to be twice as tall as
// wide, which braille's 2x4 dots already absorb.
func FitCells(frameW, frameH, cols, rows int) (int, int) {
	if frameW <= 0 || frameH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	scale := math.Min(float64(cols*2)/float64(frameW), float64(rows*4)/float64(frameH))
	w := max(1, int(float64(frameW)*scale)/2)
	h := max(1, int(float64(frameH)*scale)/4)
	return min(w, cols), min(h, rows)
}

// Draw fills c from an RGBA frame. A dot is lit when the pixel's distance
// from bg beats the dither threshold.
func Draw(c *Canvas, frame image.Image, bg color.RGBA) {
	c.Clear()
	dw, dh := c.Dots()
	if dw == 0 || dh == 0 || frame.Bounds().Empty() {
		return
	}
	small := Downscale(frame, dw, dh)

	type acc struct{ r, g, b, n int }
	sums := make([]acc, c.Width*c.Height)
	span := 0.0
	for _, ch := range []uint8{bg.R, bg.G, bg.B} {
		span = math.Max(span, math.Max(float64(ch), 255-float64(ch)))
	}
	if span == 0 {
		span = 255
	}

	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			p := small.RGBAAt(x, y)
			if distance(p, bg)/span <= threshold(x, y) {
				continue
			}
			c.Set(x, y)
			s := &sums[(y/4)*c.Width+x/2]
			s.r += int(p.R)
			s.g += int(p.G)
			s.b += int(p.B)
			s.n++
		}
	}

	for i, s := range sums {
		if s.n == 0 {
			continue
		}
		c.Tint[i/c.Width][i%c.Width] = color.RGBA{
			R: uint8(s.r / s.n), G: uint8(s.g / s.n), B: uint8(s.b / s.n), A: 255,
		}
	}
}

func distance(a, b color.RGBA) float64 {
	d := math.Abs(float64(a.R) - float64(b.R))
	d = math.Max(d, math.Abs(float64(a.G)-float64(b.G)))
	return math.Max(d, math.Abs(float64(a.B)-float64(b.B)))
}

// FramePixels wraps a raw RGBA buffer as an image without copying.
func FramePixels(pixels []byte, w, h int) *image.RGBA {
	return &image.RGBA{Pix: pixels, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
}
