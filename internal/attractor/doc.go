// Package attractor provides the Peter de Jong map sampled by the renderer.
//
// The map is a two-dimensional chaotic iteration:
//
//	x' = sin(a·y) - cos(b·x)
//	y' = sin(c·x) - cos(d·y)
//
// Its orbit stays inside [-2, 2]² for any coefficients, which lets the
// renderer map points onto a fixed pixel grid. [Params] also carries the
// view transform (zoom, offsets, rotation) and the blur settings applied to
// each sample before it lands in the histogram.
//
// [Params] implements the same GetParams/SetParam pair used across the
// explorer for named runtime tuning:
//
//	p := attractor.Default()
//	p.SetParam("a", 2.01)
//	x, y := p.Next(0, 0)
package attractor
