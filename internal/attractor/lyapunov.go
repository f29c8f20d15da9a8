package attractor

import "math"

// Lyapunov estimates the largest Lyapunov exponent of the map by following
// two orbits a distance d0 apart and renormalising their separation after
// every step. A positive value means the orbit is chaotic and fills a
// textured attractor; zero or negative values collapse to points or cycles.
func (p Params) Lyapunov(steps int) float64 {
	const (
		warmup = 1000
		d0     = 1e-8
	)
	if steps <= 0 {
		return 0
	}

	x, y := 0.1, 0.1
	for i := 0; i < warmup; i++ {
		x, y = p.Next(x, y)
	}
	xp, yp := x+d0, y

	sum := 0.0
	for i := 0; i < steps; i++ {
		x, y = p.Next(x, y)
		xp, yp = p.Next(xp, yp)

		dx, dy := xp-x, yp-y
		sep := math.Hypot(dx, dy)
		if sep == 0 {
			// orbits merged; reseed the neighbour
			xp, yp = x+d0, y
			sum += math.Log(1e-300 / d0)
			continue
		}
		sum += math.Log(sep / d0)
		xp = x + dx*d0/sep
		yp = y + dy*d0/sep
	}
	return sum / float64(steps)
}
