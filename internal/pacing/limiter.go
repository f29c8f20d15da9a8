// Package pacing decides when a progressive render is worth repainting.
//
// The target refresh rate starts high while the image is young and falls
// as the iteration count grows, leaving more time for accumulation once
// additional samples barely change the picture.
package pacing

import (
	"math"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	MaxRate = 200.0 // frames per second
	MinRate = 0.5

	// ln(10000): the curve reaches MaxRate here and stays saturated below.
	knee  = 9.21
	slope = 5.0
)

// TargetRate returns the refresh rate for the given iteration count,
// clamped to [MinRate, MaxRate]. Counts at or below the knee, including
// zero, saturate at MaxRate.
func TargetRate(iterations uint64) float64 {
	denom := 1 + (math.Log(float64(iterations))-knee)*slope
	if math.IsNaN(denom) || math.IsInf(denom, 0) || denom < 1 {
		return MaxRate
	}
	rate := MaxRate / denom
	return math.Min(math.Max(rate, MinRate), MaxRate)
}

// Interval is the minimum time between accepted refreshes.
func Interval(iterations uint64) time.Duration {
	return time.Duration(float64(time.Second) / TargetRate(iterations))
}

// Limiter holds the throttle state. It is independent of the render state
// so pacing carries across clears.
type Limiter struct {
	clock  clockwork.Clock
	last   time.Time
	primed bool
}

// NewLimiter returns a limiter reading the given clock. A nil clock uses
// the real clock, whose readings carry the monotonic component.
func NewLimiter(clock clockwork.Clock) *Limiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Limiter{clock: clock}
}

// Decide reports whether a refresh at now is allowed. Dirty refreshes are
// always allowed and do not move the throttle window.
func (l *Limiter) Decide(iterations uint64, now time.Time, dirty bool) bool {
	if dirty {
		return true
	}
	if l.primed && now.Sub(l.last) < Interval(iterations) {
		return false
	}
	l.last = now
	l.primed = true
	return true
}

// Allow is Decide at the limiter clock's current time.
func (l *Limiter) Allow(iterations uint64, dirty bool) bool {
	return l.Decide(iterations, l.clock.Now(), dirty)
}
