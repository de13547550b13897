package vmath

import (
	"math"
)

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ease moves current toward target by factor, single-pole exponential approach
func Ease(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// Finite reports whether v is neither NaN nor infinite
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Hypot2 is the Euclidean length of (dx, dy)
func Hypot2(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}
