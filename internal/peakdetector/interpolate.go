package peakdetector

import "math"

// Point is a peak located with sub-bin resolution.
type Point struct {
	X float64 // Fractional bin.
	Y float64 // Estimated amplitude at X.
}

// Interpolate estimates the true position and amplitude of the local maximum at values[i] by fitting a parabola
// through it and its two neighbours.
//
// http://ccrma.stanford.edu/~jos/parshl/Peak_Detection_Steps_3.html
//
// With f(i-1) = a, f(i) = b and f(i+1) = c, the vertex of the parabola lies at
// delta = 1/2 * (a - c) / (a - 2b + c) bins from i, and its height is b - 1/4 * (a - c) * delta.
//
// The second return value is false when i has no neighbour on either side or the fit is degenerate.
func Interpolate(values []float64, i int) (Point, bool) {
	if i <= 0 || i >= len(values)-1 {
		return Point{}, false
	}

	a, b, c := values[i-1], values[i], values[i+1]
	denominator := a - 2*b + c
	if denominator == 0 || math.IsNaN(denominator) || math.IsInf(denominator, 0) {
		return Point{}, false
	}

	delta := 0.5 * (a - c) / denominator
	return Point{X: float64(i) + delta, Y: b - 0.25*(a-c)*delta}, true
}

// MaxIndex returns the index of the largest value, ignoring NaN. Comparison is strict so the earliest index wins
// ties. Returns -1 when values is empty or holds only NaN.
func MaxIndex(values []float64) int {
	best := -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}
