package util

import (
	"math/rand"

	"github.com/matt-g-everett/ledtween/easing"
)

// RandomBetween picks a uniformly random value in [min, max).
func RandomBetween(r *rand.Rand, min float64, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// GenerateLut builds a rise-and-fall table of length entries: the first
// half climbs through fn, the second half mirrors it back down.
func GenerateLut(length int, fn easing.Func) []float64 {
	lut := make([]float64, length)
	if length < 2 {
		return lut
	}

	increment := 1.0 / float64(length/2)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := fn(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	return lut
}

// Memoizer caches look-up tables by length.
type Memoizer map[int][]float64

// GenerateLutMemoized is GenerateLut with quadraticInOut, reusing tables
// already built for the same length. Callers must not modify the result.
func GenerateLutMemoized(length int, m Memoizer) []float64 {
	if lut, found := m[length]; found {
		return lut
	}
	lut := GenerateLut(length, easing.QuadraticInOut)
	m[length] = lut
	return lut
}
