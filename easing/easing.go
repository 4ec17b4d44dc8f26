// Package easing maps normalised time onto normalised progress.
//
// Every Func takes t in [0, 1] and returns q in [0, 1]. Out and InOut
// variants are derived from an In curve with Reverse and Reflect rather than
// written out by hand.
package easing

// Func shapes the progress of a tween through time.
type Func func(t float64) float64

// Reverse produces the Out variant of an In curve: the same shape played
// backwards in time.
func Reverse(in Func) Func {
	return func(t float64) float64 {
		return 1 - in(1-t)
	}
}

// Reflect produces the InOut variant of an In curve. The first half of the
// interval plays the In curve compressed, the second half its reverse.
func Reflect(in Func) Func {
	out := Reverse(in)
	return func(t float64) float64 {
		if t < 0.5 {
			return in(t*2) / 2
		}
		return out((t-0.5)*2)/2 + 0.5
	}
}

// ImmediateIn jumps to the end value at the very start of the interval.
func ImmediateIn(t float64) float64 {
	if t == 0 {
		return 0
	}
	return 1
}

// Linear maps time straight onto progress. It has no Out or InOut variants
// since they would be identical.
func Linear(t float64) float64 {
	return t
}

// QuadraticIn follows t².
func QuadraticIn(t float64) float64 {
	return t * t
}

var (
	// ImmediateOut jumps to the end value at the end of the interval.
	ImmediateOut = Reverse(ImmediateIn)
	// ImmediateInOut jumps half the distance at the start and the rest at
	// the end.
	ImmediateInOut = Reflect(ImmediateIn)

	QuadraticOut   = Reverse(QuadraticIn)
	QuadraticInOut = Reflect(QuadraticIn)
)
