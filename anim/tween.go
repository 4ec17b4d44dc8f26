package anim

import (
	"math"

	"github.com/matt-g-everett/ledtween/easing"
)

// Infinite is the duration that means "set this value and stop animating".
var Infinite = math.Inf(1)

// Tween is one timed segment of a channel's queue. Times are in frames.
type Tween struct {
	Elapsed  float64
	Duration float64
	Start    Value
	End      Value
	Easing   easing.Func
}

// Infinite reports whether the tween snaps to its end and never finishes.
func (t Tween) Infinite() bool {
	return math.IsInf(t.Duration, 1)
}

// Done reports whether the tween has consumed all of its time.
func (t Tween) Done() bool {
	return !t.Infinite() && t.Elapsed >= t.Duration
}

type tweenOptions struct {
	easing easing.Func
	start  Value
}

// TweenOption customises a call to Channel.Tween.
type TweenOption func(*tweenOptions)

// WithEasing shapes the tween with fn instead of linear motion.
func WithEasing(fn easing.Func) TweenOption {
	return func(o *tweenOptions) {
		o.easing = fn
	}
}

// From starts the tween at v instead of where the queue leaves off.
func From(v Value) TweenOption {
	return func(o *tweenOptions) {
		o.start = v.Clone()
	}
}
