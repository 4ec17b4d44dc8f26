// Package adaptive lets update functions that understand fractional frame
// time and ones that can only step one frame at a time be driven from the
// same loop.
package adaptive

import (
	"math"
	"reflect"
)

// Func is an update function tagged with how it consumes time. Build one
// with Adaptive, Consume or Step.
type Func struct {
	adaptive func(frames float64) float64
	step     func()
}

// Adaptive wraps an update that takes a frame count and reports how much
// of it was used. It may use less than offered.
func Adaptive(fn func(frames float64) float64) Func {
	return Func{adaptive: fn}
}

// Consume wraps an update that takes a frame count and always uses all of
// it.
func Consume(fn func(frames float64)) Func {
	return Func{adaptive: func(frames float64) float64 {
		fn(frames)
		return frames
	}}
}

// Step wraps a legacy update that advances exactly one frame per call.
func Step(fn func()) Func {
	return Func{step: fn}
}

// IsAdaptive reports whether the function accepts fractional frame time.
func (f Func) IsAdaptive() bool {
	return f.adaptive != nil
}

// Stage pairs an update with the object it updates, for DriveAll.
type Stage struct {
	Fn       Func
	Receiver interface{}
}

// Driver invokes update functions and remembers which receivers could only
// be stepped.
type Driver struct {
	nonAdaptive []string
	seen        map[string]bool
}

// NewDriver creates a Driver with an empty diagnostics list.
func NewDriver() *Driver {
	d := new(Driver)
	d.seen = make(map[string]bool)
	return d
}

// Drive runs fn for the given number of frames and returns how many frames
// it consumed.
//
// Adaptive functions are called once with the fractional count. Legacy
// step functions are called once per frame, rounding up, and report the
// whole number of calls made. A non-finite or non-positive count runs no
// steps.
func (d *Driver) Drive(frames float64, fn Func, receiver interface{}) float64 {
	if fn.adaptive != nil {
		return fn.adaptive(frames)
	}

	d.record(receiver)

	if math.IsNaN(frames) || math.IsInf(frames, 0) || frames <= 0 {
		return 0
	}

	steps := int(math.Ceil(frames))
	for i := 0; i < steps; i++ {
		if fn.step != nil {
			fn.step()
		}
	}

	return float64(steps)
}

// DriveAll runs each stage in order, offering each one what the previous
// stage reported consuming. A legacy stage early in the list rounds the
// time seen by every stage after it.
func (d *Driver) DriveAll(frames float64, stages ...Stage) float64 {
	for _, s := range stages {
		frames = d.Drive(frames, s.Fn, s.Receiver)
	}
	return frames
}

// NonAdaptive lists the type names of receivers that had to be stepped,
// in the order they were first seen.
func (d *Driver) NonAdaptive() []string {
	out := make([]string, len(d.nonAdaptive))
	copy(out, d.nonAdaptive)
	return out
}

// Reset clears the diagnostics list.
func (d *Driver) Reset() {
	d.nonAdaptive = nil
	d.seen = make(map[string]bool)
}

func (d *Driver) record(receiver interface{}) {
	name := "<nil>"
	if receiver != nil {
		name = reflect.TypeOf(receiver).String()
	}
	if d.seen[name] {
		return
	}
	d.seen[name] = true
	d.nonAdaptive = append(d.nonAdaptive, name)
}
