package anim

import "math"

// Value is the quantity a channel animates. Scalars have one component,
// colours four.
type Value []float64

// Scalar wraps a single number as a Value.
func Scalar(f float64) Value {
	return Value{f}
}

// At returns component i, or 0 if the value is too short.
func (v Value) At(i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// Float returns the first component.
func (v Value) Float() float64 {
	return v.At(0)
}

// Clone copies v so the copy can be stored without aliasing the caller's
// slice.
func (v Value) Clone() Value {
	if v == nil {
		return nil
	}
	out := make(Value, len(v))
	copy(out, v)
	return out
}

// Equal reports whether both values have the same components.
func (v Value) Equal(o Value) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// Subject is the read/write accessor pair a channel animates through.
type Subject struct {
	Read  func() Value
	Write func(Value)
}

// FloatProperty binds a channel to a float64 field.
func FloatProperty(p *float64) Subject {
	return Subject{
		Read:  func() Value { return Scalar(*p) },
		Write: func(v Value) { *p = v.Float() },
	}
}

// VectorProperty binds a channel to a fixed-length slice. Writes copy
// component-wise into the slice.
func VectorProperty(p []float64) Subject {
	return Subject{
		Read:  func() Value { return Value(p).Clone() },
		Write: func(v Value) { copy(p, v) },
	}
}

// ColorProperty binds a channel to an RGBA quadruple.
func ColorProperty(p *[4]float64) Subject {
	return Subject{
		Read: func() Value { return Value{p[0], p[1], p[2], p[3]} },
		Write: func(v Value) {
			for i := range p {
				p[i] = v.At(i)
			}
		},
	}
}

// FrameSetter binds a channel to something that only exposes a frame index
// through a getter and setter call.
func FrameSetter(get func() int, set func(int)) Subject {
	return Subject{
		Read:  func() Value { return Scalar(float64(get())) },
		Write: func(v Value) { set(int(math.Round(v.Float()))) },
	}
}

// Kind selects how a channel interpolates its values.
type Kind int

const (
	// Linear interpolates every component independently.
	Linear Kind = iota
	// Discrete interpolates like Linear then rounds to whole numbers.
	Discrete
	// Color interpolates exactly four components.
	Color
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Discrete:
		return "discrete"
	case Color:
		return "color"
	}
	return "unknown"
}

// components is the fixed value length a kind requires, or 0 for any.
func (k Kind) components() int {
	if k == Color {
		return 4
	}
	return 0
}

// lerp interpolates from -> to by q. Each strategy keeps constant velocity
// for a linear q.
func (k Kind) lerp(from, to Value, q float64) Value {
	n := len(to)
	if len(from) > n {
		n = len(from)
	}
	if k == Color {
		n = 4
	}

	out := make(Value, n)
	for i := range out {
		out[i] = (to.At(i)-from.At(i))*q + from.At(i)
		if k == Discrete {
			out[i] = math.Round(out[i])
		}
	}
	return out
}
