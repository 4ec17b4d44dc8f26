package anim

import (
	"fmt"
	"math"

	"github.com/matt-g-everett/ledtween/easing"
)

// Segment is one tween in a stored animation: [end, duration, easing, start?].
type Segment struct {
	End      Value
	Duration float64
	Easing   string
	// Start is nil unless the segment deliberately jumps away from where
	// the previous one ended.
	Start Value
}

// Definition is a reusable animation a channel can transition into. It is
// copied into the live queue on activation and never modified.
type Definition struct {
	Loop         bool      `yaml:"loop"`
	InitialValue Value     `yaml:"initialValue"`
	Constant     Value     `yaml:"constant"`
	Segments     []Segment `yaml:"segments"`

	// easings holds each segment's easing, resolved when a channel imports
	// the definition.
	easings []easing.Func
}

// ConstantDefinition holds v forever.
func ConstantDefinition(v Value) *Definition {
	return &Definition{Constant: v.Clone()}
}

// Initial is the value the animation starts from: the explicit initial
// value, else the constant, else the first segment's start.
func (d *Definition) Initial() (Value, bool) {
	switch {
	case d.InitialValue != nil:
		return d.InitialValue, true
	case d.Constant != nil:
		return d.Constant, true
	case len(d.Segments) > 0 && d.Segments[0].Start != nil:
		return d.Segments[0].Start, true
	}
	return nil, false
}

// Length is the sum of all segment durations.
func (d *Definition) Length() float64 {
	if d.Segments == nil && d.Constant != nil {
		return Infinite
	}
	sum := 0.0
	for _, s := range d.Segments {
		sum += s.Duration
	}
	return sum
}

func (d *Definition) clone() *Definition {
	out := &Definition{
		Loop:         d.Loop,
		InitialValue: d.InitialValue.Clone(),
		Constant:     d.Constant.Clone(),
	}
	if d.Segments != nil {
		out.Segments = make([]Segment, len(d.Segments))
		for i, s := range d.Segments {
			out.Segments[i] = Segment{
				End:      s.End.Clone(),
				Duration: s.Duration,
				Easing:   s.Easing,
				Start:    s.Start.Clone(),
			}
		}
	}
	return out
}

// resolveEasings looks up every segment's easing in reg. An empty name is
// linear.
func (d *Definition) resolveEasings(reg *easing.Registry) error {
	d.easings = make([]easing.Func, len(d.Segments))
	for i, s := range d.Segments {
		if s.Easing == "" {
			d.easings[i] = easing.Linear
			continue
		}
		fn, found := reg.Lookup(s.Easing)
		if !found {
			return fmt.Errorf("%w %q in segment %d", ErrUnknownEasing, s.Easing, i)
		}
		d.easings[i] = fn
	}
	return nil
}

func (d *Definition) validate(kind Kind, reg *easing.Registry) error {
	if d.Segments == nil && d.Constant == nil {
		return fmt.Errorf("%w: no segments or constant", ErrMalformedDefinition)
	}

	values := []Value{d.InitialValue, d.Constant}
	for i, s := range d.Segments {
		if math.IsNaN(s.Duration) || s.Duration < 0 {
			return fmt.Errorf("%w: segment %d has duration %v", ErrMalformedDefinition, i, s.Duration)
		}
		if s.End == nil {
			return fmt.Errorf("%w: segment %d has no end value", ErrMalformedDefinition, i)
		}
		if s.Easing != "" {
			if _, found := reg.Lookup(s.Easing); !found {
				return fmt.Errorf("%w %q in segment %d", ErrUnknownEasing, s.Easing, i)
			}
		}
		values = append(values, s.End, s.Start)
	}

	if n := kind.components(); n > 0 {
		for _, v := range values {
			if v != nil && len(v) != n {
				return fmt.Errorf("%w: %s channel needs %d components, got %d",
					ErrMalformedDefinition, kind, n, len(v))
			}
		}
	}

	return nil
}

// UnmarshalYAML accepts a number, a list of numbers or a "#rrggbb" colour.
func (v *Value) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	parsed, err := valueFrom(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// UnmarshalYAML reads the [end, duration, easing, start?] tuple form.
func (s *Segment) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw []interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if len(raw) < 2 || len(raw) > 4 {
		return fmt.Errorf("%w: segment needs 2 to 4 entries, got %d", ErrMalformedDefinition, len(raw))
	}

	var err error
	if s.End, err = valueFrom(raw[0]); err != nil {
		return err
	}
	if s.Duration, err = number(raw[1]); err != nil {
		return err
	}
	if len(raw) > 2 {
		name, ok := raw[2].(string)
		if !ok {
			return fmt.Errorf("%w: easing must be a name, got %v", ErrMalformedDefinition, raw[2])
		}
		s.Easing = name
	}
	if len(raw) > 3 {
		if s.Start, err = valueFrom(raw[3]); err != nil {
			return err
		}
	}

	return nil
}

// UnmarshalYAML reads either a full mapping or a bare constant value.
func (d *Definition) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	if _, isMap := raw.(map[interface{}]interface{}); isMap {
		type plain Definition
		return unmarshal((*plain)(d))
	}

	constant, err := valueFrom(raw)
	if err != nil {
		return err
	}
	*d = Definition{Constant: constant}
	return nil
}

func valueFrom(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case string:
		return ParseColor(x)
	case []interface{}:
		out := make(Value, len(x))
		for i, item := range x {
			f, err := number(item)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	default:
		f, err := number(raw)
		if err != nil {
			return nil, err
		}
		return Scalar(f), nil
	}
}

func number(raw interface{}) (float64, error) {
	switch x := raw.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, fmt.Errorf("%w: expected a number, got %v", ErrMalformedDefinition, raw)
}
