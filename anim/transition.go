package anim

import (
	"fmt"
	"strings"

	"github.com/matt-g-everett/ledtween/easing"
)

// Method decides how a transition merges a new animation with the queue.
type Method int

const (
	// Immediate drops the queue and bridges from the live value to the new
	// animation.
	Immediate Method = iota
	// After lets the queue finish, then bridges to the new animation.
	After
	// Append blends the new animation into the queue and loops the result,
	// bridging back to where the old animation was.
	Append
)

func (m Method) String() string {
	switch m {
	case Immediate:
		return "immediate"
	case After:
		return "after"
	case Append:
		return "append"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod reads a method name. An empty name means Immediate.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "", "immediate":
		return Immediate, nil
	case "after":
		return After, nil
	case "append":
		return Append, nil
	}
	return Immediate, fmt.Errorf("unknown transition method %q", s)
}

// TransitionOptions configures Channel.Transition. The zero value is an
// instant, Immediate transition.
type TransitionOptions struct {
	Method Method

	// Duration and easing of the bridge into the new animation. Easing wins
	// over EasingName; both empty means linear.
	Duration   float64
	Easing     easing.Func
	EasingName string

	// Duration and easing of the bridge back out, used by Append.
	ReturnDuration   float64
	ReturnEasing     easing.Func
	ReturnEasingName string
}

// Transition switches the channel to the animation imported under name.
func (c *Channel) Transition(name string, opts TransitionOptions) error {
	def, found := c.animations[name]
	if !found {
		return fmt.Errorf("channel %s: %w %q", c.name, ErrUnknownAnimation, name)
	}

	in, err := c.resolve(opts.Easing, opts.EasingName)
	if err != nil {
		return err
	}
	out, err := c.resolve(opts.ReturnEasing, opts.ReturnEasingName)
	if err != nil {
		return err
	}

	target, hasTarget := def.Initial()

	switch opts.Method {
	case Immediate:
		from := c.read()
		if !hasTarget {
			target = from
		}
		playing := c.playing
		c.CancelAndReset()
		c.Tween(target, opts.Duration, WithEasing(in), From(from))
		c.playing = playing
		c.next, c.hasNext = name, true

	case After:
		from := c.lastTarget()
		if !hasTarget {
			target = from
		}
		c.Tween(target, opts.Duration, WithEasing(in), From(from))
		c.next, c.hasNext = name, true

	case Append:
		// The loop returns to wherever the subject is right now, which is
		// only the old queue's start if it hadn't begun playing.
		back := c.read()
		from := c.lastTarget()
		if !hasTarget {
			target = from
		}
		c.Tween(target, opts.Duration, WithEasing(in), From(from))
		c.copyDefinition(def)
		c.Tween(back, opts.ReturnDuration, WithEasing(out))
		c.loop = true
		if c.running == "" {
			c.running = name
		} else {
			c.running = c.running + "," + name
		}

	default:
		return fmt.Errorf("channel %s: unknown transition method %v", c.name, opts.Method)
	}

	return nil
}

// copyDefinition replays a stored animation onto the end of the queue.
func (c *Channel) copyDefinition(def *Definition) {
	c.loop = def.Loop

	switch {
	case def.Segments != nil:
		for i, s := range def.Segments {
			opts := []TweenOption{WithEasing(def.easings[i])}
			start := s.Start
			if i == 0 && start == nil {
				start = def.InitialValue
			}
			if start != nil {
				opts = append(opts, From(start))
			}
			c.Tween(s.End, s.Duration, opts...)
		}
	case def.Constant != nil:
		c.Tween(def.Constant, Infinite)
	}
}

func (c *Channel) resolve(fn easing.Func, name string) (easing.Func, error) {
	if fn != nil {
		return fn, nil
	}
	if name == "" {
		return easing.Linear, nil
	}
	fn, found := c.registry.Lookup(name)
	if !found {
		return nil, fmt.Errorf("channel %s: %w %q", c.name, ErrUnknownEasing, name)
	}
	return fn, nil
}
