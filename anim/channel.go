package anim

import (
	"fmt"
	"log"
	"math"

	"github.com/matt-g-everett/ledtween/easing"
)

// A Channel animates one quantity through a queue of tweens.
//
// The channel is bound to a Subject when it is created and is the only
// thing that should write to it. Time is measured in frames and may be
// fractional; Update consumes as many queued tweens as the time allows.
type Channel struct {
	name     string
	kind     Kind
	subject  Subject
	registry *easing.Registry

	tweens  []*Tween
	current int
	playing bool
	loop    bool

	animations map[string]*Definition
	running    string
	next       string
	hasNext    bool
}

// NewChannel creates a Channel that animates subject using kind's
// interpolation.
func NewChannel(name string, kind Kind, subject Subject) *Channel {
	c := new(Channel)
	c.name = name
	c.kind = kind
	c.subject = subject
	c.registry = easing.Default
	c.animations = make(map[string]*Definition)
	c.CancelAndReset()
	return c
}

// NewFrameChannel creates a Discrete channel for frame-by-frame animation,
// where the subject only changes frame through a setter call.
func NewFrameChannel(name string, get func() int, set func(int)) *Channel {
	return NewChannel(name, Discrete, FrameSetter(get, set))
}

// NewColorChannel creates a Color channel over an RGBA quadruple.
func NewColorChannel(name string, rgba *[4]float64) *Channel {
	return NewChannel(name, Color, ColorProperty(rgba))
}

// SetRegistry changes the table used to resolve easing names.
func (c *Channel) SetRegistry(r *easing.Registry) {
	c.registry = r
}

// Name returns the channel's name.
func (c *Channel) Name() string {
	return c.name
}

// Kind returns the channel's interpolation strategy.
func (c *Channel) Kind() Kind {
	return c.kind
}

// Value reads the subject's live value.
func (c *Channel) Value() Value {
	return c.read()
}

// Playing reports whether Update consumes time.
func (c *Channel) Playing() bool {
	return c.playing
}

// Loop reports whether the queue restarts when it runs out.
func (c *Channel) Loop() bool {
	return c.loop
}

// SetLoop sets whether the queue restarts when it runs out.
func (c *Channel) SetLoop(loop bool) {
	c.loop = loop
}

// Index is the position of the active tween. It equals Len once the queue
// is exhausted.
func (c *Channel) Index() int {
	return c.current
}

// Len is the number of queued tweens.
func (c *Channel) Len() int {
	return len(c.tweens)
}

// Segment returns a copy of queued tween i.
func (c *Channel) Segment(i int) Tween {
	return *c.tweens[i]
}

// Completed reports whether the tween with the given id has finished in
// the current pass through the queue.
func (c *Channel) Completed(id int) bool {
	return id >= 0 && id < c.current
}

// Current is the name of the animation playing, or "" for hand-built
// queues. Appended animations are joined with commas.
func (c *Channel) Current() string {
	return c.running
}

// Pending returns the animation queued to start when the queue completes.
func (c *Channel) Pending() (string, bool) {
	return c.next, c.hasNext
}

// Has reports whether an animation was imported under name.
func (c *Channel) Has(name string) bool {
	_, found := c.animations[name]
	return found
}

// AnimationLength sums the durations of every queued tween.
func (c *Channel) AnimationLength() float64 {
	sum := 0.0
	for _, t := range c.tweens {
		sum += t.Duration
	}
	return sum
}

// CancelAndReset throws away the queue and playback position. Imported
// animations are kept.
func (c *Channel) CancelAndReset() {
	c.playing = false
	c.current = 0
	c.tweens = nil
}

// Stop pauses and rewinds every tween to its start.
func (c *Channel) Stop() {
	c.playing = false
	c.current = 0
	for _, t := range c.tweens {
		t.Elapsed = 0
	}
}

// Pause stops consuming time. Playback resumes from the same position.
func (c *Channel) Pause() {
	c.playing = false
}

// Play resumes consuming time from the current position.
func (c *Channel) Play() {
	c.playing = true
}

// Tween queues a move to end over duration frames and returns its id.
//
// The start defaults to where the previous tween ends, or the subject's
// live value when the queue is empty. An Infinite duration sets the value
// on the next update and holds it there.
func (c *Channel) Tween(end Value, duration float64, opts ...TweenOption) int {
	var o tweenOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.easing == nil {
		o.easing = easing.Linear
	}

	start := o.start
	if start == nil {
		start = c.lastTarget()
	}
	if math.IsInf(duration, 1) {
		start = end.Clone()
	}

	c.tweens = append(c.tweens, &Tween{
		Duration: duration,
		Start:    start,
		End:      end.Clone(),
		Easing:   o.easing,
	})

	return len(c.tweens) - 1
}

// ImportAnimation stores a named animation for a later Transition. The
// live queue is untouched.
func (c *Channel) ImportAnimation(name string, def *Definition) error {
	if def == nil {
		return fmt.Errorf("channel %s: animation %q: %w: nil definition", c.name, name, ErrMalformedDefinition)
	}
	if err := def.validate(c.kind, c.registry); err != nil {
		return fmt.Errorf("channel %s: animation %q: %w", c.name, name, err)
	}

	stored := def.clone()
	if err := stored.resolveEasings(c.registry); err != nil {
		return fmt.Errorf("channel %s: animation %q: %w", c.name, name, err)
	}
	c.animations[name] = stored
	return nil
}

// Tick advances the channel by a single frame.
func (c *Channel) Tick() float64 {
	return c.Update(1)
}

// Update advances the channel by frames and returns how many frames it
// used, which is always all of them.
//
// A single call plays through as many tweens as fit in the budget, so a
// slow frame catches up instead of lagging behind. Zero-length tweens are
// processed at most once per call so a queue made only of them can't spin
// forever.
func (c *Channel) Update(frames float64) float64 {
	remaining := frames
	zeroSeen := false

	for c.playing && remaining > 0 && c.current < len(c.tweens) {
		t := c.tweens[c.current]

		if t.Infinite() {
			c.write(t.End)
			break
		}

		consumable := math.Min(t.Duration-t.Elapsed, remaining)
		if math.IsNaN(consumable) {
			log.Printf("channel %s: tween %d consumed NaN frames, snapping to its end", c.name, c.current)
			c.write(t.End)
			break
		}

		if t.Duration > 0 {
			if consumable >= t.Duration-t.Elapsed {
				t.Elapsed = t.Duration
			} else {
				t.Elapsed += consumable
			}
			remaining -= consumable

			q := t.Easing(t.Elapsed / t.Duration)
			c.write(c.kind.lerp(t.Start, t.End, q))
		} else {
			if zeroSeen {
				break
			}
			zeroSeen = true
			c.write(t.End)
		}

		if t.Elapsed >= t.Duration {
			t.Elapsed = math.Max(t.Duration, 0)
			c.current++

			if c.current == len(c.tweens) {
				c.complete()
			}
		}
	}

	return frames
}

// complete runs when the last tween finishes. A pending animation replaces
// the queue; a looping queue rewinds. Otherwise the channel idles at the
// end of the queue.
func (c *Channel) complete() {
	if !c.hasNext && !c.loop {
		c.playing = false
		return
	}

	c.Stop()

	if c.hasNext {
		def := c.animations[c.next]
		c.CancelAndReset()
		c.copyDefinition(def)
		c.running = c.next
		c.next, c.hasNext = "", false
		c.Play()
	}

	if c.loop {
		c.Play()
	}
}

func (c *Channel) lastTarget() Value {
	if n := len(c.tweens); n > 0 {
		return c.tweens[n-1].End.Clone()
	}
	return c.read()
}

func (c *Channel) read() Value {
	return c.subject.Read()
}

func (c *Channel) write(v Value) {
	c.subject.Write(v)
}
