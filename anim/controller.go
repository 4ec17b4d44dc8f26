package anim

import (
	"errors"
	"fmt"
	"sort"
)

// ChannelSource is anything that owns named animation channels.
type ChannelSource interface {
	Channels() map[string]*Channel
}

// Controller drives many channels in lockstep. It holds references only;
// the subjects belong to whoever built the channels.
type Controller struct {
	channels map[string]*Channel
}

// NewController creates an empty Controller.
func NewController() *Controller {
	c := new(Controller)
	c.channels = make(map[string]*Channel)
	return c
}

// Channels exposes the controller's channels so controllers can be nested.
func (c *Controller) Channels() map[string]*Channel {
	return c.channels
}

// Channel looks up a channel by its qualified key.
func (c *Controller) Channel(key string) (*Channel, bool) {
	ch, found := c.channels[key]
	return ch, found
}

// Keys lists the channel keys in sorted order. Fan-out follows this order.
func (c *Controller) Keys() []string {
	keys := make([]string, 0, len(c.channels))
	for k := range c.channels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ImportChannels copies every channel of src into the controller, keyed
// "prefix.key", or just "key" when prefix is empty. Later imports replace
// earlier ones with the same key.
func (c *Controller) ImportChannels(src ChannelSource, prefix string) {
	for k, ch := range src.Channels() {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		c.channels[key] = ch
	}
}

// ImportAnimation hands each channel its part of a multi-channel animation.
// defs is keyed by channel key; keys without a channel are ignored and
// channels without a key are left alone.
func (c *Controller) ImportAnimation(name string, defs map[string]*Definition) error {
	var errs []error
	for _, k := range c.Keys() {
		def, found := defs[k]
		if !found {
			continue
		}
		if err := c.channels[k].ImportAnimation(name, def); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Transition moves every channel that knows name to it. Channels without
// that animation keep playing what they have.
func (c *Controller) Transition(name string, opts TransitionOptions) error {
	var errs []error
	known := false
	for _, k := range c.Keys() {
		ch := c.channels[k]
		if !ch.Has(name) {
			continue
		}
		known = true
		if err := ch.Transition(name, opts); err != nil {
			errs = append(errs, err)
		}
	}
	if !known {
		return fmt.Errorf("controller: %w %q", ErrUnknownAnimation, name)
	}
	return errors.Join(errs...)
}

// CancelAndReset clears every channel's queue.
func (c *Controller) CancelAndReset() {
	c.each((*Channel).CancelAndReset)
}

// Stop rewinds and pauses every channel.
func (c *Controller) Stop() {
	c.each((*Channel).Stop)
}

// Pause pauses every channel.
func (c *Controller) Pause() {
	c.each((*Channel).Pause)
}

// Play resumes every channel.
func (c *Controller) Play() {
	c.each((*Channel).Play)
}

// Tick advances every channel by one frame.
func (c *Controller) Tick() float64 {
	return c.Update(1)
}

// Update advances the channels one after another. Each channel is offered
// what the previous one reported using, and the last report is returned.
func (c *Controller) Update(frames float64) float64 {
	for _, k := range c.Keys() {
		frames = c.channels[k].Update(frames)
	}
	return frames
}

func (c *Controller) each(fn func(*Channel)) {
	for _, k := range c.Keys() {
		fn(c.channels[k])
	}
}
