package stream

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/matt-g-everett/ledtween/anim"
)

// ChannelValue is one channel's value at the time a Frame was taken.
type ChannelValue struct {
	Name   string    `json:"name"`
	Kind   string    `json:"kind"`
	Values []float64 `json:"values"`
	Hex    string    `json:"hex,omitempty"`
}

// Frame is a snapshot of every controller channel, sent to devices each
// tick.
type Frame struct {
	Frames   float64        `json:"frames"`
	Channels []ChannelValue `json:"channels"`
}

// NewFrame snapshots ctrl. frames is how much time the tick consumed.
func NewFrame(ctrl *anim.Controller, frames float64) *Frame {
	f := new(Frame)
	f.Frames = frames
	for _, key := range ctrl.Keys() {
		ch, _ := ctrl.Channel(key)
		v := ch.Value()
		cv := ChannelValue{
			Name:   key,
			Kind:   ch.Kind().String(),
			Values: []float64(v.Clone()),
		}
		if ch.Kind() == anim.Color {
			c, _ := anim.ToColor(v)
			cv.Hex = c.Clamped().Hex()
		}
		f.Channels = append(f.Channels, cv)
	}

	return f
}

// MarshalBinary converts a Frame into binary data: a little-endian uint16
// channel count, then for each channel a one byte name length, the name, a
// little-endian uint16 component count and float32 components.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.Channels) > math.MaxUint16 {
		return nil, fmt.Errorf("frame has %d channels", len(f.Channels))
	}

	data = make([]byte, 2, 2+len(f.Channels)*16)
	binary.LittleEndian.PutUint16(data, uint16(len(f.Channels)))
	for _, cv := range f.Channels {
		if len(cv.Name) > math.MaxUint8 || len(cv.Values) > math.MaxUint16 {
			return nil, fmt.Errorf("channel %q is too large to encode", cv.Name)
		}
		data = append(data, byte(len(cv.Name)))
		data = append(data, cv.Name...)
		var n [2]byte
		binary.LittleEndian.PutUint16(n[:], uint16(len(cv.Values)))
		data = append(data, n[:]...)
		for _, v := range cv.Values {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v)))
			data = append(data, b[:]...)
		}
	}

	return data, nil
}

// Value finds a channel's value by key.
func (f *Frame) Value(key string) (anim.Value, bool) {
	for _, cv := range f.Channels {
		if cv.Name == key {
			return anim.Value(cv.Values), true
		}
	}
	return nil, false
}
