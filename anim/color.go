package anim

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor turns a "#rrggbb" string into an opaque RGBA value.
func ParseColor(hex string) (Value, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: colour %q: %v", ErrMalformedDefinition, hex, err)
	}
	return ColorValue(c, 1), nil
}

// ColorValue converts a colorful colour plus alpha into a channel value.
func ColorValue(c colorful.Color, alpha float64) Value {
	return Value{c.R, c.G, c.B, alpha}
}

// ToColor splits an RGBA value back into a colorful colour and alpha.
func ToColor(v Value) (colorful.Color, float64) {
	return colorful.Color{R: v.At(0), G: v.At(1), B: v.At(2)}, v.At(3)
}
