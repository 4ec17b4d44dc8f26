package stream

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledtween/anim"
)

// GradientStop is a hue pinned to a position in [0, 1].
type GradientStop struct {
	Hue float64 `yaml:"hue"`
	Pos float64 `yaml:"pos"`
}

// GradientTable stores a look-up table of colours interpolated by hue.
type GradientTable []GradientStop

// GetColor gets a colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, c, l float64) colorful.Color {
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, c, l).Clamped()
		}
	}

	// Past the last stop.
	return colorful.Hcl(g[len(g)-1].Hue, c, l).Clamped()
}

// Definition samples the gradient into a looping colour animation that
// cycles through it once every frames frames, in steps linear pieces.
func (g GradientTable) Definition(frames, c, l float64, steps int) (*anim.Definition, error) {
	if len(g) < 2 {
		return nil, fmt.Errorf("%w: gradient needs at least 2 stops", anim.ErrMalformedDefinition)
	}
	if steps < 1 || frames <= 0 {
		return nil, fmt.Errorf("%w: gradient needs positive steps and frames", anim.ErrMalformedDefinition)
	}

	d := new(anim.Definition)
	d.Loop = true
	d.InitialValue = anim.ColorValue(g.GetColor(0, c, l), 1)

	per := frames / float64(steps)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		d.Segments = append(d.Segments, anim.Segment{
			End:      anim.ColorValue(g.GetColor(t, c, l), 1),
			Duration: per,
			Easing:   "linear",
		})
	}

	return d, nil
}

// Rainbow is the hue wheel the tree has always cycled through.
var Rainbow = GradientTable{
	{0.0, 0.0},
	{6.0, 0.04},   // Pink
	{87.0, 0.14},  // Red
	{88.0, 0.28},  // Orange
	{98.0, 0.42},  // Yellow
	{180.0, 0.56}, // Green
	{190.0, 0.70}, // Turquoise
	{320.0, 0.84}, // Blue
	{328.0, 0.91}, // Violet
	{360.0, 1.0},  // Pink wrap
}
