package stream

import (
	"fmt"

	"github.com/matt-g-everett/ledtween/anim"
)

type slot struct {
	scalar float64
	vector []float64
	rgba   [4]float64
	frame  int
}

// A Fixture owns the quantities its channels animate, such as the
// brightness and colour of one string of LEDs.
type Fixture struct {
	Prefix   string
	slots    map[string]*slot
	channels map[string]*anim.Channel
}

// NewFixture creates a Fixture and its channels from config.
func NewFixture(config FixtureConfig) (*Fixture, error) {
	f := new(Fixture)
	f.Prefix = config.Prefix
	f.slots = make(map[string]*slot)
	f.channels = make(map[string]*anim.Channel)

	for _, cc := range config.Channels {
		if _, found := f.channels[cc.Name]; found {
			return nil, fmt.Errorf("fixture %s: duplicate channel %q", f.Prefix, cc.Name)
		}

		s := new(slot)
		var ch *anim.Channel
		switch cc.Kind {
		case "", "scalar":
			s.scalar = cc.Initial.Float()
			ch = anim.NewChannel(cc.Name, anim.Linear, anim.FloatProperty(&s.scalar))
		case "vector":
			if len(cc.Initial) == 0 {
				return nil, fmt.Errorf("fixture %s: vector channel %q needs an initial value", f.Prefix, cc.Name)
			}
			s.vector = cc.Initial.Clone()
			ch = anim.NewChannel(cc.Name, anim.Linear, anim.VectorProperty(s.vector))
		case "color", "colour":
			if cc.Initial != nil && len(cc.Initial) != 4 {
				return nil, fmt.Errorf("fixture %s: colour channel %q needs 4 components", f.Prefix, cc.Name)
			}
			copy(s.rgba[:], cc.Initial)
			ch = anim.NewColorChannel(cc.Name, &s.rgba)
		case "frame":
			s.frame = int(cc.Initial.Float())
			ch = anim.NewFrameChannel(cc.Name,
				func() int { return s.frame },
				func(i int) { s.frame = i })
		default:
			return nil, fmt.Errorf("fixture %s: channel %q has unknown kind %q", f.Prefix, cc.Name, cc.Kind)
		}

		f.slots[cc.Name] = s
		f.channels[cc.Name] = ch
	}

	return f, nil
}

// Channels exposes the fixture's channels for Controller.ImportChannels.
func (f *Fixture) Channels() map[string]*anim.Channel {
	return f.channels
}

// Snapshot copies the current value of every channel.
func (f *Fixture) Snapshot() map[string]anim.Value {
	values := make(map[string]anim.Value, len(f.channels))
	for name, ch := range f.channels {
		values[name] = ch.Value()
	}
	return values
}
