package stream

import (
	"math/rand"

	"github.com/matt-g-everett/ledtween/anim"
	"github.com/matt-g-everett/ledtween/util"
)

// TwinkleConfig enables a per-pixel sparkle layer.
type TwinkleConfig struct {
	Prefix string `yaml:"prefix"`
	Pixels int    `yaml:"pixels"`
	// Chance is the 1 in N odds of a resting pixel starting to twinkle on
	// each frame.
	Chance int   `yaml:"chance"`
	Seed   int64 `yaml:"seed"`
}

type particle struct {
	lut     []float64
	current int
	running bool
	peak    float64
}

func (p *particle) increment() {
	if p.running {
		p.current++
		if p.current >= len(p.lut)-1 {
			p.current = 0
			p.running = false
		}
	}
}

func (p *particle) gain() float64 {
	if !p.running {
		return 0
	}
	return p.lut[p.current] * p.peak
}

// A Twinkle scintillates random pixels. It only knows how to advance one
// frame at a time, so it runs as a stepped stage and exposes its pixel
// gains as a vector channel.
type Twinkle struct {
	chance    int
	rand      *rand.Rand
	memoizer  util.Memoizer
	particles []*particle
	levels    []float64
	channels  map[string]*anim.Channel
}

// NewTwinkle creates an instance of a Twinkle.
func NewTwinkle(config TwinkleConfig) *Twinkle {
	t := new(Twinkle)
	t.chance = config.Chance
	if t.chance < 1 {
		t.chance = 1
	}
	t.rand = rand.New(rand.NewSource(config.Seed))
	t.memoizer = util.Memoizer{}
	t.levels = make([]float64, config.Pixels)
	t.particles = make([]*particle, config.Pixels)
	for i := range t.particles {
		t.particles[i] = new(particle)
	}

	t.channels = map[string]*anim.Channel{
		"levels": anim.NewChannel("levels", anim.Linear, anim.VectorProperty(t.levels)),
	}

	return t
}

// Channels exposes the pixel gains for Controller.ImportChannels.
func (t *Twinkle) Channels() map[string]*anim.Channel {
	return t.channels
}

// Step advances every pixel by one frame.
func (t *Twinkle) Step() {
	for i, p := range t.particles {
		// Start scintillation by chance
		if !p.running && t.rand.Intn(t.chance) == 0 {
			p.lut = util.GenerateLutMemoized((t.rand.Intn(18)+6)*2, t.memoizer)
			p.peak = util.RandomBetween(t.rand, 0.5, 1)
			p.running = true
		}

		// Always increment, it'll only affect those pixels that are scintillating
		p.increment()
		t.levels[i] = p.gain()
	}
}

// Levels copies the current pixel gains.
func (t *Twinkle) Levels() []float64 {
	return append([]float64(nil), t.levels...)
}
