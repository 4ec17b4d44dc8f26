package stream

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/matt-g-everett/ledtween/anim"
	"gopkg.in/yaml.v2"
)

// GradientSpec generates a colour animation for one channel from a hue
// gradient.
type GradientSpec struct {
	Channel   string        `yaml:"channel"`
	Frames    float64       `yaml:"frames"`
	Chroma    float64       `yaml:"chroma"`
	Luminance float64       `yaml:"luminance"`
	Steps     int           `yaml:"steps"`
	Stops     GradientTable `yaml:"stops"`
}

// Library is a file of named animations, each keyed by controller channel.
type Library struct {
	Animations map[string]map[string]*anim.Definition `yaml:"animations"`
	Gradients  map[string]GradientSpec                 `yaml:"gradients"`
}

// ParseLibrary decodes a YAML library.
func ParseLibrary(data []byte) (*Library, error) {
	l := new(Library)
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, err
	}
	return l, nil
}

// LoadLibrary reads the YAML library at path.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLibrary(data)
}

// Names lists every animation the library defines, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.Animations)+len(l.Gradients))
	for name := range l.Animations {
		names = append(names, name)
	}
	for name := range l.Gradients {
		if _, found := l.Animations[name]; !found {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Apply imports every animation into ctrl. A broken animation is reported
// but doesn't stop the others from loading.
func (l *Library) Apply(ctrl *anim.Controller) error {
	var errs []error
	for _, name := range l.Names() {
		defs := make(map[string]*anim.Definition)
		for key, def := range l.Animations[name] {
			defs[key] = def
		}

		if spec, found := l.Gradients[name]; found {
			def, err := spec.definition()
			if err != nil {
				errs = append(errs, fmt.Errorf("gradient %q: %w", name, err))
			} else {
				defs[spec.Channel] = def
			}
		}

		if err := ctrl.ImportAnimation(name, defs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s GradientSpec) definition() (*anim.Definition, error) {
	stops := s.Stops
	if len(stops) == 0 {
		stops = Rainbow
	}
	steps := s.Steps
	if steps == 0 {
		steps = len(stops) - 1
	}
	chroma, luminance := s.Chroma, s.Luminance
	if chroma == 0 {
		chroma = 1.0
	}
	if luminance == 0 {
		luminance = 0.05
	}
	return stops.Definition(s.Frames, chroma, luminance, steps)
}
