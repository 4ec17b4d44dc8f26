package easing

import (
	"sort"

	"github.com/fogleman/ease"
	gease "github.com/tanema/gween/ease"
)

// Registry is a read-only table of easings keyed by name. It is built once
// and never mutated afterwards, so it can be shared between channels.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry creates a Registry holding the built-in easings plus the given
// extensions. Extensions may not shadow a built-in name.
func NewRegistry(extensions map[string]Func) *Registry {
	r := new(Registry)
	r.funcs = map[string]Func{
		"immediateIn":    ImmediateIn,
		"immediateOut":   ImmediateOut,
		"immediateInOut": ImmediateInOut,
		"linear":         Linear,
		"quadraticIn":    QuadraticIn,
		"quadraticOut":   QuadraticOut,
		"quadraticInOut": QuadraticInOut,
	}

	for name, fn := range extensions {
		if _, found := r.funcs[name]; found {
			continue
		}
		r.funcs[name] = fn
	}

	return r
}

// Lookup finds an easing by name.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, found := r.funcs[name]
	return fn, found
}

// Names lists every registered easing in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromTweenFunc adapts a gween easing, which works on absolute
// begin/change/duration values, to a normalised Func.
func FromTweenFunc(fn gease.TweenFunc) Func {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Default holds the built-ins and the usual Penner families.
var Default = NewRegistry(map[string]Func{
	"cubicIn":      ease.InCubic,
	"cubicOut":     ease.OutCubic,
	"cubicInOut":   ease.InOutCubic,
	"quarticIn":    ease.InQuart,
	"quarticOut":   ease.OutQuart,
	"quarticInOut": ease.InOutQuart,
	"quinticIn":    ease.InQuint,
	"quinticOut":   ease.OutQuint,
	"quinticInOut": ease.InOutQuint,
	"sineIn":       ease.InSine,
	"sineOut":      ease.OutSine,
	"sineInOut":    ease.InOutSine,
	"expoIn":       ease.InExpo,
	"expoOut":      ease.OutExpo,
	"expoInOut":    ease.InOutExpo,
	"circIn":       ease.InCirc,
	"circOut":      ease.OutCirc,
	"circInOut":    ease.InOutCirc,
	"elasticIn":    ease.InElastic,
	"elasticOut":   ease.OutElastic,
	"elasticInOut": ease.InOutElastic,
	"backIn":       ease.InBack,
	"backOut":      ease.OutBack,
	"backInOut":    ease.InOutBack,
	"bounceIn":     ease.InBounce,
	"bounceOut":    ease.OutBounce,
	"bounceInOut":  ease.InOutBounce,

	// OutIn curves come from gween, which fogleman/ease doesn't provide.
	"quadraticOutIn": FromTweenFunc(gease.OutInQuad),
	"cubicOutIn":     FromTweenFunc(gease.OutInCubic),
	"sineOutIn":      FromTweenFunc(gease.OutInSine),
	"elasticOutIn":   FromTweenFunc(gease.OutInElastic),
	"bounceOutIn":    FromTweenFunc(gease.OutInBounce),
})

// Lookup finds an easing by name in the Default registry.
func Lookup(name string) (Func, bool) {
	return Default.Lookup(name)
}
