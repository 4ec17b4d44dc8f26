package anim

import "errors"

var (
	// ErrUnknownEasing is returned when an easing name isn't in the registry.
	ErrUnknownEasing = errors.New("unknown easing")
	// ErrUnknownAnimation is returned when transitioning to a name that was
	// never imported.
	ErrUnknownAnimation = errors.New("unknown animation")
	// ErrMalformedDefinition is returned when a definition can't be played
	// on a channel.
	ErrMalformedDefinition = errors.New("malformed animation definition")
)
