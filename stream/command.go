package stream

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matt-g-everett/ledtween/anim"
)

var (
	// ErrBadCommand is returned for a command that can't be understood.
	ErrBadCommand = errors.New("bad command")
	// ErrQueueFull is returned when commands arrive faster than ticks drain
	// them.
	ErrQueueFull = errors.New("command queue full")
)

// Command types.
const (
	CommandTransition = "transition"
	CommandPlay       = "play"
	CommandPause      = "pause"
	CommandStop       = "stop"
	CommandCancel     = "cancel"
	CommandReload     = "reload"
)

// Command is a control message, received over MQTT or HTTP.
type Command struct {
	Type           string  `json:"type"`
	Name           string  `json:"name,omitempty"`
	Method         string  `json:"method,omitempty"`
	Duration       float64 `json:"duration,omitempty"`
	Easing         string  `json:"easing,omitempty"`
	ReturnDuration float64 `json:"returnDuration,omitempty"`
	ReturnEasing   string  `json:"returnEasing,omitempty"`
}

// ParseCommand decodes and checks a JSON command.
func ParseCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return cmd, fmt.Errorf("%w: %v", ErrBadCommand, err)
	}
	return cmd, cmd.Validate()
}

// Validate checks the command without applying it.
func (c Command) Validate() error {
	switch c.Type {
	case CommandTransition:
		if c.Name == "" {
			return fmt.Errorf("%w: transition needs a name", ErrBadCommand)
		}
		if _, err := c.Options(); err != nil {
			return err
		}
	case CommandPlay, CommandPause, CommandStop, CommandCancel, CommandReload:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadCommand, c.Type)
	}
	return nil
}

// Options converts a transition command into controller options.
func (c Command) Options() (anim.TransitionOptions, error) {
	method, err := anim.ParseMethod(c.Method)
	if err != nil {
		return anim.TransitionOptions{}, fmt.Errorf("%w: %v", ErrBadCommand, err)
	}
	if c.Duration < 0 || c.ReturnDuration < 0 {
		return anim.TransitionOptions{}, fmt.Errorf("%w: negative duration", ErrBadCommand)
	}

	return anim.TransitionOptions{
		Method:           method,
		Duration:         c.Duration,
		EasingName:       c.Easing,
		ReturnDuration:   c.ReturnDuration,
		ReturnEasingName: c.ReturnEasing,
	}, nil
}

func (s *Streamer) apply(cmd Command) error {
	switch cmd.Type {
	case CommandTransition:
		opts, err := cmd.Options()
		if err != nil {
			return err
		}
		return s.controller.Transition(cmd.Name, opts)
	case CommandPlay:
		s.controller.Play()
	case CommandPause:
		s.controller.Pause()
	case CommandStop:
		s.controller.Stop()
	case CommandCancel:
		s.controller.CancelAndReset()
	case CommandReload:
		return s.Reload()
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadCommand, cmd.Type)
	}
	return nil
}
