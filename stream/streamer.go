package stream

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledtween/adaptive"
	"github.com/matt-g-everett/ledtween/anim"
)

// Publisher sends an encoded frame to devices.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

type mqttPublisher struct {
	client mqtt.Client
}

// NewMqttPublisher publishes frames through an MQTT client.
func NewMqttPublisher(client mqtt.Client) Publisher {
	p := new(mqttPublisher)
	p.client = client
	return p
}

func (p *mqttPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, 2, false, payload)
	token.Wait()
	return token.Error()
}

// Status describes what the streamer is doing.
type Status struct {
	Animations  map[string]string `json:"animations"`
	Playing     map[string]bool   `json:"playing"`
	NonAdaptive []string          `json:"nonAdaptive"`
	Frame       *Frame            `json:"frame,omitempty"`
}

// Streamer animates fixtures and streams their values to devices. All
// animation state is touched only from Tick; other goroutines talk to it
// through Enqueue.
type Streamer struct {
	config     Config
	publisher  Publisher
	controller *anim.Controller
	fixtures   []*Fixture
	driver     *adaptive.Driver
	stages     []adaptive.Stage
	commands   chan Command
	library    *Library

	mutex  sync.Mutex
	status Status
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, publisher Publisher) (*Streamer, error) {
	s := new(Streamer)
	s.config = config
	s.publisher = publisher
	s.controller = anim.NewController()
	s.driver = adaptive.NewDriver()
	s.commands = make(chan Command, 16)

	for _, fc := range config.Fixtures {
		f, err := NewFixture(fc)
		if err != nil {
			return nil, err
		}
		s.fixtures = append(s.fixtures, f)
		s.controller.ImportChannels(f, f.Prefix)
	}

	s.stages = append(s.stages, adaptive.Stage{
		Fn:       adaptive.Adaptive(s.controller.Update),
		Receiver: s.controller,
	})

	if config.Twinkle.Pixels > 0 {
		t := NewTwinkle(config.Twinkle)
		s.controller.ImportChannels(t, config.Twinkle.Prefix)
		s.AddStage(adaptive.Stage{Fn: adaptive.Step(t.Step), Receiver: t})
	}
	s.snapshot(nil)

	return s, nil
}

// Controller exposes the streamer's controller.
func (s *Streamer) Controller() *anim.Controller {
	return s.controller
}

// Driver exposes the adaptive driver, for its diagnostics.
func (s *Streamer) Driver() *adaptive.Driver {
	return s.driver
}

// Fixtures lists the fixtures built from config.
func (s *Streamer) Fixtures() []*Fixture {
	return s.fixtures
}

// AddStage runs another update after the controller on every tick.
func (s *Streamer) AddStage(stage adaptive.Stage) {
	s.stages = append(s.stages, stage)
}

// LoadLibrary reads the animation library at path into the controller.
func (s *Streamer) LoadLibrary(path string) error {
	lib, err := LoadLibrary(path)
	if err != nil {
		return err
	}
	s.library = lib
	log.Printf("Loaded %d animations from %s", len(lib.Names()), path)
	return lib.Apply(s.controller)
}

// Reload reads the configured library again. Animations already playing
// keep their queues; the new definitions apply from the next transition.
func (s *Streamer) Reload() error {
	if s.config.Library == "" {
		return nil
	}
	return s.LoadLibrary(s.config.Library)
}

// Start transitions straight into name, if there is one, and starts
// playback.
func (s *Streamer) Start(name string) error {
	if name != "" {
		if err := s.controller.Transition(name, anim.TransitionOptions{}); err != nil {
			return err
		}
	}
	s.controller.Play()
	return nil
}

// Enqueue hands a command to the next tick. It never blocks.
func (s *Streamer) Enqueue(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	select {
	case s.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// HandlePayload parses a JSON command and queues it.
func (s *Streamer) HandlePayload(data []byte) error {
	cmd, err := ParseCommand(data)
	if err != nil {
		return err
	}
	return s.Enqueue(cmd)
}

// Tick applies queued commands, advances every stage by elapsed wall time
// and publishes the resulting frame.
func (s *Streamer) Tick(elapsed time.Duration) (*Frame, error) {
	s.drain()

	frames := s.config.Frames(elapsed)
	s.driver.DriveAll(frames, s.stages...)

	f := NewFrame(s.controller, frames)
	s.snapshot(f)

	data, err := f.MarshalBinary()
	if err != nil {
		return f, err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(s.config.Mqtt.Topics.Stream, data); err != nil {
			return f, fmt.Errorf("publish: %w", err)
		}
	}

	return f, nil
}

// Run causes the Streamer to send Frames until ctx is cancelled.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(s.config.TickInterval())
	defer publishTimer.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-publishTimer.C:
			elapsed := now.Sub(last)
			last = now
			if _, err := s.Tick(elapsed); err != nil {
				log.Printf("Tick failed: %v", err)
			}
		}
	}
}

// Subscribe listens for commands on the control topic.
func (s *Streamer) Subscribe(client mqtt.Client) error {
	token := client.Subscribe(s.config.Mqtt.Topics.Control, 0, s.handleControl)
	token.Wait()
	return token.Error()
}

func (s *Streamer) handleControl(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s\n", msg.MessageID(), msg.Topic(), msg.Payload())
	if err := s.HandlePayload(msg.Payload()); err != nil {
		log.Printf("Dropped command: %v", err)
	}
}

// Status returns a copy of the state at the last tick.
func (s *Streamer) Status() Status {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	st := s.status
	st.Animations = make(map[string]string, len(s.status.Animations))
	for k, v := range s.status.Animations {
		st.Animations[k] = v
	}
	st.Playing = make(map[string]bool, len(s.status.Playing))
	for k, v := range s.status.Playing {
		st.Playing[k] = v
	}
	st.NonAdaptive = append([]string(nil), s.status.NonAdaptive...)
	return st
}

func (s *Streamer) drain() {
	for {
		select {
		case cmd := <-s.commands:
			if err := s.apply(cmd); err != nil {
				log.Printf("Command %s failed: %v", cmd.Type, err)
			}
		default:
			return
		}
	}
}

func (s *Streamer) snapshot(f *Frame) {
	animations := make(map[string]string)
	playing := make(map[string]bool)
	for _, key := range s.controller.Keys() {
		ch, _ := s.controller.Channel(key)
		animations[key] = ch.Current()
		playing[key] = ch.Playing()
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.status = Status{
		Animations:  animations,
		Playing:     playing,
		NonAdaptive: s.driver.NonAdaptive(),
		Frame:       f,
	}
}
