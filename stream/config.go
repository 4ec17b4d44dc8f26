package stream

import (
	"io"
	"os"
	"time"

	"github.com/matt-g-everett/ledtween/anim"
	"gopkg.in/yaml.v2"
)

// ChannelConfig describes one animated quantity on a fixture.
type ChannelConfig struct {
	Name    string     `yaml:"name"`
	Kind    string     `yaml:"kind"`
	Initial anim.Value `yaml:"initial"`
}

// FixtureConfig describes a group of channels imported under a prefix.
type FixtureConfig struct {
	Prefix   string          `yaml:"prefix"`
	Channels []ChannelConfig `yaml:"channels"`
}

type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`

	// FrameRate is how many animation frames pass per second of wall time.
	FrameRate float64 `yaml:"frameRate"`
	TickMs    int     `yaml:"tickMs"`

	Library  string          `yaml:"library"`
	Watch    bool            `yaml:"watch"`
	Start    string          `yaml:"start"`
	Fixtures []FixtureConfig `yaml:"fixtures"`
	Twinkle  TwinkleConfig   `yaml:"twinkle"`
}

// ReadConfig decodes a YAML config and fills in defaults.
func ReadConfig(r io.Reader) (Config, error) {
	var config Config
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}
	config.applyDefaults()
	return config, nil
}

// LoadConfig reads the YAML config at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	return ReadConfig(f)
}

func (c *Config) applyDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "ledtween"
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "home/xmastree/stream"
	}
	if c.Mqtt.Topics.Control == "" {
		c.Mqtt.Topics.Control = "home/xmastree/control"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":3000"
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 60
	}
	if c.TickMs <= 0 {
		c.TickMs = 33
	}
	if c.Twinkle.Prefix == "" {
		c.Twinkle.Prefix = "twinkle"
	}
	if c.Twinkle.Chance <= 0 {
		c.Twinkle.Chance = 400
	}
}

// TickInterval is how often frames are published.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

// Frames converts wall time into animation frames.
func (c Config) Frames(elapsed time.Duration) float64 {
	return elapsed.Seconds() * c.FrameRate
}
