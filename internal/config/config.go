package config

import (
	"fmt"
	"os"

	"github.com/san-kum/thermosim/internal/thermo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS         = 60
	DefaultMaxStep     = 0.25
	DefaultTemperature = 20.0
	DefaultWidth       = 160
	DefaultHeight      = 96
	DefaultSteamHeight = 32
	DefaultTheme       = "ocean"
	DefaultStep        = 1.0 / 60
)

// Config is a session configuration. Physics constants are fixed and not part of it.
type Config struct {
	Seed               int64            `yaml:"seed"`
	FPS                int              `yaml:"fps"`
	MaxStep            float64          `yaml:"max_step"`
	InitialTemperature float64          `yaml:"initial_temperature"`
	Width              int              `yaml:"width"`
	Height             int              `yaml:"height"`
	SteamHeight        int              `yaml:"steam_height"`
	Theme              string           `yaml:"theme"`
	LogFile            string           `yaml:"log_file"`
	Step               float64          `yaml:"step"`
	Schedule           []SegmentConfig  `yaml:"schedule"`
	Controller         ControllerConfig `yaml:"controller"`
}

// ControllerConfig selects a feedback controller. Type is "", "none",
// "thermostat" or "pid".
type ControllerConfig struct {
	Type     string  `yaml:"type"`
	Target   float64 `yaml:"target"`
	Deadband float64 `yaml:"deadband"`
	Kp       float64 `yaml:"kp"`
	Ki       float64 `yaml:"ki"`
	Kd       float64 `yaml:"kd"`
}

// Enabled reports whether a controller should drive the inputs.
func (c ControllerConfig) Enabled() bool {
	return c.Type != "" && c.Type != "none"
}

type SegmentConfig struct {
	Input    string  `yaml:"input"`
	Duration float64 `yaml:"duration"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:                DefaultFPS,
		MaxStep:            DefaultMaxStep,
		InitialTemperature: DefaultTemperature,
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		SteamHeight:        DefaultSteamHeight,
		Theme:              DefaultTheme,
		Step:               DefaultStep,
		Schedule: []SegmentConfig{
			{Input: "heat", Duration: 8},
			{Input: "idle", Duration: 4},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.MaxStep <= 0 {
		return fmt.Errorf("max_step must be positive, got %f", c.MaxStep)
	}
	if c.Width < 0 || c.Height < 0 || c.SteamHeight < 0 {
		return fmt.Errorf("surface size must not be negative, got %dx%d/%d", c.Width, c.Height, c.SteamHeight)
	}
	if c.Step <= 0 || c.Step > c.MaxStep {
		return fmt.Errorf("step must be in (0, max_step], got %f", c.Step)
	}
	switch c.Controller.Type {
	case "", "none", "thermostat", "pid":
	default:
		return fmt.Errorf("unknown controller %q", c.Controller.Type)
	}
	if c.Controller.Deadband < 0 {
		return fmt.Errorf("controller deadband must not be negative, got %f", c.Controller.Deadband)
	}
	for i, seg := range c.Schedule {
		if _, ok := thermo.ParseInput(seg.Input); !ok {
			return fmt.Errorf("schedule[%d]: unknown input %q", i, seg.Input)
		}
		if seg.Duration <= 0 {
			return fmt.Errorf("schedule[%d]: duration must be positive", i)
		}
	}
	return nil
}

// SimConfig converts the session settings for the simulator.
func (c *Config) SimConfig() thermo.Config {
	return thermo.Config{
		MaxStep:            c.MaxStep,
		Width:              float64(c.Width),
		Height:             float64(c.Height),
		SteamHeight:        float64(c.SteamHeight),
		InitialTemperature: c.InitialTemperature,
	}
}

// ToSchedule converts the configured segments into a headless schedule.
func (c *Config) ToSchedule() (thermo.Schedule, error) {
	sched := thermo.Schedule{
		Segments: make([]thermo.Segment, 0, len(c.Schedule)),
		Step:     c.Step,
	}
	for i, seg := range c.Schedule {
		in, ok := thermo.ParseInput(seg.Input)
		if !ok {
			return thermo.Schedule{}, fmt.Errorf("%w: schedule[%d] input %q", thermo.ErrInvalidSchedule, i, seg.Input)
		}
		sched.Segments = append(sched.Segments, thermo.Segment{Input: in, Duration: seg.Duration})
	}
	return sched, nil
}
