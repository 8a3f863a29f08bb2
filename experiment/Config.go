package experiment

import (
	"fmt"
	"time"

	"github.com/samuelfneumann/gridlearn/agent/linear/discrete/explorer"
	env "github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/explore"
	"github.com/samuelfneumann/gridlearn/environment/hazard"
	"github.com/samuelfneumann/gridlearn/environment/wander"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents a configuration of an experiment: which
// simulations to run side by side, how to construct them, and what to
// do with the data they generate.
//
// Learner constants are only chosen here; once a simulation is created
// they are fixed for its lifetime.
type Config struct {
	Simulations []string      `mapstructure:"simulations" yaml:"simulations"`
	GridSize    int           `mapstructure:"gridSize" yaml:"gridSize"`
	Interval    time.Duration `mapstructure:"interval" yaml:"interval"`
	MaxSteps    int           `mapstructure:"maxSteps" yaml:"maxSteps"`
	Seed        uint64        `mapstructure:"seed" yaml:"seed"`

	Hazard   hazard.Config   `mapstructure:"hazard" yaml:"hazard"`
	Explorer explorer.Config `mapstructure:"explorer" yaml:"explorer"`
	Wander   wander.Config   `mapstructure:"wander" yaml:"wander"`

	Trace        bool   `mapstructure:"trace" yaml:"trace"`
	Color        bool   `mapstructure:"color" yaml:"color"`
	AccuracyFile string `mapstructure:"accuracyFile" yaml:"accuracyFile"`
	ChartFile    string `mapstructure:"chartFile" yaml:"chartFile"`
	FrameDir     string `mapstructure:"frameDir" yaml:"frameDir"`
	FrameEvery   int    `mapstructure:"frameEvery" yaml:"frameEvery"`
	Listen       string `mapstructure:"listen" yaml:"listen"`
}

// DefaultConfig returns the Config used when nothing else is specified
func DefaultConfig() Config {
	return Config{
		Simulations: []string{hazard.Name, explore.Name, wander.Name},
		GridSize:    10,
		Interval:    time.Second,
		Hazard:      hazard.DefaultConfig(),
		Explorer:    explorer.DefaultConfig(),
		Wander:      wander.DefaultConfig(),
		Trace:       true,
		Color:       true,
		FrameEvery:  1,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("experiment: grid size must be positive (have %d)",
			c.GridSize)
	}
	if c.Interval < 0 {
		return fmt.Errorf("experiment: interval cannot be negative (have %v)",
			c.Interval)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("experiment: max steps cannot be negative "+
			"(have %d)", c.MaxSteps)
	}
	if c.FrameEvery <= 0 {
		return fmt.Errorf("experiment: frame interval must be positive "+
			"(have %d)", c.FrameEvery)
	}
	if len(c.Simulations) == 0 {
		return fmt.Errorf("experiment: no simulations selected")
	}

	seen := make(map[string]bool)
	for _, name := range c.Simulations {
		if seen[name] {
			return fmt.Errorf("experiment: simulation %q selected twice", name)
		}
		seen[name] = true

		var err error
		switch name {
		case hazard.Name:
			err = c.Hazard.ValidateFor(c.GridSize)
		case explore.Name:
			err = c.Explorer.Validate()
		case wander.Name:
			err = c.Wander.Validate()
		default:
			err = fmt.Errorf("experiment: no such simulation %q", name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateSimulation creates the simulation named name from the Config
func (c Config) CreateSimulation(name string, seed uint64) (env.Simulation,
	error) {
	switch name {
	case hazard.Name:
		return hazard.New(c.GridSize, c.Hazard, seed)
	case explore.Name:
		return explore.New(c.GridSize, c.Explorer, seed)
	case wander.Name:
		return wander.New(c.GridSize, c.Wander, seed)
	}
	return nil, fmt.Errorf("createSimulation: no such simulation %q", name)
}

// CreateExp creates an online experiment running the simulation named
// name, tracking its data with t
func (c Config) CreateExp(name string, seed uint64,
	t ...tracker.Tracker) (*Online, error) {
	sim, err := c.CreateSimulation(name, seed)
	if err != nil {
		return nil, err
	}
	return NewOnline(sim, c.Interval, c.MaxSteps, t...), nil
}

// Dump returns the Config as YAML
func (c Config) Dump() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}
	return out, nil
}

// Flags returns a FlagSet holding the command line overrides of a
// Config, with the defaults of DefaultConfig
func Flags(name string) *pflag.FlagSet {
	d := DefaultConfig()
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)

	flags.String("config", "", "path to a YAML configuration file")
	flags.Bool("dump-config", false, "print the resolved configuration and exit")

	flags.StringSlice("simulations", d.Simulations, "simulations to run")
	flags.Int("grid-size", d.GridSize, "cells along each side of the grid")
	flags.Duration("interval", d.Interval, "nominal tick interval, 0 to run as fast as possible")
	flags.Int("max-steps", d.MaxSteps, "ticks to run each simulation for, 0 to run until interrupted")
	flags.Uint64("seed", d.Seed, "random seed, 0 for a time based seed")
	flags.Bool("trace", d.Trace, "log one line per tick")
	flags.Bool("color", d.Color, "colour the trace")
	flags.String("accuracy-file", d.AccuracyFile, "gob file to save rolling accuracies to")
	flags.String("chart-file", d.ChartFile, "HTML file to chart rolling accuracies in")
	flags.String("frame-dir", d.FrameDir, "directory to render PNG frames into")
	flags.Int("frame-every", d.FrameEvery, "render every n-th frame")
	flags.String("listen", d.Listen, "address to serve the live view on, e.g. :8080")
	flags.String("hazard-layout", d.Hazard.Layout, "obstacle layout of the hazard simulation, random or maze")

	return flags
}

// flagKeys maps command line flags to their Config keys
var flagKeys = map[string]string{
	"simulations":   "simulations",
	"grid-size":     "gridSize",
	"interval":      "interval",
	"max-steps":     "maxSteps",
	"seed":          "seed",
	"trace":         "trace",
	"color":         "color",
	"accuracy-file": "accuracyFile",
	"chart-file":    "chartFile",
	"frame-dir":     "frameDir",
	"frame-every":   "frameEvery",
	"listen":        "listen",
	"hazard-layout": "hazard.layout",
}

// Load resolves a Config from, in increasing order of precedence, the
// defaults, the YAML file at path (if path is not empty) and the flags
// that were set in flags (if flags is not nil)
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	vp := viper.New()

	if flags != nil {
		for flag, key := range flagKeys {
			if f := flags.Lookup(flag); f != nil && f.Changed {
				if err := vp.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("load: %w", err)
				}
			}
		}
	}

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType("yaml")
		if err := vp.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("load: %w", err)
		}
	}

	config := DefaultConfig()
	if vp.IsSet("simulations") {
		// Decoding into a non-nil slice never shrinks it
		config.Simulations = nil
	}
	if err := vp.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// FromYaml loads a Config from the YAML file at path
func FromYaml(path string) (Config, error) {
	return Load(path, nil)
}
