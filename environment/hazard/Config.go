package hazard

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent"
	learner "github.com/samuelfneumann/gridlearn/agent/linear/hazard"
)

// DefaultObstacles is the default number of obstacles on the grid
const DefaultObstacles int = 12

// Config represents a configuration of the hazard Simulation: the
// configuration of its Predictor plus how obstacles are laid out
type Config struct {
	learner.Config `mapstructure:",squash" yaml:",inline"`
	Obstacles      int    `mapstructure:"obstacles" yaml:"obstacles"`
	Layout         string `mapstructure:"layout" yaml:"layout"`
}

var _ agent.Config = Config{}

// DefaultConfig returns the Config used when nothing else is specified
func DefaultConfig() Config {
	return Config{
		Config:    learner.DefaultConfig(),
		Obstacles: DefaultObstacles,
		Layout:    RandomLayout,
	}
}

// ValidateFor ensures that the Config is valid for a grid of the given
// size. With a random layout at least one cell besides the start must
// stay free. Obstacles is ignored by the maze layout.
func (c Config) ValidateFor(size int) error {
	if err := c.Validate(); err != nil {
		return err
	}

	switch c.Layout {
	case "", RandomLayout:
	case MazeLayout:
		return nil
	default:
		return fmt.Errorf("hazard: unknown layout %q (want %q or %q)",
			c.Layout, RandomLayout, MazeLayout)
	}

	if c.Obstacles < 0 {
		return fmt.Errorf("hazard: obstacles cannot be negative (have %d)",
			c.Obstacles)
	}
	if c.Obstacles > size*size-2 {
		return fmt.Errorf("hazard: %d obstacles leave no free cell on a "+
			"%d × %d grid", c.Obstacles, size, size)
	}
	return nil
}
