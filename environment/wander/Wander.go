// Package wander implements a simulation of circles randomly walking a
// grid, with no learning involved
package wander

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// Name is the name of the wander Simulation
const Name string = "wander"

// DefaultCircles is the default number of wandering circles
const DefaultCircles int = 3

var colours = []string{"red", "green", "blue"}

// Config represents a configuration of the wander Simulation
type Config struct {
	Circles int `mapstructure:"circles" yaml:"circles"`
}

// DefaultConfig returns the Config used when nothing else is specified
func DefaultConfig() Config {
	return Config{Circles: DefaultCircles}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Circles <= 0 {
		return fmt.Errorf("wander: number of circles must be positive "+
			"(have %d)", c.Circles)
	}
	return nil
}

// Simulation moves each circle to a uniformly random neighbouring cell
// every tick. Circles may share cells.
type Simulation struct {
	grid    *gridworld.Grid
	circles []environment.Cell
	starter environment.Starter
	rng     *rand.Rand

	step timestep.TimeStep
}

// New creates a new wander Simulation on a size × size grid
func New(size int, c Config, seed uint64) (*Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	grid, err := gridworld.New(size)
	if err != nil {
		return nil, fmt.Errorf("wander: %w", err)
	}

	bounds := r1.Interval{Min: 0, Max: float64(size)}
	s := &Simulation{
		grid:    grid,
		circles: make([]environment.Cell, c.Circles),
		starter: environment.NewUniformStarter([]r1.Interval{bounds, bounds}, seed),
		rng:     rand.New(rand.NewSource(seed + 1)),
	}
	s.Reset()
	return s, nil
}

// Name returns the name of the Simulation
func (s *Simulation) Name() string {
	return Name
}

// TimeStep returns the most recent TimeStep of the Simulation
func (s *Simulation) TimeStep() timestep.TimeStep {
	return s.step
}

// Reset places every circle on a uniformly random cell
func (s *Simulation) Reset() timestep.TimeStep {
	for i := range s.circles {
		s.circles[i].X, s.circles[i].Y = s.grid.StartCell(s.starter)
	}

	s.step = s.timeStep(timestep.First, 0)
	return s.step
}

// Tick moves every circle one cell
func (s *Simulation) Tick() timestep.TimeStep {
	for i, c := range s.circles {
		s.circles[i] = s.move(c)
	}

	s.step = s.timeStep(timestep.Mid, s.step.Number+1)
	return s.step
}

// Circles returns the positions of all circles
func (s *Simulation) Circles() []environment.Cell {
	circles := make([]environment.Cell, len(s.circles))
	copy(circles, s.circles)
	return circles
}

// Frame returns a snapshot of the Simulation
func (s *Simulation) Frame() environment.Frame {
	agents := make([]environment.Agent, len(s.circles))
	for i, c := range s.circles {
		agents[i] = environment.Agent{
			Cell:   c,
			Colour: colours[i%len(colours)],
		}
	}

	return environment.Frame{
		Simulation: Name,
		Step:       s.step.Number,
		Size:       s.grid.Size(),
		Agents:     agents,
	}
}

// move returns a uniformly chosen in-bounds neighbour of c, or c itself
// if it has none
func (s *Simulation) move(c environment.Cell) environment.Cell {
	candidates := make([]environment.Cell, 0, gridworld.NumDirections)
	for _, d := range gridworld.Directions() {
		if x, y, ok := s.grid.Neighbour(c.X, c.Y, d); ok {
			candidates = append(candidates, environment.Cell{X: x, Y: y})
		}
	}

	if len(candidates) == 0 {
		return c
	}
	return candidates[s.rng.Intn(len(candidates))]
}

// timeStep reports the first circle's position
func (s *Simulation) timeStep(t timestep.StepType, n int) timestep.TimeStep {
	step := timestep.New(Name, t, n)
	step.X, step.Y = s.circles[0].X, s.circles[0].Y
	return step
}
