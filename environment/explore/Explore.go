// Package explore implements a coverage simulation: an agent learns to
// keep moving into grid cells it has not recently visited
package explore

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent/linear/discrete/explorer"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// Name is the name of the explore Simulation
const Name string = "explore"

// Rewards for entering new and previously visited cells
const (
	NewCellReward     float64 = 1.0
	VisitedCellReward float64 = -1.0
)

// Simulation is the exploration simulation. Each tick, the Explorer
// chooses a direction among those that stay on the grid, is rewarded
// for reaching an unvisited cell, and has its choice compared against
// the greedy choice.
type Simulation struct {
	grid     *gridworld.Grid
	x, y     int
	explorer *explorer.Explorer
	starter  environment.Starter

	step timestep.TimeStep
}

// New creates a new explore Simulation on a size × size grid
func New(size int, c explorer.Config, seed uint64) (*Simulation, error) {
	grid, err := gridworld.New(size)
	if err != nil {
		return nil, fmt.Errorf("explore: %w", err)
	}

	e, err := explorer.New(grid, c, seed)
	if err != nil {
		return nil, fmt.Errorf("explore: could not create explorer: %w", err)
	}

	bounds := r1.Interval{Min: 0, Max: float64(size)}
	s := &Simulation{
		grid:     grid,
		explorer: e,
		starter:  environment.NewUniformStarter([]r1.Interval{bounds, bounds}, seed+1),
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

// Explorer returns the learner driven by the Simulation
func (s *Simulation) Explorer() *explorer.Explorer {
	return s.explorer
}

// Position returns the current cell of the agent
func (s *Simulation) Position() (int, int) {
	return s.x, s.y
}

// Reset moves the agent to a new starting cell and marks it visited
func (s *Simulation) Reset() timestep.TimeStep {
	s.x, s.y = s.grid.StartCell(s.starter)
	s.explorer.MarkVisited(s.grid.ID(s.x, s.y))

	step := timestep.New(Name, timestep.First, 0)
	step.X, step.Y = s.x, s.y
	s.step = step
	return step
}

// Tick performs one sense-predict-act-learn-record cycle
func (s *Simulation) Tick() timestep.TimeStep {
	// Sense
	features := s.explorer.Features(s.x, s.y)
	mask := s.grid.ValidMask(s.x, s.y)

	// Predict
	dist := s.explorer.Forward(features, mask)
	action := s.explorer.SampleAction(dist)
	greedy := s.explorer.GreedyAction(s.x, s.y, mask)

	// Act
	if mask[action] {
		s.x, s.y, _ = s.grid.Neighbour(s.x, s.y, gridworld.Direction(action))
	}
	id := s.grid.ID(s.x, s.y)
	reward := VisitedCellReward
	if !s.explorer.Visited(id) {
		reward = NewCellReward
	}

	// Learn
	s.explorer.Update(action, reward)
	s.explorer.MarkVisited(id)

	// Record
	matched := action == greedy
	s.explorer.RecordChoice(matched)

	step := timestep.New(Name, timestep.Mid, s.step.Number+1)
	step.X, step.Y = s.x, s.y
	step.Heading = gridworld.Direction(action).String()
	step.Observation = features
	step.Action = action
	step.Reward = reward
	step.Prediction = dist.AtVec(action)
	if matched {
		step.Target = 1.0
	}
	step.Correct = matched
	step.Accuracy = s.explorer.Accuracy()
	step.Weights = s.explorer.Weights()

	s.step = step
	return step
}

// Frame returns a snapshot of the Simulation
func (s *Simulation) Frame() environment.Frame {
	ids := s.explorer.VisitedIDs()
	visited := make([]environment.Cell, len(ids))
	for i, id := range ids {
		x, y := s.grid.Coordinates(id)
		visited[i] = environment.Cell{X: x, Y: y}
	}

	return environment.Frame{
		Simulation: Name,
		Step:       s.step.Number,
		Size:       s.grid.Size(),
		Visited:    visited,
		Agents: []environment.Agent{{
			Cell:   environment.Cell{X: s.x, Y: s.y},
			Colour: "green",
		}},
		Accuracy: s.explorer.Accuracy(),
	}
}
