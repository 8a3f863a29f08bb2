// Package hazard implements an obstacle-avoidance simulation: an agent
// wanders a grid with obstacles, predicting from three proximity
// sensors whether it is about to run into something
package hazard

import (
	"fmt"

	"golang.org/x/exp/rand"

	learner "github.com/samuelfneumann/gridlearn/agent/linear/hazard"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Name is the name of the hazard Simulation
const Name string = "hazard"

// Proximity readings
const (
	Adjacent float64 = 1.0 // blocked one cell away
	Near     float64 = 0.5 // blocked two cells away
	Clear    float64 = 0.0
)

// Actions the agent can take
const (
	Forward int = iota
	TurnLeft
	TurnRight
)

// Simulation is the hazard avoidance simulation. The agent has a
// position and heading; each tick it senses, predicts danger, then
// either steps forward or turns away from the nearest obstacle.
type Simulation struct {
	grid      *gridworld.Grid
	size      int
	obstacles int
	layout    string

	x, y    int
	heading gridworld.Direction

	predictor *learner.Predictor
	starter   environment.Starter
	rng       *rand.Rand

	step timestep.TimeStep
}

// New creates a new hazard Simulation on a size × size grid
func New(size int, c Config, seed uint64) (*Simulation, error) {
	if err := c.ValidateFor(size); err != nil {
		return nil, err
	}

	p, err := learner.New(c.Config)
	if err != nil {
		return nil, fmt.Errorf("hazard: could not create predictor: %w", err)
	}

	bounds := r1.Interval{Min: 0, Max: float64(size)}
	s := &Simulation{
		size:      size,
		obstacles: c.Obstacles,
		layout:    c.Layout,
		predictor: p,
		starter:   environment.NewUniformStarter([]r1.Interval{bounds, bounds}, seed),
		rng:       rand.New(rand.NewSource(seed + 1)),
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

// Predictor returns the learner driven by the Simulation
func (s *Simulation) Predictor() *learner.Predictor {
	return s.predictor
}

// Reset lays out a new grid with fresh obstacles and a new starting
// pose. The predictor keeps what it has learned.
func (s *Simulation) Reset() timestep.TimeStep {
	grid, err := gridworld.New(s.size)
	if err != nil {
		panic(fmt.Sprintf("reset: %v", err))
	}
	s.grid = grid

	s.x, s.y = s.grid.StartCell(s.starter)
	s.heading = gridworld.Direction(s.rng.Intn(gridworld.NumDirections))

	if err := s.layObstacles(); err != nil {
		panic(fmt.Sprintf("reset: %v", err))
	}

	step := timestep.New(Name, timestep.First, 0)
	step.X, step.Y = s.x, s.y
	step.Heading = s.heading.String()
	s.step = step
	return step
}

// layObstacles places the obstacles of the configured layout, keeping
// the start cell free
func (s *Simulation) layObstacles() error {
	if s.layout == MazeLayout {
		s.x, s.y = mazeCell(s.x, s.y)
		return mazeObstacles(s.grid, s.rng.Int63())
	}
	return s.grid.RandomObstacles(s.obstacles, s.rng, s.grid.ID(s.x, s.y))
}

// Tick performs one sense-predict-act-learn-record cycle
func (s *Simulation) Tick() timestep.TimeStep {
	// Sense
	front, left, right := s.Sensors()

	// Predict
	prediction := s.predictor.Predict(front, left, right)

	// Label, from the pose the prediction was made in
	actual := s.Danger()

	// Act
	action := s.act(prediction, front, left, right)

	// Learn
	s.predictor.Update(front, left, right, actual)

	// Record
	s.predictor.RecordAccuracy(prediction, actual)

	step := timestep.New(Name, timestep.Mid, s.step.Number+1)
	step.X, step.Y = s.x, s.y
	step.Heading = s.heading.String()
	step.Observation = mat.NewVecDense(learner.NumSensors,
		[]float64{front, left, right})
	step.Action = action
	step.Prediction = prediction
	step.Target = actual
	step.Correct = (prediction > 0.5) == (actual > 0.5)
	step.Accuracy = s.predictor.Accuracy()
	step.Weights = s.predictor.Weights()

	s.step = step
	return step
}

// Sensors returns the proximity readings looking ahead, to the left and
// to the right of the agent's current heading
func (s *Simulation) Sensors() (front, left, right float64) {
	return s.proximity(s.heading), s.proximity(s.heading.TurnLeft()),
		s.proximity(s.heading.TurnRight())
}

// Danger returns the ground truth danger label: 1 if the cell ahead or
// the one after it is blocked, else 0
func (s *Simulation) Danger() float64 {
	if s.proximity(s.heading) != Clear {
		return 1.0
	}
	return 0.0
}

// Frame returns a snapshot of the Simulation
func (s *Simulation) Frame() environment.Frame {
	return environment.Frame{
		Simulation: Name,
		Step:       s.step.Number,
		Size:       s.size,
		Obstacles:  s.grid.Obstacles(),
		Agents: []environment.Agent{{
			Cell:    environment.Cell{X: s.x, Y: s.y},
			Heading: s.heading.String(),
			Colour:  "red",
		}},
		Accuracy: s.predictor.Accuracy(),
	}
}

// Pose returns the position and heading of the agent
func (s *Simulation) Pose() (x, y int, heading gridworld.Direction) {
	return s.x, s.y, s.heading
}

// act turns the agent away from danger or steps it forward, returning
// the action taken
func (s *Simulation) act(prediction, front, left, right float64) int {
	if prediction <= 0.5 && front != Adjacent {
		dx, dy := s.heading.Delta()
		s.x, s.y = s.x+dx, s.y+dy
		return Forward
	}

	turnLeft := left < right
	if left == right {
		turnLeft = s.rng.Intn(2) == 0
	}

	if turnLeft {
		s.heading = s.heading.TurnLeft()
		return TurnLeft
	}
	s.heading = s.heading.TurnRight()
	return TurnRight
}

func (s *Simulation) proximity(d gridworld.Direction) float64 {
	dx, dy := d.Delta()
	switch {
	case s.grid.Blocked(s.x+dx, s.y+dy):
		return Adjacent
	case s.grid.Blocked(s.x+2*dx, s.y+2*dy):
		return Near
	default:
		return Clear
	}
}
