// Package timestep implements timesteps of the simulation-learner
// interaction
package timestep

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either the
// first step after a reset, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together the diagnostics of a single simulation
// tick: where the agent was, what it sensed, what its learner
// predicted or chose, and what actually happened.
//
// Observation holds the raw features given to the learner on this tick,
// and Weights the learner's parameters after its update. Both are nil
// for simulations without a learner. Correct reports whether the
// prediction or choice made on this tick matched its target.
type TimeStep struct {
	StepType
	Simulation string
	Number     int

	X, Y    int
	Heading string

	Observation mat.Vector
	Action      int
	Reward      float64

	Prediction float64
	Target     float64
	Correct    bool
	Accuracy   float64

	Weights map[string]*mat.Dense
}

// New returns a new TimeStep for the simulation named sim
func New(sim string, t StepType, n int) TimeStep {
	return TimeStep{StepType: t, Simulation: sim, Number: n}
}

// First returns whether a TimeStep is the first in a simulation
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in a simulation
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in a simulation
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | Step: %d | At: (%d, %d)", t.Simulation,
		t.Number, t.X, t.Y)

	if t.Heading != "" {
		fmt.Fprintf(&b, " | Heading: %s", t.Heading)
	}
	if t.Observation == nil {
		return b.String()
	}

	fmt.Fprintf(&b, " | Action: %d | Features: %v", t.Action,
		formatVec(t.Observation))
	fmt.Fprintf(&b, " | Predicted: %.3f | Actual: %.3f | Acc: %.2f",
		t.Prediction, t.Target, t.Accuracy)

	for _, key := range sortedKeys(t.Weights) {
		fmt.Fprintf(&b, " | %s: %v", key, formatMat(t.Weights[key]))
	}
	return b.String()
}
