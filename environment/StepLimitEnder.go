package environment

import "github.com/samuelfneumann/gridlearn/timestep"

// StepLimit implements the Ender interface to end simulation runs at a
// specific number of ticks
type StepLimit struct {
	steps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(steps int) StepLimit {
	return StepLimit{steps}
}

// End determines whether or not the run should be ended. If so, End()
// modifies the timestep so that its StepType field is timestep.Last.
// A non-positive limit never ends a run.
func (s StepLimit) End(t *timestep.TimeStep) bool {
	if s.steps > 0 && t.Number >= s.steps {
		t.StepType = timestep.Last
		return true
	}
	return false
}
