// Package environment outlines the interfaces and structs needed to
// implement concrete grid simulations
package environment

import (
	"github.com/samuelfneumann/gridlearn/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for simulations
type Starter interface {
	Start() mat.Vector
}

// Ender determines whether a simulation run should be ended
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Simulation is a grid simulation advanced one tick at a time by an
// external driver. Each call to Tick performs one full
// sense-predict-act-learn-record cycle and returns its diagnostics.
// Simulations are reset when created, so the first call to TimeStep
// returns the initial, First, TimeStep.
//
// Simulations are not safe for concurrent use: Tick must never be
// called while another call to Tick on the same Simulation is running.
type Simulation interface {
	Name() string
	Reset() timestep.TimeStep
	Tick() timestep.TimeStep
	TimeStep() timestep.TimeStep
	Frame() Frame
}
