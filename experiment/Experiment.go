// Package experiment implements functionality for running simulations
// tick by tick
package experiment

import (
	"context"

	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Interface Experiment outlines structs that can run simulations.
// Experiments send every TimeStep to Trackers, which determine which
// data generated during the experiment is logged and saved, and every
// resulting Frame to Viewers, which display the simulation. The Run()
// method ticks the simulation until it is cancelled or some ending
// condition is reached. The Step() method performs a single tick.
type Experiment interface {
	Run(ctx context.Context) error
	Step() (ts.TimeStep, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)

	// Adds a new Viewer to the (possibly already running) experiment
	Watch(v Viewer)
}

var _ Experiment = (*Online)(nil)

// Viewer displays snapshots of a running simulation
type Viewer interface {
	View(environment.Frame) error
}
