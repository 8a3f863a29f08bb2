package tracker

import (
	"github.com/samuelfneumann/gridlearn/timestep"
)

// registeredTracker registers a simulation with some Tracker so that
// the Tracker tracks data from the registered simulation only.
// registeredTracker itself is a Tracker.
//
// This may be useful if a single Tracker is shared between several
// simulations running side by side but should only see one of them.
type registeredTracker struct {
	Tracker
	simulation string
}

// Register registers a new Tracker with the simulation named
// simulation. TimeSteps from any other simulation are ignored.
//
// Note: the underlying concrete type of the registered Tracker is
// lost when registering a simulation with a Tracker.
func Register(t Tracker, simulation string) Tracker {
	return &registeredTracker{t, simulation}
}

// Track calls Track() on the embedded Tracker if step came from the
// registered simulation
func (r *registeredTracker) Track(step timestep.TimeStep) {
	if step.Simulation == r.simulation {
		r.Tracker.Track(step)
	}
}
