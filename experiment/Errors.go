package experiment

import "errors"

var (
	// ErrTickInProgress is returned when a tick is requested while
	// another tick of the same simulation is still executing
	ErrTickInProgress = errors.New("experiment: tick already in progress")

	// ErrAlreadyRunning is returned when running an experiment that is
	// already running
	ErrAlreadyRunning = errors.New("experiment: already running")
)
