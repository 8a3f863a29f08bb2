// Package window implements a bounded rolling history of boolean
// outcomes, used to compute rolling accuracies
package window

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Window stores the most recent outcomes appended to it, up to a fixed
// capacity. Once the capacity is reached, appending an outcome evicts
// the oldest one.
//
// Outcomes are stored as 1.0 (true) or 0.0 (false) so that the rolling
// accuracy is simply the mean of the buffer.
type Window struct {
	outcomes []float64
	capacity int
}

// New returns a new Window holding at most capacity outcomes
func New(capacity int) *Window {
	if capacity <= 0 {
		panic(fmt.Sprintf("new: capacity must be positive (have %d)",
			capacity))
	}
	return &Window{
		outcomes: make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Append records a single outcome, dropping the oldest outcome if the
// Window is full
func (w *Window) Append(outcome bool) {
	value := 0.0
	if outcome {
		value = 1.0
	}

	if len(w.outcomes) == w.capacity {
		copy(w.outcomes, w.outcomes[1:])
		w.outcomes = w.outcomes[:len(w.outcomes)-1]
	}
	w.outcomes = append(w.outcomes, value)
}

// Mean returns the fraction of true outcomes in the Window, or 0 if
// the Window is empty
func (w *Window) Mean() float64 {
	if len(w.outcomes) == 0 {
		return 0.0
	}
	return stat.Mean(w.outcomes, nil)
}

// Len returns the number of outcomes currently stored
func (w *Window) Len() int {
	return len(w.outcomes)
}

// Cap returns the maximum number of outcomes stored
func (w *Window) Cap() int {
	return w.capacity
}
