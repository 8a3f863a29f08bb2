package trackers

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Accuracy tracks and saves the rolling accuracy of a learner after
// every tick of a simulation. TimeSteps without learner diagnostics,
// such as the first TimeStep after a reset, are ignored.
//
// Note: Accuracy tracks TimeSteps from any simulation. To track a
// single simulation when several run side by side, register it with
// tracker.Register.
type Accuracy struct {
	accuracies []float64
	filename   string
}

// NewAccuracy creates and returns a new Accuracy Tracker saving to
// filename
func NewAccuracy(filename string) tracker.Tracker {
	return &Accuracy{filename: filename}
}

// Track records the rolling accuracy of step
func (a *Accuracy) Track(step ts.TimeStep) {
	if step.Observation == nil {
		return
	}
	a.accuracies = append(a.accuracies, step.Accuracy)
}

// Data returns the accuracies tracked so far
func (a *Accuracy) Data() []float64 {
	data := make([]float64, len(a.accuracies))
	copy(data, a.accuracies)
	return data
}

// Save saves the data tracked by the Accuracy Tracker to disk, to be
// loaded with tracker.LoadData
func (a *Accuracy) Save() error {
	// Open the file to save to
	file, err := os.Create(a.filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %w", err)
	}
	defer file.Close()

	// Encode and save the file
	en := gob.NewEncoder(file)
	if err = en.Encode(a.accuracies); err != nil {
		return fmt.Errorf("save: could not encode accuracy data: %w", err)
	}
	return nil
}

// SimulationFilename inserts the simulation name before the extension
// of filename, so that data/acc.bin becomes data/acc-hazard.bin
func SimulationFilename(filename, simulation string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "-" + simulation + ext
}
