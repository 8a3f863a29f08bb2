package trackers

import (
	"io"

	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/samuelfneumann/gridlearn/utils/progressbar"
)

// Progress displays a progress bar advanced by every non-initial
// TimeStep it tracks. It may be shared by concurrent experiments.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress returns a new Progress writing to w and reaching 100%
// after steps ticks
func NewProgress(w io.Writer, width, steps int) tracker.Tracker {
	return &Progress{bar: progressbar.New(w, width, steps)}
}

// Track advances the progress bar
func (p *Progress) Track(step ts.TimeStep) {
	if step.First() {
		return
	}
	p.bar.Increment()
	p.bar.Display()
}

// Save ends the progress bar line
func (p *Progress) Save() error {
	p.bar.Close()
	return nil
}
