// Package trackers implements the Trackers used to log and save data
// from running simulations
package trackers

import (
	"io"
	"log"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Trace logs a single human readable line for every TimeStep it
// tracks. Ticks of a learner are marked with whether its prediction or
// choice on that tick was correct. Lines are not meant to be parsed.
type Trace struct {
	logger *log.Logger
	au     aurora.Aurora
}

// NewTrace returns a new Trace writing to w. If colour is true, parts
// of each line are coloured with ANSI escape codes.
func NewTrace(w io.Writer, colour bool) tracker.Tracker {
	return &Trace{
		logger: log.New(w, "", log.Ltime|log.Lmicroseconds),
		au:     aurora.NewAurora(colour),
	}
}

// Track logs step
func (t *Trace) Track(step ts.TimeStep) {
	name := t.au.Cyan("[" + step.Simulation + "]")
	if step.First() {
		t.logger.Printf("%v %v", name, t.au.Yellow(step))
		return
	}

	if step.Observation == nil {
		t.logger.Printf("%v %v", name, step)
		return
	}

	mark := t.au.Green("✓")
	if !step.Correct {
		mark = t.au.Red("✗")
	}
	t.logger.Printf("%v %v %v", name, mark, step)
}

// IsTerminal returns whether w is a character device such as a
// terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// Save does nothing, the trace is written as it is tracked
func (t *Trace) Save() error {
	return nil
}
