package experiment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	env "github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Online is an Experiment that ticks a single simulation online at a
// fixed nominal interval. An interval of 0 ticks as fast as possible.
//
// Ticks never overlap: a tick requested while another is executing is
// refused with ErrTickInProgress, and ticks the scheduler would have
// fired during a slow tick are dropped.
type Online struct {
	env.Simulation
	interval time.Duration
	ender    env.Ender

	mu       sync.Mutex // guards trackers and viewers
	trackers []tracker.Tracker
	viewers  []Viewer

	ticking atomic.Bool
	running atomic.Bool
	last    ts.TimeStep
	started bool
}

// NewOnline creates and returns a new online experiment on a given
// simulation. The steps parameter determines how many ticks the
// experiment is run for, with 0 meaning until cancelled, and the t
// parameter is a slice of tracker.Tracker which determine what data is
// logged and saved.
func NewOnline(s env.Simulation, interval time.Duration, steps int,
	t ...tracker.Tracker) *Online {
	return &Online{
		Simulation: s,
		interval:   interval,
		ender:      env.NewStepLimit(steps),
		trackers:   t,
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.trackers = append(o.trackers, t)
}

// Watch registers a Viewer to be shown a Frame after every tick
func (o *Online) Watch(v Viewer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.viewers = append(o.viewers, v)
}

// Step performs a single tick of the simulation. Step returns
// ErrTickInProgress without ticking if another tick is executing.
func (o *Online) Step() (ts.TimeStep, error) {
	if !o.ticking.CompareAndSwap(false, true) {
		return ts.TimeStep{}, ErrTickInProgress
	}
	defer o.ticking.Store(false)

	// Simulations are reset on creation, so only the initial TimeStep
	// needs tracking
	if !o.started {
		o.started = true
		o.last = o.Simulation.TimeStep()
		o.track(o.last)
	}

	step := o.Simulation.Tick()
	o.ender.End(&step)
	o.last = step

	o.track(step)
	o.view(o.Simulation.Frame())
	return step, nil
}

// Run ticks the simulation until ctx is cancelled or the step limit
// is reached. Run returns ErrAlreadyRunning if the experiment is
// already running, and nil when it stops.
func (o *Online) Run(ctx context.Context) error {
	if !o.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer o.running.Store(false)

	// Stops the ticker once the step limit is reached
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if o.interval <= 0 {
		for ctx.Err() == nil {
			if done, err := o.tick(); done || err != nil {
				return err
			}
		}
		return nil
	}

	for range channerics.NewTicker(ctx.Done(), o.interval) {
		if done, err := o.tick(); done || err != nil {
			return err
		}
	}
	return nil
}

// LastTimeStep returns the most recent TimeStep of the simulation. It
// must not be called while a tick is executing.
func (o *Online) LastTimeStep() ts.TimeStep {
	return o.last
}

// Save saves the data cached by the Trackers to disk
func (o *Online) Save() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %s: %w", o.Name(), err)
		}
	}
	return nil
}

// tick performs a tick and reports whether the run has ended. A tick
// refused because another is executing is dropped.
func (o *Online) tick() (bool, error) {
	step, err := o.Step()
	if errors.Is(err, ErrTickInProgress) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return step.Last(), nil
}

// track tracks the current timestep by sending it to each tracker
func (o *Online) track(t ts.TimeStep) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

// view shows the current frame to each viewer. Viewer errors are
// logged and do not stop the simulation.
func (o *Online) view(f env.Frame) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, v := range o.viewers {
		if err := v.View(f); err != nil {
			log.Printf("%s: view: %v", o.Name(), err)
		}
	}
}
