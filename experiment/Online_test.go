package experiment

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/samuelfneumann/gridlearn/agent/linear/discrete/explorer"
	env "github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/explore"
	"github.com/samuelfneumann/gridlearn/environment/wander"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	. "github.com/smartystreets/goconvey/convey"
)

// counter is a Simulation that counts its ticks. If started is not nil,
// every tick signals on it without blocking, and if block is not nil,
// every tick then waits on it.
type counter struct {
	ticks   int
	resets  int
	block   chan struct{}
	started chan struct{}
}

func (c *counter) Name() string { return "counter" }

func (c *counter) Reset() ts.TimeStep {
	c.resets++
	return ts.New(c.Name(), ts.First, 0)
}

func (c *counter) Tick() ts.TimeStep {
	if c.started != nil {
		select {
		case c.started <- struct{}{}:
		default:
		}
	}
	if c.block != nil {
		<-c.block
	}
	c.ticks++
	return ts.New(c.Name(), ts.Mid, c.ticks)
}

func (c *counter) TimeStep() ts.TimeStep {
	if c.ticks == 0 {
		return ts.New(c.Name(), ts.First, 0)
	}
	return ts.New(c.Name(), ts.Mid, c.ticks)
}

func (c *counter) Frame() env.Frame {
	return env.Frame{Simulation: c.Name(), Step: c.ticks}
}

type recorder struct {
	mu    sync.Mutex
	steps []ts.TimeStep
}

func (r *recorder) Track(t ts.TimeStep) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, t)
}

func (r *recorder) Save() error { return nil }

type frames struct {
	steps []int
	err   error
}

func (f *frames) View(frame env.Frame) error {
	f.steps = append(f.steps, frame.Step)
	return f.err
}

func TestOnline(t *testing.T) {
	Convey("Given an online experiment limited to 5 ticks", t, func() {
		sim := &counter{}
		rec := &recorder{}
		o := NewOnline(sim, 0, 5, rec)

		Convey("Run ticks until the limit", func() {
			So(o.Run(context.Background()), ShouldBeNil)
			So(sim.ticks, ShouldEqual, 5)
			So(sim.resets, ShouldEqual, 0)

			So(len(rec.steps), ShouldEqual, 6)
			So(rec.steps[0].First(), ShouldBeTrue)
			So(rec.steps[5].Last(), ShouldBeTrue)
			So(o.LastTimeStep().Number, ShouldEqual, 5)
		})

		Convey("Viewers see a frame after every tick", func() {
			f := &frames{err: errors.New("closed")}
			o.Watch(f)
			So(o.Run(context.Background()), ShouldBeNil)
			So(f.steps, ShouldResemble, []int{1, 2, 3, 4, 5})
		})

		Convey("Step ticks exactly once", func() {
			step, err := o.Step()
			So(err, ShouldBeNil)
			So(step.Number, ShouldEqual, 1)
			So(sim.ticks, ShouldEqual, 1)
		})
	})

	Convey("Given an unbounded online experiment on a timer", t, func() {
		sim := &counter{}
		o := NewOnline(sim, 5*time.Millisecond, 0)

		Convey("Cancelling the context stops the run", func() {
			ctx, cancel := context.WithTimeout(context.Background(),
				60*time.Millisecond)
			defer cancel()

			So(o.Run(ctx), ShouldBeNil)
			So(sim.ticks, ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a tick that is executing", t, func() {
		sim := &counter{
			block:   make(chan struct{}),
			started: make(chan struct{}, 1),
		}
		o := NewOnline(sim, 0, 1)

		done := make(chan error)
		go func() {
			_, err := o.Step()
			done <- err
		}()
		<-sim.started

		Convey("Another tick is refused", func() {
			_, err := o.Step()
			So(err, ShouldEqual, ErrTickInProgress)

			close(sim.block)
			So(<-done, ShouldBeNil)
			So(sim.ticks, ShouldEqual, 1)
		})
	})

	Convey("Given a running experiment", t, func() {
		sim := &counter{started: make(chan struct{}, 1)}
		o := NewOnline(sim, time.Millisecond, 0)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() { done <- o.Run(ctx) }()
		<-sim.started

		Convey("Running it again is refused", func() {
			So(o.Run(ctx), ShouldEqual, ErrAlreadyRunning)
			cancel()
			So(<-done, ShouldBeNil)
		})
	})
}

func TestOnlineWander(t *testing.T) {
	Convey("A real simulation runs to its step limit", t, func() {
		sim, err := wander.New(10, wander.DefaultConfig(), 1)
		So(err, ShouldBeNil)

		rec := &recorder{}
		o := NewOnline(sim, 0, 100, rec)
		So(o.Run(context.Background()), ShouldBeNil)
		So(len(rec.steps), ShouldEqual, 101)
		So(o.Save(), ShouldBeNil)
	})
}

func TestOnlineExploreStart(t *testing.T) {
	Convey("The first tick of explore only visits the start and one move", t, func() {
		for seed := uint64(1); seed <= 5; seed++ {
			sim, err := explore.New(10, explorer.DefaultConfig(), seed)
			So(err, ShouldBeNil)

			rec := &recorder{}
			o := NewOnline(sim, 0, 0, rec)
			step, err := o.Step()
			So(err, ShouldBeNil)

			first := rec.steps[0]
			So(first.First(), ShouldBeTrue)

			ids := sim.Explorer().VisitedIDs()
			So(len(ids), ShouldBeBetweenOrEqual, 1, 2)
			So(ids[0], ShouldEqual, first.X+first.Y*10)
			So(ids[len(ids)-1], ShouldEqual, step.X+step.Y*10)
		}
	})
}

func TestBoundedRunStopsTicker(t *testing.T) {
	before := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		o := NewOnline(&counter{}, time.Millisecond, 3)
		if err := o.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	// Ticker goroutines exit shortly after their run returns
	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if after := runtime.NumGoroutine(); after > before {
		t.Errorf("goroutines after bounded runs \n\twant: <= %v "+
			"\n\thave: %v", before, after)
	}
}
