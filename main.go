package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samuelfneumann/gridlearn/environment/wander"
	"github.com/samuelfneumann/gridlearn/experiment"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	"github.com/samuelfneumann/gridlearn/experiment/trackers"
	"github.com/samuelfneumann/gridlearn/render"
	"github.com/samuelfneumann/gridlearn/server"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const progressWidth = 50

func main() {
	flags := experiment.Flags(os.Args[0])
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	path, _ := flags.GetString("config")
	config, err := experiment.Load(path, flags)
	if err != nil {
		log.Fatal(err)
	}

	if dump, _ := flags.GetBool("dump-config"); dump {
		out, err := config.Dump()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(out))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		log.Fatal(err)
	}
}

// run runs every selected simulation side by side until they finish
// or ctx is cancelled, then saves all tracked data
func run(ctx context.Context, config experiment.Config) error {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("seed: %d", seed)

	shared := sharedTrackers(config)

	var srv *server.Server
	if config.Listen != "" {
		srv = server.New(ctx, config.Listen)
	}

	exps := make([]*experiment.Online, 0, len(config.Simulations))
	for i, name := range config.Simulations {
		exp, err := config.CreateExp(name, seed+uint64(i))
		if err != nil {
			return err
		}

		for _, t := range shared {
			exp.Register(trackOnly{t})
		}
		if config.AccuracyFile != "" && name != wander.Name {
			filename := trackers.SimulationFilename(config.AccuracyFile, name)
			exp.Register(tracker.Register(trackers.NewAccuracy(filename), name))
		}
		if config.FrameDir != "" {
			png, err := render.NewPNG(config.FrameDir, name, config.FrameEvery)
			if err != nil {
				return err
			}
			exp.Watch(png)
		}
		if srv != nil {
			exp.Watch(srv)
		}
		exps = append(exps, exp)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(runCtx)
	if srv != nil {
		group.Go(func() error {
			return srv.Serve(groupCtx)
		})
	}

	// The server keeps serving after bounded experiments finish, until
	// interrupted
	var runs errgroup.Group
	for _, exp := range exps {
		exp := exp
		runs.Go(func() error {
			return exp.Run(groupCtx)
		})
	}
	group.Go(func() error {
		err := runs.Wait()
		if srv == nil || err != nil {
			cancel()
		}
		return err
	})

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	for _, exp := range exps {
		if saveErr := exp.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
	}
	for _, t := range shared {
		if saveErr := t.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
	}
	return err
}

// trackOnly shares a Tracker between experiments, leaving saving to
// the caller
type trackOnly struct {
	tracker.Tracker
}

func (trackOnly) Save() error { return nil }

// sharedTrackers returns the Trackers shared by all experiments
func sharedTrackers(config experiment.Config) []tracker.Tracker {
	var shared []tracker.Tracker
	if config.Trace {
		shared = append(shared, trackers.NewTrace(os.Stdout,
			config.Color && trackers.IsTerminal(os.Stdout)))
	} else if config.MaxSteps > 0 {
		steps := config.MaxSteps * len(config.Simulations)
		shared = append(shared, trackers.NewProgress(os.Stdout,
			progressWidth, steps))
	}
	if config.ChartFile != "" {
		shared = append(shared, trackers.NewChart(config.ChartFile))
	}
	return shared
}
