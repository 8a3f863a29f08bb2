package environment

import (
	"testing"

	"github.com/samuelfneumann/gridlearn/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)
	for n := 0; n < 3; n++ {
		step := timestep.New("test", timestep.Mid, n)
		if limit.End(&step) || step.Last() {
			t.Errorf("step %d ended before limit", n)
		}
	}

	step := timestep.New("test", timestep.Mid, 3)
	if !limit.End(&step) || !step.Last() {
		t.Errorf("step 3 \n\twant: Last \n\thave: %v", step.StepType)
	}

	unbounded := NewStepLimit(0)
	step = timestep.New("test", timestep.Mid, 1_000_000)
	if unbounded.End(&step) {
		t.Error("zero step limit ended a run")
	}
}

func TestUniformStarter(t *testing.T) {
	bounds := []r1.Interval{{Min: 0, Max: 10}, {Min: 2, Max: 3}}
	s := NewUniformStarter(bounds, 42)

	for i := 0; i < 1000; i++ {
		start := s.Start()
		if start.Len() != len(bounds) {
			t.Fatalf("start length \n\twant: %v \n\thave: %v", len(bounds),
				start.Len())
		}
		for j, b := range bounds {
			if v := start.AtVec(j); v < b.Min || v > b.Max {
				t.Fatalf("feature %d = %v outside %v", j, v, b)
			}
		}
	}
}
