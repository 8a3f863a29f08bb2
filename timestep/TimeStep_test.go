package timestep

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestString(t *testing.T) {
	step := New("hazard", Mid, 7)
	step.X, step.Y = 3, 4
	step.Heading = "N"

	bare := step.String()
	if strings.Contains(bare, "Features") {
		t.Errorf("trace without learner should omit features: %q", bare)
	}

	step.Observation = mat.NewVecDense(3, []float64{1, 0.5, 0})
	step.Prediction = 0.25
	step.Target = 1
	step.Weights = map[string]*mat.Dense{
		"weights": mat.NewDense(1, 3, []float64{0.05, 0, 0}),
		"bias":    mat.NewDense(1, 1, []float64{0.05}),
	}

	have := step.String()
	for _, want := range []string{
		"hazard", "Step: 7", "(3, 4)", "Heading: N",
		"[1.00 0.50 0.00]", "Predicted: 0.250", "Actual: 1.000",
		"bias: [0.050]", "weights: [0.050 0.000 0.000]",
	} {
		if !strings.Contains(have, want) {
			t.Errorf("trace line missing %q \n\thave: %v", want, have)
		}
	}

	// Keys are printed in sorted order
	if strings.Index(have, "bias") > strings.Index(have, "weights:") {
		t.Errorf("weights printed out of order: %v", have)
	}
}

func TestStepType(t *testing.T) {
	step := New("explore", First, 0)
	if !step.First() || step.Mid() || step.Last() {
		t.Errorf("step type \n\twant: First \n\thave: %v", step.StepType)
	}
	step.StepType = Last
	if !step.Last() {
		t.Errorf("step type \n\twant: Last \n\thave: %v", step.StepType)
	}
}
