// Package hazard implements a logistic predictor of imminent collisions
// from three relative proximity sensors
package hazard

import (
	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/buffer/window"
	"github.com/samuelfneumann/gridlearn/utils/matutils"
	"github.com/samuelfneumann/gridlearn/utils/matutils/initializers/weights"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

var (
	_ agent.Learner = (*Predictor)(nil)
	_ agent.Config  = Config{}
)

// Sensor indices into the feature vector
const (
	Front int = iota
	Left
	Right
	NumSensors
)

// Predictor is a single logistic unit mapping the front, left and right
// proximity readings to the probability that the agent is in danger.
// It is trained online with one gradient step per labelled example.
//
// All parameters stay within [-Bound, Bound].
type Predictor struct {
	weights *mat.VecDense
	bias    float64

	learningRate float64
	bounds       r1.Interval

	history *window.Window
	input   *mat.VecDense
}

// New creates a new Predictor with all parameters initialized to the
// Config's initial weight, zero by default
func New(c Config) (*Predictor, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	init := weights.NewUnivariate(weights.Constant(c.InitialWeight))
	w := mat.NewVecDense(NumSensors, nil)
	weights.Vec(init, w)
	bias := make([]float64, 1)
	init.Initialize(bias)

	return &Predictor{
		weights:      w,
		bias:         bias[0],
		learningRate: c.LearningRate,
		bounds:       r1.Interval{Min: -c.Bound, Max: c.Bound},
		history:      window.New(c.HistoryCapacity),
		input:        mat.NewVecDense(NumSensors, nil),
	}, nil
}

// Predict returns the predicted danger for the given sensor readings,
// which lies in (0, 1)
func (p *Predictor) Predict(front, left, right float64) float64 {
	p.setInput(front, left, right)
	return matutils.Sigmoid(p.bias + mat.Dot(p.weights, p.input))
}

// Update performs a single gradient descent step on the log loss of the
// prediction for the given readings against the actual danger label,
// then clips all parameters back into bounds
func (p *Predictor) Update(front, left, right, actual float64) {
	err := p.Predict(front, left, right) - actual
	step := -p.learningRate * err

	p.weights.AddScaledVec(p.weights, step, p.input)
	p.bias += step

	matutils.VecClip(p.weights, p.bounds.Min, p.bounds.Max)
	p.bias = matutils.Clip(p.bias, p.bounds.Min, p.bounds.Max)
}

// RecordAccuracy records whether a prediction and the actual label fell
// on the same side of 0.5
func (p *Predictor) RecordAccuracy(predicted, actual float64) {
	p.history.Append((predicted > 0.5) == (actual > 0.5))
}

// Accuracy returns the rolling accuracy of recorded predictions, or 0
// if none have been recorded
func (p *Predictor) Accuracy() float64 {
	return p.history.Mean()
}

// Weights returns the weights and bias of the Predictor. The weights
// matrix is a 1 × NumSensors view of the underlying parameters while the
// bias is a copy.
func (p *Predictor) Weights() map[string]*mat.Dense {
	raw := p.weights.RawVector().Data
	return map[string]*mat.Dense{
		agent.WeightsKey: mat.NewDense(1, NumSensors, raw),
		agent.BiasKey:    mat.NewDense(1, 1, []float64{p.bias}),
	}
}

func (p *Predictor) setInput(front, left, right float64) {
	p.input.SetVec(Front, front)
	p.input.SetVec(Left, left)
	p.input.SetVec(Right, right)
}
