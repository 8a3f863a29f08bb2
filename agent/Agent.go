// Package agent defines the interfaces shared by the online learners
package agent

import (
	"gonum.org/v1/gonum/mat"
)

const (
	// Keys for weights maps: map[string]*mat.Dense
	WeightsKey string = "weights"
	BiasKey    string = "bias"
)

// Weighter is a learner whose parameters can be inspected. The matrices
// returned are for reading only; learners own their parameters and
// mutate them exclusively through their own update rules.
type Weighter interface {
	Weights() map[string]*mat.Dense
}

// Accuracier is a learner that keeps a rolling record of how often its
// decisions agreed with the ground truth
type Accuracier interface {
	Accuracy() float64
}

// Learner is an online learner that is updated once per simulation tick
type Learner interface {
	Weighter
	Accuracier
}
