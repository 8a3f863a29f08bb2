// Package weights implements initialization of learner parameters
package weights

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initializer initializes the backing data of a weight matrix or vector
// in place
type Initializer interface {
	Initialize(data []float64)
}

// Univariate fills every entry of a weight matrix or vector with an
// independent draw from a univariate distribution
type Univariate struct {
	distuv.Rander
}

// NewUnivariate returns a new Univariate initializer drawing from rand
func NewUnivariate(rand distuv.Rander) Univariate {
	if rand == nil {
		panic("rand cannot be nil")
	}
	return Univariate{rand}
}

// Initialize sets each entry of data to a new draw
func (u Univariate) Initialize(data []float64) {
	for i := range data {
		data[i] = u.Rand()
	}
}

// Constant implements the distuv.Rander interface, always drawing the
// same value
type Constant float64

// Rand returns the constant value
func (c Constant) Rand() float64 {
	return float64(c)
}

// Dense initializes a weight matrix using init
func Dense(init Initializer, weights *mat.Dense) {
	init.Initialize(weights.RawMatrix().Data)
}

// Vec initializes a weight vector using init
func Vec(init Initializer, weights *mat.VecDense) {
	init.Initialize(weights.RawVector().Data)
}
