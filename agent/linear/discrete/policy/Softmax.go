// Package policy implements policies using linear function
// approximation
package policy

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/utils/matutils"
	"github.com/samuelfneumann/gridlearn/utils/matutils/initializers/weights"
	"gonum.org/v1/gonum/mat"
)

// MaskedScore is the score given to actions that are not valid, so that
// their probability under the softmax is effectively zero
const MaskedScore float64 = -1e9

// Softmax implements a softmax policy over linear action scores. Each
// action a is scored as bias[a] + weights[a]·x for feature vector x, and
// invalid actions are masked out before the scores are normalized.
//
// The last input and distribution seen by Forward are cached so that a
// learner can later update the weights responsible for a choice.
type Softmax struct {
	weights *mat.Dense // actions × features
	bias    *mat.VecDense

	scores    *mat.VecDense
	lastInput *mat.VecDense
	lastDist  *mat.VecDense
	cached    bool

	sampler *matutils.Categorical
}

// NewSoftmax constructs a new Softmax policy over the given number of
// features and actions, with weights and biases set by init
func NewSoftmax(features, actions int, init weights.Initializer,
	seed uint64) *Softmax {
	if features <= 0 || actions <= 0 {
		panic(fmt.Sprintf("newSoftmax: features (%d) and actions (%d) "+
			"must be positive", features, actions))
	}

	w := mat.NewDense(actions, features, nil)
	weights.Dense(init, w)
	bias := mat.NewVecDense(actions, nil)
	weights.Vec(init, bias)

	return &Softmax{
		weights:   w,
		bias:      bias,
		scores:    mat.NewVecDense(actions, nil),
		lastInput: mat.NewVecDense(features, nil),
		lastDist:  mat.NewVecDense(actions, nil),
		sampler:   matutils.NewCategorical(seed),
	}
}

// Actions returns the number of actions the policy chooses between
func (p *Softmax) Actions() int {
	r, _ := p.weights.Dims()
	return r
}

// Forward returns the distribution over actions given features x.
// Actions whose mask entry is false are given probability effectively
// zero. If no action is valid, the distribution is uniform.
func (p *Softmax) Forward(x mat.Vector, mask []bool) *mat.VecDense {
	actions, features := p.weights.Dims()
	if x.Len() != features {
		panic(fmt.Sprintf("forward: expected %d features, got %d",
			features, x.Len()))
	}
	if len(mask) != actions {
		panic(fmt.Sprintf("forward: expected mask of length %d, got %d",
			actions, len(mask)))
	}

	p.scores.MulVec(p.weights, x)
	p.scores.AddVec(p.scores, p.bias)
	for a, valid := range mask {
		if !valid {
			p.scores.SetVec(a, MaskedScore)
		}
	}

	dist := matutils.SoftmaxVec(p.scores)

	p.lastInput.CopyVec(x)
	p.lastDist.CopyVec(dist)
	p.cached = true

	return dist
}

// SampleAction samples an action from the distribution dist
func (p *Softmax) SampleAction(dist mat.Vector) int {
	return p.sampler.Sample(dist)
}

// Cached returns copies of the last input and distribution computed by
// Forward. The returned bool is false if Forward has never been called.
func (p *Softmax) Cached() (input, dist *mat.VecDense, ok bool) {
	if !p.cached {
		return nil, nil, false
	}
	return mat.VecDenseCopyOf(p.lastInput), mat.VecDenseCopyOf(p.lastDist),
		true
}

// Weights gets and returns the weights of the Softmax policy as a
// string description -> weights. The matrices share their data with
// the policy, so that a learner holding them updates the policy.
func (p *Softmax) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights[agent.WeightsKey] = p.weights
	weights[agent.BiasKey] = mat.NewDense(1, p.bias.Len(),
		p.bias.RawVector().Data)

	return weights
}
