package matutils

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SampleCategorical returns the first index whose cumulative probability
// meets or exceeds u, where u should be drawn uniformly from [0, 1).
// Indices with zero probability are never returned, even when u is 0.
// If floating point drift keeps the cumulative sum below u, the last
// index with non-zero probability is returned.
func SampleCategorical(probs mat.Vector, u float64) int {
	cumulative, last := 0.0, probs.Len()-1
	for i := 0; i < probs.Len(); i++ {
		p := probs.AtVec(i)
		if p <= 0 {
			continue
		}
		last = i

		cumulative += p
		if cumulative >= u {
			return i
		}
	}
	return last
}

// Categorical samples indices from arbitrary probability vectors using
// a single seeded source of uniform draws
type Categorical struct {
	uniform distuv.Uniform
}

// NewCategorical returns a new Categorical sampler seeded with seed
func NewCategorical(seed uint64) *Categorical {
	return NewCategoricalFromSource(rand.NewSource(seed))
}

// NewCategoricalFromSource returns a new Categorical sampler drawing
// from src
func NewCategoricalFromSource(src rand.Source) *Categorical {
	return &Categorical{
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

// Sample draws an index from the distribution probs
func (c *Categorical) Sample(probs mat.Vector) int {
	return SampleCategorical(probs, c.uniform.Rand())
}
