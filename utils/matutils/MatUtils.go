// Package matutils implements utility function for working with mat.Matrix
// structs and the small numeric primitives shared by the linear learners
package matutils

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SigmoidLimit bounds the input of Sigmoid so that math.Exp never
// overflows
const SigmoidLimit float64 = 10.0

// MaxVec finds and returns the index of the maximum value in a vector.
// If multiple equal max values exist, only the first one is returned.
func MaxVec(values mat.Vector) int {
	max, idx := values.AtVec(0), 0

	for i := 1; i < values.Len(); i++ {
		if values.AtVec(i) > max {
			max = values.AtVec(i)
			idx = i
		}
	}
	return idx
}

// Clip saturates v to the interval [min, max]
func Clip(v, min, max float64) float64 {
	if v < min {
		return min
	} else if v > max {
		return max
	}
	return v
}

// VecClip performs an element-wise clipping of a vector's values such
// that each value is at least min and at most max
func VecClip(a *mat.VecDense, min, max float64) {
	for i := 0; i < a.Len(); i++ {
		a.SetVec(i, Clip(a.AtVec(i), min, max))
	}
}

// Sigmoid computes the logistic function of x. The input is first
// clipped to [-SigmoidLimit, SigmoidLimit].
func Sigmoid(x float64) float64 {
	x = Clip(x, -SigmoidLimit, SigmoidLimit)
	return 1.0 / (1.0 + math.Exp(-x))
}

// Softmax converts logits into a probability distribution. The maximum
// logit is subtracted before exponentiation. If the normalizing total
// is zero (or not finite) a uniform distribution of the same length is
// returned instead.
func Softmax(logits []float64) []float64 {
	probs := make([]float64, len(logits))
	if len(logits) == 0 {
		return probs
	}

	max := floats.Max(logits)
	for i, l := range logits {
		probs[i] = math.Exp(l - max)
	}

	total := floats.Sum(probs)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		for i := range probs {
			probs[i] = 1.0 / float64(len(probs))
		}
		return probs
	}

	floats.Scale(1/total, probs)
	return probs
}

// SoftmaxVec is Softmax over a mat.Vector
func SoftmaxVec(logits mat.Vector) *mat.VecDense {
	raw := make([]float64, logits.Len())
	for i := range raw {
		raw[i] = logits.AtVec(i)
	}
	probs := Softmax(raw)
	return mat.NewVecDense(len(probs), probs)
}
