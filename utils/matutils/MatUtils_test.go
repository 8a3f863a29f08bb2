package matutils

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestSigmoid(t *testing.T) {
	if have := Sigmoid(0); have != 0.5 {
		t.Errorf("sigmoid(0) \n\twant: 0.5 \n\thave: %v", have)
	}

	inputs := []float64{-1e300, -1000, -10, -1, 0.3, 7, 10, 1000, 1e300,
		math.Inf(1), math.Inf(-1)}
	for _, x := range inputs {
		if have := Sigmoid(x); have <= 0 || have >= 1 {
			t.Errorf("sigmoid(%v) = %v out of (0, 1)", x, have)
		}
	}

	if Sigmoid(1000) != Sigmoid(SigmoidLimit) {
		t.Error("sigmoid input not clipped at the upper limit")
	}
	if Sigmoid(-1000) != Sigmoid(-SigmoidLimit) {
		t.Error("sigmoid input not clipped at the lower limit")
	}
}

func TestSoftmax(t *testing.T) {
	tests := [][]float64{
		{0, 0, 0, 0},
		{1, 2, 3},
		{-1e9, 0, -1e9, -1e9},
		{1000, 1001, 999},
		{-5.5},
		{3.2, -7.1, 0.0, 12.4, 12.4},
	}

	for _, logits := range tests {
		probs := Softmax(logits)
		if len(probs) != len(logits) {
			t.Fatalf("softmax length \n\twant: %d \n\thave: %d", len(logits),
				len(probs))
		}
		for i, p := range probs {
			if p < 0 {
				t.Errorf("softmax(%v)[%d] = %v < 0", logits, i, p)
			}
		}
		if sum := floats.Sum(probs); math.Abs(sum-1) > 1e-9 {
			t.Errorf("softmax(%v) sums to %v", logits, sum)
		}

		// Adding a constant to every logit leaves the distribution alone
		shifted := make([]float64, len(logits))
		copy(shifted, logits)
		floats.AddConst(42.5, shifted)
		if !floats.EqualApprox(probs, Softmax(shifted), 1e-9) {
			t.Errorf("softmax(%v) not shift invariant \n\twant: %v \n\thave: %v",
				logits, probs, Softmax(shifted))
		}
	}
}

func TestSoftmaxDegenerate(t *testing.T) {
	if have := Softmax(nil); len(have) != 0 {
		t.Errorf("softmax(nil) \n\twant: [] \n\thave: %v", have)
	}

	probs := Softmax([]float64{math.NaN(), 1, 2})
	for _, p := range probs {
		if p != 1.0/3.0 {
			t.Errorf("softmax with NaN logit should be uniform, have %v", probs)
			break
		}
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0, -1, 1, 0},
		{-3, -1, 1, -1},
		{3, -1, 1, 1},
		{5, -5, 5, 5},
	}

	for _, test := range tests {
		if have := Clip(test.v, test.lo, test.hi); have != test.want {
			t.Errorf("clip(%v, %v, %v) \n\twant: %v \n\thave: %v", test.v,
				test.lo, test.hi, test.want, have)
		}
	}

	vec := mat.NewVecDense(4, []float64{-7, -1, 2, 9})
	VecClip(vec, -5, 5)
	want := []float64{-5, -1, 2, 5}
	if !floats.Equal(vec.RawVector().Data, want) {
		t.Errorf("vecClip \n\twant: %v \n\thave: %v", want,
			vec.RawVector().Data)
	}
}

func TestMaxVec(t *testing.T) {
	tests := []struct {
		values []float64
		want   int
	}{
		{[]float64{1, 3, 2}, 1},
		{[]float64{2, 2, 2}, 0},
		{[]float64{-1, 0, 0}, 1},
		{[]float64{7}, 0},
	}

	for _, test := range tests {
		vec := mat.NewVecDense(len(test.values), test.values)
		if have := MaxVec(vec); have != test.want {
			t.Errorf("maxVec(%v) \n\twant: %v \n\thave: %v", test.values,
				test.want, have)
		}
	}
}
