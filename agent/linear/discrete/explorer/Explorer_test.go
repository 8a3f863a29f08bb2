package explorer

import (
	"testing"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"gonum.org/v1/gonum/mat"
)

func newExplorer(t *testing.T, size int) (*Explorer, *gridworld.Grid) {
	t.Helper()
	g, err := gridworld.New(size)
	if err != nil {
		t.Fatal(err)
	}
	e, err := New(g, DefaultConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}
	return e, g
}

func weight(e *Explorer, a int) float64 {
	return e.Weights()[agent.WeightsKey].At(a, a)
}

func TestFeatures(t *testing.T) {
	e, g := newExplorer(t, 10)

	tests := []struct {
		name    string
		x, y    int
		visited [][2]int
		want    []float64
	}{
		{"open", 5, 5, nil, []float64{1, 1, 1, 1}},
		{"corner", 0, 0, nil, []float64{1, 0, 1, 0}},
		{"visited above", 5, 5, [][2]int{{5, 6}}, []float64{0, 1, 1, 1}},
		{"far corner", 9, 9, [][2]int{{8, 9}}, []float64{0, 1, 0, 0}},
	}

	for _, test := range tests {
		for _, cell := range test.visited {
			e.MarkVisited(g.ID(cell[0], cell[1]))
		}
		have := e.Features(test.x, test.y)
		if !mat.Equal(have, mat.NewVecDense(4, test.want)) {
			t.Errorf("%s \n\twant: %v \n\thave: %v", test.name, test.want,
				have.RawVector().Data)
		}
	}
}

func TestUpdateBeforeForward(t *testing.T) {
	e, _ := newExplorer(t, 10)
	e.Update(0, 1.0)
	e.Update(3, -1.0)

	if !mat.Equal(e.Weights()[agent.WeightsKey], mat.NewDense(4, 4, nil)) {
		t.Errorf("weights changed by update before forward: %v",
			mat.Formatted(e.Weights()[agent.WeightsKey]))
	}
}

func TestUpdate(t *testing.T) {
	e, _ := newExplorer(t, 10)
	x := mat.NewVecDense(4, []float64{1, 0, 1, 0})
	e.Forward(x, []bool{true, true, true, true})

	e.Update(0, 1.0)  // active feature, reinforced
	e.Update(1, 1.0)  // inactive feature, ignored
	e.Update(2, -1.0) // active feature, weakened

	want := []float64{0.1, 0, -0.1, 0}
	for a, w := range want {
		if have := weight(e, a); have != w {
			t.Errorf("weight %d \n\twant: %v \n\thave: %v", a, w, have)
		}
	}

	// Off-diagonal weights are never trained
	ws := e.Weights()[agent.WeightsKey]
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j && ws.At(i, j) != 0 {
				t.Errorf("off-diagonal weight (%d, %d) = %v", i, j,
					ws.At(i, j))
			}
		}
	}
}

func TestUpdateBounds(t *testing.T) {
	e, _ := newExplorer(t, 10)
	e.Forward(mat.NewVecDense(4, []float64{1, 1, 1, 1}),
		[]bool{true, true, true, true})

	for i := 0; i < 500; i++ {
		e.Update(0, 1.0)
		e.Update(1, -1.0)
	}
	if have := weight(e, 0); have != DefaultBound {
		t.Errorf("saturated weight \n\twant: %v \n\thave: %v", DefaultBound,
			have)
	}
	if have := weight(e, 1); have != -DefaultBound {
		t.Errorf("saturated weight \n\twant: %v \n\thave: %v", -DefaultBound,
			have)
	}
}

func TestMarkVisited(t *testing.T) {
	e, _ := newExplorer(t, 10)
	e.MarkVisited(3)
	e.MarkVisited(3)
	if have := len(e.VisitedIDs()); have != 1 {
		t.Errorf("visited after duplicate mark \n\twant: 1 \n\thave: %v",
			have)
	}

	for id := 10; id < 60; id++ {
		e.MarkVisited(id)
	}
	if e.Visited(3) {
		t.Error("oldest visited cell not forgotten")
	}
	if have := len(e.VisitedIDs()); have != DefaultVisitedCapacity {
		t.Errorf("visited \n\twant: %v \n\thave: %v", DefaultVisitedCapacity,
			have)
	}
}

func TestGreedyAction(t *testing.T) {
	t.Run("Open", func(t *testing.T) {
		e, _ := newExplorer(t, 10)
		// Every target has 4 unvisited neighbours, so the first wins
		if have := e.GreedyAction(5, 5, []bool{true, true, true, true}); have != 0 {
			t.Errorf("greedy action \n\twant: 0 \n\thave: %v", have)
		}
	})

	t.Run("Edge", func(t *testing.T) {
		e, _ := newExplorer(t, 10)
		// From (5, 9), moving up is off grid; down leads to (5, 8) with
		// 4 open neighbours, while left and right stay on the edge.
		mask := []bool{false, true, true, true}
		if have := e.GreedyAction(5, 9, mask); have != int(gridworld.Down) {
			t.Errorf("greedy action \n\twant: %v \n\thave: %v",
				int(gridworld.Down), have)
		}
	})

	t.Run("Visited", func(t *testing.T) {
		e, g := newExplorer(t, 10)
		// Surround (5, 6) with visited cells so moving up is worst
		for _, c := range [][2]int{{5, 7}, {4, 6}, {6, 6}} {
			e.MarkVisited(g.ID(c[0], c[1]))
		}
		mask := []bool{true, false, false, false}
		if have := e.GreedyAction(5, 5, mask); have != 0 {
			t.Errorf("only valid action \n\twant: 0 \n\thave: %v", have)
		}
		mask = []bool{true, false, true, false}
		if have := e.GreedyAction(5, 5, mask); have != int(gridworld.Right) {
			t.Errorf("greedy action \n\twant: %v \n\thave: %v",
				int(gridworld.Right), have)
		}
	})

	t.Run("None", func(t *testing.T) {
		e, _ := newExplorer(t, 10)
		if have := e.GreedyAction(5, 5, make([]bool, 4)); have != -1 {
			t.Errorf("greedy action \n\twant: -1 \n\thave: %v", have)
		}
	})
}

func TestRollingAccuracy(t *testing.T) {
	e, _ := newExplorer(t, 10)
	for _, matched := range []bool{true, true, false, true} {
		e.RecordChoice(matched)
	}
	if have := e.Accuracy(); have != 0.75 {
		t.Errorf("rolling accuracy \n\twant: 0.75 \n\thave: %v", have)
	}
}
