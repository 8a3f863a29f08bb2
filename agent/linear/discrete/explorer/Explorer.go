// Package explorer implements an online learner of where to move next
// on a grid so as to keep reaching cells it has not recently visited
package explorer

import (
	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/linear/discrete/policy"
	"github.com/samuelfneumann/gridlearn/buffer/recency"
	"github.com/samuelfneumann/gridlearn/buffer/window"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/utils/matutils"
	"github.com/samuelfneumann/gridlearn/utils/matutils/initializers/weights"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

var (
	_ agent.Learner = (*Explorer)(nil)
	_ agent.Config  = Config{}
)

// ActiveThreshold is the value above which a cached feature counts as
// active when deciding whether to update
const ActiveThreshold float64 = 0.5

// Explorer is a softmax policy over the four grid directions with one
// feature per direction: whether the neighbouring cell that way is on
// the grid and not recently visited.
//
// Only the weight connecting each action to its own feature is ever
// trained. After every move, the weight for the chosen action is
// strengthened if the move reached a new cell and weakened otherwise,
// but only when its feature was active for that choice.
type Explorer struct {
	*policy.Softmax

	grid         *gridworld.Grid
	learningRate float64
	bounds       r1.Interval

	visited *recency.Set
	history *window.Window
}

// New creates a new Explorer on grid with all parameters initialized to
// the Config's initial weight, zero by default
func New(grid *gridworld.Grid, c Config, seed uint64) (*Explorer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n := gridworld.NumDirections
	init := weights.NewUnivariate(weights.Constant(c.InitialWeight))
	return &Explorer{
		Softmax:      policy.NewSoftmax(n, n, init, seed),
		grid:         grid,
		learningRate: c.LearningRate,
		bounds:       r1.Interval{Min: -c.Bound, Max: c.Bound},
		visited:      recency.New(c.VisitedCapacity),
		history:      window.New(c.HistoryCapacity),
	}, nil
}

// Features returns, for each direction in canonical order, 1.0 if the
// neighbour of (x, y) that way is in bounds and not visited, else 0.0
func (e *Explorer) Features(x, y int) *mat.VecDense {
	features := mat.NewVecDense(gridworld.NumDirections, nil)
	for _, d := range gridworld.Directions() {
		if e.unvisited(e.grid.Neighbour(x, y, d)) {
			features.SetVec(int(d), 1.0)
		}
	}
	return features
}

// Update adjusts the weight of action towards its own feature by
// reward scaled by the learning rate, if that feature was active in the
// last input given to Forward. Update is a no-op before any call to
// Forward.
func (e *Explorer) Update(action int, reward float64) {
	input, _, ok := e.Cached()
	if !ok || input.AtVec(action) <= ActiveThreshold {
		return
	}

	w := e.Softmax.Weights()[agent.WeightsKey]
	next := w.At(action, action) + reward*e.learningRate
	w.Set(action, action, matutils.Clip(next, e.bounds.Min, e.bounds.Max))
}

// MarkVisited records that the cell with id id has been visited. Marking
// an already visited cell does nothing. Once more cells than the
// visited capacity have been marked, the oldest is forgotten.
func (e *Explorer) MarkVisited(id int) {
	e.visited.Add(id)
}

// Visited returns whether the cell with id id is remembered as visited
func (e *Explorer) Visited(id int) bool {
	return e.visited.Contains(id)
}

// VisitedIDs returns the remembered visited cell ids, oldest first
func (e *Explorer) VisitedIDs() []int {
	return e.visited.IDs()
}

// RecordChoice records whether the chosen action matched the greedy
// action
func (e *Explorer) RecordChoice(matchedGreedy bool) {
	e.history.Append(matchedGreedy)
}

// Accuracy returns the fraction of recent choices that matched the
// greedy action, or 0 if no choice has been recorded
func (e *Explorer) Accuracy() float64 {
	return e.history.Mean()
}

// GreedyAction returns the valid action from (x, y) whose target cell
// has the most unvisited in-bounds neighbours. Ties go to the earliest
// action in canonical order, and -1 is returned if no action is valid.
func (e *Explorer) GreedyAction(x, y int, mask []bool) int {
	// Invalid actions score -1, below any neighbour count
	counts := mat.NewVecDense(gridworld.NumDirections, nil)
	for _, d := range gridworld.Directions() {
		if !mask[d] {
			counts.SetVec(int(d), -1)
			continue
		}

		tx, ty, _ := e.grid.Neighbour(x, y, d)
		count := 0.0
		for _, next := range gridworld.Directions() {
			if e.unvisited(e.grid.Neighbour(tx, ty, next)) {
				count++
			}
		}
		counts.SetVec(int(d), count)
	}

	best := matutils.MaxVec(counts)
	if counts.AtVec(best) < 0 {
		return -1
	}
	return best
}

func (e *Explorer) unvisited(x, y int, inBounds bool) bool {
	return inBounds && !e.visited.Contains(e.grid.ID(x, y))
}
