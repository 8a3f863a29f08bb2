// Package gridworld implements the geometry of 2D square grids with
// optional obstacles
package gridworld

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridlearn/environment"
)

// Grid represents a square size × size gridworld
//
// Cells are addressed by (x, y) coordinates with 0 <= x, y < size and
// identified by the id x + y*size. Only the obstacle cells are stored.
type Grid struct {
	size      int
	obstacles map[int]struct{}
}

// New creates a new empty Grid
func New(size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("gridworld: size must be positive (have %d)",
			size)
	}
	return &Grid{size: size, obstacles: make(map[int]struct{})}, nil
}

// Size returns the number of cells along each side of the Grid
func (g *Grid) Size() int {
	return g.size
}

// Cells returns the total number of cells in the Grid
func (g *Grid) Cells() int {
	return g.size * g.size
}

// InBounds returns whether (x, y) lies on the Grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// ID returns the id of cell (x, y)
func (g *Grid) ID(x, y int) int {
	return cToInd(x, y, g.size)
}

// Coordinates returns the (x, y) coordinates of the cell with id id
func (g *Grid) Coordinates(id int) (int, int) {
	y := id / g.size
	x := id - (y * g.size)
	return x, y
}

// Neighbour returns the cell adjacent to (x, y) in direction d and
// whether that cell is in bounds
func (g *Grid) Neighbour(x, y int, d Direction) (int, int, bool) {
	dx, dy := d.Delta()
	nx, ny := x+dx, y+dy
	return nx, ny, g.InBounds(nx, ny)
}

// Blocked returns whether (x, y) is off the Grid or holds an obstacle
func (g *Grid) Blocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	_, ok := g.obstacles[g.ID(x, y)]
	return ok
}

// ValidMask returns, for each direction in canonical order, whether
// moving from (x, y) in that direction lands on an unblocked cell
func (g *Grid) ValidMask(x, y int) []bool {
	mask := make([]bool, NumDirections)
	for _, d := range Directions() {
		nx, ny, _ := g.Neighbour(x, y, d)
		mask[d] = !g.Blocked(nx, ny)
	}
	return mask
}

// AddObstacle places an obstacle at (x, y)
func (g *Grid) AddObstacle(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("gridworld: obstacle (%d, %d) out of bounds "+
			"for size %d", x, y, g.size)
	}
	g.obstacles[g.ID(x, y)] = struct{}{}
	return nil
}

// RandomObstacles places n obstacles on distinct cells drawn uniformly
// at random, never on any of the excluded cell ids
func (g *Grid) RandomObstacles(n int, rng *rand.Rand, exclude ...int) error {
	excluded := make(map[int]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	candidates := make([]int, 0, g.Cells())
	for id := 0; id < g.Cells(); id++ {
		_, skip := excluded[id]
		_, taken := g.obstacles[id]
		if !skip && !taken {
			candidates = append(candidates, id)
		}
	}
	if n > len(candidates) {
		return fmt.Errorf("gridworld: cannot place %d obstacles on %d "+
			"free cells", n, len(candidates))
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, id := range candidates[:n] {
		g.obstacles[id] = struct{}{}
	}
	return nil
}

// Obstacles returns the obstacle cells ordered by id
func (g *Grid) Obstacles() []environment.Cell {
	ids := make([]int, 0, len(g.obstacles))
	for id := range g.obstacles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	cells := make([]environment.Cell, len(ids))
	for i, id := range ids {
		x, y := g.Coordinates(id)
		cells[i] = environment.Cell{X: x, Y: y}
	}
	return cells
}

// StartCell samples a cell using s. The first two features of the
// sampled state are floored and clamped onto the Grid as x and y.
func (g *Grid) StartCell(s environment.Starter) (int, int) {
	state := s.Start()
	return g.clamp(state.AtVec(0)), g.clamp(state.AtVec(1))
}

func (g *Grid) clamp(v float64) int {
	i := int(math.Floor(v))
	if i < 0 {
		return 0
	} else if i >= g.size {
		return g.size - 1
	}
	return i
}

func (g *Grid) String() string {
	str := "Grid | Size: %d  |  Obstacles: %d"
	return fmt.Sprintf(str, g.size, len(g.obstacles))
}

func cToInd(x, y, c int) int {
	return y*c + x
}
