package hazard

import (
	"fmt"

	"github.com/samuelfneumann/gomaze"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
)

// Obstacle layouts
const (
	RandomLayout = "random"
	MazeLayout   = "maze"
)

// mazeObstacles walls off grid as a perfect maze carved by an
// Aldous-Broder random walk. Maze cells sit on even coordinates; an odd cell between
// two maze cells is a passage if the maze links them and a wall
// otherwise. Cells with both coordinates odd are always walls.
func mazeObstacles(grid *gridworld.Grid, seed int64) error {
	size := grid.Size()
	cells := (size + 1) / 2

	m := gomaze.NewGrid(cells, cells)
	if err := gomaze.NewAldousBroder(seed).Init(m); err != nil {
		return fmt.Errorf("maze: %w", err)
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if mazeOpen(m, x, y) {
				continue
			}
			if err := grid.AddObstacle(x, y); err != nil {
				return err
			}
		}
	}
	return nil
}

// mazeOpen reports whether grid cell (x, y) is free in maze m
func mazeOpen(m *gomaze.Grid, x, y int) bool {
	switch {
	case x%2 == 0 && y%2 == 0:
		return true

	case x%2 == 1 && y%2 == 1:
		return false

	case x%2 == 1:
		// Between maze columns (x-1)/2 and (x+1)/2
		if (x+1)/2 >= m.Cols() {
			return true
		}
		c, err := m.CellAt((x-1)/2, y/2)
		return err == nil && c.CanMoveEast()

	default:
		// Between maze rows (y-1)/2 and (y+1)/2
		if (y+1)/2 >= m.Rows() {
			return true
		}
		c, err := m.CellAt(x/2, (y-1)/2)
		return err == nil && c.CanMoveSouth()
	}
}

// mazeCell snaps (x, y) to the nearest maze cell at or below it
func mazeCell(x, y int) (int, int) {
	return x - x%2, y - y%2
}
