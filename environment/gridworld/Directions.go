package gridworld

import "fmt"

// Direction is one of the four orthogonal moves on the grid. The
// declaration order is the canonical order in which directions are
// enumerated, and so also the order of features and actions.
type Direction int

const (
	Up Direction = iota
	Down
	Right
	Left
	NumDirections int = iota
)

var deltas = [NumDirections][2]int{
	Up:    {0, 1},
	Down:  {0, -1},
	Right: {1, 0},
	Left:  {-1, 0},
}

// Directions returns all directions in canonical order
func Directions() []Direction {
	return []Direction{Up, Down, Right, Left}
}

// Delta returns the change in (x, y) when moving one cell in direction d
func (d Direction) Delta() (dx, dy int) {
	return deltas[d][0], deltas[d][1]
}

// TurnLeft returns the direction 90° counter-clockwise of d
func (d Direction) TurnLeft() Direction {
	dx, dy := d.Delta()
	return fromDelta(-dy, dx)
}

// TurnRight returns the direction 90° clockwise of d
func (d Direction) TurnRight() Direction {
	dx, dy := d.Delta()
	return fromDelta(dy, -dx)
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Right:
		return "Right"
	case Left:
		return "Left"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func fromDelta(dx, dy int) Direction {
	for d, delta := range deltas {
		if delta[0] == dx && delta[1] == dy {
			return Direction(d)
		}
	}
	panic(fmt.Sprintf("fromDelta: (%d, %d) is not a unit move", dx, dy))
}
