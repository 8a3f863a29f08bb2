package environment

// Cell is a single grid cell
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Agent is a single agent drawn on a Frame
type Agent struct {
	Cell
	Heading string `json:"heading,omitempty"`
	Colour  string `json:"colour"`
}

// Frame is a snapshot of a Simulation, sufficient to draw it
type Frame struct {
	Simulation string  `json:"simulation"`
	Step       int     `json:"step"`
	Size       int     `json:"size"`
	Obstacles  []Cell  `json:"obstacles,omitempty"`
	Visited    []Cell  `json:"visited,omitempty"`
	Agents     []Agent `json:"agents"`
	Accuracy   float64 `json:"accuracy"`
}
