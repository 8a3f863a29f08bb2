package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/gridlearn/environment"
)

// PNG saves every n-th frame it is shown as a PNG file
type PNG struct {
	interval int
	filename func() string
}

// NewPNG returns a PNG viewer saving every n-th frame of the simulation
// named simulation into dir, as simulation-000001.png and so on
func NewPNG(dir, simulation string, n int) (*PNG, error) {
	if n <= 0 {
		return nil, fmt.Errorf("newPNG: interval must be positive (have %d)",
			n)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("newPNG: %w", err)
	}

	name := filepath.Join(dir, simulation+"-")
	return &PNG{
		interval: n,
		filename: FilenameEnumerator(0, name, ".png"),
	}, nil
}

// View saves f if its step is a multiple of the interval
func (p *PNG) View(f environment.Frame) error {
	if f.Step%p.interval != 0 {
		return nil
	}
	if err := paint(f).SavePNG(p.filename()); err != nil {
		return fmt.Errorf("view: %w", err)
	}
	return nil
}
