package render

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/gridlearn/environment"
)

// centre returns the 8-bit colour at the centre of cell (x, y)
func centre(img image.Image, size, x, y int) [3]uint32 {
	px := int(CellSize)*x + int(CellSize)/2
	py := int(CellSize)*(size-1-y) + int(CellSize)/2
	r, g, b, _ := img.At(px, py).RGBA()
	return [3]uint32{r >> 8, g >> 8, b >> 8}
}

func frame() environment.Frame {
	return environment.Frame{
		Simulation: "test",
		Step:       2,
		Size:       3,
		Obstacles:  []environment.Cell{{X: 2, Y: 2}},
		Visited:    []environment.Cell{{X: 1, Y: 0}},
		Agents: []environment.Agent{
			{Cell: environment.Cell{X: 0, Y: 0}, Colour: "blue"},
		},
	}
}

func TestDraw(t *testing.T) {
	img := Draw(frame())

	if have := img.Bounds().Dx(); have != 150 {
		t.Errorf("image width \n\twant: 150 \n\thave: %v", have)
	}

	tests := []struct {
		name string
		x, y int
		want [3]uint32
	}{
		{"empty", 1, 1, [3]uint32{255, 255, 255}},
		{"obstacle", 2, 2, [3]uint32{63, 63, 63}},
		{"agent", 0, 0, [3]uint32{0, 0, 255}},
	}
	for _, test := range tests {
		have := centre(img, 3, test.x, test.y)
		for i := range have {
			if d := int(have[i]) - int(test.want[i]); d < -2 || d > 2 {
				t.Errorf("%s cell \n\twant: %v \n\thave: %v", test.name,
					test.want, have)
				break
			}
		}
	}

	if have := centre(img, 3, 1, 0); have == [3]uint32{255, 255, 255} {
		t.Error("visited cell not shaded")
	}
}

func TestPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	p, err := NewPNG(dir, "test", 2)
	if err != nil {
		t.Fatal(err)
	}

	f := frame()
	for step := 1; step <= 4; step++ {
		f.Step = step
		if err := p.View(f); err != nil {
			t.Fatal(err)
		}
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("frames saved \n\twant: 2 \n\thave: %v", len(files))
	}
	if have := files[0].Name(); have != "test-000001.png" {
		t.Errorf("frame name \n\twant: test-000001.png \n\thave: %v", have)
	}

	if _, err := NewPNG(dir, "test", 0); err == nil {
		t.Error("expected error on zero interval")
	}
}
