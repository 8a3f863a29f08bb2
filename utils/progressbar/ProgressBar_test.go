package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestIncrementSaturates(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 10, 4)

	for i := 0; i < 10; i++ {
		p.Increment()
	}
	if have := p.Fraction(); have != 1.0 {
		t.Errorf("fraction \n\twant: 1 \n\thave: %v", have)
	}
}

func TestDisplay(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 10, 4)

	p.Increment()
	p.Increment()
	p.Display()

	out := buf.String()
	if have := strings.Count(out, "█"); have != 5 {
		t.Errorf("filled cells \n\twant: 5 \n\thave: %v", have)
	}
	if !strings.Contains(out, "50.00%") {
		t.Errorf("percentage missing from %q", out)
	}

	p.Close()
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("close did not end the line")
	}
}
