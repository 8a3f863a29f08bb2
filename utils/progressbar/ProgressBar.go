// Package progressbar implements functionality of printing a progress
// bar to a terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ProgressBar implements progress bar functionality that must be
// manually managed. That is, Display must be called whenever an
// updated progress bar should be written. A ProgressBar is safe for
// concurrent use.
type ProgressBar struct {
	mu              sync.Mutex
	w               io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	bar             strings.Builder
	startTime       time.Time
}

// New returns a new ProgressBar that is width characters wide, writes
// to w, and reaches 100% after max calls to Increment
func New(w io.Writer, width, max int) *ProgressBar {
	if width <= 0 || max <= 0 {
		panic(fmt.Sprintf("new: width and max must be positive (have %d, %d)",
			width, max))
	}
	return &ProgressBar{
		w:           w,
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Fraction returns the fraction of progress made, in [0, 1]
func (p *ProgressBar) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentProgress / p.maxProgress
}

// Display redraws the progress bar over the current line
func (p *ProgressBar) Display() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.currentProgress / p.maxProgress * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	p.bar.WriteString(fmt.Sprintf("| [%.2f%v | elapsed: %v]",
		p.currentProgress/p.maxProgress*100, "%",
		time.Since(p.startTime).Truncate(time.Second)))

	fmt.Fprintf(p.w, "\r\033[K%v", p.bar.String())
}

// Close writes a final newline so that later output starts on a fresh
// line
func (p *ProgressBar) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w)
}
