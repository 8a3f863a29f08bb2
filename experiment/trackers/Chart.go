package trackers

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Chart tracks the rolling accuracy of every simulation it sees and
// saves them as an HTML line chart, one line per simulation. A Chart
// may be shared by experiments running concurrently.
type Chart struct {
	mu       sync.Mutex
	series   map[string][]float64
	filename string
}

// NewChart returns a new Chart Tracker saving to filename
func NewChart(filename string) tracker.Tracker {
	return &Chart{series: make(map[string][]float64), filename: filename}
}

// Track records the rolling accuracy of step. TimeSteps without
// learner diagnostics are ignored.
func (c *Chart) Track(step ts.TimeStep) {
	if step.Observation == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.series[step.Simulation] = append(c.series[step.Simulation],
		step.Accuracy)
}

// Save renders the chart to disk
func (c *Chart) Save() error {
	file, err := os.Create(c.filename)
	if err != nil {
		return fmt.Errorf("save: could not open chart file: %w", err)
	}
	defer file.Close()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.line().Render(file); err != nil {
		return fmt.Errorf("save: could not render chart: %w", err)
	}
	return nil
}

func (c *Chart) line() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Rolling accuracy",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Rolling accuracy",
			Subtitle: "fraction of recent ticks the learner got right",
		}),
	)

	names := make([]string, 0, len(c.series))
	steps := 0
	for name, s := range c.series {
		names = append(names, name)
		if len(s) > steps {
			steps = len(s)
		}
	}
	sort.Strings(names)

	xAxis := make([]string, steps)
	for i := range xAxis {
		xAxis[i] = strconv.Itoa(i + 1)
	}
	line.SetXAxis(xAxis)

	for _, name := range names {
		data := make([]opts.LineData, len(c.series[name]))
		for i, acc := range c.series[name] {
			data[i] = opts.LineData{Value: acc}
		}
		line.AddSeries(name, data)
	}
	return line
}
