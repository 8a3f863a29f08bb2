package explorer

import (
	"fmt"
	"math"
)

const (
	DefaultLearningRate    float64 = 0.1
	DefaultBound           float64 = 10.0
	DefaultHistoryCapacity int     = 50
	DefaultVisitedCapacity int     = 50
)

// Config represents a configuration for the Explorer
type Config struct {
	LearningRate    float64 `mapstructure:"learningRate" yaml:"learningRate"`
	Bound           float64 `mapstructure:"bound" yaml:"bound"`
	HistoryCapacity int     `mapstructure:"historyCapacity" yaml:"historyCapacity"`
	VisitedCapacity int     `mapstructure:"visitedCapacity" yaml:"visitedCapacity"`

	// Value every weight and bias starts from
	InitialWeight float64 `mapstructure:"initialWeight" yaml:"initialWeight"`
}

// DefaultConfig returns the Config used when nothing else is specified
func DefaultConfig() Config {
	return Config{
		LearningRate:    DefaultLearningRate,
		Bound:           DefaultBound,
		HistoryCapacity: DefaultHistoryCapacity,
		VisitedCapacity: DefaultVisitedCapacity,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("explorer: learning rate must be positive "+
			"(have %v)", c.LearningRate)
	}
	if c.Bound < 0 {
		return fmt.Errorf("explorer: bound cannot be negative (have %v)",
			c.Bound)
	}
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("explorer: history capacity must be positive "+
			"(have %v)", c.HistoryCapacity)
	}
	if c.VisitedCapacity <= 0 {
		return fmt.Errorf("explorer: visited capacity must be positive "+
			"(have %v)", c.VisitedCapacity)
	}
	if math.Abs(c.InitialWeight) > c.Bound {
		return fmt.Errorf("explorer: initial weight %v outside bound %v",
			c.InitialWeight, c.Bound)
	}
	return nil
}
