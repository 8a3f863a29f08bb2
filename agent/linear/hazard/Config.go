package hazard

import (
	"fmt"
	"math"
)

const (
	DefaultLearningRate    float64 = 0.1
	DefaultBound           float64 = 5.0
	DefaultHistoryCapacity int     = 50
)

// Config represents a configuration for the hazard Predictor
type Config struct {
	LearningRate    float64 `mapstructure:"learningRate" yaml:"learningRate"`
	Bound           float64 `mapstructure:"bound" yaml:"bound"`
	HistoryCapacity int     `mapstructure:"historyCapacity" yaml:"historyCapacity"`

	// Value every weight and the bias start from
	InitialWeight float64 `mapstructure:"initialWeight" yaml:"initialWeight"`
}

// DefaultConfig returns the Config used when nothing else is specified
func DefaultConfig() Config {
	return Config{
		LearningRate:    DefaultLearningRate,
		Bound:           DefaultBound,
		HistoryCapacity: DefaultHistoryCapacity,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("hazard: learning rate must be positive (have %v)",
			c.LearningRate)
	}
	if c.Bound < 0 {
		return fmt.Errorf("hazard: bound cannot be negative (have %v)",
			c.Bound)
	}
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("hazard: history capacity must be positive "+
			"(have %v)", c.HistoryCapacity)
	}
	if math.Abs(c.InitialWeight) > c.Bound {
		return fmt.Errorf("hazard: initial weight %v outside bound %v",
			c.InitialWeight, c.Bound)
	}
	return nil
}
