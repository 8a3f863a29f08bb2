package agent

// Config represents a configuration for creating a learner
type Config interface {
	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error
}
