package config

import "fmt"

// SolverConfig tunes the local-search driver.
type SolverConfig struct {
	// MaxIterations caps outer improvement passes per solve.
	MaxIterations int `json:"max_iterations"`
	// MaxAttempts bounds cut-pair evaluations per operator invocation.
	MaxAttempts int `json:"max_attempts"`
	// Seed drives construction tie-breaking; 0 keeps it deterministic.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.MaxIterations == 0 {
		c.MaxIterations = 200
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 50
	}
}

// Validate checks bounds.
func (c SolverConfig) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be > 0 (got %d)", c.MaxIterations)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d)", c.MaxAttempts)
	}
	return nil
}
