package workload

import (
	"fmt"
	"math"
	"time"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

// MinRate is the slowest rate the driver runs at.
const MinRate = 0.1

// Config controls a run.
type Config struct {
	Rate       float64 // operations per second
	Iterations int     // 0 runs until interrupted
	Seed       uint64  // 0 seeds from the clock

	// Delete probabilities; a negative value keeps the workload default.
	ParentDeleteProb float64
	ChildDeleteProb  float64
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		Rate:             1.0,
		Iterations:       0,
		ParentDeleteProb: -1,
		ChildDeleteProb:  -1,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return &runtime.ValidationError{Field: "rate", Message: "must be a finite number"}
	}
	if c.Iterations < 0 {
		return &runtime.ValidationError{Field: "iterations", Message: "must not be negative"}
	}
	if c.ParentDeleteProb > 1 {
		return &runtime.ValidationError{Field: "parent-delete-prob", Message: fmt.Sprintf("%v is above 1", c.ParentDeleteProb)}
	}
	if c.ChildDeleteProb > 1 {
		return &runtime.ValidationError{Field: "child-delete-prob", Message: fmt.Sprintf("%v is above 1", c.ChildDeleteProb)}
	}
	return nil
}

// Interval is the pause between iterations, 1/max(0.1, rate) seconds.
func (c Config) Interval() time.Duration {
	return time.Duration(float64(time.Second) / max(MinRate, c.Rate))
}

// apply returns w with the configured delete probabilities.
func (c Config) apply(w Workload) Workload {
	if c.ParentDeleteProb >= 0 {
		w.ParentDeleteProb = c.ParentDeleteProb
	}
	if c.ChildDeleteProb >= 0 {
		w.ChildDeleteProb = c.ChildDeleteProb
	}
	return w
}
