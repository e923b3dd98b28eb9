// SPDX-License-Identifier: MIT

// Package config holds the run configuration: worker count, wall-clock
// budget, verbosity and failure policy. A process-wide default is consulted
// whenever a run starts without an explicit override; it may be replaced
// between runs but must not be changed concurrently with an in-flight run.
package config

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// RunConfig controls one engine run.
type RunConfig struct {
	// Workers is the number of concurrent sampling workers.
	Workers int
	// TimeBudget is the wall-clock budget after which a run with no
	// failure completes as passed.
	TimeBudget time.Duration
	// Verbose surfaces every iteration's inputs and results to the log
	// before the pass/fail decision.
	Verbose bool
	// VerboseLogRate optionally caps verbose iteration logging to this
	// many entries per second. Zero (the default) logs every iteration.
	VerboseLogRate int
	// StopOnFirstFailure stops the run at the first recorded failure.
	// When false the run keeps sampling until the budget elapses and
	// records every failure observed.
	StopOnFirstFailure bool
	// Seed fixes the base RNG seed for reproducible runs. Zero means
	// seed from the clock.
	Seed uint64
}

// DefaultRunConfig returns the built-in defaults: one worker per available
// processing unit, a 10 second budget, fail-fast.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Workers:            runtime.GOMAXPROCS(0),
		TimeBudget:         10 * time.Second,
		StopOnFirstFailure: true,
	}
}

// Validate rejects configurations no run may start with.
func (c RunConfig) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidWorkerCount, c.Workers)
	}
	if c.TimeBudget <= 0 {
		return fmt.Errorf("%w (got %s)", ErrInvalidTimeBudget, c.TimeBudget)
	}
	if c.VerboseLogRate < 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidVerboseLogRate, c.VerboseLogRate)
	}
	return nil
}

var (
	defaultMu      sync.RWMutex
	processDefault = DefaultRunConfig()
)

// Default returns the process-wide default run configuration.
func Default() RunConfig {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return processDefault
}

// SetDefault replaces the process-wide default after validating it.
func SetDefault(c RunConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	defaultMu.Lock()
	processDefault = c
	defaultMu.Unlock()
	return nil
}
