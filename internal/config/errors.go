// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrInvalidWorkerCount indicates a run config with a non-positive
	// worker count. Use errors.Is(err, ErrInvalidWorkerCount) instead of
	// string matching.
	ErrInvalidWorkerCount = errors.New("config: worker count must be positive")

	// ErrInvalidTimeBudget indicates a run config with a non-positive
	// time budget.
	ErrInvalidTimeBudget = errors.New("config: time budget must be positive")

	// ErrInvalidVerboseLogRate indicates a negative verbose log rate.
	ErrInvalidVerboseLogRate = errors.New("config: verbose log rate must not be negative")

	// ErrUnknownConfigField classifies strict YAML parse failures caused by
	// unknown keys.
	ErrUnknownConfigField = errors.New("config: unknown config field")
)
