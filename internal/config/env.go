// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"

	"github.com/ManuGH/propkit/internal/log"
)

// ParseInt reads an integer from an environment variable or returns the
// default value. It validates the input and falls back to the default on
// parse errors.
func ParseInt(key string, defaultValue int) int {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			logger.Debug().
				Str("key", key).
				Int("value", i).
				Str("source", "environment").
				Msg("using environment variable")
			return i
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Int("default", defaultValue).
			Msg("invalid integer in environment variable, using default")
	}
	return defaultValue
}

// ParseUint64 reads an unsigned integer from an environment variable or
// returns the default value.
func ParseUint64(key string, defaultValue uint64) uint64 {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			logger.Debug().
				Str("key", key).
				Uint64("value", u).
				Str("source", "environment").
				Msg("using environment variable")
			return u
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Uint64("default", defaultValue).
			Msg("invalid unsigned integer in environment variable, using default")
	}
	return defaultValue
}

// ParseBool reads a boolean from an environment variable or returns the
// default value. Accepts the forms strconv.ParseBool accepts.
func ParseBool(key string, defaultValue bool) bool {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			logger.Debug().
				Str("key", key).
				Bool("value", b).
				Str("source", "environment").
				Msg("using environment variable")
			return b
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Bool("default", defaultValue).
			Msg("invalid boolean in environment variable, using default")
	}
	return defaultValue
}

// environment variable names consulted by Load
const (
	envWorkers        = "PROPKIT_WORKERS"
	envTimeBudgetMS   = "PROPKIT_TIME_BUDGET_MS"
	envVerbose        = "PROPKIT_VERBOSE"
	envVerboseLogRate = "PROPKIT_VERBOSE_LOG_RATE"
	envStopOnFirst    = "PROPKIT_STOP_ON_FIRST_FAILURE"
	envSeed           = "PROPKIT_SEED"
)
