// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML form of a run configuration. Fields are pointers so
// a merge can distinguish "absent" from "zero".
type FileConfig struct {
	Workers            *int    `yaml:"workers"`
	TimeBudgetMS       *int    `yaml:"time_budget_ms"`
	Verbose            *bool   `yaml:"verbose"`
	VerboseLogRate     *int    `yaml:"verbose_log_rate"`
	StopOnFirstFailure *bool   `yaml:"stop_on_first_failure"`
	Seed               *uint64 `yaml:"seed"`
}

// LoadFileConfig loads a YAML config file without applying defaults or env
// overrides. Unknown keys are rejected.
func LoadFileConfig(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var fc FileConfig
	if err := dec.Decode(&fc); err != nil {
		// With KnownFields the decoder reports unknown keys as a TypeError
		// whose messages read "field <name> not found in type ...". Other
		// TypeErrors (wrong scalar kinds etc.) stay plain parse errors.
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && strings.Contains(err.Error(), "not found in type") {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnknownConfigField, path, err)
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &fc, nil
}

// merge applies the file values that are present on top of base.
func (fc *FileConfig) merge(base RunConfig) RunConfig {
	out := base
	if fc.Workers != nil {
		out.Workers = *fc.Workers
	}
	if fc.TimeBudgetMS != nil {
		out.TimeBudget = time.Duration(*fc.TimeBudgetMS) * time.Millisecond
	}
	if fc.Verbose != nil {
		out.Verbose = *fc.Verbose
	}
	if fc.VerboseLogRate != nil {
		out.VerboseLogRate = *fc.VerboseLogRate
	}
	if fc.StopOnFirstFailure != nil {
		out.StopOnFirstFailure = *fc.StopOnFirstFailure
	}
	if fc.Seed != nil {
		out.Seed = *fc.Seed
	}
	return out
}

// Load builds a run configuration by merging, in order: built-in defaults,
// the optional YAML file at path (empty path skips the file), then
// environment overrides. The result is validated before it is returned.
func Load(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()

	if path != "" {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return RunConfig{}, err
		}
		cfg = fc.merge(cfg)
	}

	cfg.Workers = ParseInt(envWorkers, cfg.Workers)
	cfg.TimeBudget = time.Duration(ParseInt(envTimeBudgetMS, int(cfg.TimeBudget/time.Millisecond))) * time.Millisecond
	cfg.Verbose = ParseBool(envVerbose, cfg.Verbose)
	cfg.VerboseLogRate = ParseInt(envVerboseLogRate, cfg.VerboseLogRate)
	cfg.StopOnFirstFailure = ParseBool(envStopOnFirst, cfg.StopOnFirstFailure)
	cfg.Seed = ParseUint64(envSeed, cfg.Seed)

	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}
