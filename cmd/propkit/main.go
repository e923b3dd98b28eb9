// SPDX-License-Identifier: MIT

// Command propkit runs the bundled sample specs through the engine and
// reports the outcome of each run. Exit code 1 means at least one run did
// not pass.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ManuGH/propkit/internal/config"
	"github.com/ManuGH/propkit/internal/log"
	"github.com/ManuGH/propkit/internal/report"
	"github.com/ManuGH/propkit/internal/runner"
	"github.com/ManuGH/propkit/internal/spec"
)

var (
	configPath  = flag.String("config", "", "path to a YAML run config")
	workers     = flag.Int("workers", 0, "override worker count")
	budget      = flag.Duration("budget", 0, "override wall-clock time budget")
	verbose     = flag.Bool("verbose", false, "log every sampled iteration")
	verboseRate = flag.Int("verbose-log-rate", 0, "cap verbose iteration logs per second (0 = unlimited)")
	seed        = flag.Uint64("seed", 0, "fix the base RNG seed for reproducible runs")
	specsFlag   = flag.String("specs", "", "comma-separated spec names to run (default: all)")
	keepGoing   = flag.Bool("keep-going", false, "record every failure instead of stopping at the first")
)

// errRunsFailed is returned by run when at least one run did not pass. It
// carries the exit status through the normal return path so deferred
// cleanup (the signal stop, buffered writers) still executes.
var errRunsFailed = errors.New("one or more runs did not pass")

func main() {
	flag.Parse()

	if err := run(); err != nil {
		if !errors.Is(err, errRunsFailed) {
			fmt.Fprintf(os.Stderr, "propkit: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = *workers
		case "budget":
			cfg.TimeBudget = *budget
		case "verbose":
			cfg.Verbose = *verbose
		case "verbose-log-rate":
			cfg.VerboseLogRate = *verboseRate
		case "seed":
			cfg.Seed = *seed
		case "keep-going":
			cfg.StopOnFirstFailure = !*keepGoing
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := "info"
	if cfg.Verbose {
		level = "debug"
	}
	log.Configure(log.Config{Level: level, Service: "propkit"})
	logger := log.WithComponent("main")

	reg := spec.NewRegistry()
	if err := registerSampleSpecs(reg); err != nil {
		return err
	}

	names := reg.Names()
	if *specsFlag != "" {
		names = nil
		for _, n := range strings.Split(*specsFlag, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runner.RunAll(ctx, reg, names, &cfg)
	if err != nil {
		return err
	}

	if err := report.Render(os.Stdout, results...); err != nil {
		return err
	}
	for _, res := range results {
		report.Log(logger, res)
	}

	return nonPassError(results)
}

// nonPassError reports errRunsFailed when any result is not a pass, so the
// caller decides the exit code after deferred cleanup has run.
func nonPassError(results []runner.Result) error {
	for _, res := range results {
		if res.Outcome != runner.OutcomePassed {
			return errRunsFailed
		}
	}
	return nil
}
