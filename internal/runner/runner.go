// SPDX-License-Identifier: MIT

// Package runner schedules engine runs: a fixed pool of workers samples a
// spec until the wall-clock budget elapses or a failure is recorded.
// Cancellation is cooperative; a worker finishes its current iteration
// before observing the stop signal. Iteration counters are worker-private
// and summed only after the join.
package runner

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ManuGH/propkit/internal/config"
	"github.com/ManuGH/propkit/internal/log"
	"github.com/ManuGH/propkit/internal/metrics"
	"github.com/ManuGH/propkit/internal/spec"
)

// errStop cancels the worker group without signalling a real error.
var errStop = errors.New("runner: stop")

// burst for the opt-in verbose log throttle (RunConfig.VerboseLogRate)
const verboseLogBurst = 50

// collector is the only mutable state shared across workers: the failure
// slot(s) and the generation error, both mutex-guarded so the first writer
// wins.
type collector struct {
	mu      sync.Mutex
	keepAll bool
	first   *Failure
	all     []Failure
	genErr  error
}

func (c *collector) recordFailure(f Failure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.first == nil {
		cp := f
		c.first = &cp
	}
	if c.keepAll || len(c.all) == 0 {
		c.all = append(c.all, f)
	}
}

func (c *collector) recordGenErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.genErr == nil {
		c.genErr = err
	}
}

// Run executes one spec under cfg until the budget elapses or the stop
// policy ends the run. It returns an error only for invalid configuration;
// every other condition, including faults in the function under test, ends
// up inside the Result.
func Run(ctx context.Context, sp *spec.Spec, cfg config.RunConfig) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	runID := uuid.NewString()
	ctx = log.ContextWithRunID(ctx, runID)
	logger := log.WithComponentFromContext(ctx, "runner").With().
		Str("spec", sp.Name()).
		Logger()

	logger.Info().
		Str("event", "run.start").
		Int("workers", cfg.Workers).
		Dur("time_budget", cfg.TimeBudget).
		Uint64("seed", seed).
		Msg("starting run")

	// verbose mode surfaces every iteration; the throttle only engages
	// when the caller explicitly asked for a capped rate
	var limiter *rate.Limiter
	if cfg.Verbose && cfg.VerboseLogRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.VerboseLogRate), verboseLogBurst)
	}

	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, cfg.TimeBudget)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	col := &collector{keepAll: !cfg.StopOnFirstFailure}
	counts := make([]uint64, cfg.Workers)

	for i := 0; i < cfg.Workers; i++ {
		g.Go(func() error {
			// worker-private source: draws need no locking
			rng := rand.New(rand.NewPCG(seed, uint64(i+1)))
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
				}

				inputs, err := sp.Draw(rng)
				if err != nil {
					col.recordGenErr(err)
					return errStop
				}

				results, fault := sp.Invoke(inputs)
				counts[i]++

				if cfg.Verbose && (limiter == nil || limiter.Allow()) {
					logger.Debug().
						Str("event", "run.iteration").
						Interface("inputs", inputs).
						Interface("results", results).
						Msg("iteration sampled")
				}

				fail := judge(sp, inputs, results, fault, counts[i])
				if fail == nil {
					continue
				}
				col.recordFailure(*fail)
				if cfg.StopOnFirstFailure {
					return errStop
				}
			}
		})
	}

	// join: workers return only nil or errStop
	_ = g.Wait()
	elapsed := time.Since(start)

	var total uint64
	for _, c := range counts {
		total += c
	}

	res := Result{
		RunID:      runID,
		Spec:       sp.Name(),
		Iterations: total,
		Elapsed:    elapsed,
	}

	switch {
	case col.genErr != nil:
		res.Outcome = OutcomeErrored
		res.Err = col.genErr
		metrics.IncFailure(sp.Name(), "exhausted")
	case col.first != nil:
		res.Outcome = OutcomeFailed
		res.Failure = col.first
		res.Failures = col.all
		kind := "validator"
		if col.first.Faulted {
			kind = "fault"
		}
		metrics.IncFailure(sp.Name(), kind)
	default:
		res.Outcome = OutcomePassed
	}

	metrics.IncRun(res.Outcome.String())
	metrics.AddIterations(sp.Name(), total)
	metrics.ObserveRunDuration(sp.Name(), elapsed)

	logger.Info().
		Str("event", "run.complete").
		Str("outcome", res.Outcome.String()).
		Uint64("iterations", total).
		Dur("elapsed", elapsed).
		Msg("run complete")

	return res, nil
}

// judge converts one iteration into a Failure, or nil if it passed.
func judge(sp *spec.Spec, inputs, results []any, fault *spec.Fault, iteration uint64) *Failure {
	if fault != nil {
		return &Failure{
			Inputs:         namedInputs(sp, inputs),
			ValidatorIndex: -1,
			Faulted:        true,
			FaultMessage:   fault.Message(),
			Iteration:      iteration,
		}
	}

	idx, vfault := sp.CheckValidators(inputs, results)
	if idx < 0 {
		return nil
	}
	f := &Failure{
		Inputs:         namedInputs(sp, inputs),
		Results:        results,
		ValidatorIndex: idx,
		ValidatorName:  sp.ValidatorName(idx),
		Iteration:      iteration,
	}
	if vfault != nil {
		f.Faulted = true
		f.FaultMessage = vfault.Message()
	}
	return f
}

func namedInputs(sp *spec.Spec, inputs []any) []Input {
	names := sp.ParamNames()
	out := make([]Input, len(inputs))
	for i, v := range inputs {
		out[i] = Input{Name: names[i], Value: v}
	}
	return out
}

// RunAll executes the named specs in invocation order. A nil override uses
// the process-wide default configuration. Unknown names and invalid
// configuration abort before any run starts.
func RunAll(ctx context.Context, reg *spec.Registry, names []string, override *config.RunConfig) ([]Result, error) {
	cfg := config.Default()
	if override != nil {
		cfg = *override
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	specs := make([]*spec.Spec, 0, len(names))
	for _, name := range names {
		s, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}

	results := make([]Result, 0, len(specs))
	for _, s := range specs {
		res, err := Run(ctx, s, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
