// SPDX-License-Identifier: MIT

package runner

import (
	"bytes"
	"context"
	"math/rand/v2"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/propkit/internal/config"
	"github.com/ManuGH/propkit/internal/gen"
	"github.com/ManuGH/propkit/internal/log"
	"github.com/ManuGH/propkit/internal/spec"
)

// logSink captures every log line the package emits. Workers log
// concurrently, so writes go through zerolog's SyncWriter.
var logSink bytes.Buffer

func TestMain(m *testing.M) {
	log.Configure(log.Config{
		Level:   "debug",
		Output:  zerolog.SyncWriter(&logSink),
		Service: "propkit-test",
	})
	os.Exit(m.Run())
}

// iterationLogCount counts the iteration entries a single run emitted.
func iterationLogCount(runID string) uint64 {
	var n uint64
	for _, line := range strings.Split(logSink.String(), "\n") {
		if strings.Contains(line, `"event":"run.iteration"`) &&
			strings.Contains(line, `"run_id":"`+runID+`"`) {
			n++
		}
	}
	return n
}

func add(a, b int) int { return a + b }

func testConfig() config.RunConfig {
	cfg := config.DefaultRunConfig()
	cfg.Workers = 4
	cfg.TimeBudget = 200 * time.Millisecond
	cfg.Seed = 1
	return cfg
}

func sumSpec(t *testing.T, check func(inputs, results []any) bool) *spec.Spec {
	t.Helper()
	s, err := spec.New("sum", add,
		[]spec.Param{
			{Name: "a", Gen: gen.Erase(gen.Range(-10, 10, gen.Uniform()))},
			{Name: "b", Gen: gen.Erase(gen.Range(-10, 10, gen.Uniform()))},
		},
		spec.Validator{Name: "result_non_negative", Check: check},
	)
	require.NoError(t, err)
	return s
}

func TestRun_PassedWithinBudget(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := sumSpec(t, func(_, _ []any) bool { return true })

	start := time.Now()
	res, err := Run(context.Background(), s, testConfig())
	require.NoError(t, err)

	assert.Equal(t, OutcomePassed, res.Outcome)
	assert.Equal(t, "sum", res.Spec)
	assert.NotEmpty(t, res.RunID)
	assert.Greater(t, res.Iterations, uint64(0))
	assert.Nil(t, res.Failure)
	assert.NoError(t, res.Err)
	// budget plus generous scheduling overhead
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRun_FailFastRecordsCounterexample(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := sumSpec(t, func(_, results []any) bool {
		return results[0].(int) >= 0
	})

	cfg := testConfig()
	cfg.TimeBudget = 10 * time.Second // must fail long before this

	start := time.Now()
	res, err := Run(context.Background(), s, cfg)
	require.NoError(t, err)

	require.Equal(t, OutcomeFailed, res.Outcome)
	require.NotNil(t, res.Failure)
	assert.Less(t, time.Since(start), 5*time.Second)

	f := res.Failure
	assert.False(t, f.Faulted)
	assert.Equal(t, 0, f.ValidatorIndex)
	assert.Equal(t, "result_non_negative", f.ValidatorName)
	assert.Greater(t, f.Iteration, uint64(0))

	// the recorded inputs are exact and replayable
	require.Len(t, f.Inputs, 2)
	assert.Equal(t, "a", f.Inputs[0].Name)
	assert.Equal(t, "b", f.Inputs[1].Name)
	a := f.Inputs[0].Value.(int)
	b := f.Inputs[1].Value.(int)
	assert.Negative(t, a+b)
	assert.Equal(t, a+b, add(a, b))
	require.Len(t, f.Results, 1)
	assert.Equal(t, a+b, f.Results[0].(int))
}

func TestRun_DeterministicWithSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 1
	cfg.Seed = 7
	cfg.TimeBudget = 10 * time.Second

	check := func(_, results []any) bool { return results[0].(int) >= 0 }

	res1, err := Run(context.Background(), sumSpec(t, check), cfg)
	require.NoError(t, err)
	res2, err := Run(context.Background(), sumSpec(t, check), cfg)
	require.NoError(t, err)

	require.Equal(t, OutcomeFailed, res1.Outcome)
	require.Equal(t, OutcomeFailed, res2.Outcome)
	assert.Equal(t, res1.Failure.Inputs, res2.Failure.Inputs)
	assert.Equal(t, res1.Failure.Iteration, res2.Failure.Iteration)
}

func TestRun_PanicBecomesFaultedFailure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	boom := func(a int) int {
		if a > 5 {
			panic("too big")
		}
		return a
	}
	s, err := spec.New("boom", boom,
		[]spec.Param{{Name: "a", Gen: gen.Erase(gen.Range(0, 100, gen.Uniform()))}},
	)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.TimeBudget = 10 * time.Second

	res, err := Run(context.Background(), s, cfg)
	require.NoError(t, err)

	require.Equal(t, OutcomeFailed, res.Outcome)
	require.NotNil(t, res.Failure)
	assert.True(t, res.Failure.Faulted)
	assert.Equal(t, -1, res.Failure.ValidatorIndex)
	assert.Contains(t, res.Failure.FaultMessage, "too big")
	assert.Greater(t, res.Failure.Inputs[0].Value.(int), 5)
}

func TestRun_ValidatorPanicIsFaulted(t *testing.T) {
	s, err := spec.New("angry", add,
		[]spec.Param{
			{Name: "a", Gen: gen.Erase(gen.Const(1))},
			{Name: "b", Gen: gen.Erase(gen.Const(2))},
		},
		spec.Validator{Name: "angry_check", Check: func(_, _ []any) bool { panic("nope") }},
	)
	require.NoError(t, err)

	res, err := Run(context.Background(), s, testConfig())
	require.NoError(t, err)

	require.Equal(t, OutcomeFailed, res.Outcome)
	require.NotNil(t, res.Failure)
	assert.True(t, res.Failure.Faulted)
	assert.Equal(t, "angry_check", res.Failure.ValidatorName)
	assert.Contains(t, res.Failure.FaultMessage, "nope")
}

func TestRun_GeneratorExhaustionErrors(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	// survives the registration probe, then exhausts
	var draws atomic.Int64
	flaky := gen.Derived(func(rng *rand.Rand) (int, error) {
		if draws.Add(1) > 1 {
			return 0, gen.ErrExhausted
		}
		return 1, nil
	})
	s, err := spec.New("flaky", func(a int) int { return a },
		[]spec.Param{{Name: "a", Gen: gen.Erase(flaky)}},
	)
	require.NoError(t, err)

	res, err := Run(context.Background(), s, testConfig())
	require.NoError(t, err)

	assert.Equal(t, OutcomeErrored, res.Outcome)
	require.ErrorIs(t, res.Err, gen.ErrExhausted)
	assert.Nil(t, res.Failure)
}

func TestRun_CollectAllFailures(t *testing.T) {
	s := sumSpec(t, func(_, _ []any) bool { return false })

	cfg := testConfig()
	cfg.StopOnFirstFailure = false
	cfg.Workers = 2
	cfg.TimeBudget = 50 * time.Millisecond

	res, err := Run(context.Background(), s, cfg)
	require.NoError(t, err)

	require.Equal(t, OutcomeFailed, res.Outcome)
	require.NotNil(t, res.Failure)
	// every iteration fails and the run keeps sampling until the deadline
	assert.Greater(t, len(res.Failures), 1)
	assert.Equal(t, *res.Failure, res.Failures[0])
}

func TestRun_InvalidConfig(t *testing.T) {
	s := sumSpec(t, func(_, _ []any) bool { return true })

	cfg := testConfig()
	cfg.Workers = 0
	_, err := Run(context.Background(), s, cfg)
	require.ErrorIs(t, err, config.ErrInvalidWorkerCount)

	cfg = testConfig()
	cfg.TimeBudget = 0
	_, err = Run(context.Background(), s, cfg)
	require.ErrorIs(t, err, config.ErrInvalidTimeBudget)
}

func TestRunAll_OrderAndUnknownName(t *testing.T) {
	reg := spec.NewRegistry()
	for _, name := range []string{"first", "second"} {
		s, err := spec.New(name, add,
			[]spec.Param{
				{Name: "a", Gen: gen.Erase(gen.Const(1))},
				{Name: "b", Gen: gen.Erase(gen.Const(2))},
			},
		)
		require.NoError(t, err)
		require.NoError(t, reg.Register(s))
	}

	cfg := testConfig()
	cfg.TimeBudget = 50 * time.Millisecond

	results, err := RunAll(context.Background(), reg, []string{"second", "first"}, &cfg)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "second", results[0].Spec)
	assert.Equal(t, "first", results[1].Spec)

	_, err = RunAll(context.Background(), reg, []string{"third"}, &cfg)
	require.ErrorIs(t, err, spec.ErrUnknownSpec)
}

func TestRun_VerboseLogsEveryIteration(t *testing.T) {
	s := sumSpec(t, func(_, _ []any) bool { return true })

	cfg := testConfig()
	cfg.Verbose = true
	cfg.Workers = 2
	cfg.TimeBudget = 50 * time.Millisecond

	res, err := Run(context.Background(), s, cfg)
	require.NoError(t, err)
	require.Equal(t, OutcomePassed, res.Outcome)
	require.Greater(t, res.Iterations, uint64(0))

	// without an explicit rate cap, every sampled iteration is logged
	assert.Equal(t, res.Iterations, iterationLogCount(res.RunID))
}

func TestRun_VerboseLogRateCapsLogging(t *testing.T) {
	s := sumSpec(t, func(_, _ []any) bool { return true })

	cfg := testConfig()
	cfg.Verbose = true
	cfg.VerboseLogRate = 100
	cfg.TimeBudget = 100 * time.Millisecond

	res, err := Run(context.Background(), s, cfg)
	require.NoError(t, err)
	require.Equal(t, OutcomePassed, res.Outcome)

	logged := iterationLogCount(res.RunID)
	assert.Greater(t, logged, uint64(0))
	// four tight-looping workers sample far faster than 100/s; the cap
	// must drop the excess
	assert.Less(t, logged, res.Iterations)
}

func TestRunAll_UsesProcessDefault(t *testing.T) {
	orig := config.Default()
	t.Cleanup(func() { _ = config.SetDefault(orig) })

	short := orig
	short.Workers = 2
	short.TimeBudget = 50 * time.Millisecond
	require.NoError(t, config.SetDefault(short))

	reg := spec.NewRegistry()
	s, err := spec.New("defaulted", add,
		[]spec.Param{
			{Name: "a", Gen: gen.Erase(gen.Const(1))},
			{Name: "b", Gen: gen.Erase(gen.Const(2))},
		},
	)
	require.NoError(t, err)
	require.NoError(t, reg.Register(s))

	start := time.Now()
	results, err := RunAll(context.Background(), reg, []string{"defaulted"}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomePassed, results[0].Outcome)
	assert.Less(t, time.Since(start), 2*time.Second)
}
