// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus collectors for engine runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propkit_runs_total",
		Help: "Completed runs by outcome",
	}, []string{"outcome"}) // outcome=passed|failed|errored

	iterationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propkit_iterations_total",
		Help: "Iterations executed per spec (summed after worker join)",
	}, []string{"spec"})

	failuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propkit_failures_total",
		Help: "Recorded failures per spec by kind",
	}, []string{"spec", "kind"}) // kind=validator|fault|exhausted

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "propkit_run_duration_seconds",
		Help:    "Wall-clock duration of completed runs",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms .. ~20s
	}, []string{"spec"})
)

// IncRun counts one completed run with the given outcome label.
func IncRun(outcome string) {
	runsTotal.WithLabelValues(outcome).Inc()
}

// AddIterations adds a run's final iteration total for a spec.
func AddIterations(spec string, n uint64) {
	iterationsTotal.WithLabelValues(spec).Add(float64(n))
}

// IncFailure counts one recorded failure of the given kind.
func IncFailure(spec, kind string) {
	failuresTotal.WithLabelValues(spec, kind).Inc()
}

// ObserveRunDuration records a run's elapsed wall-clock time.
func ObserveRunDuration(spec string, d time.Duration) {
	runDuration.WithLabelValues(spec).Observe(d.Seconds())
}
