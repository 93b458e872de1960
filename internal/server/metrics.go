package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cgmin_runs_total",
		Help: "Completed minimization runs by termination status.",
	}, []string{"status"})

	runIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cgmin_run_iterations",
		Help:    "Accepted outer iterations per minimization run.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cgmin_run_duration_seconds",
		Help:    "Wall-clock duration of minimization runs.",
		Buckets: prometheus.DefBuckets,
	})
)
