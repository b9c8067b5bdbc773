// SPDX-License-Identifier: MIT
package evaluator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// updatesTotal counts updates by configured and used strategy
	updatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pairsum_evaluator_updates_total",
		Help: "Total evaluator updates by configured and used strategy",
	}, []string{"kind", "used"})

	// fallbacksTotal counts optimized updates that recomputed from scratch
	fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pairsum_evaluator_fallbacks_total",
		Help: "Total optimized updates that fell back to a full recompute, by reason",
	}, []string{"reason"})

	// contributionsTotal counts AddPairContribution calls
	contributionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairsum_evaluator_pair_contributions_total",
		Help: "Total pair contributions added or removed",
	})

	// updateDuration tracks update latency
	updateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pairsum_evaluator_update_duration_seconds",
		Help:    "Evaluator update duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	}, []string{"used"})

	// checkFailuresTotal counts disagreements found by the check strategy
	checkFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairsum_evaluator_check_failures_total",
		Help: "Total check updates whose optimized and basic results differed",
	})
)
