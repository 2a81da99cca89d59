// Copyright 2026 The DeepBrainChain Authors
// This file is part of the DeepBrainChain library.
//
// The DeepBrainChain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The DeepBrainChain library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the DeepBrainChain library. If not, see <http://www.gnu.org/licenses/>.

// Package metrics exposes prometheus counters/histograms for every core
// action, the ambient observability surface the teacher's node carries
// regardless of which chain features are in scope (spec.md's Non-goals
// exclude on-chain governance and wire propagation, never ambient
// metrics — see SPEC_FULL.md §1).
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dbc3",
		Name:      "actions_total",
		Help:      "Count of core actions processed, by module and outcome.",
	}, []string{"module", "action", "outcome"})

	ActionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dbc3",
		Name:      "action_duration_seconds",
		Help:      "Wall-clock duration of a core action.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"module", "action"})

	ReservedTotal = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "dbc3",
		Name:      "reserved_total",
		Help:      "Sum of reserved balances known to a module's own accounting (for P1 cross-checks).",
	}, []string{"module"})

	BlockTickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dbc3",
		Name:      "block_tick_duration_seconds",
		Help:      "Wall-clock duration of the per-block timeout scan.",
	})
)

func init() {
	prometheus.MustRegister(ActionsTotal, ActionDuration, ReservedTotal, BlockTickDuration)
}

// Observe records a completed action outcome for dashboards.
func Observe(module, action, outcome string, seconds float64) {
	ActionsTotal.WithLabelValues(module, action, outcome).Inc()
	ActionDuration.WithLabelValues(module, action).Observe(seconds)
}
