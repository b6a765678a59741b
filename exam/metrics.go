// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exam

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Students      prometheus.Gauge
	Benches       prometheus.Gauge
	Matched       prometheus.Gauge
	Phases        prometheus.Counter
	Augmentations prometheus.Counter
	Runs          *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Students: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "seatmatch_students",
			Help: "Students in the last roster",
		}),
		Benches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "seatmatch_benches",
			Help: "Benches across all halls of the last layout",
		}),
		Matched: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "seatmatch_matched",
			Help: "Students seated by the last run",
		}),
		Phases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seatmatch_phases_total",
			Help: "Hopcroft-Karp phases run",
		}),
		Augmentations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seatmatch_augmentations_total",
			Help: "Augmenting paths applied",
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seatmatch_runs_total",
			Help: "Assignment runs by algorithm",
		}, []string{"algorithm"}),
	}
	if reg != nil {
		reg.MustRegister(m.Students, m.Benches, m.Matched, m.Phases, m.Augmentations, m.Runs)
	}
	return m
}

func (m *Metrics) Observe(summ Summary) {
	m.Students.Set(float64(summ.Students))
	m.Benches.Set(float64(summ.Benches))
	m.Matched.Set(float64(summ.Matched))
	m.Phases.Add(float64(summ.Phases))
	m.Augmentations.Add(float64(summ.Augmentations))
	m.Runs.WithLabelValues(summ.Algorithm).Inc()
}
