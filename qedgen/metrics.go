package qedgen

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Stage names a filter of the generation pipeline.
type Stage string

const (
	StageSkeleton Stage = "skeleton" // skeleton graphs consumed
	StageValence  Stage = "valence"  // edge labelings vs the valence rule
	StageLegs     Stage = "legs"     // labelings vs the external leg counts
	StageFlow     Stage = "flow"     // fermion orientations vs flow conservation
	StageDedup    Stage = "dedup"    // canonical graphs vs already emitted ones
)

// Outcome is what happened to a candidate at a Stage.
type Outcome string

const (
	Accepted Outcome = "accepted"
	Rejected Outcome = "rejected"
)

// Metrics counts candidates passing through each Stage.
//
// A nil *Metrics is valid and counts nothing.
type Metrics struct {
	candidates *prometheus.CounterVec
}

// NewMetrics creates stage counters and registers them with reg (if non-nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qedgen",
			Name:      "candidates_total",
			Help:      "Candidates seen by each generation stage, by outcome.",
		}, []string{"stage", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.candidates)
	}
	return m
}

// Observe counts one candidate at the given stage.
func (m *Metrics) Observe(stage Stage, outcome Outcome) {
	if m == nil {
		return
	}
	m.candidates.WithLabelValues(string(stage), string(outcome)).Inc()
}

// ObserveIf counts an accepted candidate if ok, otherwise a rejected one, and returns ok.
func (m *Metrics) ObserveIf(stage Stage, ok bool) bool {
	if ok {
		m.Observe(stage, Accepted)
	} else {
		m.Observe(stage, Rejected)
	}
	return ok
}

// Count returns the current count for the given stage and outcome.
func (m *Metrics) Count(stage Stage, outcome Outcome) int64 {
	if m == nil {
		return 0
	}
	var pb dto.Metric
	if err := m.candidates.WithLabelValues(string(stage), string(outcome)).Write(&pb); err != nil {
		return 0
	}
	return int64(pb.GetCounter().GetValue())
}

// AllStages lists every Stage in pipeline order.
var AllStages = []Stage{
	StageSkeleton,
	StageValence,
	StageLegs,
	StageFlow,
	StageDedup,
}
