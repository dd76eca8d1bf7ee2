// Package prometheus exposes engine measurements through a private
// Prometheus registry.
package prometheus

import (
	"time"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
)

// EngineMetrics holds the molecule engine metrics.  It satisfies the editor
// session's metrics sink.
type EngineMetrics struct {
	// Inference
	InferencePassesTotal CounterVec
	BondsTotal           CounterVec

	// Analysis
	AnalysisDuration  HistogramVec
	MoleculesAnalysed HistogramVec

	// Reactions
	ReactionsTotal CounterVec

	// History
	HistoryDepth GaugeVec
}

var (
	DefaultAnalysisDurationBuckets = []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .1}
	DefaultMoleculeCountBuckets    = []float64{0, 1, 2, 3, 5, 8, 13, 21}
)

// NewEngineMetrics registers all engine metrics on collector.
func NewEngineMetrics(collector MetricsCollector) *EngineMetrics {
	m := &EngineMetrics{}

	m.InferencePassesTotal = collector.RegisterCounter("inference_passes_total", "Bond inference passes")
	m.BondsTotal = collector.RegisterCounter("inference_bonds_total", "Candidate bonds by outcome", "outcome")

	m.AnalysisDuration = collector.RegisterHistogram("analysis_duration_seconds", "Canvas analysis duration", DefaultAnalysisDurationBuckets)
	m.MoleculesAnalysed = collector.RegisterHistogram("analysis_molecules", "Molecules per analysis", DefaultMoleculeCountBuckets)

	m.ReactionsTotal = collector.RegisterCounter("reactions_total", "Reaction tool outcomes", "kind", "outcome")

	m.HistoryDepth = collector.RegisterGauge("history_depth", "Undo and redo stack sizes", "stack")

	return m
}

// ObserveInference records one inference pass.
func (m *EngineMetrics) ObserveInference(stats molecule.InferenceStats) {
	m.InferencePassesTotal.WithLabelValues().Inc()
	m.BondsTotal.WithLabelValues("formed").Add(float64(stats.Formed))
	m.BondsTotal.WithLabelValues("declined").Add(float64(stats.Declined))
	m.BondsTotal.WithLabelValues("suppressed").Add(float64(stats.Suppressed))
}

// ObserveReaction counts a reaction click by kind and outcome.
func (m *EngineMetrics) ObserveReaction(kind, outcome string) {
	m.ReactionsTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveAnalysis records one report.
func (m *EngineMetrics) ObserveAnalysis(d time.Duration, molecules int) {
	m.AnalysisDuration.WithLabelValues().Observe(d.Seconds())
	m.MoleculesAnalysed.WithLabelValues().Observe(float64(molecules))
}

// SetHistoryDepth publishes the undo and redo stack sizes.
func (m *EngineMetrics) SetHistoryDepth(undo, redo int) {
	m.HistoryDepth.WithLabelValues("undo").Set(float64(undo))
	m.HistoryDepth.WithLabelValues("redo").Set(float64(redo))
}
