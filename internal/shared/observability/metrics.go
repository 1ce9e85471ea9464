package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "typefold_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "typefold_analysis_seconds",
		Help:    "Time spent on high-level analysis tasks.",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})

	FilesAnalyzedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typefold_files_analyzed_total",
		Help: "Total number of source files analyzed.",
	})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typefold_diagnostics_total",
		Help: "Total number of diagnostics reported, by fixability.",
	}, []string{"fixable"})

	FixesAppliedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typefold_fixes_applied_total",
		Help: "Total number of fixes written back to disk.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typefold_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
