package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssessmentsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_assessments_total",
			Help: "Total number of assessments scored and stored, by band",
		},
		[]string{"band"},
	)

	AssessmentErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_assessment_errors_total",
			Help: "Total number of rejected or failed assessment requests, by error kind",
		},
		[]string{"kind"},
	)

	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "readiness_scoring_duration_seconds",
			Help:    "Duration of a scoring call including the catalog lookup",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "readiness_catalog_lookup_retries_total",
			Help: "Total number of retried tool catalog lookups",
		},
	)

	SheetSync = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_sheet_sync_total",
			Help: "Total number of spreadsheet mirror attempts, by result",
		},
		[]string{"result"},
	)
)
