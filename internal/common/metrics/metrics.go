// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SurveyStepTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_step_transitions_total",
			Help: "Total number of survey wizard transitions by step and outcome",
		},
		[]string{"step", "direction", "outcome"},
	)

	SurveySubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_submissions_total",
			Help: "Total number of survey submissions by outcome",
		},
		[]string{"outcome"},
	)

	SurveySubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "survey_submission_duration_seconds",
			Help: "Duration of survey submission calls in seconds",
		},
	)

	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_ranking_duration_seconds",
			Help:    "Duration of candidate normalization and ranking in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"kind"},
	)

	RankingResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_ranking_result_size",
			Help:    "Number of candidates left after filtering and truncation",
			Buckets: prometheus.LinearBuckets(0, 5, 11),
		},
		[]string{"kind"},
	)

	RecommendationFetchFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_fetch_failed_total",
			Help: "Total number of failed recommendation list fetches",
		},
		[]string{"kind"},
	)

	ExplanationFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explanation_fetches_total",
			Help: "Total number of on-demand explanation fetches by outcome",
		},
		[]string{"outcome"},
	)

	ExplanationFetchesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "explanation_fetches_active",
			Help: "Number of on-demand explanation fetches in flight",
		},
	)
)

// Outcome label values.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)
