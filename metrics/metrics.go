package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PriceModelLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "price_model_load_failures_total",
			Help: "Total number of price model artifact loads that fell back to the heuristic",
		},
	)

	PricePredictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_predictions_total",
			Help: "Total number of price predictions by model",
		},
		[]string{"model"},
	)

	NeighborhoodPredictionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "neighborhood_prediction_failures_total",
			Help: "Total number of neighborhoods skipped during a ranking",
		},
	)

	NarrativeSummaries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "narrative_summaries_total",
			Help: "Total number of portfolio summaries by origin",
		},
		[]string{"generated_by"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route"},
	)
)
