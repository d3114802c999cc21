// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for:
// - API endpoint latency and throughput
// - Predictions per strategy and category
// - Strategy load state and zero-shot circuit breaker
// - Offline training accuracy
// - Prediction event transport

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Prediction Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipitnews_predictions_total",
			Help: "Total number of served predictions",
		},
		[]string{"strategy", "category"},
	)

	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipitnews_prediction_errors_total",
			Help: "Total number of failed predictions",
		},
		[]string{"strategy", "reason"}, // reason: "unavailable", "processing"
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flipitnews_prediction_duration_seconds",
			Help:    "Prediction latency in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"strategy"},
	)

	PredictionConfidence = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flipitnews_prediction_confidence",
			Help:    "Confidence of served predictions",
			Buckets: []float64{0.5, 0.6, 0.65, 0.7, 0.8, 0.9, 0.95, 1},
		},
		[]string{"strategy"},
	)

	// StrategyState reports 0=unloaded, 1=loaded, 2=failed.
	StrategyState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "flipitnews_strategy_state",
			Help: "Classification strategy state (0=unloaded, 1=loaded, 2=failed)",
		},
		[]string{"strategy"},
	)

	ModelReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipitnews_model_reloads_total",
			Help: "Total number of custom model reload attempts",
		},
		[]string{"result"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Training Metrics
	TrainingAccuracy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "flipitnews_training_accuracy",
			Help: "Held-out accuracy of each candidate model in the last training run",
		},
		[]string{"model"},
	)

	TrainingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flipitnews_training_duration_seconds",
			Help:    "Candidate fit and evaluation time in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
		},
		[]string{"model"},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipitnews_events_published_total",
			Help: "Total number of prediction events published",
		},
		[]string{"result"}, // result: "success", "failure"
	)

	EventsConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flipitnews_events_consumed_total",
			Help: "Total number of prediction events consumed",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPrediction records a served prediction
func RecordPrediction(strategy, category string, confidence float64, duration time.Duration) {
	PredictionsTotal.WithLabelValues(strategy, category).Inc()
	PredictionDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	PredictionConfidence.WithLabelValues(strategy).Observe(confidence)
}

// RecordPredictionError records a failed prediction
func RecordPredictionError(strategy, reason string) {
	PredictionErrors.WithLabelValues(strategy, reason).Inc()
}

// SetStrategyState records a strategy's load state
func SetStrategyState(strategy string, state int) {
	StrategyState.WithLabelValues(strategy).Set(float64(state))
}

// RecordModelReload records a custom model reload attempt
func RecordModelReload(err error) {
	if err != nil {
		ModelReloads.WithLabelValues("failure").Inc()
		return
	}
	ModelReloads.WithLabelValues("success").Inc()
}

// RecordCircuitBreakerTransition records a circuit breaker state change.
// States follow gobreaker: 0=closed, 1=half-open, 2=open.
func RecordCircuitBreakerTransition(name, from, to string, toState int) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(float64(toState))
}

// RecordCircuitBreakerRequest records the outcome of a guarded call
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordTrainingRun records a candidate's held-out accuracy and fit time
func RecordTrainingRun(model string, accuracy float64, duration time.Duration) {
	TrainingAccuracy.WithLabelValues(model).Set(accuracy)
	TrainingDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordEventPublish records a prediction event publish attempt
func RecordEventPublish(err error) {
	if err != nil {
		EventsPublished.WithLabelValues("failure").Inc()
		return
	}
	EventsPublished.WithLabelValues("success").Inc()
}

// RecordEventConsumed records a consumed prediction event
func RecordEventConsumed() {
	EventsConsumed.Inc()
}
