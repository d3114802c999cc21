// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered at package init with promauto and recorded through
the Record* helpers, so callers never touch label vectors directly.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

HTTP:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Classification:
  - flipitnews_predictions_total{strategy, category}
  - flipitnews_prediction_errors_total{strategy, reason}
  - flipitnews_prediction_duration_seconds{strategy}
  - flipitnews_prediction_confidence{strategy}
  - flipitnews_strategy_state{strategy}: 0=unloaded, 1=loaded, 2=failed
  - flipitnews_model_reloads_total{result}
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name, result},
    circuit_breaker_state_transitions_total{name, from_state, to_state}

Training (cmd/train, only meaningful when pushed or scraped during a run):
  - flipitnews_training_accuracy{model}
  - flipitnews_training_duration_seconds{model}

Events:
  - flipitnews_events_published_total{result}
  - flipitnews_events_consumed_total

# Example Queries

Prediction rate by strategy:

	sum by (strategy) (rate(flipitnews_predictions_total[5m]))

Share of custom requests rejected because no model is loaded:

	rate(flipitnews_prediction_errors_total{strategy="custom",reason="unavailable"}[5m])
	  / rate(api_requests_total{endpoint="/predict/custom"}[5m])
*/
package metrics
