// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/flipitnews/internal/classify"
	"github.com/tomtom215/flipitnews/internal/metrics"
)

// Health states.
const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string                                        `json:"status"`
	Version       string                                        `json:"version,omitempty"`
	Strategies    map[classify.Strategy]classify.StrategyStatus `json:"strategies"`
	UptimeSeconds float64                                       `json:"uptime_seconds"`
}

// Health handles GET /health. The service is degraded when no strategy is
// loaded or when an enabled strategy failed to load; strategies that are
// switched off do not count. It always answers 200 so that load balancers
// keep routing to an instance that can still serve some strategies.
//
// @Summary Service health and per-strategy load state
// @Tags Core
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	strategies := h.classifier.Status()

	status := HealthDegraded
	for _, s := range strategies {
		if s.State == classify.StateLoaded {
			status = HealthHealthy
			break
		}
	}
	for _, s := range strategies {
		if s.Error != "" {
			status = HealthDegraded
			break
		}
	}

	uptime := time.Since(h.startTime).Seconds()
	metrics.AppUptime.Set(uptime)

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:        status,
		Version:       h.version,
		Strategies:    strategies,
		UptimeSeconds: uptime,
	})
}
