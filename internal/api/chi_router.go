// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/flipitnews/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to chi's signature.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	trustProxy    bool
}

// NewRouter creates a router. A nil mw config uses open CORS, no rate
// limits and direct client IPs.
func NewRouter(handler *Handler, mw *ChiMiddlewareConfig) *Router {
	if mw == nil {
		mw = &ChiMiddlewareConfig{RateLimitDisabled: true}
	}
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mw),
		trustProxy:    mw.KeyByRealIP,
	}
}

// SetupChi builds the route tree.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	if router.trustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(router.chiMiddleware.CORS())
	r.Use(chiMiddleware(middleware.Compression))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Not Found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method Not Allowed", nil)
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Root)
		r.Get("/health", router.handler.Health)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitLogin())
		r.Use(APISecurityHeaders())
		r.Post("/token", router.handler.Token)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		r.Route("/predict", func(r chi.Router) {
			r.Post("/bert", router.handler.PredictBERT)
			r.Post("/custom", router.handler.PredictCustom)
			r.Post("/rules", router.handler.PredictRules)
		})

		r.Get("/news", router.handler.News)
		r.Get("/news/feed", router.handler.NewsFeed)
		r.Get("/recommendations/{user_id}", router.handler.Recommendations)
	})

	return r
}
