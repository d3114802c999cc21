// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

/*
Package middleware provides the HTTP middleware shared by every route.

Components:

  - RequestID: assigns or propagates X-Request-ID and stores it in the
    logging context
  - AccessLog: one zerolog line per request, level chosen by status
  - PrometheusMetrics: request count, duration and in-flight gauge,
    labelled by chi route pattern
  - Compression: gzip via klauspost/compress

All middleware uses the http.HandlerFunc form; the api package adapts it
to chi's func(http.Handler) http.Handler. Order in the router:

	RequestID -> AccessLog -> PrometheusMetrics -> Compression -> handler

RequestID must run first so the other layers log and label with the ID.
*/
package middleware
