// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

/*
Package services adapts long-running components to suture.Service.

  - HTTPServerService: runs an *http.Server and shuts it down gracefully
    when the supervisor stops it (api layer)
  - ModelReloadService: calls Reload on the classification service for
    every SIGHUP (data layer)

The prediction-log consumer in package events already implements
suture.Service and is added to the messaging layer directly.
*/
package services
