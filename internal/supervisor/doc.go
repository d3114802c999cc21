// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

/*
Package supervisor runs the server's long-lived components under a suture v4
supervisor tree.

	flipitnews
	├── data-layer
	│   └── model-reload          (SIGHUP -> classify.Service.Reload)
	├── messaging-layer
	│   └── prediction-log-consumer
	└── api-layer
	    └── http-server

A crashed service is restarted with backoff inside its own layer. Supervisor
events are logged through sutureslog into the zerolog-backed slog logger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)

After the tree stops, UnstoppedServiceReport names services that ignored
cancellation.
*/
package supervisor
