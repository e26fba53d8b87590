// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Package supervisor runs the server's long-lived components under a suture
supervision tree.

Tree layout:

	bookrec (root)
	├── engine-layer
	│   └── engine-build   (services.EngineService, one-shot)
	└── api-layer
	    └── http-server    (services.HTTPServerService)

Both layers start together. The HTTP server answers health checks at once
and returns 503 NOT_READY from data endpoints until the engine build
attaches its result. A finished build returns suture.ErrDoNotRestart so it
never runs twice; a transient failure is restarted with backoff.

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog, bridged onto zerolog with logging.NewSlogLogger:

	tree, err := supervisor.NewSupervisorTree(
	    logging.NewSlogLogger("supervisor"),
	    supervisor.DefaultTreeConfig(),
	)
	tree.AddEngineService(services.NewEngineService(build, handler.SetEngine, onFatal, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
