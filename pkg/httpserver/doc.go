// Package httpserver runs an http.Handler with sane timeouts and graceful shutdown.
//
// Run binds the listener, invokes start hooks and serves until the supplied
// context is cancelled or the process receives SIGINT or SIGTERM. Shutdown then
// drains in-flight requests within the configured timeout and runs stop hooks,
// which is where connections used by handlers (Redis, for example) are closed.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(ctx context.Context, log *slog.Logger) {
//			_ = rdb.Close()
//		}),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Liveness and Readiness build the probe handlers mounted at /healthz and /readyz.
package httpserver
