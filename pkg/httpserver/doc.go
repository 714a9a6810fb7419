// Package httpserver runs the HTTP listener of shapecheck serve.
//
// Server serves a handler until its context is cancelled and then shuts down
// gracefully within the configured timeout:
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	err := srv.Run(ctx, router)
//
// HealthCheckHandler turns named probes, such as pg.Healthcheck or
// redis.Healthcheck, into a JSON readiness endpoint. RequestID attaches a
// correlation id to each request; RequestIDExtractor adds it to log records.
package httpserver
