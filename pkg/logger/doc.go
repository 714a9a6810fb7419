// Package logger builds the *slog.Logger used across shapekit.
//
// New returns a JSON or text logger configured by Option values. Records
// pass through a handler that appends attributes taken from the context,
// so a request id set by HTTP middleware shows up on every record logged
// with that context.
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "shapecheck"),
//	    logger.WithLevelName("debug"),
//	    logger.WithContextExtractors(httpserver.RequestIDExtractor()),
//	)
//	log.InfoContext(ctx, "validation failed",
//	    logger.Shape(inst.Shape()),
//	    logger.Failures(len(res.Errors)),
//	)
//
// Attribute helpers keep key names stable: Shape, Path, Rule, Failures,
// Duration and Component describe validation work. Error returns an empty
// attribute for a nil error, so it can be passed unconditionally.
package logger
