package plugin

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/shapekit/pkg/logger"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// Logging logs every validation call with its shape, duration and failure
// count. Successful calls are logged at Debug, failed ones at Info and errors
// at Error.
func Logging(l *slog.Logger) Middleware {
	if l == nil {
		l = logger.Discard()
	}
	return func(next validator.Validator) validator.Validator {
		return validator.ValidatorFunc(func(ctx context.Context, inst *validator.Instance) (*validator.Result, error) {
			start := time.Now()
			res, err := next.Validate(ctx, inst)

			attrs := []slog.Attr{logger.Duration(time.Since(start))}
			if inst != nil {
				attrs = append(attrs, logger.Shape(inst.Shape()))
			}

			switch {
			case err != nil:
				l.LogAttrs(ctx, slog.LevelError, "validation error", append(attrs, logger.Error(err))...)
			case res.Success:
				l.LogAttrs(ctx, slog.LevelDebug, "validation passed", attrs...)
			default:
				attrs = append(attrs, logger.Failures(len(res.Errors)), slog.Any("fields", res.Fields()))
				l.LogAttrs(ctx, slog.LevelInfo, "validation failed", attrs...)
			}
			return res, err
		})
	}
}
