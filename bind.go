package shapekit

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/shapekit/pkg/logger"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// Materializer converts raw decoded input into an instance of a shape.
// validator.Engine implements it.
type Materializer interface {
	Materialize(shape validator.ShapeID, raw any) (*validator.Instance, error)
}

// Option configures Bind and Handler.
type Option func(*options)

type options struct {
	maxBodySize  int64
	logger       *slog.Logger
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// WithMaxBodySize overrides DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithLogger sets the logger that receives request errors.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithErrorHandler replaces the default renderer of decoding and engine
// errors. Validation failures are always rendered as a Result.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(o *options) {
		if fn != nil {
			o.errorHandler = fn
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		maxBodySize: DefaultMaxBodySize,
		logger:      logger.Discard(),
	}
	o.errorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		_ = WriteError(w, err)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// check decodes, materializes and validates the request. It writes the
// response itself unless the request is valid.
func (o *options) check(w http.ResponseWriter, r *http.Request, v validator.Validator, m Materializer, shape validator.ShapeID) (*validator.Instance, *validator.Result, bool) {
	ctx := r.Context()

	raw, err := DecodeJSON(w, r, o.maxBodySize)
	if err != nil {
		o.logger.DebugContext(ctx, "request body rejected", logger.Shape(shape), logger.Error(err))
		o.errorHandler(w, r, err)
		return nil, nil, false
	}

	inst, err := m.Materialize(shape, raw)
	if err != nil {
		o.logger.ErrorContext(ctx, "materialize failed", logger.Shape(shape), logger.Error(err))
		o.errorHandler(w, r, err)
		return nil, nil, false
	}

	res, err := v.Validate(ctx, inst)
	if err != nil {
		o.logger.ErrorContext(ctx, "validate failed", logger.Shape(shape), logger.Error(err))
		o.errorHandler(w, r, err)
		return nil, nil, false
	}

	if !res.Success {
		if err := WriteResult(w, http.StatusUnprocessableEntity, res); err != nil {
			o.logger.ErrorContext(ctx, "write result failed", logger.Error(err))
		}
		return inst, res, false
	}
	return inst, res, true
}

// Bind returns middleware that validates the JSON request body as shape.
// Invalid requests get a 422 response carrying the Result; valid ones reach
// next with the instance available through InstanceFromContext.
//
// Example:
//
//	r.With(shapekit.Bind(engine, engine, "Signup")).Post("/signup", signup)
func Bind(v validator.Validator, m Materializer, shape validator.ShapeID, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inst, _, ok := o.check(w, r, v, m, shape)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(WithInstance(r.Context(), inst)))
		})
	}
}

// Handler returns an endpoint that validates the JSON request body against
// the shape chosen by resolve and always answers with the Result: 200 when
// valid, 422 otherwise.
func Handler(v validator.Validator, m Materializer, resolve func(*http.Request) validator.ShapeID, opts ...Option) http.Handler {
	o := newOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, res, ok := o.check(w, r, v, m, resolve(r))
		if !ok {
			return
		}
		if err := WriteResult(w, http.StatusOK, res); err != nil {
			o.logger.ErrorContext(r.Context(), "write result failed", logger.Error(err))
		}
	})
}
