package validator

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/shapekit/pkg/logger"
)

// Validator checks a materialized instance against its declared shape.
// Engine implements it; plugins wrap it.
type Validator interface {
	Validate(ctx context.Context, inst *Instance) (*Result, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, inst *Instance) (*Result, error)

func (f ValidatorFunc) Validate(ctx context.Context, inst *Instance) (*Result, error) {
	return f(ctx, inst)
}

// Engine materializes and validates instances of the shapes declared in a Registry.
// An Engine holds no per-call state and is safe for concurrent use once the
// registry is frozen.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostic logger that receives broken rule checks.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine bound to reg.
func New(reg *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the engine reads from.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Check materializes raw as shape and validates the result in one call.
func (e *Engine) Check(ctx context.Context, shape ShapeID, raw any) (*Instance, *Result, error) {
	inst, err := e.Materialize(shape, raw)
	if err != nil {
		return nil, nil, err
	}
	res, err := e.Validate(ctx, inst)
	if err != nil {
		return nil, nil, err
	}
	return inst, res, nil
}

func (e *Engine) onFault(ctx context.Context) faultHook {
	return func(r Rule, rc RuleContext, err error) {
		e.logger.WarnContext(ctx, "rule evaluation failed",
			logger.Shape(rc.Shape),
			logger.Path(rc.Path.String()),
			logger.Rule(r.ID()),
			logger.Error(err),
		)
	}
}
