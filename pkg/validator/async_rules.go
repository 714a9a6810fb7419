package validator

import (
	"context"

	"github.com/dmitrymomot/shapekit/pkg/async"
)

// AsyncCheck is a predicate that may block on I/O.
type AsyncCheck func(ctx context.Context, value any) (bool, error)

// Async wraps check into a rule whose verdict is computed on its own goroutine.
// An error or panic inside check is a rule fault, reported as
// "rule evaluation failed: <cause>" instead of aborting validation.
func Async(id string, check AsyncCheck, message string) Rule {
	return NewRule(id, nil, Template(message), func(ctx context.Context, _ RuleContext, v any) Verdict {
		return contextVerdict{
			ctx:    ctx,
			future: async.Async[any, bool](ctx, v, check),
		}
	}).closure()
}

// contextVerdict stops waiting when the evaluation context is done.
type contextVerdict struct {
	ctx    context.Context
	future *async.Future[bool]
}

func (v contextVerdict) Await() (bool, error) {
	return v.future.AwaitContext(v.ctx)
}

// Lookup answers whether a value is already known to some backing store.
type Lookup interface {
	Exists(ctx context.Context, value any) (bool, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, value any) (bool, error)

func (f LookupFunc) Exists(ctx context.Context, value any) (bool, error) {
	return f(ctx, value)
}

// Exists passes when lookup finds the value.
func Exists(lookup Lookup) Rule {
	return Async("exists", lookup.Exists, "does not exist")
}

// Unique passes when lookup does not find the value.
func Unique(lookup Lookup) Rule {
	return Async("unique", func(ctx context.Context, v any) (bool, error) {
		found, err := lookup.Exists(ctx, v)
		return !found, err
	}, "is already taken")
}
