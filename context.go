package shapekit

import (
	"context"

	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// ContextKey is a key for context values.
// It should be created as a package-level variable.
type ContextKey struct{ name string }

// NewContextKey creates a new context key.
// The name should be unique within your application.
//
// Example:
//
//	var userKey = shapekit.NewContextKey("user")
func NewContextKey(name string) *ContextKey {
	return &ContextKey{name}
}

func (k *ContextKey) String() string {
	return "shapekit context key " + k.name
}

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not present or has a different type.
//
// Example:
//
//	inst := shapekit.ContextValue[*validator.Instance](ctx, key)
func ContextValue[T any](ctx context.Context, key any) T {
	val, _ := ctx.Value(key).(T)
	return val
}

var instanceKey = NewContextKey("instance")

// WithInstance stores a validated instance in ctx.
func WithInstance(ctx context.Context, inst *validator.Instance) context.Context {
	return context.WithValue(ctx, instanceKey, inst)
}

// InstanceFromContext returns the instance stored by Bind.
func InstanceFromContext(ctx context.Context) (*validator.Instance, bool) {
	inst := ContextValue[*validator.Instance](ctx, instanceKey)
	return inst, inst != nil
}
