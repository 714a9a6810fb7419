package plugin

import "github.com/dmitrymomot/shapekit/pkg/validator"

// Middleware wraps a Validator with behavior applied at the call boundary.
type Middleware func(next validator.Validator) validator.Validator

// Chain wraps v with mws. The first middleware is the outermost one, so
// Chain(v, a, b) calls a, then b, then v.
func Chain(v validator.Validator, mws ...Middleware) validator.Validator {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			v = mws[i](v)
		}
	}
	return v
}
