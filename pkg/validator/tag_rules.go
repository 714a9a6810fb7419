package validator

import (
	"context"
	"errors"
	"sync"

	gvalidator "github.com/go-playground/validator/v10"
)

// tagValidator is shared by every Tag rule; *gvalidator.Validate caches parsed
// tags and is safe for concurrent use.
var tagValidator = sync.OnceValue(func() *gvalidator.Validate {
	return gvalidator.New(gvalidator.WithRequiredStructEnabled())
})

// Tag evaluates a go-playground/validator tag expression such as
// "required,email" or "oneof=red green". It lets callers reuse an existing
// struct-tag vocabulary. An unknown tag panics inside the validator and is
// reported as a rule fault.
func Tag(tag string) Rule {
	return NewRule("tag", Params{"tag": tag}, Template("does not meet the requirements for the '%{tag}' validation"),
		func(_ context.Context, _ RuleContext, v any) Verdict {
			err := tagValidator().Var(v, tag)
			if err == nil {
				return Resolved(true)
			}

			var fieldErrs gvalidator.ValidationErrors
			if errors.As(err, &fieldErrs) {
				return Resolved(false)
			}
			return Faulted(err)
		},
	)
}
