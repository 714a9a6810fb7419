package validator

import "context"

// Func builds a synchronous rule from a plain predicate.
func Func(id string, pred func(value any) bool, message string) Rule {
	return predicate(id, nil, message, pred).closure()
}

// FuncContext builds a rule from a check that needs the evaluation context,
// for example to read sibling fields. A returned error is a rule fault.
func FuncContext(id string, check func(ctx context.Context, rc RuleContext, value any) (bool, error), message string) Rule {
	return NewRule(id, nil, Template(message), func(ctx context.Context, rc RuleContext, v any) Verdict {
		ok, err := check(ctx, rc, v)
		if err != nil {
			return Faulted(err)
		}
		return Resolved(ok)
	}).closure()
}
