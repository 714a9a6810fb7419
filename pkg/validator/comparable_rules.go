package validator

import "context"

// Comparison builds rules that compare a field with another field of the same
// instance.
type Comparison struct{}

// Compare starts a cross-field comparison.
func Compare() Comparison {
	return Comparison{}
}

// EqualTo passes when the value equals the sibling field.
func (Comparison) EqualTo(field string) Rule {
	return siblingRule("equal_to", field, "must be equal to %{field}", equalValues)
}

// NotEqualTo passes when the value differs from the sibling field.
func (Comparison) NotEqualTo(field string) Rule {
	return siblingRule("not_equal_to", field, "must not be equal to %{field}", func(a, b any) bool {
		return !equalValues(a, b)
	})
}

func (Comparison) GreaterThan(field string) Rule {
	return orderedRule("greater_than", field, "must be greater than %{field}", func(c int) bool { return c > 0 })
}

func (Comparison) GreaterThanOrEqual(field string) Rule {
	return orderedRule("greater_than_or_equal", field, "must be greater than or equal to %{field}", func(c int) bool { return c >= 0 })
}

func (Comparison) LessThan(field string) Rule {
	return orderedRule("less_than", field, "must be less than %{field}", func(c int) bool { return c < 0 })
}

func (Comparison) LessThanOrEqual(field string) Rule {
	return orderedRule("less_than_or_equal", field, "must be less than or equal to %{field}", func(c int) bool { return c <= 0 })
}

func siblingRule(id, field, tmpl string, cmp func(value, other any) bool) Rule {
	return NewRule(id, Params{"field": field}, Template(tmpl),
		func(_ context.Context, rc RuleContext, v any) Verdict {
			other, ok := rc.Sibling(field)
			if !ok {
				return Resolved(false)
			}
			return Resolved(cmp(v, other))
		},
	)
}

func orderedRule(id, field, tmpl string, accept func(c int) bool) Rule {
	return siblingRule(id, field, tmpl, func(v, other any) bool {
		c, ok := compareValues(v, other)
		return ok && accept(c)
	})
}

// Equals passes when the value equals want.
func Equals(want any) Rule {
	return predicate("equals", Params{"value": want}, "must be equal to %{value}", func(v any) bool {
		return equalValues(v, want)
	})
}

// NotEquals passes when the value differs from unwanted.
func NotEquals(unwanted any) Rule {
	return predicate("not_equals", Params{"value": unwanted}, "must not be equal to %{value}", func(v any) bool {
		return !equalValues(v, unwanted)
	})
}
