package validator

import "context"

// Required fails when the value is absent, nil, a blank string or an empty
// collection. It runs even on optional fields.
func Required() Rule {
	return NewRule("required", nil, Template("field is required"),
		func(_ context.Context, rc RuleContext, v any) Verdict {
			return Resolved(rc.Present && !isEmpty(v))
		},
	).AsPresence()
}

// NotNil fails when the value is absent or nil. Unlike Required it accepts
// empty strings and collections.
func NotNil() Rule {
	return NewRule("not_nil", nil, Template("must not be null"),
		func(_ context.Context, rc RuleContext, v any) Verdict {
			return Resolved(rc.Present && v != nil)
		},
	).AsPresence()
}

// Empty passes only for absent or empty values.
func Empty() Rule {
	return NewRule("empty", nil, Template("must be empty"),
		func(_ context.Context, rc RuleContext, v any) Verdict {
			return Resolved(!rc.Present || isEmpty(v))
		},
	).AsPresence()
}
