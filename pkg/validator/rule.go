package validator

import (
	"context"
	"maps"

	"github.com/dmitrymomot/shapekit/pkg/async"
)

// Params holds rule-specific configuration such as bounds or patterns.
// Params are also the interpolation source for message templates.
type Params map[string]any

// Verdict is the pending outcome of a rule check. Synchronous checks return
// Resolved; asynchronous checks return an *async.Future[bool]. The evaluator
// always awaits, so both kinds are interchangeable.
type Verdict interface {
	Await() (bool, error)
}

// Resolved returns a completed verdict for synchronous checks.
func Resolved(ok bool) Verdict {
	return resolved(ok)
}

type resolved bool

func (r resolved) Await() (bool, error) { return bool(r), nil }

// Faulted returns a completed verdict that reports a broken check.
func Faulted(err error) Verdict {
	return async.Rejected[bool](err)
}

// RuleContext describes where a rule is being evaluated.
type RuleContext struct {
	Shape   ShapeID
	Field   string
	Path    Path
	Parent  *Instance
	Present bool
}

// Sibling returns the value of another field of the instance holding the
// field under evaluation.
func (rc RuleContext) Sibling(field string) (any, bool) {
	if rc.Parent == nil {
		return nil, false
	}
	return rc.Parent.Get(field)
}

// CheckFunc is the predicate of a rule.
type CheckFunc func(ctx context.Context, rc RuleContext, value any) Verdict

// Rule is a named, parameterized predicate with a default failure message and
// an optional caller-supplied override. Rules are immutable values; WithMessage
// returns a modified copy. The zero Rule always passes.
type Rule struct {
	id          string
	params      Params
	template    MessageFunc
	check       CheckFunc
	eval        evalFunc
	message     string
	hasOverride bool
	presence    bool
	// opaque rules keep their identity in a closure, so equal id and params
	// do not make two of them the same rule.
	opaque bool
}

// NewRule builds a rule from its parts. Most callers use the family constructors
// (MinLength, Email, ...) or Func instead.
func NewRule(id string, params Params, message MessageFunc, check CheckFunc) Rule {
	return Rule{
		id:       id,
		params:   params,
		template: message,
		check:    check,
	}
}

// ID returns the stable rule identifier reported in failure records.
func (r Rule) ID() string {
	return r.id
}

// Params returns a copy of the rule configuration.
func (r Rule) Params() Params {
	if r.params == nil {
		return nil
	}
	return maps.Clone(r.params)
}

// DefaultMessage returns the rule's message with params interpolated, ignoring any override.
func (r Rule) DefaultMessage() string {
	if r.template == nil {
		return "is invalid"
	}
	return r.template(r.params)
}

// Message returns the message a failure of this rule reports.
func (r Rule) Message() string {
	if r.hasOverride {
		return r.message
	}
	return r.DefaultMessage()
}

// WithMessage returns a copy of r whose failures report msg verbatim.
func (r Rule) WithMessage(msg string) Rule {
	r.message = msg
	r.hasOverride = true
	return r
}

// HasOverride reports whether a caller-supplied message was attached.
func (r Rule) HasOverride() bool {
	return r.hasOverride
}

// Presence reports whether the rule still runs on an absent optional field.
func (r Rule) Presence() bool {
	return r.presence
}

// AsPresence returns a copy of r that runs even when an optional field is absent.
func (r Rule) AsPresence() Rule {
	r.presence = true
	return r
}

// IsZero reports whether r is the zero Rule.
func (r Rule) IsZero() bool {
	return r.id == "" && r.check == nil && r.eval == nil
}

func (r Rule) translationKey() string {
	if r.id == "" {
		return ""
	}
	return "validation." + r.id
}

func (r Rule) closure() Rule {
	r.opaque = true
	return r
}

// predicate builds a synchronous rule whose check only inspects the value.
func predicate(id string, params Params, tmpl string, fn func(v any) bool) Rule {
	return NewRule(id, params, Template(tmpl), func(_ context.Context, _ RuleContext, v any) Verdict {
		return Resolved(fn(v))
	})
}

// stringPredicate is predicate for string values; anything else fails.
func stringPredicate(id string, params Params, tmpl string, fn func(s string) bool) Rule {
	return predicate(id, params, tmpl, func(v any) bool {
		s, ok := asString(v)
		return ok && fn(s)
	})
}
