package validator

import (
	"context"
	"errors"
	"strings"
)

// And passes iff every child passes. Children run left to right and evaluation
// stops at the first failing child, whose message is reported unless the
// combinator carries its own override.
func And(rules ...Rule) Rule {
	return Rule{
		id:       "and",
		params:   Params{"count": len(rules)},
		template: Template("must satisfy all conditions"),
		presence: anyPresence(rules),
		eval: func(ctx context.Context, rc RuleContext, value any, onFault faultHook) outcome {
			for _, child := range rules {
				if o := child.run(ctx, rc, value, onFault); !o.passed {
					return o
				}
			}
			return outcome{passed: true}
		},
	}
}

// Or passes iff at least one child passes. Every child is evaluated; when all
// of them fail the combinator reports a message synthesized from the children
// unless it carries its own override.
func Or(rules ...Rule) Rule {
	r := Rule{
		id:       "or",
		params:   Params{"count": len(rules)},
		template: Template("must satisfy at least one condition"),
		presence: anyPresence(rules),
	}
	r.eval = func(ctx context.Context, rc RuleContext, value any, onFault faultHook) outcome {
		if len(rules) == 0 {
			return outcome{passed: true}
		}

		passed := false
		messages := make([]string, 0, len(rules))
		var causes []error
		for _, child := range rules {
			o := child.run(ctx, rc, value, onFault)
			if o.passed {
				passed = true
				continue
			}
			messages = append(messages, o.message)
			if o.cause != nil {
				causes = append(causes, o.cause)
			}
		}
		if passed {
			return outcome{passed: true}
		}

		// A fault only surfaces when every branch faulted; otherwise the
		// remaining branches failed on their own merits.
		if len(causes) == len(rules) {
			return r.fault(rc, errors.Join(causes...), nil)
		}

		return outcome{
			message: "must satisfy at least one of: " + strings.Join(messages, "; "),
			key:     r.translationKey(),
			params:  Params{"count": len(rules), "messages": messages},
		}
	}
	return r
}

// IfThenElse evaluates cond and delegates to then when it passes, otherwise to
// otherwise. A zero Rule branch always passes. The combinator's override, when
// present, replaces whichever branch message would otherwise surface.
func IfThenElse(cond, then, otherwise Rule) Rule {
	return Rule{
		id:       "if_then_else",
		params:   Params{"condition": cond.ID(), "then": then.ID(), "else": otherwise.ID()},
		template: Template("must satisfy the conditional rule"),
		presence: cond.presence || then.presence || otherwise.presence,
		eval: func(ctx context.Context, rc RuleContext, value any, onFault faultHook) outcome {
			c := cond.run(ctx, rc, value, onFault)
			if c.cause != nil {
				return c
			}
			if c.passed {
				return then.run(ctx, rc, value, onFault)
			}
			return otherwise.run(ctx, rc, value, onFault)
		},
	}
}

// Not inverts a rule. The reported message is the override when present,
// otherwise "must not satisfy: <child default message>".
func Not(rule Rule) Rule {
	return Rule{
		id:       "not",
		params:   Params{"rule": rule.ID(), "message": rule.DefaultMessage()},
		template: Template("must not satisfy: %{message}"),
		eval: func(ctx context.Context, rc RuleContext, value any, onFault faultHook) outcome {
			o := rule.run(ctx, rc, value, onFault)
			if o.cause != nil {
				return o
			}
			if o.passed {
				return outcome{
					message: "must not satisfy: " + rule.DefaultMessage(),
					key:     "validation.not",
					params:  Params{"rule": rule.ID(), "message": rule.DefaultMessage()},
				}
			}
			return outcome{passed: true}
		},
	}
}

func anyPresence(rules []Rule) bool {
	for _, r := range rules {
		if r.presence {
			return true
		}
	}
	return false
}
