package validator

import (
	"context"
	"fmt"
)

// outcome is the result of running one rule, combinators included.
type outcome struct {
	passed     bool
	message    string
	key        string
	params     Params
	overridden bool
	cause      error
}

// faultHook receives every broken check exactly once, at the rule that broke.
type faultHook func(r Rule, rc RuleContext, err error)

type evalFunc func(ctx context.Context, rc RuleContext, value any, onFault faultHook) outcome

func (r Rule) run(ctx context.Context, rc RuleContext, value any, onFault faultHook) outcome {
	if r.eval == nil {
		return r.runCheck(ctx, rc, value, onFault)
	}

	o := r.eval(ctx, rc, value, onFault)
	if o.passed || o.cause != nil {
		return o
	}
	if r.hasOverride {
		o.message = r.message
		o.overridden = true
		o.key = r.translationKey()
		o.params = r.params
	}
	return o
}

func (r Rule) runCheck(ctx context.Context, rc RuleContext, value any, onFault faultHook) (o outcome) {
	if r.check == nil {
		return outcome{passed: true}
	}

	defer func() {
		if p := recover(); p != nil {
			o = r.fault(rc, fmt.Errorf("%w: %v", ErrRulePanicked, p), onFault)
		}
	}()

	v := r.check(ctx, rc, value)
	if v == nil {
		return r.fault(rc, ErrNilVerdict, onFault)
	}

	ok, err := v.Await()
	if err != nil {
		return r.fault(rc, err, onFault)
	}
	if ok {
		return outcome{passed: true}
	}
	return r.failure()
}

func (r Rule) failure() outcome {
	o := outcome{
		message: r.DefaultMessage(),
		key:     r.translationKey(),
		params:  r.params,
	}
	if r.hasOverride {
		o.message = r.message
		o.overridden = true
	}
	return o
}

func (r Rule) fault(rc RuleContext, err error, onFault faultHook) outcome {
	if onFault != nil {
		onFault(r, rc, err)
	}
	return outcome{
		message: fmt.Sprintf("%s: %v", ruleFailedMessage, err),
		key:     "validation.rule_failed",
		params:  Params{"rule": r.id},
		cause:   err,
	}
}

const ruleFailedMessage = "rule evaluation failed"

// Apply runs r against a standalone value as if it were a present field with
// no siblings. It returns whether the rule passed and, when it did not, the
// message a failure record would carry.
func (r Rule) Apply(ctx context.Context, value any) (bool, string) {
	o := r.run(ctx, RuleContext{Present: value != nil}, value, nil)
	return o.passed, o.message
}
