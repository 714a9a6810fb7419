package validator

import (
	"context"
	"fmt"
)

func sequencePredicate(id string, params Params, tmpl string, fn func(items []any) bool) Rule {
	return predicate(id, params, tmpl, func(v any) bool {
		items, ok := asSequence(v)
		return ok && fn(items)
	})
}

func IsArray() Rule {
	return sequencePredicate("array", nil, "must be an array", func([]any) bool { return true })
}

func MinItems(min int) Rule {
	return sequencePredicate("min_items", Params{"min": min}, "must have at least %{min} items", func(items []any) bool {
		return len(items) >= min
	})
}

func MaxItems(max int) Rule {
	return sequencePredicate("max_items", Params{"max": max}, "must have at most %{max} items", func(items []any) bool {
		return len(items) <= max
	})
}

func ItemsLength(n int) Rule {
	return sequencePredicate("items_length", Params{"length": n}, "must have exactly %{length} items", func(items []any) bool {
		return len(items) == n
	})
}

// UniqueItems passes when no two elements are equal.
func UniqueItems() Rule {
	return sequencePredicate("unique_items", nil, "must not contain duplicate items", func(items []any) bool {
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				if equalValues(items[i], items[j]) {
					return false
				}
			}
		}
		return true
	})
}

// ArrayContains passes when at least one element equals want.
func ArrayContains(want any) Rule {
	return sequencePredicate("array_contains", Params{"value": want}, "must contain %{value}", func(items []any) bool {
		for _, item := range items {
			if equalValues(item, want) {
				return true
			}
		}
		return false
	})
}

// Each applies rule to every element of a sequence and stops at the first
// failing element. The failure reports the element index in its params and
// prefixes the element's message with it. A message override on rule is
// reported verbatim.
func Each(rule Rule) Rule {
	return Rule{
		id:       "each",
		params:   Params{"rule": rule.ID()},
		template: Template("every item must satisfy %{rule}"),
		eval: func(ctx context.Context, rc RuleContext, value any, onFault faultHook) outcome {
			items, ok := asSequence(value)
			if !ok {
				return outcome{
					message: "must be an array",
					key:     "validation.array",
				}
			}

			for i, item := range items {
				erc := rc
				erc.Path = rc.Path.Index(i)
				o := rule.run(ctx, erc, item, onFault)
				if o.passed {
					continue
				}
				if o.cause != nil {
					return o
				}

				params := Params{"index": i, "rule": rule.ID(), "message": o.message}
				for k, v := range o.params {
					if _, taken := params[k]; !taken {
						params[k] = v
					}
				}
				message := o.message
				if !o.overridden {
					message = fmt.Sprintf("item %d: %s", i, o.message)
				}
				return outcome{
					message:    message,
					key:        "validation.each",
					params:     params,
					overridden: o.overridden,
				}
			}
			return outcome{passed: true}
		},
	}
}
