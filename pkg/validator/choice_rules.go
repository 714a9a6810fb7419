package validator

import (
	"slices"
	"strings"
)

// OneOf passes when the value equals one of options.
func OneOf[T comparable](options ...T) Rule {
	return predicate("one_of", Params{"options": toAnySlice(options)}, "must be one of: %{options}", func(v any) bool {
		return slices.ContainsFunc(options, func(o T) bool { return equalValues(v, o) })
	})
}

// NoneOf passes when the value equals none of options.
func NoneOf[T comparable](options ...T) Rule {
	return predicate("none_of", Params{"options": toAnySlice(options)}, "must not be one of: %{options}", func(v any) bool {
		return !slices.ContainsFunc(options, func(o T) bool { return equalValues(v, o) })
	})
}

// OneOfFold is OneOf for strings, compared case-insensitively.
func OneOfFold(options ...string) Rule {
	return stringPredicate("one_of_fold", Params{"options": options}, "must be one of (case-insensitive): %{options}", func(s string) bool {
		return slices.ContainsFunc(options, func(o string) bool { return strings.EqualFold(s, o) })
	})
}

func toAnySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
