package validator

import (
	"strings"
	"unicode/utf8"
)

// IsString passes for string values.
func IsString() Rule {
	return predicate("string", nil, "must be a string", func(v any) bool {
		_, ok := asString(v)
		return ok
	})
}

// NotBlank passes for strings with at least one non-whitespace character.
func NotBlank() Rule {
	return stringPredicate("not_blank", nil, "must not be blank", func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
}

// MinLength passes for strings of at least min characters.
func MinLength(min int) Rule {
	return stringPredicate("min_length", Params{"min": min},
		"must be at least %{min} characters long",
		func(s string) bool { return utf8.RuneCountInString(s) >= min },
	)
}

// MaxLength passes for strings of at most max characters.
func MaxLength(max int) Rule {
	return stringPredicate("max_length", Params{"max": max},
		"must be at most %{max} characters long",
		func(s string) bool { return utf8.RuneCountInString(s) <= max },
	)
}

// Length passes for strings of exactly n characters.
func Length(n int) Rule {
	return stringPredicate("exact_length", Params{"length": n},
		"must be exactly %{length} characters long",
		func(s string) bool { return utf8.RuneCountInString(s) == n },
	)
}

// LengthBetween passes for strings whose length is within [min, max].
func LengthBetween(min, max int) Rule {
	return stringPredicate("length_between", Params{"min": min, "max": max},
		"must be between %{min} and %{max} characters long",
		func(s string) bool {
			n := utf8.RuneCountInString(s)
			return n >= min && n <= max
		},
	)
}

func StartsWith(prefix string) Rule {
	return stringPredicate("starts_with", Params{"prefix": prefix},
		"must start with %{prefix}",
		func(s string) bool { return strings.HasPrefix(s, prefix) },
	)
}

func EndsWith(suffix string) Rule {
	return stringPredicate("ends_with", Params{"suffix": suffix},
		"must end with %{suffix}",
		func(s string) bool { return strings.HasSuffix(s, suffix) },
	)
}

func Contains(substr string) Rule {
	return stringPredicate("contains", Params{"substring": substr},
		"must contain %{substring}",
		func(s string) bool { return strings.Contains(s, substr) },
	)
}

// Lowercase passes for strings without uppercase letters.
func Lowercase() Rule {
	return stringPredicate("lowercase", nil, "must be lowercase", func(s string) bool {
		return s == strings.ToLower(s)
	})
}

// Uppercase passes for strings without lowercase letters.
func Uppercase() Rule {
	return stringPredicate("uppercase", nil, "must be uppercase", func(s string) bool {
		return s == strings.ToUpper(s)
	})
}
