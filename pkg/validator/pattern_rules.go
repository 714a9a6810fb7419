package validator

import (
	"regexp"
	"strings"
	"unicode"
)

// Matches passes for strings matching pattern. description names the pattern
// in the default message. An invalid pattern panics at declaration time.
func Matches(pattern, description string) Rule {
	re := regexp.MustCompile(pattern)
	return stringPredicate("pattern", Params{"pattern": pattern, "description": description},
		"must match %{description} pattern",
		re.MatchString,
	)
}

// NotMatches passes for strings that do not match pattern.
func NotMatches(pattern, description string) Rule {
	re := regexp.MustCompile(pattern)
	return stringPredicate("not_pattern", Params{"pattern": pattern, "description": description},
		"must not match %{description} pattern",
		func(s string) bool { return !re.MatchString(s) },
	)
}

func NoWhitespace() Rule {
	return stringPredicate("no_whitespace", nil, "must not contain whitespace characters", func(s string) bool {
		return !strings.ContainsFunc(s, unicode.IsSpace)
	})
}

func ASCIIOnly() Rule {
	return stringPredicate("ascii_only", nil, "must contain only ASCII characters", func(s string) bool {
		for _, r := range s {
			if r > unicode.MaxASCII {
				return false
			}
		}
		return true
	})
}

func PrintableChars() Rule {
	return stringPredicate("printable_chars", nil, "must contain only printable characters", func(s string) bool {
		for _, r := range s {
			if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
				return false
			}
		}
		return true
	})
}

func ContainsDigit() Rule {
	return stringPredicate("contains_digit", nil, "must contain at least one digit", func(s string) bool {
		return strings.ContainsFunc(s, unicode.IsDigit)
	})
}

func ContainsUppercase() Rule {
	return stringPredicate("contains_uppercase", nil, "must contain at least one uppercase letter", func(s string) bool {
		return strings.ContainsFunc(s, unicode.IsUpper)
	})
}

func ContainsLowercase() Rule {
	return stringPredicate("contains_lowercase", nil, "must contain at least one lowercase letter", func(s string) bool {
		return strings.ContainsFunc(s, unicode.IsLower)
	})
}

// WordCount passes for strings with between min and max whitespace-separated words.
func WordCount(min, max int) Rule {
	return stringPredicate("word_count", Params{"min": min, "max": max},
		"must contain between %{min} and %{max} words",
		func(s string) bool {
			n := len(strings.Fields(s))
			return n >= min && n <= max
		},
	)
}
