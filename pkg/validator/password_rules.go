package validator

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?~` + "`" + `]`)
)

// commonPasswords holds lowercased entries of public breach top lists.
var commonPasswords = func() map[string]struct{} {
	list := strings.Fields(`
		123456 1234567 12345678 123456789 1234567890 111111 000000 123123 654321
		password password1 password123 passw0rd qwerty qwerty123 qwertyuiop
		1q2w3e4r 1qaz2wsx zaq12wsx asdfghjkl zxcvbnm abc123 abcd1234 a1b2c3
		admin admin123 administrator root toor guest test user login master
		secret letmein welcome iloveyou trustno1 monkey dragon shadow sunshine
		princess football baseball superman batman starwars pokemon freedom
		whatever michael jordan hunter ashley charlie donald
	`)
	set := make(map[string]struct{}, len(list))
	for _, p := range list {
		set[p] = struct{}{}
	}
	return set
}()

// PasswordStrengthConfig describes a password policy.
type PasswordStrengthConfig struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigits    bool
	RequireSpecial   bool
	MinCharClasses   int
}

// DefaultPasswordStrength requires 8 to 128 characters and all four
// character classes.
func DefaultPasswordStrength() PasswordStrengthConfig {
	return PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        128,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigits:    true,
		RequireSpecial:   true,
		MinCharClasses:   3,
	}
}

func StrongPassword(config PasswordStrengthConfig) Rule {
	params := Params{
		"min_length":        config.MinLength,
		"max_length":        config.MaxLength,
		"require_uppercase": config.RequireUppercase,
		"require_lowercase": config.RequireLowercase,
		"require_digits":    config.RequireDigits,
		"require_special":   config.RequireSpecial,
		"min_char_classes":  config.MinCharClasses,
	}
	return stringPredicate("password_strength", params,
		"password must be %{min_length}-%{max_length} characters with required character types",
		func(value string) bool {
			n := utf8.RuneCountInString(value)
			if n < config.MinLength || (config.MaxLength > 0 && n > config.MaxLength) {
				return false
			}

			hasUpper := uppercaseRegex.MatchString(value)
			hasLower := lowercaseRegex.MatchString(value)
			hasDigit := digitRegex.MatchString(value)
			hasSpecial := specialCharRegex.MatchString(value)

			if (config.RequireUppercase && !hasUpper) ||
				(config.RequireLowercase && !hasLower) ||
				(config.RequireDigits && !hasDigit) ||
				(config.RequireSpecial && !hasSpecial) {
				return false
			}

			classes := 0
			for _, has := range []bool{hasUpper, hasLower, hasDigit, hasSpecial} {
				if has {
					classes++
				}
			}
			return classes >= config.MinCharClasses
		},
	)
}

func NotCommonPassword() Rule {
	return stringPredicate("password_common", nil, "password is too common, please choose a different one", func(value string) bool {
		_, found := commonPasswords[strings.ToLower(value)]
		return !found
	})
}

// PasswordEntropy requires at least minEntropy bits of estimated entropy.
func PasswordEntropy(minEntropy float64) Rule {
	return stringPredicate("password_entropy", Params{"min_entropy": minEntropy},
		"password entropy too low, minimum %{min_entropy} bits required",
		func(value string) bool {
			return passwordEntropy(value) >= minEntropy
		},
	)
}

// passwordEntropy is length * log2(pool), where pool is the number of
// distinct runes capped by the size of the character classes in use.
func passwordEntropy(password string) float64 {
	var (
		distinct = make(map[rune]struct{})
		pool     int
		seen     [4]bool
		sizes    = [4]int{26, 26, 10, 32}
	)
	for _, r := range password {
		distinct[r] = struct{}{}
		switch {
		case unicode.IsLower(r):
			seen[0] = true
		case unicode.IsUpper(r):
			seen[1] = true
		case unicode.IsDigit(r):
			seen[2] = true
		default:
			seen[3] = true
		}
	}
	for i, ok := range seen {
		if ok {
			pool += sizes[i]
		}
	}
	if pool == 0 {
		return 0
	}
	return float64(utf8.RuneCountInString(password)) * math.Log2(float64(min(len(distinct), pool)))
}
