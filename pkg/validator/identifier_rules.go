package validator

import (
	"encoding/base64"
	"regexp"
	"strings"
)

var (
	slugRegex      = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	usernameRegex  = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	handleRegex    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
	skuRegex       = regexp.MustCompile(`^[A-Z0-9-]+$`)
	hexStringRegex = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
	subdomainRegex = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
	semverRegex    = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)
)

// Slug passes for lowercase letters and digits separated by single hyphens.
func Slug() Rule {
	return stringPredicate("slug", nil, "must be a valid slug (lowercase letters, numbers, and hyphens only)", slugRegex.MatchString)
}

func Username(minLen, maxLen int) Rule {
	return stringPredicate("username", Params{"min": minLen, "max": maxLen},
		"username must be %{min}-%{max} characters long and contain only letters, numbers, underscores, and hyphens",
		func(s string) bool {
			return len(s) >= minLen && len(s) <= maxLen && usernameRegex.MatchString(s)
		},
	)
}

// Handle is Username that must also start with a letter.
func Handle(minLen, maxLen int) Rule {
	return stringPredicate("handle", Params{"min": minLen, "max": maxLen},
		"handle must be %{min}-%{max} characters, start with a letter, and contain only letters, numbers, underscores, and hyphens",
		func(s string) bool {
			return len(s) >= minLen && len(s) <= maxLen && handleRegex.MatchString(s)
		},
	)
}

func SKU() Rule {
	return stringPredicate("sku", nil,
		"SKU must be 3-50 characters and contain only uppercase letters, numbers, and hyphens",
		func(s string) bool {
			return len(s) >= 3 && len(s) <= 50 && skuRegex.MatchString(s)
		},
	)
}

// HexString passes for hexadecimal strings. A positive length also pins the
// exact number of characters.
func HexString(length int) Rule {
	tmpl := "must be a valid hexadecimal string"
	if length > 0 {
		tmpl += " of length %{length}"
	}
	return stringPredicate("hex_string", Params{"length": length}, tmpl, func(s string) bool {
		if length > 0 && len(s) != length {
			return false
		}
		return hexStringRegex.MatchString(s)
	})
}

func Base64() Rule {
	return stringPredicate("base64", nil, "must be a valid base64 encoded string", func(s string) bool {
		if strings.TrimSpace(s) == "" {
			return false
		}
		_, err := base64.StdEncoding.DecodeString(s)
		return err == nil
	})
}

func DomainName() Rule {
	return stringPredicate("domain", nil, "must be a valid domain name", isDomainName)
}

func isDomainName(value string) bool {
	if value == "" || len(value) > 253 {
		return false
	}

	labels := strings.Split(value, ".")
	if len(labels) < 2 {
		return false
	}

	for i, label := range labels {
		if !subdomainRegex.MatchString(label) || len(label) > 63 {
			return false
		}
		// TLD is letters only, at least two of them.
		if i == len(labels)-1 {
			if len(label) < 2 || !alphaRegex.MatchString(label) {
				return false
			}
		}
	}
	return true
}

func Subdomain() Rule {
	return stringPredicate("subdomain", nil,
		"must be a valid subdomain (1-63 characters, letters, numbers, and hyphens)",
		func(s string) bool {
			return len(s) <= 63 && subdomainRegex.MatchString(s)
		},
	)
}

func SemVer() Rule {
	return stringPredicate("semver", nil, "must be a valid semantic version (e.g., 1.2.3, 1.0.0-alpha.1)", semverRegex.MatchString)
}
