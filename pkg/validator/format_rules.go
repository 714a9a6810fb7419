package validator

import (
	"encoding/json"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

var (
	// E.164 international phone number format
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

	alphanumericRegex  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaRegex         = regexp.MustCompile(`^[a-zA-Z]+$`)
	numericStringRegex = regexp.MustCompile(`^[0-9]+$`)
)

func Email() Rule {
	return stringPredicate("email", nil, "must be a valid email address", isEmail)
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// URL passes for absolute URLs with a scheme and a host.
func URL() Rule {
	return stringPredicate("url", nil, "must be a valid URL", func(s string) bool {
		_, ok := parseURL(s)
		return ok
	})
}

// URLWithScheme passes for absolute URLs whose scheme is one of schemes.
func URLWithScheme(schemes ...string) Rule {
	return stringPredicate("url_scheme", Params{"schemes": schemes},
		"must be a valid URL with scheme: %{schemes}",
		func(s string) bool {
			u, ok := parseURL(s)
			return ok && slices.Contains(schemes, strings.ToLower(u.Scheme))
		},
	)
}

func parseURL(s string) (*url.URL, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	u, err := url.ParseRequestURI(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}

// Phone passes for international numbers; spaces and dashes are ignored.
func Phone() Rule {
	return stringPredicate("phone", nil, "must be a valid phone number in international format", func(s string) bool {
		cleaned := strings.NewReplacer(" ", "", "-", "").Replace(s)
		return len(cleaned) >= 7 && phoneRegex.MatchString(cleaned)
	})
}

func IP() Rule {
	return stringPredicate("ip", nil, "must be a valid IP address", func(s string) bool {
		return net.ParseIP(s) != nil
	})
}

func IPv4() Rule {
	return stringPredicate("ipv4", nil, "must be a valid IPv4 address", func(s string) bool {
		ip := net.ParseIP(s)
		return ip != nil && ip.To4() != nil && !strings.Contains(s, ":")
	})
}

func IPv6() Rule {
	return stringPredicate("ipv6", nil, "must be a valid IPv6 address", func(s string) bool {
		return net.ParseIP(s) != nil && strings.Contains(s, ":")
	})
}

// MAC accepts AA:BB:CC:DD:EE:FF and AA-BB-CC-DD-EE-FF forms.
func MAC() Rule {
	return stringPredicate("mac", nil, "must be a valid MAC address", func(s string) bool {
		_, err := net.ParseMAC(s)
		return err == nil
	})
}

func Alphanumeric() Rule {
	return stringPredicate("alphanumeric", nil, "must contain only letters and numbers", alphanumericRegex.MatchString)
}

func Alpha() Rule {
	return stringPredicate("alpha", nil, "must contain only letters", alphaRegex.MatchString)
}

func NumericString() Rule {
	return stringPredicate("numeric_string", nil, "must contain only digits", numericStringRegex.MatchString)
}

// JSON passes for strings holding a valid JSON document.
func JSON() Rule {
	return stringPredicate("json", nil, "must be valid JSON", func(s string) bool {
		return json.Valid([]byte(s))
	})
}
