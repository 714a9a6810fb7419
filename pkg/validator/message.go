package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MessageFunc renders a default failure message from rule params.
type MessageFunc func(Params) string

var placeholderRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Template returns a MessageFunc that substitutes "%{name}" placeholders with
// the matching param. Unknown placeholders are kept as-is.
func Template(tmpl string) MessageFunc {
	if !strings.Contains(tmpl, "%{") {
		return func(Params) string { return tmpl }
	}
	return func(p Params) string {
		return Interpolate(tmpl, p)
	}
}

// Interpolate substitutes "%{name}" placeholders in tmpl with values from p.
func Interpolate(tmpl string, p Params) string {
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if v, ok := p[name]; ok {
			return formatParam(v)
		}
		return match
	})
}

// FormatParams renders every param the way Interpolate does. Interpolating
// the rendered params gives the same text as interpolating p.
func FormatParams(p Params) Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = formatParam(v)
	}
	return out
}

func formatParam(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatParam(item)
		}
		return strings.Join(parts, ", ")
	case time.Time:
		return val.Format(time.DateOnly)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
