package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request correlation id under the key "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// Shape records the shape identifier under the key "shape".
func Shape[T ~string](id T) slog.Attr {
	return slog.String("shape", string(id))
}

// Path records a rendered field path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Rule records a rule identifier under the key "rule".
func Rule(id string) slog.Attr {
	return slog.String("rule", id)
}

// Failures records the number of reported failures under the key "failures".
func Failures(n int) slog.Attr {
	return slog.Int("failures", n)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
