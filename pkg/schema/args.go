package schema

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Args are the positional arguments of a rule in a schema document.
type Args []any

func (a Args) at(i int) (any, error) {
	if i >= len(a) {
		return nil, fmt.Errorf("%w: argument %d is missing", ErrInvalidArgs, i+1)
	}
	return a[i], nil
}

// Int returns argument i as an int. Whole floats are accepted.
func (a Args) Int(i int) (int, error) {
	v, err := a.at(i)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed, nil
		}
	}
	return 0, fmt.Errorf("%w: argument %d must be an integer, got %v", ErrInvalidArgs, i+1, v)
}

// Float returns argument i as a float64.
func (a Args) Float(i int) (float64, error) {
	v, err := a.at(i)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed, nil
		}
	}
	return 0, fmt.Errorf("%w: argument %d must be a number, got %v", ErrInvalidArgs, i+1, v)
}

// String returns argument i as a string.
func (a Args) String(i int) (string, error) {
	v, err := a.at(i)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: argument %d must be a string, got %v", ErrInvalidArgs, i+1, v)
}

// OptionalString returns argument i as a string, or def when absent.
func (a Args) OptionalString(i int, def string) (string, error) {
	if i >= len(a) {
		return def, nil
	}
	return a.String(i)
}

// Strings returns every argument as a string.
func (a Args) Strings() ([]string, error) {
	out := make([]string, len(a))
	for i := range a {
		s, err := a.String(i)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

var dateLayouts = []string{time.RFC3339, time.DateTime, time.DateOnly}

// Time returns argument i as a time. YAML timestamps and RFC 3339 or
// "2006-01-02" strings are accepted.
func (a Args) Time(i int) (time.Time, error) {
	v, err := a.at(i)
	if err != nil {
		return time.Time{}, err
	}
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: argument %d must be a date, got %v", ErrInvalidArgs, i+1, v)
}

func (a Args) expect(n int) error {
	if len(a) != n {
		return fmt.Errorf("%w: expected %d argument(s), got %d", ErrInvalidArgs, n, len(a))
	}
	return nil
}
