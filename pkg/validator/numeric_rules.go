package validator

import "math"

// numberPredicate is predicate for numeric values; numeric strings do not count.
func numberPredicate(id string, params Params, tmpl string, fn func(f float64) bool) Rule {
	return predicate(id, params, tmpl, func(v any) bool {
		f, ok := asFloat(v)
		return ok && fn(f)
	})
}

func IsNumber() Rule {
	return numberPredicate("number", nil, "must be a number", func(f float64) bool {
		return !math.IsInf(f, 0)
	})
}

// Integer passes for numbers without a fractional part.
func Integer() Rule {
	return numberPredicate("integer", nil, "must be an integer", func(f float64) bool {
		return !math.IsInf(f, 0) && f == math.Trunc(f)
	})
}

func Min[T Numeric](min T) Rule {
	bound := float64(min)
	return numberPredicate("min", Params{"min": min}, "must be at least %{min}", func(f float64) bool {
		return f >= bound
	})
}

func Max[T Numeric](max T) Rule {
	bound := float64(max)
	return numberPredicate("max", Params{"max": max}, "must be at most %{max}", func(f float64) bool {
		return f <= bound
	})
}

// Between passes for numbers within [min, max].
func Between[T Numeric](min, max T) Rule {
	lo, hi := float64(min), float64(max)
	return numberPredicate("between", Params{"min": min, "max": max},
		"must be between %{min} and %{max}",
		func(f float64) bool { return f >= lo && f <= hi },
	)
}

func Positive() Rule {
	return numberPredicate("positive", nil, "must be positive", func(f float64) bool { return f > 0 })
}

func Negative() Rule {
	return numberPredicate("negative", nil, "must be negative", func(f float64) bool { return f < 0 })
}

func NonNegative() Rule {
	return numberPredicate("non_negative", nil, "cannot be negative", func(f float64) bool { return f >= 0 })
}

// MultipleOf passes for numbers that are an exact multiple of step.
func MultipleOf[T Numeric](step T) Rule {
	s := float64(step)
	return numberPredicate("multiple_of", Params{"step": step}, "must be a multiple of %{step}", func(f float64) bool {
		if s == 0 {
			return false
		}
		q := f / s
		return math.Abs(q-math.Round(q)) < 1e-9
	})
}
