package validator

import "time"

// Date rules accept time.Time values and RFC 3339, "2006-01-02 15:04:05" or
// "2006-01-02" strings.

func datePredicate(id string, params Params, tmpl string, fn func(t time.Time) bool) Rule {
	return predicate(id, params, tmpl, func(v any) bool {
		t, ok := asTime(v)
		return ok && fn(t)
	})
}

func IsDate() Rule {
	return datePredicate("date", nil, "must be a valid date", func(time.Time) bool { return true })
}

func PastDate() Rule {
	return datePredicate("past_date", nil, "date must be in the past", func(t time.Time) bool {
		return t.Before(time.Now())
	})
}

func FutureDate() Rule {
	return datePredicate("future_date", nil, "date must be in the future", func(t time.Time) bool {
		return t.After(time.Now())
	})
}

func DateAfter(after time.Time) Rule {
	return datePredicate("date_after", Params{"after": after}, "date must be after %{after}", func(t time.Time) bool {
		return t.After(after)
	})
}

func DateBefore(before time.Time) Rule {
	return datePredicate("date_before", Params{"before": before}, "date must be before %{before}", func(t time.Time) bool {
		return t.Before(before)
	})
}

// DateBetween passes for dates within [start, end].
func DateBetween(start, end time.Time) Rule {
	return datePredicate("date_between", Params{"start": start, "end": end},
		"date must be between %{start} and %{end}",
		func(t time.Time) bool { return !t.Before(start) && !t.After(end) },
	)
}

// MinAge treats the value as a birthdate and passes when at least min full
// years have elapsed.
func MinAge(min int) Rule {
	return datePredicate("min_age", Params{"min_age": min}, "minimum age of %{min_age} years required", func(t time.Time) bool {
		return age(t, time.Now()) >= min
	})
}

// MaxAge treats the value as a birthdate and passes when at most max full
// years have elapsed.
func MaxAge(max int) Rule {
	return datePredicate("max_age", Params{"max_age": max}, "maximum age of %{max_age} years exceeded", func(t time.Time) bool {
		return age(t, time.Now()) <= max
	})
}

func age(birthdate, now time.Time) int {
	years := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() || (now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		years--
	}
	return years
}

func WorkingDay() Rule {
	return datePredicate("working_day", nil, "date must be a working day (Monday-Friday)", func(t time.Time) bool {
		wd := t.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	})
}

func Weekend() Rule {
	return datePredicate("weekend", nil, "date must be a weekend (Saturday-Sunday)", func(t time.Time) bool {
		wd := t.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	})
}
