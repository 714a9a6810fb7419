package schema

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// Factory builds a rule from schema arguments.
type Factory func(args Args) (validator.Rule, error)

func noArgs(fn func() validator.Rule) Factory {
	return func(args Args) (validator.Rule, error) {
		if err := args.expect(0); err != nil {
			return validator.Rule{}, err
		}
		return fn(), nil
	}
}

func intArg(fn func(int) validator.Rule) Factory {
	return func(args Args) (validator.Rule, error) {
		if err := args.expect(1); err != nil {
			return validator.Rule{}, err
		}
		n, err := args.Int(0)
		if err != nil {
			return validator.Rule{}, err
		}
		return fn(n), nil
	}
}

func intPair(fn func(a, b int) validator.Rule) Factory {
	return func(args Args) (validator.Rule, error) {
		if err := args.expect(2); err != nil {
			return validator.Rule{}, err
		}
		a, err := args.Int(0)
		if err != nil {
			return validator.Rule{}, err
		}
		b, err := args.Int(1)
		if err != nil {
			return validator.Rule{}, err
		}
		return fn(a, b), nil
	}
}

func floatArg(fn func(float64) validator.Rule) Factory {
	return func(args Args) (validator.Rule, error) {
		if err := args.expect(1); err != nil {
			return validator.Rule{}, err
		}
		f, err := args.Float(0)
		if err != nil {
			return validator.Rule{}, err
		}
		return fn(f), nil
	}
}

func stringArg(fn func(string) validator.Rule) Factory {
	return func(args Args) (validator.Rule, error) {
		if err := args.expect(1); err != nil {
			return validator.Rule{}, err
		}
		s, err := args.String(0)
		if err != nil {
			return validator.Rule{}, err
		}
		return fn(s), nil
	}
}

func stringList(fn func(...string) validator.Rule) Factory {
	return func(args Args) (validator.Rule, error) {
		if len(args) == 0 {
			return validator.Rule{}, fmt.Errorf("%w: expected at least one argument", ErrInvalidArgs)
		}
		ss, err := args.Strings()
		if err != nil {
			return validator.Rule{}, err
		}
		return fn(ss...), nil
	}
}

func timeArg(fn func(time.Time) validator.Rule) Factory {
	return func(args Args) (validator.Rule, error) {
		if err := args.expect(1); err != nil {
			return validator.Rule{}, err
		}
		t, err := args.Time(0)
		if err != nil {
			return validator.Rule{}, err
		}
		return fn(t), nil
	}
}

func anyArg(fn func(any) validator.Rule) Factory {
	return func(args Args) (validator.Rule, error) {
		if err := args.expect(1); err != nil {
			return validator.Rule{}, err
		}
		return fn(args[0]), nil
	}
}

func anyList(fn func(...any) validator.Rule) Factory {
	return func(args Args) (validator.Rule, error) {
		if len(args) == 0 {
			return validator.Rule{}, fmt.Errorf("%w: expected at least one argument", ErrInvalidArgs)
		}
		return fn(args...), nil
	}
}

func pattern(fn func(pattern, description string) validator.Rule) Factory {
	return func(args Args) (validator.Rule, error) {
		if len(args) < 1 || len(args) > 2 {
			return validator.Rule{}, fmt.Errorf("%w: expected a pattern and an optional description", ErrInvalidArgs)
		}
		p, err := args.String(0)
		if err != nil {
			return validator.Rule{}, err
		}
		desc, err := args.OptionalString(1, p)
		if err != nil {
			return validator.Rule{}, err
		}
		return catch(func() validator.Rule { return fn(p, desc) })
	}
}

// catch turns a constructor panic (a bad regular expression) into an error.
func catch(build func() validator.Rule) (rule validator.Rule, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidArgs, p)
		}
	}()
	return build(), nil
}

func dateRange(args Args) (validator.Rule, error) {
	if err := args.expect(2); err != nil {
		return validator.Rule{}, err
	}
	start, err := args.Time(0)
	if err != nil {
		return validator.Rule{}, err
	}
	end, err := args.Time(1)
	if err != nil {
		return validator.Rule{}, err
	}
	return validator.DateBetween(start, end), nil
}

func between(args Args) (validator.Rule, error) {
	if err := args.expect(2); err != nil {
		return validator.Rule{}, err
	}
	lo, err := args.Float(0)
	if err != nil {
		return validator.Rule{}, err
	}
	hi, err := args.Float(1)
	if err != nil {
		return validator.Rule{}, err
	}
	return validator.Between(lo, hi), nil
}

// passwordStrength accepts no arguments (default policy) or a minimum length.
func passwordStrength(args Args) (validator.Rule, error) {
	cfg := validator.DefaultPasswordStrength()
	switch len(args) {
	case 0:
	case 1:
		n, err := args.Int(0)
		if err != nil {
			return validator.Rule{}, err
		}
		cfg.MinLength = n
	default:
		return validator.Rule{}, fmt.Errorf("%w: expected at most one argument", ErrInvalidArgs)
	}
	return validator.StrongPassword(cfg), nil
}

func hexString(args Args) (validator.Rule, error) {
	switch len(args) {
	case 0:
		return validator.HexString(0), nil
	case 1:
		n, err := args.Int(0)
		if err != nil {
			return validator.Rule{}, err
		}
		return validator.HexString(n), nil
	}
	return validator.Rule{}, fmt.Errorf("%w: expected at most one argument", ErrInvalidArgs)
}

func int64Arg(fn func(int64) validator.Rule) Factory {
	return intArg(func(n int) validator.Rule { return fn(int64(n)) })
}

var compare = validator.Compare()

// builtinFactories maps schema rule names onto rule constructors. Names
// follow the rule ids reported in failure records.
var builtinFactories = map[string]Factory{
	// presence
	"required": noArgs(validator.Required),
	"not_nil":  noArgs(validator.NotNil),
	"empty":    noArgs(validator.Empty),

	// string
	"string":         noArgs(validator.IsString),
	"not_blank":      noArgs(validator.NotBlank),
	"min_length":     intArg(validator.MinLength),
	"max_length":     intArg(validator.MaxLength),
	"exact_length":   intArg(validator.Length),
	"length_between": intPair(validator.LengthBetween),
	"starts_with":    stringArg(validator.StartsWith),
	"ends_with":      stringArg(validator.EndsWith),
	"contains":       stringArg(validator.Contains),
	"lowercase":      noArgs(validator.Lowercase),
	"uppercase":      noArgs(validator.Uppercase),

	// pattern
	"pattern":            pattern(validator.Matches),
	"not_pattern":        pattern(validator.NotMatches),
	"no_whitespace":      noArgs(validator.NoWhitespace),
	"ascii":              noArgs(validator.ASCIIOnly),
	"printable":          noArgs(validator.PrintableChars),
	"contains_digit":     noArgs(validator.ContainsDigit),
	"contains_uppercase": noArgs(validator.ContainsUppercase),
	"contains_lowercase": noArgs(validator.ContainsLowercase),
	"word_count":         intPair(validator.WordCount),

	// format
	"email":          noArgs(validator.Email),
	"url":            noArgs(validator.URL),
	"url_scheme":     stringList(validator.URLWithScheme),
	"phone":          noArgs(validator.Phone),
	"ip":             noArgs(validator.IP),
	"ipv4":           noArgs(validator.IPv4),
	"ipv6":           noArgs(validator.IPv6),
	"mac":            noArgs(validator.MAC),
	"alphanumeric":   noArgs(validator.Alphanumeric),
	"alpha":          noArgs(validator.Alpha),
	"numeric_string": noArgs(validator.NumericString),
	"json":           noArgs(validator.JSON),

	// numeric
	"number":       noArgs(validator.IsNumber),
	"integer":      noArgs(validator.Integer),
	"min":          floatArg(validator.Min[float64]),
	"max":          floatArg(validator.Max[float64]),
	"between":      between,
	"positive":     noArgs(validator.Positive),
	"negative":     noArgs(validator.Negative),
	"non_negative": noArgs(validator.NonNegative),
	"multiple_of":  floatArg(validator.MultipleOf[float64]),

	// comparison
	"equal_to":              stringArg(compare.EqualTo),
	"not_equal_to":          stringArg(compare.NotEqualTo),
	"greater_than":          stringArg(compare.GreaterThan),
	"greater_than_or_equal": stringArg(compare.GreaterThanOrEqual),
	"less_than":             stringArg(compare.LessThan),
	"less_than_or_equal":    stringArg(compare.LessThanOrEqual),
	"equals":                anyArg(validator.Equals),
	"not_equals":            anyArg(validator.NotEquals),

	// date
	"date":         noArgs(validator.IsDate),
	"past_date":    noArgs(validator.PastDate),
	"future_date":  noArgs(validator.FutureDate),
	"date_after":   timeArg(validator.DateAfter),
	"date_before":  timeArg(validator.DateBefore),
	"date_between": dateRange,
	"min_age":      intArg(validator.MinAge),
	"max_age":      intArg(validator.MaxAge),
	"working_day":  noArgs(validator.WorkingDay),
	"weekend":      noArgs(validator.Weekend),

	// array
	"array":          noArgs(validator.IsArray),
	"min_items":      intArg(validator.MinItems),
	"max_items":      intArg(validator.MaxItems),
	"items_length":   intArg(validator.ItemsLength),
	"unique_items":   noArgs(validator.UniqueItems),
	"array_contains": anyArg(validator.ArrayContains),

	// choice
	"one_of":      anyList(validator.OneOf[any]),
	"none_of":     anyList(validator.NoneOf[any]),
	"one_of_fold": stringList(validator.OneOfFold),

	// identifiers
	"slug":         noArgs(validator.Slug),
	"username":     intPair(validator.Username),
	"handle":       intPair(validator.Handle),
	"sku":          noArgs(validator.SKU),
	"hex":          hexString,
	"base64":       noArgs(validator.Base64),
	"domain":       noArgs(validator.DomainName),
	"subdomain":    noArgs(validator.Subdomain),
	"semver":       noArgs(validator.SemVer),
	"uuid":         noArgs(validator.UUID),
	"uuid_version": intArg(validator.UUIDVersion),
	"uuid_not_nil": noArgs(validator.NonNilUUID),

	// financial
	"credit_card":       noArgs(validator.CreditCard),
	"routing_number":    noArgs(validator.RoutingNumber),
	"iban":              noArgs(validator.IBAN),
	"currency_code":     noArgs(validator.CurrencyCode),
	"decimal_precision": intArg(validator.DecimalPrecision),
	"percentage":        noArgs(validator.Percentage),

	// password
	"password_strength": passwordStrength,
	"password_common":   noArgs(validator.NotCommonPassword),
	"password_entropy":  floatArg(validator.PasswordEntropy),

	// file
	"max_file_size":  int64Arg(validator.MaxFileSize),
	"min_file_size":  int64Arg(validator.MinFileSize),
	"file_extension": stringList(validator.FileExtension),
	"mime_type":      stringList(validator.MIMEType),
	"image":          noArgs(validator.Image),
	"pdf":            noArgs(validator.PDF),

	// bridge
	"tag": stringArg(validator.Tag),
}

// RuleNames lists the rule names a schema document can use without custom
// factories, combinators and lookup rules included, sorted.
func RuleNames() []string {
	names := slices.Collect(maps.Keys(builtinFactories))
	names = append(names, "and", "or", "not", "if", "each", "exists", "unique")
	slices.Sort(names)
	return names
}
