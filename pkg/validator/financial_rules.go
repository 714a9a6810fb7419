package validator

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ISO 4217 currency codes, subset for common international commerce
	validCurrencyCodes = map[string]bool{
		"USD": true, "EUR": true, "GBP": true, "JPY": true, "AUD": true, "CAD": true,
		"CHF": true, "CNY": true, "SEK": true, "NZD": true, "MXN": true, "SGD": true,
		"HKD": true, "NOK": true, "KRW": true, "TRY": true, "RUB": true, "INR": true,
		"BRL": true, "ZAR": true, "PLN": true, "CZK": true, "HUF": true, "ILS": true,
		"CLP": true, "PHP": true, "AED": true, "COP": true, "SAR": true, "MYR": true,
		"RON": true, "THB": true, "BGN": true, "ISK": true, "DKK": true, "UAH": true,
	}

	digitsRegex = regexp.MustCompile(`^\d+$`)
	ibanRegex   = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`)

	separators = strings.NewReplacer(" ", "", "-", "")
)

// CreditCard passes for 13-19 digit numbers with a valid Luhn checksum.
// Spaces and dashes are ignored.
func CreditCard() Rule {
	return stringPredicate("credit_card", nil, "invalid credit card number", func(s string) bool {
		cleaned := separators.Replace(s)
		if !digitsRegex.MatchString(cleaned) || len(cleaned) < 13 || len(cleaned) > 19 {
			return false
		}
		return luhn(cleaned)
	})
}

func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// RoutingNumber passes for 9-digit US ABA routing numbers with a valid checksum.
func RoutingNumber() Rule {
	return stringPredicate("routing_number", nil, "invalid routing number", func(s string) bool {
		cleaned := separators.Replace(s)
		if len(cleaned) != 9 || !digitsRegex.MatchString(cleaned) {
			return false
		}

		weights := [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1}
		sum := 0
		for i, d := range cleaned {
			sum += int(d-'0') * weights[i]
		}
		return sum%10 == 0
	})
}

// IBAN passes for international bank account numbers with a valid mod-97
// checksum. Spaces are ignored and letters are case-insensitive.
func IBAN() Rule {
	return stringPredicate("iban", nil, "must be a valid IBAN", func(s string) bool {
		cleaned := strings.ToUpper(separators.Replace(s))
		if !ibanRegex.MatchString(cleaned) {
			return false
		}

		rearranged := cleaned[4:] + cleaned[:4]
		var b strings.Builder
		for _, r := range rearranged {
			if r >= 'A' && r <= 'Z' {
				b.WriteString(strconv.Itoa(int(r-'A') + 10))
				continue
			}
			b.WriteRune(r)
		}

		n, ok := new(big.Int).SetString(b.String(), 10)
		if !ok {
			return false
		}
		return new(big.Int).Mod(n, big.NewInt(97)).Int64() == 1
	})
}

func CurrencyCode() Rule {
	return stringPredicate("currency_code", nil, "must be a valid ISO 4217 currency code", func(s string) bool {
		return validCurrencyCodes[s]
	})
}

// DecimalPrecision passes for numbers with at most maxDecimals fractional digits.
func DecimalPrecision(maxDecimals int) Rule {
	return numberPredicate("decimal_precision", Params{"max_decimals": maxDecimals},
		"value cannot have more than %{max_decimals} decimal places",
		func(f float64) bool {
			s := strconv.FormatFloat(f, 'f', -1, 64)
			_, frac, found := strings.Cut(s, ".")
			return !found || len(frac) <= maxDecimals
		},
	)
}

// Percentage passes for numbers within [0, 100].
func Percentage() Rule {
	return numberPredicate("percentage", nil, "percentage must be between 0% and 100%", func(f float64) bool {
		return f >= 0 && f <= 100
	})
}
