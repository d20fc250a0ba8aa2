// Package money handles the currency-string form amounts arrive in at the
// system boundary ("£1,234.56"). The calculation engine itself only ever sees
// clean float64 values.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts a currency string to a numeric amount. It tolerates a pound
// prefix, thousands separators and surrounding whitespace. An empty string is
// a valid absent value and parses to 0.
func Parse(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "£")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return value, nil
}

// Format renders an amount as a currency string with a pound prefix and
// thousands separators, always with two decimal places.
func Format(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)

	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := "£" + b.String() + "." + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
