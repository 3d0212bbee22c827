// Package money holds the currency conventions shared by every user-facing
// surface: fixed two decimal places, comma thousands separators, a leading
// dollar sign adjacent to the digits, and negatives rendered as "-$12.30".
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders an amount in the canonical form, e.g. "$1,234.56".
func Format(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)

	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]

	if d.IsNegative() {
		return "-$" + groupThousands(whole) + frac
	}
	return "$" + groupThousands(whole) + frac
}

// Parse accepts amounts as they appear in bank exports: optional leading
// "$" or "-$", comma separators, and plain decimal strings.
func Parse(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	neg := false
	if strings.HasPrefix(cleaned, "-") {
		neg = true
		cleaned = cleaned[1:]
	}
	cleaned = strings.TrimPrefix(cleaned, "$")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("money.Parse: %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
