// Package amount coerces raw amount strings to decimals and renders decimals
// in the three forms the converters need: fixed two-decimal QIF amounts,
// shortest CSV amounts, and whole-number quantities.
package amount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError reports an unparseable numeric value.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable amount %q", e.Value)
}

// Parse converts a raw amount string to a decimal. Currency symbols,
// thousand separators, and parenthesized negatives are accepted.
func Parse(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Decimal{}, &ParseError{Value: s}
	}

	negative := false
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		negative = true
		raw = raw[1 : len(raw)-1]
	}
	raw = strings.ReplaceAll(raw, "$", "")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSpace(raw)

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &ParseError{Value: s}
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// Fixed renders with exactly two decimal places: "-50.25", "1200.00".
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Shortest renders the shortest form with at least one decimal place:
// "100.5" for 100.50, "1200.0" for 1200, "50.25" for 50.25. Values are
// rounded to two places.
func Shortest(d decimal.Decimal) string {
	if d.Equal(d.Truncate(1)) {
		return d.StringFixed(1)
	}
	return d.StringFixed(2)
}

// Quantity renders whole values without a decimal part ("10") and falls back
// to Shortest otherwise.
func Quantity(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.Truncate(0).String()
	}
	return Shortest(d)
}
