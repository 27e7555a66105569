// Package money formats smallest-unit prices for display and email.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCents renders a price in cents as Sri Lankan Rupees, e.g. "Rs 1,299.50".
// Whole amounts drop the fraction: "Rs 1,299".
func FormatCents(cents int64) string {
	amount := decimal.NewFromInt(cents).Div(hundred)

	places := int32(2)
	if amount.Equal(amount.Truncate(0)) {
		places = 0
	}

	return "Rs " + group(amount.StringFixed(places))
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	return group(decimal.NewFromInt(n).String())
}

func group(s string) string {
	whole, frac, hasFrac := strings.Cut(s, ".")

	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	if hasFrac {
		out += "." + frac
	}
	return out
}
