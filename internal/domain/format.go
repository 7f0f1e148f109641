package domain

import (
	"strconv"
	"strings"
)

// FormatPrice renders a price for display, e.g. "PKR 24,500".
// The catalog currency defaults to PKR when the upstream omits it.
func FormatPrice(p Price) string {
	currency := p.Currency
	if currency == "" {
		currency = "PKR"
	}
	return currency + " " + groupThousands(p.Amount)
}

func groupThousands(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	if frac != "" {
		out += "." + frac
	}
	return out
}
