package utils

import (
	"fmt"
)

// FormatUSD formats an amount in cents as the plain "25.99" string both
// vendor APIs expect in price fields.
func FormatUSD(cents int64) string {
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", neg, cents/100, cents%100)
}

// DisplayUSD formats an amount in cents for human-readable log output,
// e.g. "$25.99".
func DisplayUSD(cents int64) string {
	if cents < 0 {
		return "-$" + FormatUSD(-cents)
	}
	return "$" + FormatUSD(cents)
}
