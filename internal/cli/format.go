// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatCurrency renders a USD amount with the dollar symbol and exactly
// two digits after the decimal point, rounding half away from zero.
// e.g., 0 -> "$0.00", 1234.5 -> "$1234.50". Negative amounts are not
// expected from billing data but render with the minus ahead of the
// symbol ("-$3.50") rather than crashing.
func FormatCurrency(amount float64) string {
	cents := math.Round(amount * 100)
	if cents == 0 {
		return "$0.00"
	}
	if cents < 0 {
		return fmt.Sprintf("-$%.2f", -cents/100)
	}
	return fmt.Sprintf("$%.2f", cents/100)
}

// FormatPercent formats a percentage value with one decimal place.
// e.g., 82.35 -> "82.4%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatCount formats an activity count, with "—" for unknown (nil).
func FormatCount(n *int) string {
	if n == nil {
		return "—"
	}
	return FormatNumber(int64(*n))
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatAge formats how long ago t was, for the "last updated" footer.
// e.g., "just now", "45s ago", "3m ago", "2h ago"
func FormatAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}

	d := now.Sub(t)
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// TruncateName shortens a service name to fit a column width.
func TruncateName(name string, max int) string {
	if max <= 3 || len(name) <= max {
		return name
	}
	return name[:max-3] + "..."
}
