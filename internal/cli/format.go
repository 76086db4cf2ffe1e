package cli

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatCurrency formats a value as currency with thousands separators
// and two decimal places. Negative values carry a leading minus sign.
func FormatCurrency(value float64) string {
	negative := value < 0
	abs := math.Abs(value)

	whole := int64(abs)
	frac := int64(math.Round((abs - float64(whole)) * 100))
	if frac >= 100 {
		whole++
		frac -= 100
	}

	wholeStr := addThousandsSeparators(fmt.Sprintf("%d", whole))
	result := fmt.Sprintf("%s.%02d", wholeStr, frac)
	if negative {
		result = "-" + result
	}
	return result
}

// addThousandsSeparators inserts commas into a digit string.
func addThousandsSeparators(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	firstGroup := n % 3
	if firstGroup > 0 {
		b.WriteString(digits[:firstGroup])
		if n > firstGroup {
			b.WriteString(",")
		}
	}
	for i := firstGroup; i < n; i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < n {
			b.WriteString(",")
		}
	}
	return b.String()
}

// FormatPercent formats a percentage value with one decimal place.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatRatio formats a ratio with two decimal places. Infinite values
// render as the infinity symbol.
func FormatRatio(value float64) string {
	if math.IsInf(value, 1) {
		return "∞"
	}
	if math.IsInf(value, -1) {
		return "-∞"
	}
	return fmt.Sprintf("%.2f", value)
}

// FormatScore formats a grade or alignment score with one decimal place.
func FormatScore(value float64) string {
	return fmt.Sprintf("%.1f", value)
}

// FormatDate formats a time using the configured layout.
func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = "2006-01-02 15:04"
	}
	return t.Format(layout)
}

// FormatDuration formats a duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		if mins == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd %dh", days, hours)
}

// TruncateString truncates a string to maxLen, appending an ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
