package laps

import "fmt"

// FormatClock renders a duration in seconds as a timing-screen lap
// time, e.g. "1:43.521". Durations under a minute omit the minute
// field.
func FormatClock(seconds float64) string {
	min, sec, ms := splitDuration(seconds)
	if min == 0 {
		return fmt.Sprintf("%d.%03d", sec, ms)
	}
	return fmt.Sprintf("%d:%02d.%03d", min, sec, ms)
}

// FormatCompact renders a duration in seconds in a filename-safe form,
// e.g. "1m43.521s".
func FormatCompact(seconds float64) string {
	min, sec, ms := splitDuration(seconds)
	return fmt.Sprintf("%dm%02d.%03ds", min, sec, ms)
}

func splitDuration(seconds float64) (min, sec, ms int64) {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds*1000 + 0.5)
	return total / 60000, (total % 60000) / 1000, total % 1000
}
