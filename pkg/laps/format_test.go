package laps

import "testing"

func TestFormatClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds float64
		want    string
	}{
		{103.521, "1:43.521"},
		{59.9996, "1:00.000"},
		{45.07, "45.070"},
		{0, "0.000"},
		{600.001, "10:00.001"},
	}

	for _, tc := range tests {
		if got := FormatClock(tc.seconds); got != tc.want {
			t.Errorf("FormatClock(%v): expected %q, got %q", tc.seconds, tc.want, got)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds float64
		want    string
	}{
		{103.521, "1m43.521s"},
		{45.07, "0m45.070s"},
		{92.505, "1m32.505s"},
	}

	for _, tc := range tests {
		if got := FormatCompact(tc.seconds); got != tc.want {
			t.Errorf("FormatCompact(%v): expected %q, got %q", tc.seconds, tc.want, got)
		}
	}
}
