package utils

import "time"

// Iso8601 formats a timestamp in ISO8601/RFC3339 UTC
func Iso8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// HoursBetween returns the elapsed time from one instant to another in
// fractional hours. Negative when to precedes from.
func HoursBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours()
}

// DurationFromHours converts fractional hours into a time.Duration
func DurationFromHours(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
