// Package utils provides internal utility types for the aid-station tracker.
// This package is not intended to be imported by external code.
//
// It contains:
//   - The injectable clock used for all time comparisons
//   - The identifier generator used for new log entries
//   - Time formatting helpers
package utils
