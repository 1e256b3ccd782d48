// Package progression classifies proposed participant moves against the
// participant's assigned course and current position. Classification is
// advisory: only course-membership violations block a move; everything
// else (backwards moves, skipped stations, off-route starts) is surfaced
// as a warning for operator review and still executes. Race-day operation
// depends on that asymmetry to allow corrections after mis-entries.
package progression
