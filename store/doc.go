// Package store persists event state as a single versioned JSON snapshot
// in BoltDB. Load and Save are synchronous, all-or-nothing operations; a
// malformed or wrong-version snapshot fails the load entirely so callers
// fall back to an empty state instead of operating on partial data.
package store
