/*
Package event holds the mutable state of a running timed event: the
participant roster, the station assignment sets, and the append-only
activity log.

The assignment sets are the single source of truth for "where is
participant X right now". The exclusivity invariant (a participant appears
in at most one station's set) is enforced by construction: Move is the only
mutator.

The activity log is history, not state. Deleting entries does not reverse
their effect on assignments; corrections patch entry fields in place and
never create new entries or re-validate moves.
*/
package event
