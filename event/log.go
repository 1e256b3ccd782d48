package event

import (
	"fmt"
	"sort"
)

// ErrEntryNotFound is returned when a correction names an unknown entry
var ErrEntryNotFound = fmt.Errorf("activity log entry not found")

// AppendEntry appends one entry to the activity log. The log is
// append-only by default; the only mutation paths besides this are the
// explicit correction and deletion operations below.
func (s *State) AppendEntry(e LogEntry) {
	s.ActivityLog = append(s.ActivityLog, e)
}

// Chronological returns a copy of the log sorted stably by UserTime.
// Entries sharing a UserTime keep their insertion order.
func (s *State) Chronological() []LogEntry {
	out := make([]LogEntry, len(s.ActivityLog))
	copy(out, s.ActivityLog)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UserTime.Before(out[j].UserTime)
	})
	return out
}

// EntriesForParticipant returns the participant's entries in chronological
// order, optionally filtered to the given entry types.
func (s *State) EntriesForParticipant(participantID string, types ...EntryType) []LogEntry {
	want := map[EntryType]bool{}
	for _, t := range types {
		want[t] = true
	}
	out := []LogEntry{}
	for _, e := range s.Chronological() {
		if e.ParticipantID != participantID {
			continue
		}
		if len(want) > 0 && !want[e.Type] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CorrectEntry applies a field-level patch to one entry in place. This is
// not a new log entry and the patched move is not re-validated.
func (s *State) CorrectEntry(id string, patch EntryPatch) error {
	for i := range s.ActivityLog {
		if s.ActivityLog[i].ID == id {
			applyPatch(&s.ActivityLog[i], patch)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// CorrectEntries applies the same patch to every named entry and returns
// how many entries were patched. Unknown IDs are skipped.
func (s *State) CorrectEntries(ids []string, patch EntryPatch) int {
	n := 0
	for _, id := range ids {
		if err := s.CorrectEntry(id, patch); err == nil {
			n++
		}
	}
	return n
}

// DeleteEntries removes entries by ID and returns how many were removed.
// Deletion does not reverse the entries' effect on station assignments:
// assignments reflect the last move applied, the log is history.
func (s *State) DeleteEntries(ids ...string) int {
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.ActivityLog[:0]
	removed := 0
	for _, e := range s.ActivityLog {
		if drop[e.ID] {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.ActivityLog = kept
	return removed
}

func applyPatch(e *LogEntry, patch EntryPatch) {
	if patch.UserTime != nil {
		e.UserTime = *patch.UserTime
	}
	if patch.ParticipantID != nil {
		e.ParticipantID = *patch.ParticipantID
	}
	if patch.Type != nil {
		e.Type = *patch.Type
	}
	if patch.StationID != nil {
		e.StationID = *patch.StationID
	}
	if patch.PriorStationID != nil {
		e.PriorStationID = *patch.PriorStationID
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
}
