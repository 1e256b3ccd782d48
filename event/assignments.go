package event

// Assignments maps a station ID to the set of participants currently
// located there. Order within a set carries no meaning.
//
// Invariant: every assigned participant appears in exactly one station's
// set. Move is the only mutator, so the invariant holds by construction.
type Assignments map[string][]string

// CurrentStation returns the station a participant is currently assigned
// to. The exclusivity invariant makes the linear scan unambiguous.
func (a Assignments) CurrentStation(participantID string) (string, bool) {
	for stationID, ids := range a {
		for _, id := range ids {
			if id == participantID {
				return stationID, true
			}
		}
	}
	return "", false
}

// Move removes the participant from every station set and inserts them
// into the target set as one synchronous step. Callers serialize moves;
// no observer may run between the removal and the insertion.
func (a Assignments) Move(participantID, toStationID string) {
	for stationID, ids := range a {
		kept := ids[:0]
		for _, id := range ids {
			if id != participantID {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			delete(a, stationID)
		} else {
			a[stationID] = kept
		}
	}
	a[toStationID] = append(a[toStationID], participantID)
}

// AtStation returns a copy of the participant set at a station
func (a Assignments) AtStation(stationID string) []string {
	ids := a[stationID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Count returns the number of assigned participants across all stations
func (a Assignments) Count() int {
	n := 0
	for _, ids := range a {
		n += len(ids)
	}
	return n
}
