package progression

import (
	"fmt"
	"strings"

	"github.com/trailops/aidtrack/event"
	"github.com/trailops/aidtrack/route"
)

// Status grades a proposed move
type Status string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Classification is the advisory result of validating a proposed move
type Classification struct {
	Status          Status   `json:"status"`
	Reason          string   `json:"reason,omitempty"`
	SkippedStations []string `json:"skippedStations,omitempty"`
}

// Blocks reports whether the classification must prevent the move's
// execution. Only course-membership errors block; warnings never do.
func (c Classification) Blocks() bool {
	return c.Status == StatusError
}

// ClassifyMove grades moving a participant to targetStationID from
// currentStationID ("" when the participant has not started). Rules apply
// in priority order:
//
//  1. Flexible status station (a default station outside the course) -> valid.
//  2. No course assigned -> error.
//  3. Target not part of the course -> error.
//  4. Not yet started -> valid at the course's first station, else warning.
//  5. Current station off-course (e.g. leaving a status station) -> warning.
//  6. Backwards or same station -> warning.
//  7. Skipping ahead more than one station -> warning naming the skips.
//  8. Exactly one step forward -> valid.
func ClassifyMove(p event.Participant, targetStationID, currentStationID string, idx *route.CourseIndex, stations map[string]route.Station) Classification {
	if isFlexibleStation(p, targetStationID, idx, stations) {
		return Classification{Status: StatusValid}
	}
	if p.CourseID == "" {
		return Classification{Status: StatusError, Reason: fmt.Sprintf("%s is not assigned to a course", p.Name)}
	}
	targetIdx := idx.SegmentIndex(p.CourseID, targetStationID)
	if targetIdx < 0 {
		return Classification{Status: StatusError, Reason: fmt.Sprintf("station %s is not on course %s", stationName(stations, targetStationID), p.CourseID)}
	}
	if currentStationID == "" {
		if targetIdx == 0 {
			return Classification{Status: StatusValid}
		}
		return Classification{Status: StatusWarning, Reason: fmt.Sprintf("%s is starting at %s, not the first station of the course", p.Name, stationName(stations, targetStationID))}
	}
	currentIdx := idx.SegmentIndex(p.CourseID, currentStationID)
	if currentIdx < 0 {
		return Classification{Status: StatusWarning, Reason: fmt.Sprintf("%s is leaving %s, which is not on their course", p.Name, stationName(stations, currentStationID))}
	}
	if targetIdx <= currentIdx {
		return Classification{Status: StatusWarning, Reason: fmt.Sprintf("%s is moving backwards or to the same station", p.Name)}
	}
	if targetIdx > currentIdx+1 {
		skipped := make([]string, 0, targetIdx-currentIdx-1)
		for i := currentIdx + 1; i < targetIdx; i++ {
			skipped = append(skipped, stationName(stations, idx.StationIDAt(p.CourseID, i)))
		}
		return Classification{
			Status:          StatusWarning,
			Reason:          fmt.Sprintf("%s skipped %d station(s): %s", p.Name, len(skipped), strings.Join(skipped, ", ")),
			SkippedStations: skipped,
		}
	}
	return Classification{Status: StatusValid}
}

// A flexible station is a system-reserved status station (DNF/DNS-style)
// outside the participant's course. It is reachable from any state.
func isFlexibleStation(p event.Participant, stationID string, idx *route.CourseIndex, stations map[string]route.Station) bool {
	st, ok := stations[stationID]
	if !ok || !st.IsDefault {
		return false
	}
	if p.CourseID == "" {
		return true
	}
	return idx.SegmentIndex(p.CourseID, stationID) < 0
}

func stationName(stations map[string]route.Station, stationID string) string {
	if st, ok := stations[stationID]; ok && st.Name != "" {
		return st.Name
	}
	return stationID
}
