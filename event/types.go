package event

import (
	"time"

	"github.com/trailops/aidtrack/route"
)

// Participant is a tracked runner. CourseID may be empty, in which case
// route-dependent operations (progression validation, pace, ETA) degrade.
type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CourseID string `json:"courseId,omitempty"`
	Active   bool   `json:"active"`
}

// EntryType tags an activity log entry. Each type uses a fixed subset of
// the LogEntry fields: arrival/departed/suspect entries carry a
// ParticipantID, station-wide "other" messages do not.
type EntryType string

const (
	EntryArrival  EntryType = "arrival"
	EntryDeparted EntryType = "departed"
	EntrySuspect  EntryType = "suspect"
	EntryOther    EntryType = "other"
)

// LogEntry is one observed movement or message. RecordedAt is when the
// system wrote the entry; UserTime is the authoritative event time and may
// be backdated or corrected later.
type LogEntry struct {
	ID             string    `json:"id"`
	RecordedAt     time.Time `json:"recordedAt"`
	UserTime       time.Time `json:"userTime"`
	Type           EntryType `json:"type"`
	StationID      string    `json:"stationId"`
	ParticipantID  string    `json:"participantId,omitempty"`
	PriorStationID string    `json:"priorStationId,omitempty"`
	Notes          string    `json:"notes,omitempty"`
}

// EntryPatch is a field-level correction applied to existing log entries.
// Nil fields are left untouched.
type EntryPatch struct {
	UserTime       *time.Time
	ParticipantID  *string
	Type           *EntryType
	StationID      *string
	PriorStationID *string
	Notes          *string
}

// State is the explicit context object passed into every tracker
// operation: courses, stations, participants, assignments, and log.
// There is no module-level singleton.
type State struct {
	Stations     []route.Station `json:"stations"`
	Courses      []route.Course  `json:"courses"`
	Participants []Participant   `json:"participants"`
	Assignments  Assignments     `json:"assignments"`
	ActivityLog  []LogEntry      `json:"activityLog"`
}

// NewState returns an empty event state with initialized containers
func NewState() State {
	return State{
		Stations:     []route.Station{},
		Courses:      []route.Course{},
		Participants: []Participant{},
		Assignments:  Assignments{},
		ActivityLog:  []LogEntry{},
	}
}

// StationsByID builds a lookup map over the state's stations
func (s *State) StationsByID() map[string]route.Station {
	m := make(map[string]route.Station, len(s.Stations))
	for _, st := range s.Stations {
		m[st.ID] = st
	}
	return m
}

// FindParticipant returns the participant with the given ID
func (s *State) FindParticipant(id string) (Participant, bool) {
	for _, p := range s.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}
