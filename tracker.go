// Package aidtrack tracks participants moving through an ordered sequence
// of aid stations during a timed event, and estimates each participant's
// pace and next-station arrival time from the recorded movement history.
package aidtrack

import (
	"fmt"
	"sync"
	"time"

	"github.com/trailops/aidtrack/estimate"
	"github.com/trailops/aidtrack/event"
	"github.com/trailops/aidtrack/progression"
	"github.com/trailops/aidtrack/route"
	"github.com/trailops/aidtrack/utils"
)

var (
	// ErrMoveRejected marks moves blocked by progression validation
	ErrMoveRejected = fmt.Errorf("move rejected")
	// ErrUnknownParticipant marks operations naming an unknown participant
	ErrUnknownParticipant = fmt.Errorf("unknown participant")
	// ErrUnknownStation marks operations naming an unknown station
	ErrUnknownStation = fmt.Errorf("unknown station")
	// ErrNotAtStation marks departure/suspect logging for an unassigned participant
	ErrNotAtStation = fmt.Errorf("participant is not at a station")
)

// MoveResult reports an executed (or rejected) move: the log entry it
// produced and the advisory classification it received.
type MoveResult struct {
	Entry          event.LogEntry             `json:"entry"`
	Classification progression.Classification `json:"classification"`
}

// Tracker coordinates event state, progression validation, and derived
// pace/ETA records. All mutation and derivation is serialized on one
// mutex, so a move is never observable half-applied and derived maps are
// always replaced wholesale.
type Tracker struct {
	mu    sync.Mutex
	clock utils.Clock
	ids   utils.IDGenerator
	opts  estimate.Options

	state    event.State
	routes   *route.CourseIndex
	stations map[string]route.Station

	paces         map[string]estimate.PaceRecord
	etas          map[string]estimate.ETARecord
	warnings      map[string][]string
	lastRecompute time.Time

	subscribers []func()
}

// NewTracker creates a tracker over the given state. The clock and ID
// generator are injected; the tracker never reads a hidden global.
func NewTracker(state event.State, clock utils.Clock, ids utils.IDGenerator, opts estimate.Options) *Tracker {
	t := &Tracker{
		clock:    clock,
		ids:      ids,
		opts:     opts,
		state:    state,
		routes:   route.NewCourseIndex(state.Courses),
		stations: state.StationsByID(),
		paces:    map[string]estimate.PaceRecord{},
		etas:     map[string]estimate.ETARecord{},
		warnings: map[string][]string{},
	}
	return t
}

// Subscribe registers a callback invoked after every state mutation. The
// host wires recomputation and persistence through this channel instead of
// the tracker reaching into either.
func (t *Tracker) Subscribe(fn func()) {
	t.mu.Lock()
	t.subscribers = append(t.subscribers, fn)
	t.mu.Unlock()
}

func (t *Tracker) notify() {
	t.mu.Lock()
	subs := make([]func(), len(t.subscribers))
	copy(subs, t.subscribers)
	t.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// ApplyMove validates and executes a participant move. On acceptance the
// assignment update and the log append happen as one unit; on rejection
// (course-membership error) nothing mutates and the classification is
// returned with the error. Warnings never block; they are recorded for
// later review.
func (t *Tracker) ApplyMove(participantID, toStationID string, userTime time.Time, notes string) (MoveResult, error) {
	t.mu.Lock()
	p, ok := t.state.FindParticipant(participantID)
	if !ok {
		t.mu.Unlock()
		return MoveResult{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, participantID)
	}
	if _, ok := t.stations[toStationID]; !ok {
		t.mu.Unlock()
		return MoveResult{}, fmt.Errorf("%w: %s", ErrUnknownStation, toStationID)
	}

	current, _ := t.state.Assignments.CurrentStation(participantID)
	cls := progression.ClassifyMove(p, toStationID, current, t.routes, t.stations)
	if cls.Blocks() {
		t.mu.Unlock()
		return MoveResult{Classification: cls}, fmt.Errorf("%w: %s", ErrMoveRejected, cls.Reason)
	}

	if userTime.IsZero() {
		userTime = t.clock.Now()
	}
	entry := event.LogEntry{
		ID:             t.ids.NewID(),
		RecordedAt:     t.clock.Now(),
		UserTime:       userTime,
		Type:           event.EntryArrival,
		StationID:      toStationID,
		ParticipantID:  participantID,
		PriorStationID: current,
		Notes:          notes,
	}
	t.state.Assignments.Move(participantID, toStationID)
	t.state.AppendEntry(entry)
	if cls.Status == progression.StatusWarning {
		t.warnings[participantID] = append(t.warnings[participantID], cls.Reason)
	}
	t.mu.Unlock()

	t.notify()
	return MoveResult{Entry: entry, Classification: cls}, nil
}

// LogDeparture records that a participant left their current station.
// The assignment is untouched; departures only feed pace calculation.
func (t *Tracker) LogDeparture(participantID string, userTime time.Time, notes string) (event.LogEntry, error) {
	return t.logAtCurrentStation(participantID, event.EntryDeparted, userTime, notes)
}

// LogSuspect flags a participant's situation as suspect at their current
// station without moving them.
func (t *Tracker) LogSuspect(participantID string, userTime time.Time, notes string) (event.LogEntry, error) {
	return t.logAtCurrentStation(participantID, event.EntrySuspect, userTime, notes)
}

func (t *Tracker) logAtCurrentStation(participantID string, typ event.EntryType, userTime time.Time, notes string) (event.LogEntry, error) {
	t.mu.Lock()
	if _, ok := t.state.FindParticipant(participantID); !ok {
		t.mu.Unlock()
		return event.LogEntry{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, participantID)
	}
	current, ok := t.state.Assignments.CurrentStation(participantID)
	if !ok {
		t.mu.Unlock()
		return event.LogEntry{}, fmt.Errorf("%w: %s", ErrNotAtStation, participantID)
	}
	if userTime.IsZero() {
		userTime = t.clock.Now()
	}
	entry := event.LogEntry{
		ID:            t.ids.NewID(),
		RecordedAt:    t.clock.Now(),
		UserTime:      userTime,
		Type:          typ,
		StationID:     current,
		ParticipantID: participantID,
		Notes:         notes,
	}
	t.state.AppendEntry(entry)
	t.mu.Unlock()

	t.notify()
	return entry, nil
}

// LogNote records a station-wide free-text message. Note entries carry no
// participant and never affect assignments or estimation.
func (t *Tracker) LogNote(stationID string, userTime time.Time, notes string) (event.LogEntry, error) {
	t.mu.Lock()
	if _, ok := t.stations[stationID]; !ok {
		t.mu.Unlock()
		return event.LogEntry{}, fmt.Errorf("%w: %s", ErrUnknownStation, stationID)
	}
	if userTime.IsZero() {
		userTime = t.clock.Now()
	}
	entry := event.LogEntry{
		ID:         t.ids.NewID(),
		RecordedAt: t.clock.Now(),
		UserTime:   userTime,
		Type:       event.EntryOther,
		StationID:  stationID,
		Notes:      notes,
	}
	t.state.AppendEntry(entry)
	t.mu.Unlock()

	t.notify()
	return entry, nil
}

// CorrectEntry patches one log entry in place without re-validating it
func (t *Tracker) CorrectEntry(id string, patch event.EntryPatch) error {
	t.mu.Lock()
	err := t.state.CorrectEntry(id, patch)
	t.mu.Unlock()
	if err != nil {
		return err
	}
	t.notify()
	return nil
}

// CorrectEntries applies the same patch to a set of entries
func (t *Tracker) CorrectEntries(ids []string, patch event.EntryPatch) int {
	t.mu.Lock()
	n := t.state.CorrectEntries(ids, patch)
	t.mu.Unlock()
	if n > 0 {
		t.notify()
	}
	return n
}

// DeleteEntries removes log entries by ID. Assignments are untouched: the
// log is history, the assignment is the last move applied.
func (t *Tracker) DeleteEntries(ids ...string) int {
	t.mu.Lock()
	n := t.state.DeleteEntries(ids...)
	t.mu.Unlock()
	if n > 0 {
		t.notify()
	}
	return n
}

// Recompute derives all pace records, then all ETA records from them, and
// replaces both output maps wholesale. Readers never see a half-updated
// set, and repeating the call on unchanged input reproduces identical
// output.
func (t *Tracker) Recompute() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	paces := make(map[string]estimate.PaceRecord, len(t.state.Participants))
	etas := make(map[string]estimate.ETARecord, len(t.state.Participants))
	for _, p := range t.state.Participants {
		moves := t.state.EntriesForParticipant(p.ID, event.EntryArrival, event.EntryDeparted)
		pace := estimate.CalculatePace(moves, p.CourseID, t.routes, t.opts)
		paces[p.ID] = pace

		current, _ := t.state.Assignments.CurrentStation(p.ID)
		history := t.state.EntriesForParticipant(p.ID)
		if eta, ok := estimate.PredictETA(p, current, pace, history, t.routes, t.stations, now, t.opts); ok {
			etas[p.ID] = eta
		}
	}
	t.paces = paces
	t.etas = etas
	t.lastRecompute = now
}

// Paces returns a copy of the latest derived pace records
func (t *Tracker) Paces() map[string]estimate.PaceRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]estimate.PaceRecord, len(t.paces))
	for k, v := range t.paces {
		out[k] = v
	}
	return out
}

// ETAs returns a copy of the latest derived ETA records
func (t *Tracker) ETAs() map[string]estimate.ETARecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]estimate.ETARecord, len(t.etas))
	for k, v := range t.etas {
		out[k] = v
	}
	return out
}

// ArrivalOrder lists every participant sorted by projected arrival time,
// participants without a projection last, ties broken by ID.
func (t *Tracker) ArrivalOrder() []estimate.ParticipantETA {
	t.mu.Lock()
	list := make([]estimate.ParticipantETA, 0, len(t.state.Participants))
	for _, p := range t.state.Participants {
		item := estimate.ParticipantETA{ParticipantID: p.ID}
		if eta, ok := t.etas[p.ID]; ok {
			e := eta
			item.ETA = &e
		}
		list = append(list, item)
	}
	t.mu.Unlock()
	estimate.SortByArrival(list)
	return list
}

// Warnings returns the accumulated advisory classifications per participant
func (t *Tracker) Warnings() map[string][]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string][]string, len(t.warnings))
	for k, v := range t.warnings {
		ws := make([]string, len(v))
		copy(ws, v)
		out[k] = ws
	}
	return out
}

// CurrentStation reports where a participant is right now
func (t *Tracker) CurrentStation(participantID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Assignments.CurrentStation(participantID)
}

// State returns a deep copy of the event state for persistence
func (t *Tracker) State() event.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneState(t.state)
}

// LastRecompute reports when derived records were last replaced
func (t *Tracker) LastRecompute() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRecompute
}

// LogSize reports the current number of activity log entries
func (t *Tracker) LogSize() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.state.ActivityLog)
}

func cloneState(s event.State) event.State {
	out := event.State{
		Stations:     make([]route.Station, len(s.Stations)),
		Courses:      make([]route.Course, len(s.Courses)),
		Participants: make([]event.Participant, len(s.Participants)),
		Assignments:  make(event.Assignments, len(s.Assignments)),
		ActivityLog:  make([]event.LogEntry, len(s.ActivityLog)),
	}
	copy(out.Stations, s.Stations)
	copy(out.Participants, s.Participants)
	copy(out.ActivityLog, s.ActivityLog)
	for i, c := range s.Courses {
		segs := make([]route.RouteSegment, len(c.Stations))
		copy(segs, c.Stations)
		c.Stations = segs
		out.Courses[i] = c
	}
	for stationID, ids := range s.Assignments {
		cp := make([]string, len(ids))
		copy(cp, ids)
		out.Assignments[stationID] = cp
	}
	return out
}
