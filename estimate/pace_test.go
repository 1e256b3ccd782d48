package estimate

import (
	"math"
	"testing"
	"time"

	"github.com/trailops/aidtrack/event"
	"github.com/trailops/aidtrack/route"
)

var (
	testOpts = Options{DefaultSpeedMPH: 3.0, FatigueFactor: 0.95, GenerosityFactor: 1.1}
	paceT0   = time.Date(2026, 5, 2, 6, 0, 0, 0, time.UTC)
)

func fiftyK() *route.CourseIndex {
	return route.NewCourseIndex([]route.Course{{
		ID: "50K",
		Stations: []route.RouteSegment{
			{StationID: "start", CumulativeDistance: 0},
			{StationID: "aid1", SegmentDistance: 10, CumulativeDistance: 10},
			{StationID: "aid2", SegmentDistance: 10, CumulativeDistance: 20},
		},
		TotalDistance: 31,
	}})
}

func moveEntry(typ event.EntryType, station string, at time.Time) event.LogEntry {
	return event.LogEntry{
		ID:            station + "-" + string(typ),
		RecordedAt:    at,
		UserTime:      at,
		Type:          typ,
		StationID:     station,
		ParticipantID: "p1",
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// Departs Start at T0, arrives Aid1 at T0+1h: 10 miles in 1 hour.
func TestCalculatePace_SingleSegment(t *testing.T) {
	entries := []event.LogEntry{
		moveEntry(event.EntryDeparted, "start", paceT0),
		moveEntry(event.EntryArrival, "aid1", paceT0.Add(time.Hour)),
	}

	got := CalculatePace(entries, "50K", fiftyK(), testOpts)

	if got.IsEstimated {
		t.Fatalf("one real segment should not be estimated: %+v", got)
	}
	if !almostEqual(got.AverageSpeed, 10) || !almostEqual(got.RecentSpeed, 10) {
		t.Errorf("expected 10 mph average and recent, got %v / %v", got.AverageSpeed, got.RecentSpeed)
	}
	if got.SampleSegmentCount != 1 {
		t.Errorf("expected 1 sample segment, got %d", got.SampleSegmentCount)
	}
}

func TestCalculatePace_DistanceWeightedAverage(t *testing.T) {
	// start->aid1: 10mi in 1h = 10mph; aid1->aid2: 10mi in 2h = 5mph.
	// Equal distances, so the weighted mean is 7.5; recent covers both.
	entries := []event.LogEntry{
		moveEntry(event.EntryDeparted, "start", paceT0),
		moveEntry(event.EntryArrival, "aid1", paceT0.Add(time.Hour)),
		moveEntry(event.EntryArrival, "aid2", paceT0.Add(3*time.Hour)),
	}

	got := CalculatePace(entries, "50K", fiftyK(), testOpts)

	if got.SampleSegmentCount != 2 {
		t.Fatalf("expected 2 segments, got %d (%+v)", got.SampleSegmentCount, got)
	}
	if !almostEqual(got.AverageSpeed, 7.5) {
		t.Errorf("expected 7.5 mph average, got %v", got.AverageSpeed)
	}
	if !almostEqual(got.RecentSpeed, 7.5) {
		t.Errorf("expected 7.5 mph recent over last two segments, got %v", got.RecentSpeed)
	}
}

func TestCalculatePace_RecentUsesLastTwoSegments(t *testing.T) {
	longCourse := route.NewCourseIndex([]route.Course{{
		ID: "50K",
		Stations: []route.RouteSegment{
			{StationID: "start", CumulativeDistance: 0},
			{StationID: "aid1", CumulativeDistance: 10},
			{StationID: "aid2", CumulativeDistance: 20},
			{StationID: "aid3", CumulativeDistance: 30},
		},
		TotalDistance: 31,
	}})
	// 10mph, then 5mph, then 2.5mph. Recent = mean(5, 2.5) = 3.75.
	entries := []event.LogEntry{
		moveEntry(event.EntryDeparted, "start", paceT0),
		moveEntry(event.EntryArrival, "aid1", paceT0.Add(time.Hour)),
		moveEntry(event.EntryArrival, "aid2", paceT0.Add(3*time.Hour)),
		moveEntry(event.EntryArrival, "aid3", paceT0.Add(7*time.Hour)),
	}

	got := CalculatePace(entries, "50K", longCourse, testOpts)

	if got.SampleSegmentCount != 3 {
		t.Fatalf("expected 3 segments, got %d", got.SampleSegmentCount)
	}
	if !almostEqual(got.RecentSpeed, 3.75) {
		t.Errorf("expected 3.75 mph recent, got %v", got.RecentSpeed)
	}
	if got.RecentSpeed >= got.AverageSpeed {
		t.Errorf("slowing runner: recent %v should trail average %v", got.RecentSpeed, got.AverageSpeed)
	}
}

// Two consecutive arrivals at the same station form no segment and must
// not alter the average.
func TestCalculatePace_DuplicateArrivalDiscarded(t *testing.T) {
	entries := []event.LogEntry{
		moveEntry(event.EntryDeparted, "start", paceT0),
		moveEntry(event.EntryArrival, "aid1", paceT0.Add(time.Hour)),
		moveEntry(event.EntryArrival, "aid1", paceT0.Add(90*time.Minute)),
	}

	got := CalculatePace(entries, "50K", fiftyK(), testOpts)

	if got.SampleSegmentCount != 1 {
		t.Fatalf("duplicate arrival must not add a segment, got %d", got.SampleSegmentCount)
	}
	if !almostEqual(got.AverageSpeed, 10) {
		t.Errorf("average altered by duplicate: %v", got.AverageSpeed)
	}
}

func TestCalculatePace_BackwardsPairSkippedNotPenalized(t *testing.T) {
	entries := []event.LogEntry{
		moveEntry(event.EntryDeparted, "start", paceT0),
		moveEntry(event.EntryArrival, "aid2", paceT0.Add(2*time.Hour)),
		moveEntry(event.EntryArrival, "aid1", paceT0.Add(3*time.Hour)), // mis-entry going backwards
	}

	got := CalculatePace(entries, "50K", fiftyK(), testOpts)

	if got.SampleSegmentCount != 1 {
		t.Fatalf("backwards pair must be skipped, got %d segments", got.SampleSegmentCount)
	}
	if !almostEqual(got.AverageSpeed, 10) {
		t.Errorf("expected 10 mph from the forward pair only, got %v", got.AverageSpeed)
	}
}

func TestCalculatePace_DegradedInputs(t *testing.T) {
	noDistances := route.NewCourseIndex([]route.Course{{
		ID: "50K",
		Stations: []route.RouteSegment{
			{StationID: "start"},
			{StationID: "aid1"},
		},
	}})

	tests := []struct {
		name       string
		entries    []event.LogEntry
		idx        *route.CourseIndex
		wantReason string
	}{
		{
			name:       "no entries",
			entries:    nil,
			idx:        fiftyK(),
			wantReason: "fewer than two log entries",
		},
		{
			name: "single entry",
			entries: []event.LogEntry{
				moveEntry(event.EntryArrival, "start", paceT0),
			},
			idx:        fiftyK(),
			wantReason: "fewer than two log entries",
		},
		{
			name: "no distance configuration",
			entries: []event.LogEntry{
				moveEntry(event.EntryDeparted, "start", paceT0),
				moveEntry(event.EntryArrival, "aid1", paceT0.Add(time.Hour)),
			},
			idx:        noDistances,
			wantReason: "no distance configuration",
		},
		{
			name: "en route, no arrival yet",
			entries: []event.LogEntry{
				moveEntry(event.EntryArrival, "start", paceT0),
				moveEntry(event.EntryDeparted, "start", paceT0.Add(10*time.Minute)),
			},
			idx:        fiftyK(),
			wantReason: "en route, no arrival yet",
		},
		{
			name: "no movement data",
			entries: []event.LogEntry{
				moveEntry(event.EntryArrival, "aid1", paceT0),
				moveEntry(event.EntryArrival, "aid1", paceT0.Add(time.Hour)),
			},
			idx:        fiftyK(),
			wantReason: "no movement data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePace(tt.entries, "50K", tt.idx, testOpts)
			if !got.IsEstimated {
				t.Fatalf("expected estimated record, got %+v", got)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if !almostEqual(got.AverageSpeed, testOpts.DefaultSpeedMPH) {
				t.Errorf("estimated record must carry the default speed, got %v", got.AverageSpeed)
			}
			if got.SampleSegmentCount != 0 {
				t.Errorf("estimated record must have 0 samples, got %d", got.SampleSegmentCount)
			}
		})
	}
}

// Computed speeds are positive unless the record is estimated.
func TestCalculatePace_NonNegativity(t *testing.T) {
	histories := [][]event.LogEntry{
		{
			moveEntry(event.EntryDeparted, "start", paceT0),
			moveEntry(event.EntryArrival, "aid1", paceT0.Add(time.Hour)),
		},
		{
			moveEntry(event.EntryArrival, "aid1", paceT0.Add(time.Hour)),
			moveEntry(event.EntryArrival, "aid1", paceT0.Add(2*time.Hour)),
		},
		{
			// zero elapsed time between stations is discarded
			moveEntry(event.EntryDeparted, "start", paceT0),
			moveEntry(event.EntryArrival, "aid1", paceT0),
		},
	}

	for i, entries := range histories {
		got := CalculatePace(entries, "50K", fiftyK(), testOpts)
		if !got.IsEstimated && (got.AverageSpeed <= 0 || got.RecentSpeed <= 0) {
			t.Errorf("history %d: non-estimated record with non-positive speed: %+v", i, got)
		}
	}
}
