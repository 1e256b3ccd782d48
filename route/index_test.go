package route

import "testing"

func testCourse() Course {
	return Course{
		ID:   "50K",
		Name: "50K",
		Stations: []RouteSegment{
			{StationID: "start", SegmentDistance: 0, CumulativeDistance: 0},
			{StationID: "aid1", SegmentDistance: 10, CumulativeDistance: 10},
			{StationID: "aid2", SegmentDistance: 10, CumulativeDistance: 20},
		},
		TotalDistance: 31,
	}
}

func TestCourseIndex_SegmentIndex(t *testing.T) {
	idx := NewCourseIndex([]Course{testCourse()})

	tests := []struct {
		name      string
		courseID  string
		stationID string
		want      int
	}{
		{name: "first station", courseID: "50K", stationID: "start", want: 0},
		{name: "middle station", courseID: "50K", stationID: "aid1", want: 1},
		{name: "last station", courseID: "50K", stationID: "aid2", want: 2},
		{name: "station not on course", courseID: "50K", stationID: "dnf", want: -1},
		{name: "unknown course", courseID: "100K", stationID: "start", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.SegmentIndex(tt.courseID, tt.stationID); got != tt.want {
				t.Errorf("SegmentIndex(%s, %s) = %d, want %d", tt.courseID, tt.stationID, got, tt.want)
			}
		})
	}
}

func TestCourseIndex_CumulativeDistance(t *testing.T) {
	idx := NewCourseIndex([]Course{testCourse()})

	if got := idx.CumulativeDistance("50K", "aid2"); got != 20 {
		t.Errorf("expected 20, got %v", got)
	}
	if got := idx.CumulativeDistance("50K", "missing"); got != 0 {
		t.Errorf("missing station should report 0, got %v", got)
	}
}

func TestCourseIndex_VirtualFinishDistance(t *testing.T) {
	idx := NewCourseIndex([]Course{testCourse()})

	if got := idx.VirtualFinishDistance("50K"); got != 11 {
		t.Errorf("expected 11 (31 total - 20 at last station), got %v", got)
	}
	if got := idx.VirtualFinishDistance("unknown"); got != 0 {
		t.Errorf("unknown course should report 0, got %v", got)
	}
}

func TestCourseIndex_HasDistanceConfiguration(t *testing.T) {
	noDistances := Course{
		ID: "flat",
		Stations: []RouteSegment{
			{StationID: "a"},
			{StationID: "b"},
		},
	}
	idx := NewCourseIndex([]Course{testCourse(), noDistances})

	if !idx.HasDistanceConfiguration("50K") {
		t.Error("50K has configured distances")
	}
	if idx.HasDistanceConfiguration("flat") {
		t.Error("course without positive cumulative distances should report false")
	}
}

// Malformed route data is accepted as given; the index must not reorder
// or reject non-monotonic cumulative distances.
func TestCourseIndex_NonMonotonicAcceptedAsGiven(t *testing.T) {
	broken := Course{
		ID: "broken",
		Stations: []RouteSegment{
			{StationID: "a", CumulativeDistance: 0},
			{StationID: "b", CumulativeDistance: 12},
			{StationID: "c", CumulativeDistance: 5},
		},
		TotalDistance: 12,
	}
	idx := NewCourseIndex([]Course{broken})

	if got := idx.SegmentIndex("broken", "c"); got != 2 {
		t.Errorf("station order must follow input, got index %d", got)
	}
	if got := idx.CumulativeDistance("broken", "c"); got != 5 {
		t.Errorf("cumulative distance must be reported as given, got %v", got)
	}
	if got := idx.VirtualFinishDistance("broken"); got != 7 {
		t.Errorf("virtual finish computed from last segment as given, got %v", got)
	}
}

func TestCourseIndex_Lookup(t *testing.T) {
	idx := NewCourseIndex([]Course{testCourse()})

	c, ok := idx.Course("50K")
	if !ok || c.TotalDistance != 31 {
		t.Errorf("expected the indexed course, got %+v (ok=%v)", c, ok)
	}
	if _, ok := idx.Course("100K"); ok {
		t.Error("unknown course must report false")
	}
	if ids := idx.AllCourseIDs(); len(ids) != 1 || ids[0] != "50K" {
		t.Errorf("expected [50K], got %v", ids)
	}
}

func TestCourseIndex_StationIDAt(t *testing.T) {
	idx := NewCourseIndex([]Course{testCourse()})

	if got := idx.StationIDAt("50K", 1); got != "aid1" {
		t.Errorf("expected aid1, got %s", got)
	}
	if got := idx.StationIDAt("50K", 5); got != "" {
		t.Errorf("out of range index should return empty, got %s", got)
	}
	if got := idx.FirstStationID("50K"); got != "start" {
		t.Errorf("expected start, got %s", got)
	}
}
