package route

// Station is a checkpoint participants pass through. IsDefault marks
// system-reserved terminal/status stations (Start, DNF, DNS, Suspect);
// those are immutable once referenced by activity history except for rename.
type Station struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

// RouteSegment is one entry of a course's ordered station sequence.
// CumulativeDistance is non-decreasing starting at 0 for the first entry.
type RouteSegment struct {
	StationID          string  `json:"stationId"`
	SegmentDistance    float64 `json:"segmentDistance"`
	CumulativeDistance float64 `json:"cumulativeDistance"`
}

// Course is the ordered route a participant follows. TotalDistance may
// exceed the last segment's cumulative distance; the remainder is the
// virtual finish stretch.
type Course struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Stations      []RouteSegment `json:"stations"`
	TotalDistance float64        `json:"totalDistance"`
}
