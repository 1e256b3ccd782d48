package route

// CourseIndex stores course data in memory for fast lookups
type CourseIndex struct {
	courses    map[string]Course
	segmentIdx map[string]map[string]int // course_id -> station_id -> segment index
}

// NewCourseIndex builds an index over the given courses
func NewCourseIndex(courses []Course) *CourseIndex {
	x := &CourseIndex{
		courses:    map[string]Course{},
		segmentIdx: map[string]map[string]int{},
	}
	for _, c := range courses {
		x.courses[c.ID] = c
		idx := map[string]int{}
		for i, seg := range c.Stations {
			if _, ok := idx[seg.StationID]; !ok {
				idx[seg.StationID] = i
			}
		}
		x.segmentIdx[c.ID] = idx
	}
	return x
}

// Course returns the course for an ID
func (x *CourseIndex) Course(courseID string) (Course, bool) {
	c, ok := x.courses[courseID]
	return c, ok
}

// SegmentIndex returns the position of a station within a course's ordered
// stations, or -1 when the station is not part of the course.
func (x *CourseIndex) SegmentIndex(courseID, stationID string) int {
	if m, ok := x.segmentIdx[courseID]; ok {
		if i, ok2 := m[stationID]; ok2 {
			return i
		}
	}
	return -1
}

// CumulativeDistance returns the distance along the course at a station,
// or 0 when the station is not part of the course.
func (x *CourseIndex) CumulativeDistance(courseID, stationID string) float64 {
	i := x.SegmentIndex(courseID, stationID)
	if i < 0 {
		return 0
	}
	return x.courses[courseID].Stations[i].CumulativeDistance
}

// CumulativeDistanceAt returns the distance along the course at a segment index
func (x *CourseIndex) CumulativeDistanceAt(courseID string, i int) float64 {
	c, ok := x.courses[courseID]
	if !ok || i < 0 || i >= len(c.Stations) {
		return 0
	}
	return c.Stations[i].CumulativeDistance
}

// StationIDAt returns the station at a segment index, or "" when out of range
func (x *CourseIndex) StationIDAt(courseID string, i int) string {
	c, ok := x.courses[courseID]
	if !ok || i < 0 || i >= len(c.Stations) {
		return ""
	}
	return c.Stations[i].StationID
}

// SegmentCount returns the number of configured segments in a course
func (x *CourseIndex) SegmentCount(courseID string) int {
	return len(x.courses[courseID].Stations)
}

// FirstStationID returns the course's starting station, or ""
func (x *CourseIndex) FirstStationID(courseID string) string {
	return x.StationIDAt(courseID, 0)
}

// VirtualFinishDistance returns the unmodeled stretch past the last
// configured station: TotalDistance minus the last cumulative distance.
func (x *CourseIndex) VirtualFinishDistance(courseID string) float64 {
	c, ok := x.courses[courseID]
	if !ok || len(c.Stations) == 0 {
		return 0
	}
	return c.TotalDistance - c.Stations[len(c.Stations)-1].CumulativeDistance
}

// HasDistanceConfiguration reports whether any segment of the course has a
// positive cumulative distance. Courses entered without distances produce
// estimated paces only.
func (x *CourseIndex) HasDistanceConfiguration(courseID string) bool {
	c, ok := x.courses[courseID]
	if !ok {
		return false
	}
	for _, seg := range c.Stations {
		if seg.CumulativeDistance > 0 {
			return true
		}
	}
	return false
}

// AllCourseIDs returns the IDs of every indexed course
func (x *CourseIndex) AllCourseIDs() []string {
	keys := make([]string, 0, len(x.courses))
	for k := range x.courses {
		keys = append(keys, k)
	}
	return keys
}
