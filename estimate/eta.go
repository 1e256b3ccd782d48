package estimate

import (
	"math"
	"sort"
	"time"

	"github.com/trailops/aidtrack/event"
	"github.com/trailops/aidtrack/route"
	"github.com/trailops/aidtrack/utils"
)

// PredictETA projects a participant's arrival at their next station, or at
// the virtual finish when they sit at the last configured station. The
// second return is false when no projection can be made: unassigned
// participant, current station off-course, or nothing left to cover.
//
// entries must be the participant's full chronological log history; it
// anchors the projection at their latest observation.
func PredictETA(p event.Participant, currentStationID string, pace PaceRecord, entries []event.LogEntry, idx *route.CourseIndex, stations map[string]route.Station, now time.Time, opts Options) (ETARecord, bool) {
	if currentStationID == "" || p.CourseID == "" {
		return ETARecord{}, false
	}
	currentIdx := idx.SegmentIndex(p.CourseID, currentStationID)
	if currentIdx < 0 {
		return ETARecord{}, false
	}

	var remaining float64
	var nextStationID, nextStationName string
	isFinish := false
	if currentIdx == idx.SegmentCount(p.CourseID)-1 {
		isFinish = true
		remaining = idx.VirtualFinishDistance(p.CourseID)
		nextStationName = "Finish"
	} else {
		remaining = idx.CumulativeDistanceAt(p.CourseID, currentIdx+1) - idx.CumulativeDistanceAt(p.CourseID, currentIdx)
		nextStationID = idx.StationIDAt(p.CourseID, currentIdx+1)
		nextStationName = nextStationID
		if st, ok := stations[nextStationID]; ok && st.Name != "" {
			nextStationName = st.Name
		}
	}
	if remaining <= 0 {
		return ETARecord{}, false
	}

	base := pace.RecentSpeed
	if pace.IsEstimated {
		base = opts.DefaultSpeedMPH
	}
	projected := base * math.Pow(opts.FatigueFactor, float64(currentIdx)) / opts.GenerosityFactor
	if projected <= 0 {
		return ETARecord{}, false
	}

	anchor := anchorTime(entries, currentStationID, now)
	eta := anchor.Add(utils.DurationFromHours(remaining / projected))

	return ETARecord{
		NextStationID:     nextStationID,
		NextStationName:   nextStationName,
		RemainingDistance: remaining,
		ProjectedSpeed:    projected,
		ETATime:           eta,
		IsEstimated:       pace.IsEstimated,
		Confidence:        confidence(pace, isFinish),
		IsFinish:          isFinish,
	}, true
}

// anchorTime picks the projection start: the latest entry at the current
// station, else the latest entry anywhere, else now.
func anchorTime(entries []event.LogEntry, currentStationID string, now time.Time) time.Time {
	var atStation, anywhere *time.Time
	for i := range entries {
		e := entries[i]
		if anywhere == nil || e.UserTime.After(*anywhere) {
			t := e.UserTime
			anywhere = &t
		}
		if e.StationID == currentStationID && (atStation == nil || e.UserTime.After(*atStation)) {
			t := e.UserTime
			atStation = &t
		}
	}
	if atStation != nil {
		return *atStation
	}
	if anywhere != nil {
		return *anywhere
	}
	return now
}

func confidence(pace PaceRecord, isFinish bool) Confidence {
	if pace.IsEstimated || isFinish {
		return ConfidenceLow
	}
	switch {
	case pace.SampleSegmentCount >= 2:
		return ConfidenceHigh
	case pace.SampleSegmentCount == 1:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// SortByArrival orders participants by projected arrival time ascending.
// Participants with no projection sort last; ties break on participant ID.
func SortByArrival(list []ParticipantETA) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch {
		case a.ETA == nil && b.ETA == nil:
			return a.ParticipantID < b.ParticipantID
		case a.ETA == nil:
			return false
		case b.ETA == nil:
			return true
		case a.ETA.ETATime.Equal(b.ETA.ETATime):
			return a.ParticipantID < b.ParticipantID
		default:
			return a.ETA.ETATime.Before(b.ETA.ETATime)
		}
	})
}
