package estimate

import (
	"github.com/trailops/aidtrack/event"
	"github.com/trailops/aidtrack/route"
	"github.com/trailops/aidtrack/utils"
)

type paceSegment struct {
	distance float64
	speed    float64
}

// CalculatePace derives average and recent speed from a participant's
// chronologically sorted arrival/departed entries and their course.
// Backward and same-station pairs are skipped, not penalized.
func CalculatePace(entries []event.LogEntry, courseID string, idx *route.CourseIndex, opts Options) PaceRecord {
	if len(entries) < 2 {
		return estimatedPace(opts, 0, "fewer than two log entries")
	}
	if !idx.HasDistanceConfiguration(courseID) {
		return estimatedPace(opts, 0, "no distance configuration")
	}

	segments := []paceSegment{}
	for i := 0; i < len(entries)-1; i++ {
		from, to := entries[i], entries[i+1]
		if from.StationID == to.StationID {
			continue
		}
		fromIdx := idx.SegmentIndex(courseID, from.StationID)
		toIdx := idx.SegmentIndex(courseID, to.StationID)
		if fromIdx < 0 || toIdx < 0 || toIdx <= fromIdx {
			continue
		}
		distance := idx.CumulativeDistance(courseID, to.StationID) - idx.CumulativeDistance(courseID, from.StationID)
		hours := utils.HoursBetween(from.UserTime, to.UserTime)
		if distance <= 0 || hours <= 0 {
			continue
		}
		segments = append(segments, paceSegment{distance: distance, speed: distance / hours})
	}

	if len(segments) == 0 {
		reason := "no movement data"
		if entries[len(entries)-1].Type == event.EntryDeparted {
			reason = "en route, no arrival yet"
		}
		return estimatedPace(opts, 0, reason)
	}

	recentFrom := len(segments) - 2
	if recentFrom < 0 {
		recentFrom = 0
	}
	return PaceRecord{
		AverageSpeed:       weightedMeanSpeed(segments),
		RecentSpeed:        weightedMeanSpeed(segments[recentFrom:]),
		IsEstimated:        false,
		SampleSegmentCount: len(segments),
	}
}

// weightedMeanSpeed is the distance-weighted mean of segment speeds, so a
// long segment counts for more than a short one.
func weightedMeanSpeed(segments []paceSegment) float64 {
	var weighted, total float64
	for _, s := range segments {
		weighted += s.distance * s.speed
		total += s.distance
	}
	if total <= 0 {
		return 0
	}
	return weighted / total
}

func estimatedPace(opts Options, samples int, reason string) PaceRecord {
	return PaceRecord{
		AverageSpeed:       opts.DefaultSpeedMPH,
		RecentSpeed:        opts.DefaultSpeedMPH,
		IsEstimated:        true,
		SampleSegmentCount: samples,
		Reason:             reason,
	}
}
