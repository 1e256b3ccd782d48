package estimate

import "time"

// Confidence grades how much history backs an ETA
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Options carries the estimation parameters. All three are configurable;
// see config.EstimationConfig for the defaults.
type Options struct {
	// DefaultSpeedMPH is used whenever no real pace can be derived
	DefaultSpeedMPH float64

	// FatigueFactor is the per-segment multiplicative speed decay applied
	// to projections, modeling progressive slowdown with distance covered
	FatigueFactor float64

	// GenerosityFactor divides projected speed to widen arrival estimates
	GenerosityFactor float64
}

// PaceRecord is a derived speed summary for one participant. Derived
// records are recomputed on demand and have no independent lifecycle.
type PaceRecord struct {
	AverageSpeed       float64 `json:"averageSpeed"`
	RecentSpeed        float64 `json:"recentSpeed"`
	IsEstimated        bool    `json:"isEstimated"`
	SampleSegmentCount int     `json:"sampleSegmentCount"`
	Reason             string  `json:"reason,omitempty"`
}

// ETARecord is a derived arrival projection for one participant
type ETARecord struct {
	NextStationID     string     `json:"nextStationId,omitempty"`
	NextStationName   string     `json:"nextStationName"`
	RemainingDistance float64    `json:"remainingDistance"`
	ProjectedSpeed    float64    `json:"projectedSpeed"`
	ETATime           time.Time  `json:"etaTime"`
	IsEstimated       bool       `json:"isEstimated"`
	Confidence        Confidence `json:"confidence"`
	IsFinish          bool       `json:"isFinish"`
}

// ParticipantETA pairs a participant with their projection for sorting.
// A nil ETA means no projection could be made.
type ParticipantETA struct {
	ParticipantID string     `json:"participantId"`
	ETA           *ETARecord `json:"eta,omitempty"`
}
