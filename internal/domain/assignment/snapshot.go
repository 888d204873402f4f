// Package assignment implements workload-aware officer selection. Everything
// here is read-only selection logic; the only state it touches is the
// round-robin cursor, which lives behind CursorStore.
package assignment

import "time"

type CapacityLevel string

const (
	CapacityLow        CapacityLevel = "low"
	CapacityModerate   CapacityLevel = "moderate"
	CapacityHigh       CapacityLevel = "high"
	CapacityOverloaded CapacityLevel = "overloaded"
)

// ScoringParams are the knobs of the workload score formula:
// score = active_count + weight * (avg_resolution / baseline).
type ScoringParams struct {
	Weight             float64
	BaselineResolution time.Duration

	ModerateThreshold   int
	HighThreshold       int
	OverloadedThreshold int
}

// DefaultScoringParams mirrors the configuration defaults.
func DefaultScoringParams() ScoringParams {
	return ScoringParams{
		Weight:              2.0,
		BaselineResolution:  72 * time.Hour,
		ModerateThreshold:   5,
		HighThreshold:       10,
		OverloadedThreshold: 15,
	}
}

// OfficerWorkloadSnapshot is a point-in-time, derived view of an officer's
// load. It is a selection signal only, never a source of truth for report
// state.
type OfficerWorkloadSnapshot struct {
	OfficerID         uint
	ActiveReportCount int
	AvgResolutionTime time.Duration
	WorkloadScore     float64
	CapacityLevel     CapacityLevel
}

// NewSnapshot derives the score and capacity bucket from the raw metrics. A
// zero average resolution time (no resolved tasks in the window) contributes
// nothing to the score rather than penalizing new officers.
func NewSnapshot(officerID uint, activeCount int, avgResolution time.Duration, params ScoringParams) OfficerWorkloadSnapshot {
	score := float64(activeCount)
	if avgResolution > 0 && params.BaselineResolution > 0 {
		score += params.Weight * (avgResolution.Minutes() / params.BaselineResolution.Minutes())
	}

	return OfficerWorkloadSnapshot{
		OfficerID:         officerID,
		ActiveReportCount: activeCount,
		AvgResolutionTime: avgResolution,
		WorkloadScore:     score,
		CapacityLevel:     capacityFor(activeCount, params),
	}
}

func capacityFor(activeCount int, params ScoringParams) CapacityLevel {
	switch {
	case activeCount >= params.OverloadedThreshold:
		return CapacityOverloaded
	case activeCount >= params.HighThreshold:
		return CapacityHigh
	case activeCount >= params.ModerateThreshold:
		return CapacityModerate
	default:
		return CapacityLow
	}
}
