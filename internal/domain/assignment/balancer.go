package assignment

import (
	"context"
	"time"

	"civicwatch/internal/domain/officer"
	"civicwatch/internal/shared/errors"
)

// WorkloadMetrics are the raw per-officer numbers the balancer scores.
type WorkloadMetrics struct {
	ActiveCount   int
	AvgResolution time.Duration
}

// MetricsReader supplies live workload metrics for a set of officers. The
// average resolution time covers tasks resolved within the trailing window.
type MetricsReader interface {
	WorkloadMetrics(ctx context.Context, officerIDs []uint, window time.Duration) (map[uint]WorkloadMetrics, error)
}

// Balancer selects an officer for a report under a strategy. Select has no
// side effects beyond advancing the round-robin cursor, so callers may invoke
// it repeatedly. Auto-assignment retries selection when its first candidate
// loses eligibility between snapshot and commit.
type Balancer struct {
	metrics MetricsReader
	cursors CursorStore
	params  ScoringParams
	window  time.Duration
}

func NewBalancer(metrics MetricsReader, cursors CursorStore, params ScoringParams, window time.Duration) *Balancer {
	if window <= 0 {
		window = 30 * 24 * time.Hour
	}
	return &Balancer{
		metrics: metrics,
		cursors: cursors,
		params:  params,
		window:  window,
	}
}

// Select picks one officer from the candidates under the given strategy.
// Candidates must already be the department's active roster; excluded IDs are
// dropped first. Returns NoEligibleOfficer when nothing remains; callers
// must treat that as a hard failure, never fall back to an arbitrary officer.
func (b *Balancer) Select(
	ctx context.Context,
	departmentID uint,
	candidates []*officer.Officer,
	strategy Strategy,
	exclude ...uint,
) (*officer.Officer, error) {
	eligible := filterCandidates(candidates, exclude)
	if len(eligible) == 0 {
		return nil, errors.NewNoEligibleOfficerError(departmentID)
	}

	if strategy == StrategyRoundRobin {
		return b.selectRoundRobin(ctx, departmentID, eligible)
	}

	snapshots, err := b.Snapshots(ctx, eligible)
	if err != nil {
		return nil, err
	}

	var winnerID uint
	switch strategy {
	case StrategyLeastBusy:
		winnerID = pickLeastBusy(snapshots)
	default:
		winnerID = pickBalanced(snapshots)
	}

	for _, o := range eligible {
		if o.ID() == winnerID {
			return o, nil
		}
	}
	return nil, errors.NewNoEligibleOfficerError(departmentID)
}

// Snapshots computes workload snapshots for the given officers, ordered by
// officer ID.
func (b *Balancer) Snapshots(ctx context.Context, officers []*officer.Officer) ([]OfficerWorkloadSnapshot, error) {
	ids := make([]uint, len(officers))
	for i, o := range officers {
		ids[i] = o.ID()
	}

	metrics, err := b.metrics.WorkloadMetrics(ctx, ids, b.window)
	if err != nil {
		return nil, err
	}

	snapshots := make([]OfficerWorkloadSnapshot, len(officers))
	for i, o := range officers {
		m := metrics[o.ID()]
		snapshots[i] = NewSnapshot(o.ID(), m.ActiveCount, m.AvgResolution, b.params)
	}
	return snapshots, nil
}

func (b *Balancer) selectRoundRobin(ctx context.Context, departmentID uint, eligible []*officer.Officer) (*officer.Officer, error) {
	cursor, err := b.cursors.Next(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return eligible[int(cursor%uint64(len(eligible)))], nil
}

// pickLeastBusy returns the arg-min of active count; ties break on lowest
// workload score, then lowest officer ID.
func pickLeastBusy(snapshots []OfficerWorkloadSnapshot) uint {
	best := snapshots[0]
	for _, s := range snapshots[1:] {
		if s.ActiveReportCount < best.ActiveReportCount {
			best = s
			continue
		}
		if s.ActiveReportCount == best.ActiveReportCount {
			if s.WorkloadScore < best.WorkloadScore ||
				(s.WorkloadScore == best.WorkloadScore && s.OfficerID < best.OfficerID) {
				best = s
			}
		}
	}
	return best.OfficerID
}

// pickBalanced returns the arg-min of the workload score; ties break on
// lowest officer ID.
func pickBalanced(snapshots []OfficerWorkloadSnapshot) uint {
	best := snapshots[0]
	for _, s := range snapshots[1:] {
		if s.WorkloadScore < best.WorkloadScore ||
			(s.WorkloadScore == best.WorkloadScore && s.OfficerID < best.OfficerID) {
			best = s
		}
	}
	return best.OfficerID
}

func filterCandidates(candidates []*officer.Officer, exclude []uint) []*officer.Officer {
	excluded := make(map[uint]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	eligible := make([]*officer.Officer, 0, len(candidates))
	for _, o := range candidates {
		if o.IsActive() && !excluded[o.ID()] {
			eligible = append(eligible, o)
		}
	}
	return eligible
}
