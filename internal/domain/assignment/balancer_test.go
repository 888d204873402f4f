package assignment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicwatch/internal/domain/officer"
	"civicwatch/internal/shared/errors"
)

type stubMetricsReader struct {
	metrics map[uint]WorkloadMetrics
	err     error
}

func (s *stubMetricsReader) WorkloadMetrics(ctx context.Context, officerIDs []uint, window time.Duration) (map[uint]WorkloadMetrics, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.metrics, nil
}

func activeOfficer(t *testing.T, id uint) *officer.Officer {
	t.Helper()
	o, err := officer.ReconstructOfficer(id, fmt.Sprintf("Officer %d", id), 3, officer.StatusActive, time.Now(), time.Now())
	require.NoError(t, err)
	return o
}

func suspendedOfficer(t *testing.T, id uint) *officer.Officer {
	t.Helper()
	o, err := officer.ReconstructOfficer(id, fmt.Sprintf("Officer %d", id), 3, officer.StatusSuspended, time.Now(), time.Now())
	require.NoError(t, err)
	return o
}

func newBalancer(metrics MetricsReader) *Balancer {
	return NewBalancer(metrics, NewInMemoryCursorStore(), DefaultScoringParams(), 30*24*time.Hour)
}

func TestBalancer_Select_LeastBusy(t *testing.T) {
	t.Run("fewest active tasks wins", func(t *testing.T) {
		b := newBalancer(&stubMetricsReader{metrics: map[uint]WorkloadMetrics{
			7: {ActiveCount: 5},
			8: {ActiveCount: 1},
			9: {ActiveCount: 3},
		}})

		selected, err := b.Select(context.Background(), 3,
			[]*officer.Officer{activeOfficer(t, 7), activeOfficer(t, 8), activeOfficer(t, 9)},
			StrategyLeastBusy)

		require.NoError(t, err)
		assert.Equal(t, uint(8), selected.ID())
	})

	t.Run("count tie breaks on score then lowest ID", func(t *testing.T) {
		b := newBalancer(&stubMetricsReader{metrics: map[uint]WorkloadMetrics{
			7: {ActiveCount: 2, AvgResolution: 96 * time.Hour},
			8: {ActiveCount: 2, AvgResolution: 12 * time.Hour},
			9: {ActiveCount: 2, AvgResolution: 12 * time.Hour},
		}})

		selected, err := b.Select(context.Background(), 3,
			[]*officer.Officer{activeOfficer(t, 7), activeOfficer(t, 8), activeOfficer(t, 9)},
			StrategyLeastBusy)

		require.NoError(t, err)
		assert.Equal(t, uint(8), selected.ID())
	})
}

func TestBalancer_Select_Balanced(t *testing.T) {
	t.Run("slow resolution outweighs a small count advantage", func(t *testing.T) {
		// score = count + 2.0 * (avg / 72h): 4.67 for officer 7, 7.0 for 8.
		b := newBalancer(&stubMetricsReader{metrics: map[uint]WorkloadMetrics{
			7: {ActiveCount: 4, AvgResolution: 24 * time.Hour},
			8: {ActiveCount: 3, AvgResolution: 144 * time.Hour},
		}})

		selected, err := b.Select(context.Background(), 3,
			[]*officer.Officer{activeOfficer(t, 7), activeOfficer(t, 8)},
			StrategyBalanced)

		require.NoError(t, err)
		assert.Equal(t, uint(7), selected.ID())
	})

	t.Run("no resolved history contributes nothing to the score", func(t *testing.T) {
		b := newBalancer(&stubMetricsReader{metrics: map[uint]WorkloadMetrics{
			7: {ActiveCount: 2, AvgResolution: 0},
			8: {ActiveCount: 2, AvgResolution: 12 * time.Hour},
		}})

		selected, err := b.Select(context.Background(), 3,
			[]*officer.Officer{activeOfficer(t, 7), activeOfficer(t, 8)},
			StrategyBalanced)

		require.NoError(t, err)
		assert.Equal(t, uint(7), selected.ID())
	})

	t.Run("exact score tie breaks on lowest ID", func(t *testing.T) {
		b := newBalancer(&stubMetricsReader{metrics: map[uint]WorkloadMetrics{
			9: {ActiveCount: 2},
			7: {ActiveCount: 2},
		}})

		selected, err := b.Select(context.Background(), 3,
			[]*officer.Officer{activeOfficer(t, 9), activeOfficer(t, 7)},
			StrategyBalanced)

		require.NoError(t, err)
		assert.Equal(t, uint(7), selected.ID())
	})
}

func TestBalancer_Select_RoundRobin(t *testing.T) {
	b := newBalancer(&stubMetricsReader{})
	candidates := []*officer.Officer{activeOfficer(t, 7), activeOfficer(t, 8), activeOfficer(t, 9)}

	var picks []uint
	for i := 0; i < 6; i++ {
		selected, err := b.Select(context.Background(), 3, candidates, StrategyRoundRobin)
		require.NoError(t, err)
		picks = append(picks, selected.ID())
	}

	// The cursor starts at 1, so rotation begins with the second officer.
	assert.Equal(t, []uint{8, 9, 7, 8, 9, 7}, picks)
}

func TestBalancer_Select_RoundRobinPerDepartmentCursor(t *testing.T) {
	b := newBalancer(&stubMetricsReader{})
	candidates := []*officer.Officer{activeOfficer(t, 7), activeOfficer(t, 8)}

	first, err := b.Select(context.Background(), 3, candidates, StrategyRoundRobin)
	require.NoError(t, err)
	other, err := b.Select(context.Background(), 4, candidates, StrategyRoundRobin)
	require.NoError(t, err)

	// Departments rotate independently.
	assert.Equal(t, first.ID(), other.ID())
}

func TestBalancer_Select_FiltersCandidates(t *testing.T) {
	t.Run("inactive officers are skipped", func(t *testing.T) {
		b := newBalancer(&stubMetricsReader{metrics: map[uint]WorkloadMetrics{
			8: {ActiveCount: 4},
		}})

		selected, err := b.Select(context.Background(), 3,
			[]*officer.Officer{suspendedOfficer(t, 7), activeOfficer(t, 8)},
			StrategyLeastBusy)

		require.NoError(t, err)
		assert.Equal(t, uint(8), selected.ID())
	})

	t.Run("excluded officers are skipped", func(t *testing.T) {
		b := newBalancer(&stubMetricsReader{metrics: map[uint]WorkloadMetrics{
			7: {ActiveCount: 0},
			8: {ActiveCount: 4},
		}})

		selected, err := b.Select(context.Background(), 3,
			[]*officer.Officer{activeOfficer(t, 7), activeOfficer(t, 8)},
			StrategyLeastBusy, 7)

		require.NoError(t, err)
		assert.Equal(t, uint(8), selected.ID())
	})

	t.Run("empty roster yields NoEligibleOfficer", func(t *testing.T) {
		b := newBalancer(&stubMetricsReader{})

		_, err := b.Select(context.Background(), 3, nil, StrategyLeastBusy)
		require.Error(t, err)
		assert.True(t, errors.IsNoEligibleOfficerError(err))

		_, err = b.Select(context.Background(), 3,
			[]*officer.Officer{suspendedOfficer(t, 7)}, StrategyBalanced)
		require.Error(t, err)
		assert.True(t, errors.IsNoEligibleOfficerError(err))

		_, err = b.Select(context.Background(), 3,
			[]*officer.Officer{activeOfficer(t, 7)}, StrategyRoundRobin, 7)
		require.Error(t, err)
		assert.True(t, errors.IsNoEligibleOfficerError(err))
	})
}

func TestBalancer_Select_MetricsFailure(t *testing.T) {
	b := newBalancer(&stubMetricsReader{err: fmt.Errorf("connection refused")})

	_, err := b.Select(context.Background(), 3,
		[]*officer.Officer{activeOfficer(t, 7)}, StrategyBalanced)
	require.Error(t, err)
}

func TestNewSnapshot(t *testing.T) {
	params := DefaultScoringParams()

	t.Run("score blends count and normalized resolution", func(t *testing.T) {
		s := NewSnapshot(7, 4, 36*time.Hour, params)
		assert.InDelta(t, 5.0, s.WorkloadScore, 0.0001)
	})

	t.Run("zero resolution time adds nothing", func(t *testing.T) {
		s := NewSnapshot(7, 4, 0, params)
		assert.InDelta(t, 4.0, s.WorkloadScore, 0.0001)
	})

	t.Run("capacity buckets", func(t *testing.T) {
		assert.Equal(t, CapacityLow, NewSnapshot(7, 4, 0, params).CapacityLevel)
		assert.Equal(t, CapacityModerate, NewSnapshot(7, 5, 0, params).CapacityLevel)
		assert.Equal(t, CapacityHigh, NewSnapshot(7, 10, 0, params).CapacityLevel)
		assert.Equal(t, CapacityOverloaded, NewSnapshot(7, 15, 0, params).CapacityLevel)
	})
}

func TestInMemoryCursorStore_Next(t *testing.T) {
	store := NewInMemoryCursorStore()

	first, err := store.Next(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first)

	second, err := store.Next(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second)

	other, err := store.Next(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), other)
}

func TestNewStrategy(t *testing.T) {
	for _, valid := range []string{"least_busy", "balanced", "round_robin"} {
		s, err := NewStrategy(valid)
		require.NoError(t, err)
		assert.True(t, s.IsValid())
	}

	_, err := NewStrategy("alphabetical")
	require.Error(t, err)
}
