package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"civicwatch/internal/domain/assignment"
	"civicwatch/internal/infrastructure/persistence/models"
	"civicwatch/internal/shared/db"
)

// WorkloadRepository derives live per-officer workload metrics from the tasks
// table. It implements assignment.MetricsReader and is read-only.
type WorkloadRepository struct {
	db *gorm.DB
}

func NewWorkloadRepository(db *gorm.DB) *WorkloadRepository {
	return &WorkloadRepository{db: db}
}

func (r *WorkloadRepository) WorkloadMetrics(
	ctx context.Context,
	officerIDs []uint,
	window time.Duration,
) (map[uint]assignment.WorkloadMetrics, error) {
	metrics := make(map[uint]assignment.WorkloadMetrics, len(officerIDs))
	if len(officerIDs) == 0 {
		return metrics, nil
	}

	tx := db.GetTxFromContext(ctx, r.db)

	type countRow struct {
		AssignedTo uint
		Count      int
	}
	var counts []countRow
	if err := tx.
		Model(&models.TaskModel{}).
		Select("assigned_to, COUNT(*) AS count").
		Where("assigned_to IN ? AND status NOT IN ?", officerIDs, []string{"resolved", "rejected"}).
		Group("assigned_to").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count active tasks: %w", err)
	}

	type avgRow struct {
		AssignedTo uint
		AvgMillis  float64
	}
	windowStart := time.Now().Add(-window).UnixMilli()
	var avgs []avgRow
	if err := tx.
		Model(&models.TaskModel{}).
		Select("assigned_to, AVG(resolved_at - assigned_at) AS avg_millis").
		Where("assigned_to IN ? AND resolved_at IS NOT NULL AND resolved_at >= ?", officerIDs, windowStart).
		Group("assigned_to").
		Scan(&avgs).Error; err != nil {
		return nil, fmt.Errorf("failed to compute resolution averages: %w", err)
	}

	for _, id := range officerIDs {
		metrics[id] = assignment.WorkloadMetrics{}
	}
	for _, row := range counts {
		m := metrics[row.AssignedTo]
		m.ActiveCount = row.Count
		metrics[row.AssignedTo] = m
	}
	for _, row := range avgs {
		m := metrics[row.AssignedTo]
		m.AvgResolution = time.Duration(row.AvgMillis) * time.Millisecond
		metrics[row.AssignedTo] = m
	}

	return metrics, nil
}
