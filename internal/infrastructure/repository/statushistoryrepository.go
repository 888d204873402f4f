package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"civicwatch/internal/domain/report"
	"civicwatch/internal/infrastructure/persistence/mappers"
	"civicwatch/internal/infrastructure/persistence/models"
	"civicwatch/internal/shared/db"
)

// StatusHistoryRepository is the append-only audit sink. It exposes no update
// or delete; the guard triggers reject them at the storage level too.
type StatusHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.ReportMapper
}

func NewStatusHistoryRepository(db *gorm.DB) *StatusHistoryRepository {
	return &StatusHistoryRepository{
		db:     db,
		mapper: mappers.NewReportMapper(),
	}
}

func (r *StatusHistoryRepository) Append(ctx context.Context, entry *report.StatusHistoryEntry) error {
	model, err := r.mapper.HistoryToModel(entry)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return wrapWriteError("append status history", err)
	}

	return entry.SetID(model.ID)
}

func (r *StatusHistoryRepository) ListByReportID(ctx context.Context, reportID uint) ([]*report.StatusHistoryEntry, error) {
	var entryModels []models.StatusHistoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("report_id = ?", reportID).
		Order("recorded_at ASC, id ASC").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}

	entries := make([]*report.StatusHistoryEntry, len(entryModels))
	for i, model := range entryModels {
		entry, err := r.mapper.HistoryToDomain(&model)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}
	return entries, nil
}

func (r *StatusHistoryRepository) CountByReportID(ctx context.Context, reportID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.StatusHistoryModel{}).Where("report_id = ?", reportID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count status history: %w", err)
	}
	return count, nil
}
