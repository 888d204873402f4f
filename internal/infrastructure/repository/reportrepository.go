package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"civicwatch/internal/domain/report"
	"civicwatch/internal/infrastructure/persistence/mappers"
	"civicwatch/internal/infrastructure/persistence/models"
	"civicwatch/internal/shared/db"
	apperrors "civicwatch/internal/shared/errors"
)

// allowedReportOrderByFields is the whitelist of ORDER BY fields to prevent
// SQL injection.
var allowedReportOrderByFields = map[string]bool{
	"id":            true,
	"number":        true,
	"status":        true,
	"severity":      true,
	"category":      true,
	"department_id": true,
	"created_at":    true,
	"updated_at":    true,
}

type ReportRepository struct {
	db     *gorm.DB
	mapper mappers.ReportMapper
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{
		db:     db,
		mapper: mappers.NewReportMapper(),
	}
}

func (r *ReportRepository) Save(ctx context.Context, rep *report.Report) error {
	model := r.mapper.ToModel(rep)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return wrapWriteError("save report", err)
	}

	return rep.SetID(model.ID)
}

// Update persists the aggregate with an optimistic version check. The guarded
// UPDATE bumps the version column; zero rows affected on a live row means a
// concurrent writer won the race.
func (r *ReportRepository) Update(ctx context.Context, rep *report.Report) error {
	model := r.mapper.ToModel(rep)
	tx := db.GetTxFromContext(ctx, r.db)

	updates := map[string]interface{}{
		"status":        model.Status,
		"department_id": model.DepartmentID,
		"held_from":     model.HeldFrom,
		"version":       model.Version + 1,
		"updated_at":    model.UpdatedAt,
	}

	result := tx.
		Model(&models.ReportModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(updates)

	if result.Error != nil {
		return wrapWriteError("update report", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.ReportModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to verify report existence: %w", err)
		}
		if count == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("report %d not found", model.ID))
		}
		return apperrors.NewConcurrentModificationError("report", model.ID)
	}

	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, reportID uint) (*report.Report, error) {
	var model models.ReportModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("report %d not found", reportID))
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ReportRepository) GetByIDs(ctx context.Context, reportIDs []uint) ([]*report.Report, error) {
	if len(reportIDs) == 0 {
		return nil, nil
	}

	var reportModels []models.ReportModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("id IN ?", reportIDs).Find(&reportModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find reports: %w", err)
	}

	reports := make([]*report.Report, len(reportModels))
	for i, model := range reportModels {
		rep, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		reports[i] = rep
	}
	return reports, nil
}

func (r *ReportRepository) GetByNumber(ctx context.Context, number string) (*report.Report, error) {
	var model models.ReportModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("report %s not found", number))
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ReportRepository) List(ctx context.Context, filter report.Filter) ([]*report.Report, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ReportModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", filter.Severity.String())
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedReportOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var reportModels []models.ReportModel
	if err := query.Find(&reportModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*report.Report, len(reportModels))
	for i, model := range reportModels {
		rep, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		reports[i] = rep
	}

	return reports, total, nil
}

// wrapWriteError distinguishes guard constraint/trigger rejections from
// ordinary storage failures. A constraint firing here means the service layer
// approved a write the schema forbids, which is a bug, and is surfaced as
// such rather than as a user error.
func wrapWriteError(op string, err error) error {
	if apperrors.IsConstraintViolation(err) {
		return apperrors.NewPersistenceConstraintError(
			fmt.Sprintf("storage guard rejected %s: %v", op, err))
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
