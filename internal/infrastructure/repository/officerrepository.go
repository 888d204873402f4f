package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"civicwatch/internal/domain/department"
	"civicwatch/internal/domain/officer"
	"civicwatch/internal/infrastructure/persistence/mappers"
	"civicwatch/internal/infrastructure/persistence/models"
	"civicwatch/internal/shared/db"
	apperrors "civicwatch/internal/shared/errors"
)

type OfficerRepository struct {
	db *gorm.DB
}

func NewOfficerRepository(db *gorm.DB) *OfficerRepository {
	return &OfficerRepository{db: db}
}

func (r *OfficerRepository) GetByID(ctx context.Context, officerID uint) (*officer.Officer, error) {
	var model models.OfficerModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, officerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("officer %d not found", officerID))
		}
		return nil, fmt.Errorf("failed to find officer: %w", err)
	}

	return mappers.OfficerToDomain(&model)
}

func (r *OfficerRepository) ListActiveByDepartment(ctx context.Context, departmentID uint) ([]*officer.Officer, error) {
	var officerModels []models.OfficerModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("department_id = ? AND status = ?", departmentID, officer.StatusActive.String()).
		Order("id ASC").
		Find(&officerModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list active officers: %w", err)
	}

	officers := make([]*officer.Officer, len(officerModels))
	for i, model := range officerModels {
		o, err := mappers.OfficerToDomain(&model)
		if err != nil {
			return nil, err
		}
		officers[i] = o
	}
	return officers, nil
}

func (r *OfficerRepository) UpdateDepartment(ctx context.Context, o *officer.Officer) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.OfficerModel{}).
		Where("id = ?", o.ID()).
		Updates(map[string]interface{}{
			"department_id": o.DepartmentID(),
			"updated_at":    o.UpdatedAt().UnixMilli(),
		})

	if result.Error != nil {
		return wrapWriteError("update officer department", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("officer %d not found", o.ID()))
	}
	return nil
}

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetByID(ctx context.Context, departmentID uint) (*department.Department, error) {
	var model models.DepartmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, departmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("department %d not found", departmentID))
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}

	return department.ReconstructDepartment(
		model.ID,
		model.Name,
		model.Active,
		millisToTime(model.CreatedAt),
	)
}

func (r *DepartmentRepository) Exists(ctx context.Context, departmentID uint) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.DepartmentModel{}).Where("id = ?", departmentID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check department existence: %w", err)
	}
	return count > 0, nil
}
