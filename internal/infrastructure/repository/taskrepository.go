package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"civicwatch/internal/domain/task"
	"civicwatch/internal/infrastructure/persistence/mappers"
	"civicwatch/internal/infrastructure/persistence/models"
	"civicwatch/internal/shared/db"
	apperrors "civicwatch/internal/shared/errors"
)

type TaskRepository struct {
	db     *gorm.DB
	mapper mappers.TaskMapper
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db:     db,
		mapper: mappers.NewTaskMapper(),
	}
}

func (r *TaskRepository) Save(ctx context.Context, t *task.Task) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return wrapWriteError("save task", err)
	}

	return t.SetID(model.ID)
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	updates := map[string]interface{}{
		"assigned_to":     model.AssignedTo,
		"status":          model.Status,
		"priority":        model.Priority,
		"assigned_at":     model.AssignedAt,
		"acknowledged_at": model.AcknowledgedAt,
		"started_at":      model.StartedAt,
		"resolved_at":     model.ResolvedAt,
		"version":         model.Version + 1,
		"updated_at":      model.UpdatedAt,
	}

	result := tx.
		Model(&models.TaskModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(updates)

	if result.Error != nil {
		return wrapWriteError("update task", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.TaskModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to verify task existence: %w", err)
		}
		if count == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("task %d not found", model.ID))
		}
		return apperrors.NewConcurrentModificationError("task", model.ID)
	}

	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, taskID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.TaskModel{}, taskID)
	if result.Error != nil {
		return wrapWriteError("delete task", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("task %d not found", taskID))
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID uint) (*task.Task, error) {
	var model models.TaskModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("task %d not found", taskID))
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TaskRepository) GetByReportID(ctx context.Context, reportID uint) (*task.Task, error) {
	var model models.TaskModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("report_id = ?", reportID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no task for report %d", reportID))
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TaskRepository) GetActiveByOfficer(ctx context.Context, officerID uint) ([]*task.Task, error) {
	var taskModels []models.TaskModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("assigned_to = ? AND status NOT IN ?", officerID, []string{"resolved", "rejected"}).
		Order("assigned_at ASC").
		Find(&taskModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find active tasks: %w", err)
	}

	tasks := make([]*task.Task, len(taskModels))
	for i, model := range taskModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		tasks[i] = t
	}
	return tasks, nil
}
