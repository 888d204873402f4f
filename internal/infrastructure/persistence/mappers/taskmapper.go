package mappers

import (
	"fmt"
	"time"

	"civicwatch/internal/domain/officer"
	"civicwatch/internal/domain/task"
	vo "civicwatch/internal/domain/task/valueobjects"
	"civicwatch/internal/infrastructure/persistence/models"
)

type TaskMapper interface {
	ToModel(t *task.Task) *models.TaskModel
	ToDomain(model *models.TaskModel) (*task.Task, error)
}

type TaskMapperImpl struct{}

func NewTaskMapper() TaskMapper {
	return &TaskMapperImpl{}
}

func (m *TaskMapperImpl) ToModel(t *task.Task) *models.TaskModel {
	model := &models.TaskModel{
		ID:         t.ID(),
		ReportID:   t.ReportID(),
		AssignedTo: t.AssignedTo(),
		Status:     t.Status().String(),
		Priority:   t.Priority(),
		AssignedAt: t.AssignedAt().UnixMilli(),
		Version:    t.Version(),
		CreatedAt:  t.CreatedAt().UnixMilli(),
		UpdatedAt:  t.UpdatedAt().UnixMilli(),
	}

	if t.AcknowledgedAt() != nil {
		ack := t.AcknowledgedAt().UnixMilli()
		model.AcknowledgedAt = &ack
	}
	if t.StartedAt() != nil {
		started := t.StartedAt().UnixMilli()
		model.StartedAt = &started
	}
	if t.ResolvedAt() != nil {
		resolved := t.ResolvedAt().UnixMilli()
		model.ResolvedAt = &resolved
	}

	return model
}

func (m *TaskMapperImpl) ToDomain(model *models.TaskModel) (*task.Task, error) {
	status, err := vo.NewTaskStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", model.ID, err)
	}

	var acknowledgedAt, startedAt, resolvedAt *time.Time
	if model.AcknowledgedAt != nil {
		t := convertMillisToTime(*model.AcknowledgedAt)
		acknowledgedAt = &t
	}
	if model.StartedAt != nil {
		t := convertMillisToTime(*model.StartedAt)
		startedAt = &t
	}
	if model.ResolvedAt != nil {
		t := convertMillisToTime(*model.ResolvedAt)
		resolvedAt = &t
	}

	return task.ReconstructTask(
		model.ID,
		model.ReportID,
		model.AssignedTo,
		status,
		model.Priority,
		convertMillisToTime(model.AssignedAt),
		acknowledgedAt,
		startedAt,
		resolvedAt,
		model.Version,
		convertMillisToTime(model.CreatedAt),
		convertMillisToTime(model.UpdatedAt),
	)
}

// OfficerToDomain converts an officer persistence model to its read model.
func OfficerToDomain(model *models.OfficerModel) (*officer.Officer, error) {
	return officer.ReconstructOfficer(
		model.ID,
		model.Name,
		model.DepartmentID,
		officer.Status(model.Status),
		convertMillisToTime(model.CreatedAt),
		convertMillisToTime(model.UpdatedAt),
	)
}
