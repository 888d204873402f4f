package dto

import (
	"time"

	"civicwatch/internal/domain/report"
	"civicwatch/internal/domain/task"
)

type ReportDTO struct {
	ID           uint              `json:"id"`
	Number       string            `json:"number"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Category     string            `json:"category"`
	SubCategory  string            `json:"sub_category,omitempty"`
	Severity     string            `json:"severity"`
	Status       string            `json:"status"`
	DepartmentID *uint             `json:"department_id"`
	HeldFrom     *string           `json:"held_from,omitempty"`
	Version      int               `json:"version"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Task         *TaskDTO          `json:"task,omitempty"`
	History      []HistoryEntryDTO `json:"history,omitempty"`
}

type TaskDTO struct {
	ID             uint       `json:"id"`
	ReportID       uint       `json:"report_id"`
	AssignedTo     uint       `json:"assigned_to"`
	Status         string     `json:"status"`
	Priority       int        `json:"priority"`
	AssignedAt     time.Time  `json:"assigned_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	StartedAt      *time.Time `json:"started_at"`
	ResolvedAt     *time.Time `json:"resolved_at"`
}

type HistoryEntryDTO struct {
	ID         uint                   `json:"id"`
	ReportID   uint                   `json:"report_id"`
	FromStatus string                 `json:"from_status"`
	ToStatus   string                 `json:"to_status"`
	ActorID    uint                   `json:"actor_id"`
	Notes      string                 `json:"notes,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	RecordedAt time.Time              `json:"recorded_at"`
}

func ToReportDTO(r *report.Report, t *task.Task, history []*report.StatusHistoryEntry) *ReportDTO {
	if r == nil {
		return nil
	}

	dto := &ReportDTO{
		ID:           r.ID(),
		Number:       r.Number(),
		Title:        r.Title(),
		Description:  r.Description(),
		Category:     r.Category(),
		SubCategory:  r.SubCategory(),
		Severity:     r.Severity().String(),
		Status:       r.Status().String(),
		DepartmentID: r.DepartmentID(),
		Version:      r.Version(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}

	if held := r.HeldFrom(); held != nil {
		heldStr := held.String()
		dto.HeldFrom = &heldStr
	}

	if t != nil {
		dto.Task = ToTaskDTO(t)
	}

	if len(history) > 0 {
		dto.History = make([]HistoryEntryDTO, len(history))
		for i, e := range history {
			dto.History[i] = ToHistoryEntryDTO(e)
		}
	}

	return dto
}

func ToTaskDTO(t *task.Task) *TaskDTO {
	if t == nil {
		return nil
	}
	return &TaskDTO{
		ID:             t.ID(),
		ReportID:       t.ReportID(),
		AssignedTo:     t.AssignedTo(),
		Status:         t.Status().String(),
		Priority:       t.Priority(),
		AssignedAt:     t.AssignedAt(),
		AcknowledgedAt: t.AcknowledgedAt(),
		StartedAt:      t.StartedAt(),
		ResolvedAt:     t.ResolvedAt(),
	}
}

func ToHistoryEntryDTO(e *report.StatusHistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:         e.ID(),
		ReportID:   e.ReportID(),
		FromStatus: e.FromStatus().String(),
		ToStatus:   e.ToStatus().String(),
		ActorID:    e.ActorID(),
		Notes:      e.Notes(),
		Metadata:   e.Metadata(),
		RecordedAt: e.RecordedAt(),
	}
}
