package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"civicwatch/internal/domain/report"
	vo "civicwatch/internal/domain/report/valueobjects"
	"civicwatch/internal/infrastructure/persistence/models"
)

// ReportMapper handles the conversion between Report domain entities and
// persistence models.
type ReportMapper interface {
	ToModel(r *report.Report) *models.ReportModel
	ToDomain(model *models.ReportModel) (*report.Report, error)
	HistoryToModel(e *report.StatusHistoryEntry) (*models.StatusHistoryModel, error)
	HistoryToDomain(model *models.StatusHistoryModel) (*report.StatusHistoryEntry, error)
}

type ReportMapperImpl struct{}

func NewReportMapper() ReportMapper {
	return &ReportMapperImpl{}
}

func (m *ReportMapperImpl) ToModel(r *report.Report) *models.ReportModel {
	model := &models.ReportModel{
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
		CreatedAt:    r.CreatedAt().UnixMilli(),
		UpdatedAt:    r.UpdatedAt().UnixMilli(),
	}

	if r.HeldFrom() != nil {
		held := r.HeldFrom().String()
		model.HeldFrom = &held
	}

	return model
}

func (m *ReportMapperImpl) ToDomain(model *models.ReportModel) (*report.Report, error) {
	severity, err := vo.NewSeverity(model.Severity)
	if err != nil {
		return nil, fmt.Errorf("report %d: %w", model.ID, err)
	}
	status, err := vo.NewReportStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("report %d: %w", model.ID, err)
	}

	var heldFrom *vo.ReportStatus
	if model.HeldFrom != nil {
		hf, err := vo.NewReportStatus(*model.HeldFrom)
		if err != nil {
			return nil, fmt.Errorf("report %d held_from: %w", model.ID, err)
		}
		heldFrom = &hf
	}

	return report.ReconstructReport(
		model.ID,
		model.Number,
		model.Title,
		model.Description,
		model.Category,
		model.SubCategory,
		severity,
		status,
		model.DepartmentID,
		heldFrom,
		model.Version,
		convertMillisToTime(model.CreatedAt),
		convertMillisToTime(model.UpdatedAt),
	)
}

func (m *ReportMapperImpl) HistoryToModel(e *report.StatusHistoryEntry) (*models.StatusHistoryModel, error) {
	model := &models.StatusHistoryModel{
		ID:         e.ID(),
		ReportID:   e.ReportID(),
		FromStatus: e.FromStatus().String(),
		ToStatus:   e.ToStatus().String(),
		ActorID:    e.ActorID(),
		Notes:      e.Notes(),
		RecordedAt: e.RecordedAt().UnixMilli(),
	}

	if len(e.Metadata()) > 0 {
		metaJSON, err := json.Marshal(e.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history metadata: %w", err)
		}
		model.Metadata = metaJSON
	}

	return model, nil
}

func (m *ReportMapperImpl) HistoryToDomain(model *models.StatusHistoryModel) (*report.StatusHistoryEntry, error) {
	fromStatus, err := vo.NewReportStatus(model.FromStatus)
	if err != nil {
		return nil, fmt.Errorf("history entry %d: %w", model.ID, err)
	}
	toStatus, err := vo.NewReportStatus(model.ToStatus)
	if err != nil {
		return nil, fmt.Errorf("history entry %d: %w", model.ID, err)
	}

	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history metadata (id=%d): %w", model.ID, err)
		}
	}

	return report.ReconstructStatusHistoryEntry(
		model.ID,
		model.ReportID,
		fromStatus,
		toStatus,
		model.ActorID,
		model.Notes,
		metadata,
		convertMillisToTime(model.RecordedAt),
	)
}

func convertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
