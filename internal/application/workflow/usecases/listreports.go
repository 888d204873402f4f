package usecases

import (
	"context"

	"civicwatch/internal/application/workflow/dto"
	"civicwatch/internal/domain/report"
	vo "civicwatch/internal/domain/report/valueobjects"
	"civicwatch/internal/shared/errors"
	"civicwatch/internal/shared/logger"
)

type ListReportsQuery struct {
	Status       string
	Severity     string
	DepartmentID *uint
	Category     string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type ListReportsResult struct {
	Reports  []*dto.ReportDTO `json:"reports"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type ListReportsUseCase struct {
	reportRepo report.Repository
	logger     logger.Interface
}

func NewListReportsUseCase(reportRepo report.Repository, logger logger.Interface) *ListReportsUseCase {
	return &ListReportsUseCase{
		reportRepo: reportRepo,
		logger:     logger,
	}
}

func (uc *ListReportsUseCase) Execute(ctx context.Context, query ListReportsQuery) (*ListReportsResult, error) {
	filter := report.Filter{
		DepartmentID: query.DepartmentID,
		Page:         query.Page,
		PageSize:     query.PageSize,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
	}

	if query.Status != "" {
		status, err := vo.NewReportStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.Severity != "" {
		severity, err := vo.NewSeverity(query.Severity)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Severity = &severity
	}
	if query.Category != "" {
		filter.Category = &query.Category
	}

	reports, total, err := uc.reportRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list reports", "error", err)
		return nil, err
	}

	items := make([]*dto.ReportDTO, len(reports))
	for i, r := range reports {
		items[i] = dto.ToReportDTO(r, nil, nil)
	}

	return &ListReportsResult{
		Reports:  items,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
