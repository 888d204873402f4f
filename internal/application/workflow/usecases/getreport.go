package usecases

import (
	"context"

	"civicwatch/internal/application/workflow/dto"
	"civicwatch/internal/domain/report"
	"civicwatch/internal/domain/task"
	"civicwatch/internal/shared/errors"
	"civicwatch/internal/shared/logger"
)

// GetReportQuery fetches by ID when set, otherwise by number.
type GetReportQuery struct {
	ReportID       uint
	Number         string
	IncludeHistory bool
}

type GetReportUseCase struct {
	reportRepo  report.Repository
	taskRepo    task.Repository
	historyRepo report.HistoryRepository
	logger      logger.Interface
}

func NewGetReportUseCase(
	reportRepo report.Repository,
	taskRepo task.Repository,
	historyRepo report.HistoryRepository,
	logger logger.Interface,
) *GetReportUseCase {
	return &GetReportUseCase{
		reportRepo:  reportRepo,
		taskRepo:    taskRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

func (uc *GetReportUseCase) Execute(ctx context.Context, query GetReportQuery) (*dto.ReportDTO, error) {
	if query.ReportID == 0 && query.Number == "" {
		return nil, errors.NewValidationError("report ID or number is required")
	}

	var r *report.Report
	var err error
	if query.ReportID != 0 {
		r, err = uc.reportRepo.GetByID(ctx, query.ReportID)
	} else {
		r, err = uc.reportRepo.GetByNumber(ctx, query.Number)
	}
	if err != nil {
		return nil, err
	}

	var t *task.Task
	if found, err := uc.taskRepo.GetByReportID(ctx, r.ID()); err == nil {
		t = found
	} else if !errors.IsNotFoundError(err) {
		return nil, err
	}

	var history []*report.StatusHistoryEntry
	if query.IncludeHistory {
		history, err = uc.historyRepo.ListByReportID(ctx, r.ID())
		if err != nil {
			uc.logger.Errorw("failed to load report history", "report_id", r.ID(), "error", err)
			return nil, err
		}
	}

	return dto.ToReportDTO(r, t, history), nil
}
