package usecases

import (
	"context"
	"fmt"

	"civicwatch/internal/domain/report"
	vo "civicwatch/internal/domain/report/valueobjects"
	"civicwatch/internal/shared/errors"
	"civicwatch/internal/shared/logger"
)

type CreateReportCommand struct {
	Title       string
	Description string
	Category    string
	SubCategory string
	Severity    string
	ActorID     uint
}

type CreateReportResult struct {
	ReportID  uint   `json:"report_id"`
	Number    string `json:"number"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type CreateReportUseCase struct {
	reportRepo  report.Repository
	historyRepo report.HistoryRepository
	numberGen   report.NumberGenerator
	txMgr       TxManager
	logger      logger.Interface
}

func NewCreateReportUseCase(
	reportRepo report.Repository,
	historyRepo report.HistoryRepository,
	numberGen report.NumberGenerator,
	txMgr TxManager,
	logger logger.Interface,
) *CreateReportUseCase {
	return &CreateReportUseCase{
		reportRepo:  reportRepo,
		historyRepo: historyRepo,
		numberGen:   numberGen,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *CreateReportUseCase) Execute(ctx context.Context, cmd CreateReportCommand) (*CreateReportResult, error) {
	uc.logger.Infow("executing create report use case", "category", cmd.Category, "actor_id", cmd.ActorID)

	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}

	severity, err := vo.NewSeverity(cmd.Severity)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	r, err := report.NewReport(cmd.Title, cmd.Description, cmd.Category, cmd.SubCategory, severity)
	if err != nil {
		uc.logger.Errorw("invalid report data", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	number, err := uc.numberGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate report number", "error", err)
		return nil, errors.NewInternalError("failed to generate report number")
	}
	if err := r.SetNumber(number); err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.reportRepo.Save(txCtx, r); err != nil {
			uc.logger.Errorw("failed to save report", "error", err)
			return fmt.Errorf("failed to save report: %w", err)
		}

		entry, err := report.NewStatusHistoryEntry(r.ID(), vo.StatusReceived, vo.StatusReceived, cmd.ActorID, "report created")
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}
		if err := uc.historyRepo.Append(txCtx, entry); err != nil {
			uc.logger.Errorw("failed to append history", "error", err)
			return fmt.Errorf("failed to append history: %w", err)
		}
		return nil
	})
	if txErr != nil {
		if appErr := errors.GetAppError(txErr); appErr != nil {
			return nil, appErr
		}
		return nil, errors.NewInternalError("failed to create report")
	}

	uc.logger.Infow("report created successfully", "report_id", r.ID(), "number", r.Number())

	return &CreateReportResult{
		ReportID:  r.ID(),
		Number:    r.Number(),
		Status:    r.Status().String(),
		CreatedAt: r.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
