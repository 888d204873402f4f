package usecases

import (
	"context"
	"fmt"

	"civicwatch/internal/application/workflow/dto"
	"civicwatch/internal/domain/department"
	"civicwatch/internal/domain/report"
	"civicwatch/internal/shared/errors"
	"civicwatch/internal/shared/logger"
)

type AssignDepartmentCommand struct {
	ReportID     uint
	DepartmentID uint
	ActorID      uint
	Notes        string
}

type AssignDepartmentResult struct {
	Report *dto.ReportDTO `json:"report"`
}

type AssignDepartmentUseCase struct {
	reportRepo     report.Repository
	departmentRepo department.Repository
	historyRepo    report.HistoryRepository
	txMgr          TxManager
	logger         logger.Interface
}

func NewAssignDepartmentUseCase(
	reportRepo report.Repository,
	departmentRepo department.Repository,
	historyRepo report.HistoryRepository,
	txMgr TxManager,
	logger logger.Interface,
) *AssignDepartmentUseCase {
	return &AssignDepartmentUseCase{
		reportRepo:     reportRepo,
		departmentRepo: departmentRepo,
		historyRepo:    historyRepo,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *AssignDepartmentUseCase) Execute(ctx context.Context, cmd AssignDepartmentCommand) (*AssignDepartmentResult, error) {
	uc.logger.Infow("executing assign department use case",
		"report_id", cmd.ReportID,
		"department_id", cmd.DepartmentID,
		"actor_id", cmd.ActorID)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	dept, err := uc.departmentRepo.GetByID(ctx, cmd.DepartmentID)
	if err != nil {
		uc.logger.Errorw("failed to find department", "department_id", cmd.DepartmentID, "error", err)
		return nil, err
	}
	if !dept.IsActive() {
		return nil, errors.NewValidationError(fmt.Sprintf("department %d is not active", cmd.DepartmentID))
	}

	r, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to find report", "report_id", cmd.ReportID, "error", err)
		return nil, err
	}

	fromStatus := r.Status()
	if err := r.AssignDepartment(cmd.DepartmentID); err != nil {
		uc.logger.Warnw("department assignment rejected",
			"report_id", cmd.ReportID,
			"status", fromStatus,
			"error", err)
		return nil, err
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.reportRepo.Update(txCtx, r); err != nil {
			uc.logger.Errorw("failed to update report", "report_id", cmd.ReportID, "error", err)
			return fmt.Errorf("failed to update report: %w", err)
		}

		entry, err := report.NewStatusHistoryEntry(r.ID(), fromStatus, r.Status(), cmd.ActorID, cmd.Notes)
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}
		if err := entry.AddMetadata("department_id", cmd.DepartmentID); err != nil {
			return fmt.Errorf("failed to attach metadata: %w", err)
		}
		if err := uc.historyRepo.Append(txCtx, entry); err != nil {
			uc.logger.Errorw("failed to append history", "report_id", cmd.ReportID, "error", err)
			return fmt.Errorf("failed to append history: %w", err)
		}
		return nil
	})
	if txErr != nil {
		if appErr := errors.GetAppError(txErr); appErr != nil {
			return nil, appErr
		}
		return nil, errors.NewInternalError("failed to assign department")
	}

	uc.logger.Infow("department assigned successfully",
		"report_id", r.ID(),
		"department_id", cmd.DepartmentID,
		"status", r.Status())

	return &AssignDepartmentResult{Report: dto.ToReportDTO(r, nil, nil)}, nil
}

func (uc *AssignDepartmentUseCase) validateCommand(cmd AssignDepartmentCommand) error {
	if cmd.ReportID == 0 {
		return errors.NewValidationError("report ID is required")
	}
	if cmd.DepartmentID == 0 {
		return errors.NewValidationError("department ID is required")
	}
	if cmd.ActorID == 0 {
		return errors.NewValidationError("actor ID is required")
	}
	return nil
}
