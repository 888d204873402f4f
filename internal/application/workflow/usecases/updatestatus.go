package usecases

import (
	"context"
	"fmt"

	"civicwatch/internal/application/workflow/dto"
	"civicwatch/internal/domain/officer"
	"civicwatch/internal/domain/report"
	vo "civicwatch/internal/domain/report/valueobjects"
	"civicwatch/internal/domain/task"
	taskvo "civicwatch/internal/domain/task/valueobjects"
	"civicwatch/internal/shared/errors"
	"civicwatch/internal/shared/logger"
)

type UpdateStatusCommand struct {
	ReportID     uint
	TargetStatus string
	ActorID      uint
	Notes        string
}

type UpdateStatusResult struct {
	Report    *dto.ReportDTO `json:"report"`
	OldStatus string         `json:"old_status"`
	NewStatus string         `json:"new_status"`
}

// UpdateStatusUseCase applies one lifecycle transition. The report and its
// paired task move in the same transaction; a concurrent writer losing the
// optimistic version race gets one transparent retry against fresh state.
type UpdateStatusUseCase struct {
	reportRepo  report.Repository
	taskRepo    task.Repository
	officerRepo officer.Repository
	historyRepo report.HistoryRepository
	validator   report.PrerequisiteValidator
	txMgr       TxManager
	logger      logger.Interface
}

func NewUpdateStatusUseCase(
	reportRepo report.Repository,
	taskRepo task.Repository,
	officerRepo officer.Repository,
	historyRepo report.HistoryRepository,
	txMgr TxManager,
	logger logger.Interface,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		reportRepo:  reportRepo,
		taskRepo:    taskRepo,
		officerRepo: officerRepo,
		historyRepo: historyRepo,
		validator:   report.NewPrerequisiteValidator(),
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
	uc.logger.Infow("executing update status use case",
		"report_id", cmd.ReportID,
		"target_status", cmd.TargetStatus,
		"actor_id", cmd.ActorID)

	if cmd.ReportID == 0 {
		return nil, errors.NewValidationError("report ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}
	target, err := vo.NewReportStatus(cmd.TargetStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	result, err := uc.attempt(ctx, cmd, target)
	if errors.IsConcurrentModificationError(err) {
		uc.logger.Warnw("optimistic lock conflict, retrying once",
			"report_id", cmd.ReportID,
			"target_status", target)
		result, err = uc.attempt(ctx, cmd, target)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("report status updated",
		"report_id", cmd.ReportID,
		"old_status", result.OldStatus,
		"new_status", result.NewStatus)
	return result, nil
}

func (uc *UpdateStatusUseCase) attempt(ctx context.Context, cmd UpdateStatusCommand, target vo.ReportStatus) (*UpdateStatusResult, error) {
	r, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to find report", "report_id", cmd.ReportID, "error", err)
		return nil, err
	}

	t, taskState, err := uc.loadTaskState(ctx, r.ID())
	if err != nil {
		return nil, err
	}

	if err := uc.validator.Validate(r, target, taskState); err != nil {
		uc.logger.Warnw("status transition rejected",
			"report_id", cmd.ReportID,
			"from", r.Status(),
			"to", target,
			"error", err)
		return nil, err
	}

	fromStatus := r.Status()
	if err := r.ChangeStatus(target); err != nil {
		return nil, err
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.reportRepo.Update(txCtx, r); err != nil {
			return err
		}

		if t != nil {
			if _, ok := taskvo.ForReportStatus(target); ok {
				if err := t.AlignWithReportStatus(target); err != nil {
					return errors.NewValidationError(err.Error())
				}
				if err := uc.taskRepo.Update(txCtx, t); err != nil {
					return err
				}
			}
		}

		entry, err := report.NewStatusHistoryEntry(r.ID(), fromStatus, r.Status(), cmd.ActorID, cmd.Notes)
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}
		if err := uc.historyRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}
		return nil
	})
	if txErr != nil {
		if appErr := errors.GetAppError(txErr); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("status update transaction failed", "report_id", cmd.ReportID, "error", txErr)
		return nil, errors.NewInternalError("failed to update report status")
	}

	return &UpdateStatusResult{
		Report:    dto.ToReportDTO(r, t, nil),
		OldStatus: fromStatus.String(),
		NewStatus: r.Status().String(),
	}, nil
}

// loadTaskState fetches the report's task and the assigned officer's current
// department for the prerequisite checks. A missing task is legitimate for
// pre-assignment statuses.
func (uc *UpdateStatusUseCase) loadTaskState(ctx context.Context, reportID uint) (*task.Task, *report.TaskState, error) {
	t, err := uc.taskRepo.GetByReportID(ctx, reportID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	state := &report.TaskState{OfficerID: t.AssignedTo()}
	o, err := uc.officerRepo.GetByID(ctx, t.AssignedTo())
	if err != nil {
		if !errors.IsNotFoundError(err) {
			return nil, nil, err
		}
	} else {
		dept := o.DepartmentID()
		state.OfficerDepartmentID = &dept
	}
	return t, state, nil
}
