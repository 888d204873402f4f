package usecases

import (
	"context"
	"fmt"

	"civicwatch/internal/application/workflow/dto"
	"civicwatch/internal/domain/officer"
	"civicwatch/internal/domain/report"
	"civicwatch/internal/domain/task"
	"civicwatch/internal/shared/errors"
	"civicwatch/internal/shared/logger"
)

const defaultTaskPriority = 5

type AssignOfficerCommand struct {
	ReportID  uint
	OfficerID uint
	Priority  int
	ActorID   uint
	Notes     string
}

type AssignOfficerResult struct {
	Report    *dto.ReportDTO `json:"report"`
	OfficerID uint           `json:"officer_id"`
	TaskID    uint           `json:"task_id"`
}

type AssignOfficerUseCase struct {
	reportRepo  report.Repository
	taskRepo    task.Repository
	officerRepo officer.Repository
	historyRepo report.HistoryRepository
	validator   report.PrerequisiteValidator
	txMgr       TxManager
	logger      logger.Interface
}

func NewAssignOfficerUseCase(
	reportRepo report.Repository,
	taskRepo task.Repository,
	officerRepo officer.Repository,
	historyRepo report.HistoryRepository,
	txMgr TxManager,
	logger logger.Interface,
) *AssignOfficerUseCase {
	return &AssignOfficerUseCase{
		reportRepo:  reportRepo,
		taskRepo:    taskRepo,
		officerRepo: officerRepo,
		historyRepo: historyRepo,
		validator:   report.NewPrerequisiteValidator(),
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *AssignOfficerUseCase) Execute(ctx context.Context, cmd AssignOfficerCommand) (*AssignOfficerResult, error) {
	uc.logger.Infow("executing assign officer use case",
		"report_id", cmd.ReportID,
		"officer_id", cmd.OfficerID,
		"actor_id", cmd.ActorID)

	if err := uc.validateCommand(&cmd); err != nil {
		return nil, err
	}

	o, err := uc.officerRepo.GetByID(ctx, cmd.OfficerID)
	if err != nil {
		uc.logger.Errorw("failed to find officer", "officer_id", cmd.OfficerID, "error", err)
		return nil, err
	}
	if !o.IsActive() {
		return nil, errors.NewValidationError(
			fmt.Sprintf("officer %d is %s and cannot take assignments", o.ID(), o.Status()))
	}

	r, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to find report", "report_id", cmd.ReportID, "error", err)
		return nil, err
	}

	officerDept := o.DepartmentID()
	if err := uc.validator.ValidateOfficerAssignment(r, &officerDept); err != nil {
		uc.logger.Warnw("officer assignment rejected",
			"report_id", cmd.ReportID,
			"officer_id", cmd.OfficerID,
			"error", err)
		return nil, err
	}

	fromStatus := r.Status()
	if err := r.MarkAssignedToOfficer(); err != nil {
		return nil, err
	}

	var t *task.Task
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.taskRepo.GetByReportID(txCtx, r.ID())
		switch {
		case err == nil:
			if err := existing.Reassign(cmd.OfficerID); err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := existing.ChangePriority(cmd.Priority); err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.taskRepo.Update(txCtx, existing); err != nil {
				uc.logger.Errorw("failed to update task", "task_id", existing.ID(), "error", err)
				return fmt.Errorf("failed to update task: %w", err)
			}
			t = existing
		case errors.IsNotFoundError(err):
			created, err := task.NewTask(r.ID(), cmd.OfficerID, cmd.Priority)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.taskRepo.Save(txCtx, created); err != nil {
				uc.logger.Errorw("failed to save task", "report_id", r.ID(), "error", err)
				return fmt.Errorf("failed to save task: %w", err)
			}
			t = created
		default:
			return fmt.Errorf("failed to look up task: %w", err)
		}

		if err := uc.reportRepo.Update(txCtx, r); err != nil {
			uc.logger.Errorw("failed to update report", "report_id", r.ID(), "error", err)
			return fmt.Errorf("failed to update report: %w", err)
		}

		entry, err := report.NewStatusHistoryEntry(r.ID(), fromStatus, r.Status(), cmd.ActorID, cmd.Notes)
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}
		if err := entry.AddMetadata("officer_id", cmd.OfficerID); err != nil {
			return fmt.Errorf("failed to attach metadata: %w", err)
		}
		if err := uc.historyRepo.Append(txCtx, entry); err != nil {
			uc.logger.Errorw("failed to append history", "report_id", r.ID(), "error", err)
			return fmt.Errorf("failed to append history: %w", err)
		}
		return nil
	})
	if txErr != nil {
		if appErr := errors.GetAppError(txErr); appErr != nil {
			return nil, appErr
		}
		return nil, errors.NewInternalError("failed to assign officer")
	}

	uc.logger.Infow("officer assigned successfully",
		"report_id", r.ID(),
		"officer_id", cmd.OfficerID,
		"task_id", t.ID())

	return &AssignOfficerResult{
		Report:    dto.ToReportDTO(r, t, nil),
		OfficerID: cmd.OfficerID,
		TaskID:    t.ID(),
	}, nil
}

func (uc *AssignOfficerUseCase) validateCommand(cmd *AssignOfficerCommand) error {
	if cmd.ReportID == 0 {
		return errors.NewValidationError("report ID is required")
	}
	if cmd.OfficerID == 0 {
		return errors.NewValidationError("officer ID is required")
	}
	if cmd.ActorID == 0 {
		return errors.NewValidationError("actor ID is required")
	}
	if cmd.Priority == 0 {
		cmd.Priority = defaultTaskPriority
	}
	if cmd.Priority < task.MinPriority || cmd.Priority > task.MaxPriority {
		return errors.NewValidationError(
			fmt.Sprintf("priority must be between %d and %d", task.MinPriority, task.MaxPriority))
	}
	return nil
}
