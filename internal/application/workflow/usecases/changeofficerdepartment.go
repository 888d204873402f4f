package usecases

import (
	"context"
	"fmt"

	"civicwatch/internal/domain/assignment"
	"civicwatch/internal/domain/department"
	"civicwatch/internal/domain/officer"
	"civicwatch/internal/domain/report"
	"civicwatch/internal/domain/task"
	"civicwatch/internal/shared/errors"
	"civicwatch/internal/shared/logger"
)

// ReassignmentStrategy decides what happens to an officer's open tasks when
// they move departments.
type ReassignmentStrategy string

const (
	// ReassignmentKeep leaves tasks with the moving officer. The resulting
	// cross-department state is flagged in each report's history for audit.
	ReassignmentKeep ReassignmentStrategy = "keep"
	// ReassignmentReassign hands each task to another officer of the
	// report's department, chosen by the workload balancer.
	ReassignmentReassign ReassignmentStrategy = "reassign"
	// ReassignmentUnassign deletes each task and returns its report to the
	// department pool.
	ReassignmentUnassign ReassignmentStrategy = "unassign"
)

func (s ReassignmentStrategy) IsValid() bool {
	return s == ReassignmentKeep || s == ReassignmentReassign || s == ReassignmentUnassign
}

type ChangeOfficerDepartmentCommand struct {
	OfficerID       uint
	NewDepartmentID uint
	Strategy        ReassignmentStrategy
	ActorID         uint
	Notes           string
}

type ChangeOfficerDepartmentResult struct {
	OfficerID       uint   `json:"officer_id"`
	OldDepartmentID uint   `json:"old_department_id"`
	NewDepartmentID uint   `json:"new_department_id"`
	Strategy        string `json:"strategy"`
	AffectedReports []uint `json:"affected_reports"`
}

// ChangeOfficerDepartmentUseCase is the administrative department move. The
// move and the disposition of every open task commit in one transaction; if
// any task cannot be handled under the chosen strategy the whole move rolls
// back.
type ChangeOfficerDepartmentUseCase struct {
	officerRepo    officer.Repository
	departmentRepo department.Repository
	reportRepo     report.Repository
	taskRepo       task.Repository
	historyRepo    report.HistoryRepository
	balancer       *assignment.Balancer
	txMgr          TxManager
	logger         logger.Interface
}

func NewChangeOfficerDepartmentUseCase(
	officerRepo officer.Repository,
	departmentRepo department.Repository,
	reportRepo report.Repository,
	taskRepo task.Repository,
	historyRepo report.HistoryRepository,
	balancer *assignment.Balancer,
	txMgr TxManager,
	logger logger.Interface,
) *ChangeOfficerDepartmentUseCase {
	return &ChangeOfficerDepartmentUseCase{
		officerRepo:    officerRepo,
		departmentRepo: departmentRepo,
		reportRepo:     reportRepo,
		taskRepo:       taskRepo,
		historyRepo:    historyRepo,
		balancer:       balancer,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *ChangeOfficerDepartmentUseCase) Execute(ctx context.Context, cmd ChangeOfficerDepartmentCommand) (*ChangeOfficerDepartmentResult, error) {
	uc.logger.Infow("executing change officer department use case",
		"officer_id", cmd.OfficerID,
		"new_department_id", cmd.NewDepartmentID,
		"strategy", cmd.Strategy,
		"actor_id", cmd.ActorID)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	dept, err := uc.departmentRepo.GetByID(ctx, cmd.NewDepartmentID)
	if err != nil {
		uc.logger.Errorw("failed to find department", "department_id", cmd.NewDepartmentID, "error", err)
		return nil, err
	}
	if !dept.IsActive() {
		return nil, errors.NewValidationError(fmt.Sprintf("department %d is not active", cmd.NewDepartmentID))
	}

	o, err := uc.officerRepo.GetByID(ctx, cmd.OfficerID)
	if err != nil {
		uc.logger.Errorw("failed to find officer", "officer_id", cmd.OfficerID, "error", err)
		return nil, err
	}
	oldDepartmentID := o.DepartmentID()

	if err := o.MoveToDepartment(cmd.NewDepartmentID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var affected []uint
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.officerRepo.UpdateDepartment(txCtx, o); err != nil {
			return fmt.Errorf("failed to move officer: %w", err)
		}

		tasks, err := uc.taskRepo.GetActiveByOfficer(txCtx, cmd.OfficerID)
		if err != nil {
			return fmt.Errorf("failed to load officer tasks: %w", err)
		}

		for _, t := range tasks {
			r, err := uc.reportRepo.GetByID(txCtx, t.ReportID())
			if err != nil {
				return fmt.Errorf("failed to load report %d: %w", t.ReportID(), err)
			}

			switch cmd.Strategy {
			case ReassignmentKeep:
				err = uc.keepTask(txCtx, r, cmd, oldDepartmentID)
			case ReassignmentReassign:
				err = uc.reassignTask(txCtx, r, t, cmd)
			case ReassignmentUnassign:
				err = uc.unassignTask(txCtx, r, t, cmd)
			}
			if err != nil {
				return err
			}
			affected = append(affected, r.ID())
		}
		return nil
	})
	if txErr != nil {
		if appErr := errors.GetAppError(txErr); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("officer department change failed", "officer_id", cmd.OfficerID, "error", txErr)
		return nil, errors.NewInternalError("failed to change officer department")
	}

	uc.logger.Infow("officer department changed",
		"officer_id", cmd.OfficerID,
		"old_department_id", oldDepartmentID,
		"new_department_id", cmd.NewDepartmentID,
		"strategy", cmd.Strategy,
		"affected_reports", len(affected))

	return &ChangeOfficerDepartmentResult{
		OfficerID:       cmd.OfficerID,
		OldDepartmentID: oldDepartmentID,
		NewDepartmentID: cmd.NewDepartmentID,
		Strategy:        string(cmd.Strategy),
		AffectedReports: affected,
	}, nil
}

// keepTask leaves the assignment in place and records the cross-department
// state in the report's history.
func (uc *ChangeOfficerDepartmentUseCase) keepTask(ctx context.Context, r *report.Report, cmd ChangeOfficerDepartmentCommand, oldDepartmentID uint) error {
	entry, err := report.NewStatusHistoryEntry(r.ID(), r.Status(), r.Status(), cmd.ActorID, cmd.Notes)
	if err != nil {
		return fmt.Errorf("failed to build history entry: %w", err)
	}
	if err := entry.AddMetadata("cross_department", true); err != nil {
		return err
	}
	if err := entry.AddMetadata("officer_id", cmd.OfficerID); err != nil {
		return err
	}
	if err := entry.AddMetadata("officer_department_id", cmd.NewDepartmentID); err != nil {
		return err
	}
	if err := entry.AddMetadata("report_department_id", oldDepartmentID); err != nil {
		return err
	}
	if err := uc.historyRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// reassignTask hands the task to the least busy remaining officer of the
// report's department. The new officer re-acknowledges from scratch.
func (uc *ChangeOfficerDepartmentUseCase) reassignTask(ctx context.Context, r *report.Report, t *task.Task, cmd ChangeOfficerDepartmentCommand) error {
	if r.DepartmentID() == nil {
		return errors.NewPrerequisiteUnmetError("department",
			fmt.Sprintf("report %d has no department to reassign within", r.ID()))
	}
	departmentID := *r.DepartmentID()

	candidates, err := uc.officerRepo.ListActiveByDepartment(ctx, departmentID)
	if err != nil {
		return fmt.Errorf("failed to list department officers: %w", err)
	}

	selected, err := uc.balancer.Select(ctx, departmentID, candidates, assignment.StrategyLeastBusy, cmd.OfficerID)
	if err != nil {
		return err
	}

	if err := t.Reassign(selected.ID()); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := uc.taskRepo.Update(ctx, t); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	entry, err := report.NewStatusHistoryEntry(r.ID(), r.Status(), r.Status(), cmd.ActorID, cmd.Notes)
	if err != nil {
		return fmt.Errorf("failed to build history entry: %w", err)
	}
	if err := entry.AddMetadata("reassigned_from", cmd.OfficerID); err != nil {
		return err
	}
	if err := entry.AddMetadata("reassigned_to", selected.ID()); err != nil {
		return err
	}
	if err := uc.historyRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// unassignTask deletes the task and returns the report to the department
// pool. This is the one place a report moves backward.
func (uc *ChangeOfficerDepartmentUseCase) unassignTask(ctx context.Context, r *report.Report, t *task.Task, cmd ChangeOfficerDepartmentCommand) error {
	fromStatus := r.Status()
	if err := r.RevertToDepartmentPool(); err != nil {
		return err
	}

	if err := uc.taskRepo.Delete(ctx, t.ID()); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if err := uc.reportRepo.Update(ctx, r); err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}

	entry, err := report.NewStatusHistoryEntry(r.ID(), fromStatus, r.Status(), cmd.ActorID, cmd.Notes)
	if err != nil {
		return fmt.Errorf("failed to build history entry: %w", err)
	}
	if err := entry.AddMetadata("unassigned_officer_id", cmd.OfficerID); err != nil {
		return err
	}
	if err := uc.historyRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

func (uc *ChangeOfficerDepartmentUseCase) validateCommand(cmd ChangeOfficerDepartmentCommand) error {
	if cmd.OfficerID == 0 {
		return errors.NewValidationError("officer ID is required")
	}
	if cmd.NewDepartmentID == 0 {
		return errors.NewValidationError("department ID is required")
	}
	if !cmd.Strategy.IsValid() {
		return errors.NewValidationError("reassignment strategy must be keep, reassign, or unassign")
	}
	if cmd.ActorID == 0 {
		return errors.NewValidationError("actor ID is required")
	}
	return nil
}
