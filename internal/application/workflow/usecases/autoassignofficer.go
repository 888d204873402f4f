package usecases

import (
	"context"

	"civicwatch/internal/domain/assignment"
	"civicwatch/internal/domain/officer"
	"civicwatch/internal/domain/report"
	"civicwatch/internal/shared/errors"
	"civicwatch/internal/shared/logger"
)

type AutoAssignOfficerCommand struct {
	ReportID uint
	Strategy string
	Priority int
	ActorID  uint
	Notes    string
}

// AutoAssignOfficerUseCase selects an officer via the workload balancer and
// delegates the actual assignment. Selection has no side effects, so when the
// chosen officer loses eligibility between selection and commit the use case
// retries once with that officer excluded.
type AutoAssignOfficerUseCase struct {
	reportRepo  report.Repository
	officerRepo officer.Repository
	balancer    *assignment.Balancer
	assign      AssignOfficerExecutor
	logger      logger.Interface
}

func NewAutoAssignOfficerUseCase(
	reportRepo report.Repository,
	officerRepo officer.Repository,
	balancer *assignment.Balancer,
	assign AssignOfficerExecutor,
	logger logger.Interface,
) *AutoAssignOfficerUseCase {
	return &AutoAssignOfficerUseCase{
		reportRepo:  reportRepo,
		officerRepo: officerRepo,
		balancer:    balancer,
		assign:      assign,
		logger:      logger,
	}
}

func (uc *AutoAssignOfficerUseCase) Execute(ctx context.Context, cmd AutoAssignOfficerCommand) (*AssignOfficerResult, error) {
	uc.logger.Infow("executing auto assign officer use case",
		"report_id", cmd.ReportID,
		"strategy", cmd.Strategy,
		"actor_id", cmd.ActorID)

	if cmd.ReportID == 0 {
		return nil, errors.NewValidationError("report ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}

	strategy := assignment.StrategyBalanced
	if cmd.Strategy != "" {
		var err error
		strategy, err = assignment.NewStrategy(cmd.Strategy)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	r, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to find report", "report_id", cmd.ReportID, "error", err)
		return nil, err
	}
	if r.DepartmentID() == nil {
		return nil, errors.NewPrerequisiteUnmetError("department",
			"report has no department; assign a department before auto-assignment")
	}
	departmentID := *r.DepartmentID()

	candidates, err := uc.officerRepo.ListActiveByDepartment(ctx, departmentID)
	if err != nil {
		uc.logger.Errorw("failed to list department officers", "department_id", departmentID, "error", err)
		return nil, err
	}

	var exclude []uint
	for attempt := 0; attempt < 2; attempt++ {
		selected, err := uc.balancer.Select(ctx, departmentID, candidates, strategy, exclude...)
		if err != nil {
			return nil, err
		}

		result, err := uc.assign.Execute(ctx, AssignOfficerCommand{
			ReportID:  cmd.ReportID,
			OfficerID: selected.ID(),
			Priority:  cmd.Priority,
			ActorID:   cmd.ActorID,
			Notes:     cmd.Notes,
		})
		if err == nil {
			uc.logger.Infow("officer auto-assigned",
				"report_id", cmd.ReportID,
				"officer_id", selected.ID(),
				"strategy", strategy)
			return result, nil
		}

		// The candidate may have been suspended or moved departments since
		// the roster was read. Exclude them and pick again.
		if attempt == 0 && (errors.IsPrerequisiteUnmetError(err) || errors.IsValidationError(err)) {
			uc.logger.Warnw("selected officer no longer eligible, retrying",
				"report_id", cmd.ReportID,
				"officer_id", selected.ID(),
				"error", err)
			exclude = append(exclude, selected.ID())
			continue
		}
		return nil, err
	}

	return nil, errors.NewNoEligibleOfficerError(departmentID)
}
