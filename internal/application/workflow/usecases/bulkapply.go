package usecases

import (
	"context"
	"fmt"

	"civicwatch/internal/domain/department"
	"civicwatch/internal/domain/report"
	"civicwatch/internal/shared/errors"
	"civicwatch/internal/shared/logger"
)

// BulkItemError records why one report in a batch failed.
type BulkItemError struct {
	ReportID uint   `json:"report_id"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

// BulkResult is the per-item outcome of a batch. Partial success is the
// expected shape, not an error: callers inspect Failed and Errors rather
// than treating a non-nil error as batch failure.
type BulkResult struct {
	Total             int             `json:"total"`
	Successful        int             `json:"successful"`
	Failed            int             `json:"failed"`
	DuplicatesDropped int             `json:"duplicates_dropped"`
	SuccessfulIDs     []uint          `json:"successful_ids"`
	FailedIDs         []uint          `json:"failed_ids"`
	Errors            []BulkItemError `json:"errors"`
}

type BulkUpdateStatusCommand struct {
	ReportIDs    []uint
	TargetStatus string
	ActorID      uint
	Notes        string
}

type BulkAssignDepartmentCommand struct {
	ReportIDs    []uint
	DepartmentID uint
	ActorID      uint
	Notes        string
}

// BulkApplyUseCase runs a single-report operation independently over a
// bounded, deduplicated set of report IDs. Every item gets its own
// transaction, so a failed or lock-contended item never rolls back its
// neighbors.
type BulkApplyUseCase struct {
	reportRepo     report.Repository
	updateStatus   UpdateStatusExecutor
	assignDept     AssignDepartmentExecutor
	departmentRepo department.Repository
	maxBatchSize   int
	logger         logger.Interface
}

func NewBulkApplyUseCase(
	reportRepo report.Repository,
	updateStatus UpdateStatusExecutor,
	assignDept AssignDepartmentExecutor,
	departmentRepo department.Repository,
	maxBatchSize int,
	logger logger.Interface,
) *BulkApplyUseCase {
	if maxBatchSize <= 0 {
		maxBatchSize = 100
	}
	return &BulkApplyUseCase{
		reportRepo:     reportRepo,
		updateStatus:   updateStatus,
		assignDept:     assignDept,
		departmentRepo: departmentRepo,
		maxBatchSize:   maxBatchSize,
		logger:         logger,
	}
}

func (uc *BulkApplyUseCase) ExecuteUpdateStatus(ctx context.Context, cmd BulkUpdateStatusCommand) (*BulkResult, error) {
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}
	if cmd.TargetStatus == "" {
		return nil, errors.NewValidationError("target status is required")
	}

	return uc.run(ctx, cmd.ReportIDs, "update_status", func(itemCtx context.Context, reportID uint) error {
		_, err := uc.updateStatus.Execute(itemCtx, UpdateStatusCommand{
			ReportID:     reportID,
			TargetStatus: cmd.TargetStatus,
			ActorID:      cmd.ActorID,
			Notes:        cmd.Notes,
		})
		return err
	})
}

func (uc *BulkApplyUseCase) ExecuteAssignDepartment(ctx context.Context, cmd BulkAssignDepartmentCommand) (*BulkResult, error) {
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}
	if cmd.DepartmentID == 0 {
		return nil, errors.NewValidationError("department ID is required")
	}

	// One department lookup for the whole batch instead of one per item.
	exists, err := uc.departmentRepo.Exists(ctx, cmd.DepartmentID)
	if err != nil {
		uc.logger.Errorw("bulk department lookup failed",
			"department_id", cmd.DepartmentID,
			"error", err)
		return nil, errors.NewInternalError("failed to verify department for bulk operation")
	}
	if !exists {
		return nil, errors.NewNotFoundError(fmt.Sprintf("department %d not found", cmd.DepartmentID))
	}

	return uc.run(ctx, cmd.ReportIDs, "assign_department", func(itemCtx context.Context, reportID uint) error {
		_, err := uc.assignDept.Execute(itemCtx, AssignDepartmentCommand{
			ReportID:     reportID,
			DepartmentID: cmd.DepartmentID,
			ActorID:      cmd.ActorID,
			Notes:        cmd.Notes,
		})
		return err
	})
}

func (uc *BulkApplyUseCase) run(ctx context.Context, reportIDs []uint, operation string, apply func(ctx context.Context, reportID uint) error) (*BulkResult, error) {
	if len(reportIDs) == 0 {
		return nil, errors.NewValidationError("at least one report ID is required")
	}

	ids, dropped := dedupeIDs(reportIDs)
	if len(ids) > uc.maxBatchSize {
		return nil, errors.NewValidationError(
			fmt.Sprintf("batch size %d exceeds the maximum of %d", len(ids), uc.maxBatchSize))
	}

	uc.logger.Infow("executing bulk operation",
		"operation", operation,
		"total", len(ids),
		"duplicates_dropped", dropped)

	result := &BulkResult{
		Total:             len(ids),
		DuplicatesDropped: dropped,
	}

	// One existence pass up front so missing IDs fail fast without a
	// transaction each.
	existing, err := uc.reportRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("bulk prefetch failed", "operation", operation, "error", err)
		return nil, errors.NewInternalError("failed to load reports for bulk operation")
	}
	found := make(map[uint]bool, len(existing))
	for _, r := range existing {
		found[r.ID()] = true
	}

	for _, id := range ids {
		if !found[id] {
			result.recordFailure(id, errors.NewNotFoundError(fmt.Sprintf("report %d not found", id)))
			continue
		}

		if err := apply(ctx, id); err != nil {
			// A constraint violation here means a guard fired despite the
			// service-layer checks passing. That is a bug, not an item
			// failure, and it aborts the batch.
			if errors.IsPersistenceConstraintError(err) {
				uc.logger.Errorw("storage constraint violated during bulk operation",
					"operation", operation,
					"report_id", id,
					"error", err)
				return nil, err
			}
			result.recordFailure(id, err)
			continue
		}
		result.Successful++
		result.SuccessfulIDs = append(result.SuccessfulIDs, id)
	}

	uc.logger.Infow("bulk operation completed",
		"operation", operation,
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed)

	return result, nil
}

func (r *BulkResult) recordFailure(reportID uint, err error) {
	r.Failed++
	r.FailedIDs = append(r.FailedIDs, reportID)

	itemErr := BulkItemError{ReportID: reportID, Message: err.Error()}
	if appErr := errors.GetAppError(err); appErr != nil {
		itemErr.Type = string(appErr.Type)
		itemErr.Message = appErr.Message
	}
	r.Errors = append(r.Errors, itemErr)
}

func dedupeIDs(ids []uint) ([]uint, int) {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique, len(ids) - len(unique)
}
