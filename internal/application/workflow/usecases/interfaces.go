package usecases

import (
	"context"

	"civicwatch/internal/application/workflow/dto"
)

// TxManager runs a function inside a database transaction. Satisfied by
// db.TransactionManager; tests substitute a pass-through.
type TxManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CreateReportExecutor interface {
	Execute(ctx context.Context, cmd CreateReportCommand) (*CreateReportResult, error)
}

type GetReportExecutor interface {
	Execute(ctx context.Context, query GetReportQuery) (*dto.ReportDTO, error)
}

type ListReportsExecutor interface {
	Execute(ctx context.Context, query ListReportsQuery) (*ListReportsResult, error)
}

type AssignDepartmentExecutor interface {
	Execute(ctx context.Context, cmd AssignDepartmentCommand) (*AssignDepartmentResult, error)
}

type AssignOfficerExecutor interface {
	Execute(ctx context.Context, cmd AssignOfficerCommand) (*AssignOfficerResult, error)
}

type AutoAssignOfficerExecutor interface {
	Execute(ctx context.Context, cmd AutoAssignOfficerCommand) (*AssignOfficerResult, error)
}

type UpdateStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error)
}

type ChangeOfficerDepartmentExecutor interface {
	Execute(ctx context.Context, cmd ChangeOfficerDepartmentCommand) (*ChangeOfficerDepartmentResult, error)
}

type BulkApplyExecutor interface {
	ExecuteUpdateStatus(ctx context.Context, cmd BulkUpdateStatusCommand) (*BulkResult, error)
	ExecuteAssignDepartment(ctx context.Context, cmd BulkAssignDepartmentCommand) (*BulkResult, error)
}
