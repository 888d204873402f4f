package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicwatch/internal/domain/report"
	vo "civicwatch/internal/domain/report/valueobjects"
	"civicwatch/internal/shared/errors"
)

type mockUpdateStatusExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error)
}

func (m *mockUpdateStatusExecutor) Execute(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &UpdateStatusResult{}, nil
}

type mockAssignDepartmentExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd AssignDepartmentCommand) (*AssignDepartmentResult, error)
}

func (m *mockAssignDepartmentExecutor) Execute(ctx context.Context, cmd AssignDepartmentCommand) (*AssignDepartmentResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &AssignDepartmentResult{}, nil
}

func bulkReportRepo(t *testing.T, ids ...uint) *mockReportRepository {
	t.Helper()
	return &mockReportRepository{
		GetByIDsFunc: func(ctx context.Context, reportIDs []uint) ([]*report.Report, error) {
			reports := make([]*report.Report, 0, len(ids))
			requested := make(map[uint]bool, len(reportIDs))
			for _, id := range reportIDs {
				requested[id] = true
			}
			for _, id := range ids {
				if requested[id] {
					reports = append(reports, makeReport(t, id, vo.StatusClassified, nil))
				}
			}
			return reports, nil
		},
	}
}

func TestBulkApplyUseCase_ExecuteUpdateStatus_PartialSuccess(t *testing.T) {
	useCase := NewBulkApplyUseCase(
		bulkReportRepo(t, 1, 2, 3),
		&mockUpdateStatusExecutor{
			ExecuteFunc: func(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
				if cmd.ReportID == 2 {
					return nil, errors.NewInvalidTransitionError("resolved", "classified")
				}
				return &UpdateStatusResult{}, nil
			},
		},
		&mockAssignDepartmentExecutor{},
		&mockDepartmentRepository{},
		100,
		&mockLogger{},
	)

	result, err := useCase.ExecuteUpdateStatus(context.Background(), BulkUpdateStatusCommand{
		ReportIDs:    []uint{1, 2, 3},
		TargetStatus: "classified",
		ActorID:      5,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []uint{1, 3}, result.SuccessfulIDs)
	assert.Equal(t, []uint{2}, result.FailedIDs)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, uint(2), result.Errors[0].ReportID)
	assert.Equal(t, string(errors.ErrorTypeInvalidTransition), result.Errors[0].Type)
}

func TestBulkApplyUseCase_ExecuteUpdateStatus_DropsDuplicatesAndZeros(t *testing.T) {
	var applied []uint
	useCase := NewBulkApplyUseCase(
		bulkReportRepo(t, 1, 2),
		&mockUpdateStatusExecutor{
			ExecuteFunc: func(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
				applied = append(applied, cmd.ReportID)
				return &UpdateStatusResult{}, nil
			},
		},
		&mockAssignDepartmentExecutor{},
		&mockDepartmentRepository{},
		100,
		&mockLogger{},
	)

	result, err := useCase.ExecuteUpdateStatus(context.Background(), BulkUpdateStatusCommand{
		ReportIDs:    []uint{1, 2, 1, 0, 2, 2},
		TargetStatus: "classified",
		ActorID:      5,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 4, result.DuplicatesDropped)
	assert.Equal(t, []uint{1, 2}, applied)
}

func TestBulkApplyUseCase_ExecuteUpdateStatus_MissingReportsFailFast(t *testing.T) {
	applyCalls := 0
	useCase := NewBulkApplyUseCase(
		bulkReportRepo(t, 1),
		&mockUpdateStatusExecutor{
			ExecuteFunc: func(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
				applyCalls++
				return &UpdateStatusResult{}, nil
			},
		},
		&mockAssignDepartmentExecutor{},
		&mockDepartmentRepository{},
		100,
		&mockLogger{},
	)

	result, err := useCase.ExecuteUpdateStatus(context.Background(), BulkUpdateStatusCommand{
		ReportIDs:    []uint{1, 42},
		TargetStatus: "classified",
		ActorID:      5,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, applyCalls)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, uint(42), result.Errors[0].ReportID)
	assert.Equal(t, string(errors.ErrorTypeNotFound), result.Errors[0].Type)
}

func TestBulkApplyUseCase_ExecuteUpdateStatus_BatchSizeCap(t *testing.T) {
	useCase := NewBulkApplyUseCase(
		&mockReportRepository{},
		&mockUpdateStatusExecutor{},
		&mockAssignDepartmentExecutor{},
		&mockDepartmentRepository{},
		3,
		&mockLogger{},
	)

	result, err := useCase.ExecuteUpdateStatus(context.Background(), BulkUpdateStatusCommand{
		ReportIDs:    []uint{1, 2, 3, 4},
		TargetStatus: "classified",
		ActorID:      5,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "exceeds the maximum")
}

func TestBulkApplyUseCase_ExecuteUpdateStatus_ConstraintViolationAbortsBatch(t *testing.T) {
	applyCalls := 0
	useCase := NewBulkApplyUseCase(
		bulkReportRepo(t, 1, 2, 3),
		&mockUpdateStatusExecutor{
			ExecuteFunc: func(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
				applyCalls++
				if cmd.ReportID == 2 {
					return nil, errors.NewPersistenceConstraintError("guard trigger rejected report update")
				}
				return &UpdateStatusResult{}, nil
			},
		},
		&mockAssignDepartmentExecutor{},
		&mockDepartmentRepository{},
		100,
		&mockLogger{},
	)

	result, err := useCase.ExecuteUpdateStatus(context.Background(), BulkUpdateStatusCommand{
		ReportIDs:    []uint{1, 2, 3},
		TargetStatus: "classified",
		ActorID:      5,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsPersistenceConstraintError(err))
	assert.Equal(t, 2, applyCalls)
}

func TestBulkApplyUseCase_ExecuteAssignDepartment_Success(t *testing.T) {
	var assigned []uint
	useCase := NewBulkApplyUseCase(
		bulkReportRepo(t, 1, 2),
		&mockUpdateStatusExecutor{},
		&mockAssignDepartmentExecutor{
			ExecuteFunc: func(ctx context.Context, cmd AssignDepartmentCommand) (*AssignDepartmentResult, error) {
				assigned = append(assigned, cmd.ReportID)
				assert.Equal(t, uint(3), cmd.DepartmentID)
				return &AssignDepartmentResult{}, nil
			},
		},
		&mockDepartmentRepository{},
		100,
		&mockLogger{},
	)

	result, err := useCase.ExecuteAssignDepartment(context.Background(), BulkAssignDepartmentCommand{
		ReportIDs:    []uint{1, 2},
		DepartmentID: 3,
		ActorID:      5,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, []uint{1, 2}, assigned)
}

func TestBulkApplyUseCase_ExecuteAssignDepartment_UnknownDepartmentFailsBatch(t *testing.T) {
	applyCalls := 0
	useCase := NewBulkApplyUseCase(
		bulkReportRepo(t, 1, 2),
		&mockUpdateStatusExecutor{},
		&mockAssignDepartmentExecutor{
			ExecuteFunc: func(ctx context.Context, cmd AssignDepartmentCommand) (*AssignDepartmentResult, error) {
				applyCalls++
				return &AssignDepartmentResult{}, nil
			},
		},
		&mockDepartmentRepository{
			ExistsFunc: func(ctx context.Context, departmentID uint) (bool, error) {
				assert.Equal(t, uint(9), departmentID)
				return false, nil
			},
		},
		100,
		&mockLogger{},
	)

	result, err := useCase.ExecuteAssignDepartment(context.Background(), BulkAssignDepartmentCommand{
		ReportIDs:    []uint{1, 2},
		DepartmentID: 9,
		ActorID:      5,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, 0, applyCalls)
}

func TestBulkApplyUseCase_ValidationErrors(t *testing.T) {
	useCase := NewBulkApplyUseCase(
		&mockReportRepository{},
		&mockUpdateStatusExecutor{},
		&mockAssignDepartmentExecutor{},
		&mockDepartmentRepository{},
		100,
		&mockLogger{},
	)

	t.Run("empty batch", func(t *testing.T) {
		result, err := useCase.ExecuteUpdateStatus(context.Background(), BulkUpdateStatusCommand{
			TargetStatus: "classified",
			ActorID:      5,
		})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "at least one report ID is required")
	})

	t.Run("missing target status", func(t *testing.T) {
		result, err := useCase.ExecuteUpdateStatus(context.Background(), BulkUpdateStatusCommand{
			ReportIDs: []uint{1},
			ActorID:   5,
		})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "target status is required")
	})

	t.Run("missing department", func(t *testing.T) {
		result, err := useCase.ExecuteAssignDepartment(context.Background(), BulkAssignDepartmentCommand{
			ReportIDs: []uint{1},
			ActorID:   5,
		})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "department ID is required")
	})

	t.Run("missing actor", func(t *testing.T) {
		result, err := useCase.ExecuteUpdateStatus(context.Background(), BulkUpdateStatusCommand{
			ReportIDs:    []uint{1},
			TargetStatus: "classified",
		})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "actor ID is required")
	})
}
