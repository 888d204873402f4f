package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "civicwatch/internal/domain/report/valueobjects"
	"civicwatch/internal/shared/errors"
)

func TestPrerequisiteValidator_Validate(t *testing.T) {
	validator := NewPrerequisiteValidator()

	tests := []struct {
		name         string
		status       vo.ReportStatus
		departmentID *uint
		target       vo.ReportStatus
		task         *TaskState
		wantErr      bool
		check        func(error) bool
		prerequisite string
	}{
		{
			name:   "classification needs nothing",
			status: vo.StatusReceived,
			target: vo.StatusClassified,
		},
		{
			name:         "department stage requires department",
			status:       vo.StatusClassified,
			target:       vo.StatusAssignedToDepartment,
			wantErr:      true,
			check:        errors.IsPrerequisiteUnmetError,
			prerequisite: "department",
		},
		{
			name:         "officer stage requires task",
			status:       vo.StatusAssignedToDepartment,
			departmentID: deptPtr(3),
			target:       vo.StatusAssignedToOfficer,
			wantErr:      true,
			check:        errors.IsPrerequisiteUnmetError,
			prerequisite: "task",
		},
		{
			name:         "officer stage requires matching department",
			status:       vo.StatusAssignedToDepartment,
			departmentID: deptPtr(3),
			target:       vo.StatusAssignedToOfficer,
			task:         &TaskState{OfficerID: 7, OfficerDepartmentID: deptPtr(4)},
			wantErr:      true,
			check:        errors.IsPrerequisiteUnmetError,
			prerequisite: "officer_department",
		},
		{
			name:         "officer stage satisfied",
			status:       vo.StatusAssignedToDepartment,
			departmentID: deptPtr(3),
			target:       vo.StatusAssignedToOfficer,
			task:         &TaskState{OfficerID: 7, OfficerDepartmentID: deptPtr(3)},
		},
		{
			name:         "resolution requires task",
			status:       vo.StatusPendingVerification,
			departmentID: deptPtr(3),
			target:       vo.StatusResolved,
			wantErr:      true,
			check:        errors.IsPrerequisiteUnmetError,
			prerequisite: "task",
		},
		{
			name:         "backward target rejected before prerequisites",
			status:       vo.StatusInProgress,
			departmentID: deptPtr(3),
			target:       vo.StatusClassified,
			wantErr:      true,
			check:        errors.IsInvalidTransitionError,
		},
		{
			name:         "hold needs a department but no task",
			status:       vo.StatusAssignedToDepartment,
			departmentID: deptPtr(3),
			target:       vo.StatusOnHold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testReport(t, tt.status, tt.departmentID)

			err := validator.Validate(r, tt.target, tt.task)

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.check(err))
			if tt.prerequisite != "" {
				appErr := errors.GetAppError(err)
				require.NotNil(t, appErr)
				assert.Equal(t, tt.prerequisite, appErr.Details)
			}
		})
	}
}

func TestPrerequisiteValidator_ValidateOfficerAssignment(t *testing.T) {
	validator := NewPrerequisiteValidator()

	t.Run("matching department accepted", func(t *testing.T) {
		r := testReport(t, vo.StatusAssignedToDepartment, deptPtr(3))
		require.NoError(t, validator.ValidateOfficerAssignment(r, deptPtr(3)))
	})

	t.Run("report without department rejected", func(t *testing.T) {
		r := testReport(t, vo.StatusClassified, nil)
		err := validator.ValidateOfficerAssignment(r, deptPtr(3))
		require.Error(t, err)
		assert.True(t, errors.IsPrerequisiteUnmetError(err))
		assert.Equal(t, "department", errors.GetAppError(err).Details)
	})

	t.Run("cross-department officer rejected", func(t *testing.T) {
		r := testReport(t, vo.StatusAssignedToDepartment, deptPtr(3))
		err := validator.ValidateOfficerAssignment(r, deptPtr(4))
		require.Error(t, err)
		assert.True(t, errors.IsPrerequisiteUnmetError(err))
		assert.Equal(t, "officer_department", errors.GetAppError(err).Details)
	})

	t.Run("nil officer department rejected", func(t *testing.T) {
		r := testReport(t, vo.StatusAssignedToDepartment, deptPtr(3))
		err := validator.ValidateOfficerAssignment(r, nil)
		require.Error(t, err)
		assert.True(t, errors.IsPrerequisiteUnmetError(err))
	})
}
