package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppError_UnwrapsWrappedErrors(t *testing.T) {
	inner := NewConcurrentModificationError("report", 1)
	wrapped := fmt.Errorf("failed to update report: %w", inner)

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeConcurrentModification, appErr.Type)

	assert.True(t, IsConcurrentModificationError(wrapped))
	assert.False(t, IsConcurrentModificationError(fmt.Errorf("plain error")))
}

func TestWorkflowErrorConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *AppError
		check func(error) bool
		code  int
	}{
		{
			name:  "invalid transition",
			err:   NewInvalidTransitionError("resolved", "in_progress"),
			check: IsInvalidTransitionError,
			code:  422,
		},
		{
			name:  "prerequisite unmet",
			err:   NewPrerequisiteUnmetError("department", "report has no department"),
			check: IsPrerequisiteUnmetError,
			code:  422,
		},
		{
			name:  "no eligible officer",
			err:   NewNoEligibleOfficerError(3),
			check: IsNoEligibleOfficerError,
			code:  422,
		},
		{
			name:  "concurrent modification",
			err:   NewConcurrentModificationError("report", 1),
			check: IsConcurrentModificationError,
			code:  409,
		},
		{
			name:  "persistence constraint",
			err:   NewPersistenceConstraintError("guard trigger fired"),
			check: IsPersistenceConstraintError,
			code:  500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestIsConstraintViolation(t *testing.T) {
	assert.True(t, IsConstraintViolation(fmt.Errorf("Error 3819 (HY000): Check constraint 'chk_reports_status' is violated")))
	assert.True(t, IsConstraintViolation(fmt.Errorf("Error 1644 (45000): report in department-required status without department")))
	assert.True(t, IsConstraintViolation(fmt.Errorf("constraint failed: CHECK constraint failed: chk_reports_version (275)")))
	assert.False(t, IsConstraintViolation(fmt.Errorf("Error 1062 (23000): Duplicate entry")))
	assert.False(t, IsConstraintViolation(nil))
}
