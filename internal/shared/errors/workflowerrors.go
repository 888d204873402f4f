package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// Workflow error types. These map one-to-one onto the failure classes the
// report workflow can surface; callers branch on the type, not the message.
const (
	ErrorTypeInvalidTransition       ErrorType = "invalid_transition"
	ErrorTypePrerequisiteUnmet       ErrorType = "prerequisite_unmet"
	ErrorTypeNoEligibleOfficer       ErrorType = "no_eligible_officer"
	ErrorTypeConcurrentModification  ErrorType = "concurrent_modification"
	ErrorTypePersistenceConstraint   ErrorType = "persistence_constraint_violated"
)

// NewInvalidTransitionError reports a target status that is not reachable
// from the current status.
func NewInvalidTransitionError(from, to string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		Code:    http.StatusUnprocessableEntity,
		Details: fmt.Sprintf("from=%s to=%s", from, to),
	}
}

// NewPrerequisiteUnmetError reports a structurally legal transition blocked by
// missing data. The prerequisite name identifies which condition failed
// (department, task, officer_department).
func NewPrerequisiteUnmetError(prerequisite, message string) *AppError {
	return &AppError{
		Type:    ErrorTypePrerequisiteUnmet,
		Message: message,
		Code:    http.StatusUnprocessableEntity,
		Details: prerequisite,
	}
}

// NewNoEligibleOfficerError reports that workload selection found zero
// candidates in the department.
func NewNoEligibleOfficerError(departmentID uint) *AppError {
	return &AppError{
		Type:    ErrorTypeNoEligibleOfficer,
		Message: fmt.Sprintf("department %d has no active officers eligible for assignment", departmentID),
		Code:    http.StatusUnprocessableEntity,
		Details: fmt.Sprintf("department_id=%d", departmentID),
	}
}

// NewConcurrentModificationError reports an optimistic lock conflict.
func NewConcurrentModificationError(entity string, id uint) *AppError {
	return &AppError{
		Type:    ErrorTypeConcurrentModification,
		Message: fmt.Sprintf("%s %d was modified concurrently", entity, id),
		Code:    http.StatusConflict,
		Details: fmt.Sprintf("%s_id=%d", entity, id),
	}
}

// NewPersistenceConstraintError reports a storage-level constraint or trigger
// rejecting a write the service layer had approved. This always indicates a
// bug and is never surfaced as an ordinary user error.
func NewPersistenceConstraintError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypePersistenceConstraint,
		Message: message,
		Code:    http.StatusInternalServerError,
	}
}

func IsInvalidTransitionError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeInvalidTransition
}

func IsPrerequisiteUnmetError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypePrerequisiteUnmet
}

func IsNoEligibleOfficerError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNoEligibleOfficer
}

func IsConcurrentModificationError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeConcurrentModification
}

func IsPersistenceConstraintError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypePersistenceConstraint
}

// IsConstraintViolation checks whether a raw database error came from a CHECK
// constraint or guard trigger rather than application code. MySQL reports
// CHECK failures as error 3819 and trigger SIGNALs as SQLSTATE 45000.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	if strings.Contains(errStr, "Error 3819") || strings.Contains(errStr, "Check constraint") {
		return true
	}
	if strings.Contains(errStr, "SQLSTATE 45000") || strings.Contains(errStr, "Error 1644") {
		return true
	}
	// sqlite phrasing, used by the integration test databases
	if strings.Contains(errStr, "CHECK constraint failed") {
		return true
	}
	return false
}
