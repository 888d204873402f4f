package report

import (
	"fmt"
	"time"

	vo "civicwatch/internal/domain/report/valueobjects"
	"civicwatch/internal/shared/errors"
)

// Report is the aggregate root for a citizen-submitted complaint. Its status
// only ever moves through the transitions allowed by the status value object;
// every mutation bumps the optimistic-lock version.
type Report struct {
	id           uint
	number       string
	title        string
	description  string
	category     string
	subCategory  string
	severity     vo.Severity
	status       vo.ReportStatus
	departmentID *uint
	heldFrom     *vo.ReportStatus
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewReport(
	title string,
	description string,
	category string,
	subCategory string,
	severity vo.Severity,
) (*Report, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(category) == 0 {
		return nil, fmt.Errorf("category is required")
	}
	if !severity.IsValid() {
		return nil, fmt.Errorf("invalid severity")
	}

	now := time.Now()

	return &Report{
		title:       title,
		description: description,
		category:    category,
		subCategory: subCategory,
		severity:    severity,
		status:      vo.StatusReceived,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructReport(
	id uint,
	number string,
	title string,
	description string,
	category string,
	subCategory string,
	severity vo.Severity,
	status vo.ReportStatus,
	departmentID *uint,
	heldFrom *vo.ReportStatus,
	version int,
	createdAt, updatedAt time.Time,
) (*Report, error) {
	if id == 0 {
		return nil, fmt.Errorf("report ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("report number is required")
	}
	if !severity.IsValid() {
		return nil, fmt.Errorf("invalid severity")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Report{
		id:           id,
		number:       number,
		title:        title,
		description:  description,
		category:     category,
		subCategory:  subCategory,
		severity:     severity,
		status:       status,
		departmentID: departmentID,
		heldFrom:     heldFrom,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (r *Report) ID() uint                     { return r.id }
func (r *Report) Number() string               { return r.number }
func (r *Report) Title() string                { return r.title }
func (r *Report) Description() string          { return r.description }
func (r *Report) Category() string             { return r.category }
func (r *Report) SubCategory() string          { return r.subCategory }
func (r *Report) Severity() vo.Severity        { return r.severity }
func (r *Report) Status() vo.ReportStatus      { return r.status }
func (r *Report) DepartmentID() *uint          { return r.departmentID }
func (r *Report) HeldFrom() *vo.ReportStatus   { return r.heldFrom }
func (r *Report) Version() int                 { return r.version }
func (r *Report) CreatedAt() time.Time         { return r.createdAt }
func (r *Report) UpdatedAt() time.Time         { return r.updatedAt }

func (r *Report) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("report ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("report ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *Report) SetNumber(number string) error {
	if len(r.number) > 0 {
		return fmt.Errorf("report number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("report number cannot be empty")
	}
	r.number = number
	return nil
}

// AssignDepartment sets the department and, when the report has not reached
// the department stage yet, advances the status. Reassigning the department of
// a report already at or past assigned_to_department keeps the status as-is.
func (r *Report) AssignDepartment(departmentID uint) error {
	if departmentID == 0 {
		return fmt.Errorf("department ID cannot be zero")
	}
	if r.status.IsTerminal() {
		return errors.NewInvalidTransitionError(r.status.String(), vo.StatusAssignedToDepartment.String())
	}

	if r.status.Rank() != 0 && r.status.Rank() < vo.StatusAssignedToDepartment.Rank() {
		if !r.status.CanTransitionTo(vo.StatusAssignedToDepartment) {
			return errors.NewInvalidTransitionError(r.status.String(), vo.StatusAssignedToDepartment.String())
		}
		r.status = vo.StatusAssignedToDepartment
	}

	r.departmentID = &departmentID
	r.touch()
	return nil
}

// MarkAssignedToOfficer advances the report into the officer stage. Assigning
// a replacement officer to a report already past that stage keeps the status.
func (r *Report) MarkAssignedToOfficer() error {
	if r.status == vo.StatusAssignedToDepartment {
		r.status = vo.StatusAssignedToOfficer
		r.touch()
		return nil
	}
	if r.status.Rank() >= vo.StatusAssignedToOfficer.Rank() && !r.status.IsTerminal() {
		r.touch()
		return nil
	}
	return errors.NewInvalidTransitionError(r.status.String(), vo.StatusAssignedToOfficer.String())
}

// ChangeStatus applies a validated transition. Prerequisite checks live in
// PrerequisiteValidator; this only enforces the transition table, backward
// protection, and on_hold bookkeeping.
func (r *Report) ChangeStatus(newStatus vo.ReportStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if newStatus == r.status {
		return errors.NewInvalidTransitionError(r.status.String(), newStatus.String())
	}
	if newStatus.IsBackwardFrom(r.status) {
		return errors.NewInvalidTransitionError(r.status.String(), newStatus.String())
	}
	if !r.status.CanTransitionTo(newStatus) {
		return errors.NewInvalidTransitionError(r.status.String(), newStatus.String())
	}

	if r.status.IsOnHold() {
		// Resuming must return to the exact status the hold interrupted.
		if r.heldFrom != nil && newStatus != *r.heldFrom {
			return errors.NewInvalidTransitionError(r.status.String(), newStatus.String())
		}
		r.heldFrom = nil
	}

	if newStatus.IsOnHold() {
		held := r.status
		r.heldFrom = &held
	}

	r.status = newStatus
	r.touch()
	return nil
}

// RevertToDepartmentPool rolls the report back to assigned_to_department after
// its task has been unassigned. This is the single sanctioned backward move
// and is only reachable through the audited officer-department change path.
func (r *Report) RevertToDepartmentPool() error {
	if r.status.IsTerminal() {
		return errors.NewInvalidTransitionError(r.status.String(), vo.StatusAssignedToDepartment.String())
	}
	if r.departmentID == nil {
		return errors.NewPrerequisiteUnmetError("department", "report has no department to revert to")
	}
	r.status = vo.StatusAssignedToDepartment
	r.heldFrom = nil
	r.touch()
	return nil
}

// touch refreshes the update timestamp. The version column is bumped by the
// repository's guarded UPDATE, not in memory, so Version() always reflects
// the loaded row for the optimistic check.
func (r *Report) touch() {
	r.updatedAt = time.Now()
}

func (r *Report) Validate() error {
	if len(r.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(r.category) == 0 {
		return fmt.Errorf("category is required")
	}
	if !r.severity.IsValid() {
		return fmt.Errorf("invalid severity")
	}
	if !r.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if r.status.RequiresDepartment() && r.departmentID == nil {
		return fmt.Errorf("status %s requires a department", r.status)
	}
	return nil
}
