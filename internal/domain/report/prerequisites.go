package report

import (
	vo "civicwatch/internal/domain/report/valueobjects"
	"civicwatch/internal/shared/errors"
)

// TaskState is the slice of task data the prerequisite checks need. The
// workflow layer fills it from the task repository; a nil value means no task
// exists for the report.
type TaskState struct {
	OfficerID           uint
	OfficerDepartmentID *uint
}

// PrerequisiteValidator checks the data conditions a target status requires,
// independent of the transition table. It returns a typed error naming the
// failed prerequisite so callers can report exactly what is missing.
type PrerequisiteValidator struct{}

func NewPrerequisiteValidator() PrerequisiteValidator {
	return PrerequisiteValidator{}
}

// Validate checks the prerequisites for moving r to target. The transition
// table itself is enforced separately by Report.ChangeStatus; both layers
// reject backward moves.
func (PrerequisiteValidator) Validate(r *Report, target vo.ReportStatus, task *TaskState) error {
	if target.IsBackwardFrom(r.Status()) {
		return errors.NewInvalidTransitionError(r.Status().String(), target.String())
	}

	if target.RequiresDepartment() && r.DepartmentID() == nil {
		return errors.NewPrerequisiteUnmetError("department",
			"target status "+target.String()+" requires a department assignment")
	}

	if target.RequiresTask() {
		if task == nil || task.OfficerID == 0 {
			return errors.NewPrerequisiteUnmetError("task",
				"target status "+target.String()+" requires an officer task")
		}
	}

	if target == vo.StatusAssignedToOfficer {
		if err := validateDepartmentMatch(r, task); err != nil {
			return err
		}
	}

	return nil
}

// ValidateOfficerAssignment checks that an officer in the given department may
// take the report. Cross-department assignment is rejected here; the admin
// officer-department change path deliberately bypasses this check.
func (PrerequisiteValidator) ValidateOfficerAssignment(r *Report, officerDepartmentID *uint) error {
	if r.DepartmentID() == nil {
		return errors.NewPrerequisiteUnmetError("department",
			"report has no department; assign a department before an officer")
	}
	if officerDepartmentID == nil || *officerDepartmentID != *r.DepartmentID() {
		return errors.NewPrerequisiteUnmetError("officer_department",
			"officer does not belong to the report's department")
	}
	return nil
}

func validateDepartmentMatch(r *Report, task *TaskState) error {
	if r.DepartmentID() == nil {
		return errors.NewPrerequisiteUnmetError("department",
			"report has no department assignment")
	}
	if task == nil || task.OfficerDepartmentID == nil || *task.OfficerDepartmentID != *r.DepartmentID() {
		return errors.NewPrerequisiteUnmetError("officer_department",
			"assigned officer does not belong to the report's department")
	}
	return nil
}
