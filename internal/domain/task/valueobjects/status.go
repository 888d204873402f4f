package valueobjects

import (
	"fmt"

	reportvo "civicwatch/internal/domain/report/valueobjects"
)

type TaskStatus string

const (
	StatusAssigned            TaskStatus = "assigned"
	StatusAcknowledged        TaskStatus = "acknowledged"
	StatusInProgress          TaskStatus = "in_progress"
	StatusOnHold              TaskStatus = "on_hold"
	StatusPendingVerification TaskStatus = "pending_verification"
	StatusResolved            TaskStatus = "resolved"
	StatusRejected            TaskStatus = "rejected"
)

var validTaskStatuses = map[TaskStatus]bool{
	StatusAssigned:            true,
	StatusAcknowledged:        true,
	StatusInProgress:          true,
	StatusOnHold:              true,
	StatusPendingVerification: true,
	StatusResolved:            true,
	StatusRejected:            true,
}

// taskStatusForReportStatus keeps Task.status in lockstep with the owning
// report. Reports before the officer stage have no task at all.
var taskStatusForReportStatus = map[reportvo.ReportStatus]TaskStatus{
	reportvo.StatusAssignedToOfficer:   StatusAssigned,
	reportvo.StatusAcknowledged:        StatusAcknowledged,
	reportvo.StatusInProgress:          StatusInProgress,
	reportvo.StatusOnHold:              StatusOnHold,
	reportvo.StatusPendingVerification: StatusPendingVerification,
	reportvo.StatusResolved:            StatusResolved,
	reportvo.StatusRejected:            StatusRejected,
}

func (ts TaskStatus) String() string {
	return string(ts)
}

func (ts TaskStatus) IsValid() bool {
	return validTaskStatuses[ts]
}

func (ts TaskStatus) IsTerminal() bool {
	return ts == StatusResolved || ts == StatusRejected
}

// IsActive reports whether the task counts toward its officer's live
// workload.
func (ts TaskStatus) IsActive() bool {
	return !ts.IsTerminal()
}

// ForReportStatus returns the task status paired with a report status, or
// false when the report status has no task counterpart.
func ForReportStatus(rs reportvo.ReportStatus) (TaskStatus, bool) {
	ts, ok := taskStatusForReportStatus[rs]
	return ts, ok
}

func NewTaskStatus(s string) (TaskStatus, error) {
	ts := TaskStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return ts, nil
}
