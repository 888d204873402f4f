package valueobjects

import "fmt"

type ReportStatus string

const (
	StatusReceived              ReportStatus = "received"
	StatusPendingClassification ReportStatus = "pending_classification"
	StatusClassified            ReportStatus = "classified"
	StatusAssignedToDepartment  ReportStatus = "assigned_to_department"
	StatusAssignedToOfficer     ReportStatus = "assigned_to_officer"
	StatusAcknowledged          ReportStatus = "acknowledged"
	StatusInProgress            ReportStatus = "in_progress"
	StatusOnHold                ReportStatus = "on_hold"
	StatusPendingVerification   ReportStatus = "pending_verification"
	StatusResolved              ReportStatus = "resolved"
	StatusRejected              ReportStatus = "rejected"
)

var validReportStatuses = map[ReportStatus]bool{
	StatusReceived:              true,
	StatusPendingClassification: true,
	StatusClassified:            true,
	StatusAssignedToDepartment:  true,
	StatusAssignedToOfficer:     true,
	StatusAcknowledged:          true,
	StatusInProgress:            true,
	StatusOnHold:                true,
	StatusPendingVerification:   true,
	StatusResolved:              true,
	StatusRejected:              true,
}

// reportStatusRank is the position of each status in the canonical forward
// sequence. A report's rank must never decrease over its lifetime; on_hold is
// a parenthesis around the paused status and carries no rank of its own.
var reportStatusRank = map[ReportStatus]int{
	StatusReceived:              1,
	StatusPendingClassification: 2,
	StatusClassified:            3,
	StatusAssignedToDepartment:  4,
	StatusAssignedToOfficer:     5,
	StatusAcknowledged:          6,
	StatusInProgress:            7,
	StatusPendingVerification:   8,
	StatusResolved:              9,
	StatusRejected:              9,
}

var reportStatusTransitions = map[ReportStatus][]ReportStatus{
	StatusReceived: {
		StatusPendingClassification,
		StatusClassified,
		StatusAssignedToDepartment,
	},
	StatusPendingClassification: {
		StatusClassified,
		StatusAssignedToDepartment,
	},
	StatusClassified: {
		StatusAssignedToDepartment,
	},
	StatusAssignedToDepartment: {
		StatusAssignedToOfficer,
		StatusOnHold,
	},
	StatusAssignedToOfficer: {
		StatusAcknowledged,
	},
	StatusAcknowledged: {
		StatusInProgress,
		StatusOnHold,
	},
	StatusInProgress: {
		StatusPendingVerification,
		StatusOnHold,
	},
	StatusOnHold: {
		StatusAssignedToDepartment,
		StatusAcknowledged,
		StatusInProgress,
	},
	StatusPendingVerification: {
		StatusResolved,
		StatusRejected,
	},
	StatusResolved: {},
	StatusRejected: {},
}

func (rs ReportStatus) String() string {
	return string(rs)
}

func (rs ReportStatus) IsValid() bool {
	return validReportStatuses[rs]
}

// Rank returns the position of the status in the canonical forward sequence.
// on_hold returns 0 and is exempt from ordering comparisons.
func (rs ReportStatus) Rank() int {
	return reportStatusRank[rs]
}

func (rs ReportStatus) CanTransitionTo(newStatus ReportStatus) bool {
	allowed, ok := reportStatusTransitions[rs]
	if !ok {
		return false
	}

	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

// IsBackwardFrom reports whether moving from current to rs would decrease the
// canonical rank. Transitions into or out of on_hold never count as backward.
func (rs ReportStatus) IsBackwardFrom(current ReportStatus) bool {
	if rs == StatusOnHold || current == StatusOnHold {
		return false
	}
	return rs.Rank() < current.Rank()
}

func (rs ReportStatus) IsTerminal() bool {
	return rs == StatusResolved || rs == StatusRejected
}

func (rs ReportStatus) IsOnHold() bool {
	return rs == StatusOnHold
}

// RequiresDepartment reports whether the status presumes a department has been
// assigned to the report.
func (rs ReportStatus) RequiresDepartment() bool {
	if rs == StatusOnHold {
		return true
	}
	return rs.Rank() >= StatusAssignedToDepartment.Rank()
}

// RequiresTask reports whether the status presumes an officer task exists for
// the report.
func (rs ReportStatus) RequiresTask() bool {
	if rs == StatusOnHold {
		return false
	}
	return rs.Rank() >= StatusAssignedToOfficer.Rank()
}

func NewReportStatus(s string) (ReportStatus, error) {
	rs := ReportStatus(s)
	if !rs.IsValid() {
		return "", fmt.Errorf("invalid report status: %s", s)
	}
	return rs, nil
}
