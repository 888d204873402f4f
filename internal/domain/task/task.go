package task

import (
	"fmt"
	"time"

	reportvo "civicwatch/internal/domain/report/valueobjects"
	vo "civicwatch/internal/domain/task/valueobjects"
)

const (
	MinPriority = 1
	MaxPriority = 10
)

// Task is the officer-facing work item paired one-to-one with a report. It is
// created exactly once, when the report first receives an officer, and its
// status is only ever changed in the same transaction as the report's.
type Task struct {
	id             uint
	reportID       uint
	assignedTo     uint
	status         vo.TaskStatus
	priority       int
	assignedAt     time.Time
	acknowledgedAt *time.Time
	startedAt      *time.Time
	resolvedAt     *time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

func NewTask(reportID uint, officerID uint, priority int) (*Task, error) {
	if reportID == 0 {
		return nil, fmt.Errorf("report ID is required")
	}
	if officerID == 0 {
		return nil, fmt.Errorf("officer ID is required")
	}
	if priority < MinPriority || priority > MaxPriority {
		return nil, fmt.Errorf("priority must be between %d and %d", MinPriority, MaxPriority)
	}

	now := time.Now()

	return &Task{
		reportID:   reportID,
		assignedTo: officerID,
		status:     vo.StatusAssigned,
		priority:   priority,
		assignedAt: now,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructTask(
	id uint,
	reportID uint,
	assignedTo uint,
	status vo.TaskStatus,
	priority int,
	assignedAt time.Time,
	acknowledgedAt *time.Time,
	startedAt *time.Time,
	resolvedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Task, error) {
	if id == 0 {
		return nil, fmt.Errorf("task ID cannot be zero")
	}
	if reportID == 0 {
		return nil, fmt.Errorf("report ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid task status: %s", status)
	}

	return &Task{
		id:             id,
		reportID:       reportID,
		assignedTo:     assignedTo,
		status:         status,
		priority:       priority,
		assignedAt:     assignedAt,
		acknowledgedAt: acknowledgedAt,
		startedAt:      startedAt,
		resolvedAt:     resolvedAt,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (t *Task) ID() uint                    { return t.id }
func (t *Task) ReportID() uint              { return t.reportID }
func (t *Task) AssignedTo() uint            { return t.assignedTo }
func (t *Task) Status() vo.TaskStatus       { return t.status }
func (t *Task) Priority() int               { return t.priority }
func (t *Task) AssignedAt() time.Time       { return t.assignedAt }
func (t *Task) AcknowledgedAt() *time.Time  { return t.acknowledgedAt }
func (t *Task) StartedAt() *time.Time       { return t.startedAt }
func (t *Task) ResolvedAt() *time.Time      { return t.resolvedAt }
func (t *Task) Version() int                { return t.version }
func (t *Task) CreatedAt() time.Time        { return t.createdAt }
func (t *Task) UpdatedAt() time.Time        { return t.updatedAt }

func (t *Task) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("task ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("task ID cannot be zero")
	}
	t.id = id
	return nil
}

// Reassign hands the task to another officer and restarts the assignment
// clock. Terminal tasks stay with whoever closed them.
func (t *Task) Reassign(officerID uint) error {
	if officerID == 0 {
		return fmt.Errorf("officer ID is required")
	}
	if t.status.IsTerminal() {
		return fmt.Errorf("cannot reassign a %s task", t.status)
	}

	t.assignedTo = officerID
	t.status = vo.StatusAssigned
	t.assignedAt = time.Now()
	t.acknowledgedAt = nil
	t.startedAt = nil
	t.touch()
	return nil
}

// ChangePriority adjusts the bounded priority of an open task.
func (t *Task) ChangePriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return fmt.Errorf("priority must be between %d and %d", MinPriority, MaxPriority)
	}
	if t.status.IsTerminal() {
		return fmt.Errorf("cannot change priority of a %s task", t.status)
	}
	t.priority = priority
	t.touch()
	return nil
}

// AlignWithReportStatus moves the task status in lockstep with the owning
// report and stamps the milestone timestamp for the stage being entered.
func (t *Task) AlignWithReportStatus(rs reportvo.ReportStatus) error {
	newStatus, ok := vo.ForReportStatus(rs)
	if !ok {
		return fmt.Errorf("report status %s has no task counterpart", rs)
	}

	now := time.Now()
	switch newStatus {
	case vo.StatusAcknowledged:
		if t.acknowledgedAt == nil {
			t.acknowledgedAt = &now
		}
	case vo.StatusInProgress:
		if t.startedAt == nil {
			t.startedAt = &now
		}
	case vo.StatusResolved, vo.StatusRejected:
		if t.resolvedAt == nil {
			t.resolvedAt = &now
		}
	}

	t.status = newStatus
	t.touch()
	return nil
}

// touch refreshes the update timestamp; the version column is bumped by the
// repository's guarded UPDATE.
func (t *Task) touch() {
	t.updatedAt = time.Now()
}
