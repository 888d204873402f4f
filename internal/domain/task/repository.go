package task

import "context"

type Repository interface {
	Save(ctx context.Context, t *Task) error
	// Update persists the task with an optimistic version check.
	Update(ctx context.Context, t *Task) error
	// Delete removes the task row. Only the unassign path of an officer
	// department change may call this.
	Delete(ctx context.Context, taskID uint) error
	GetByID(ctx context.Context, taskID uint) (*Task, error)
	GetByReportID(ctx context.Context, reportID uint) (*Task, error)
	// GetActiveByOfficer returns the officer's non-terminal tasks.
	GetActiveByOfficer(ctx context.Context, officerID uint) ([]*Task, error)
}
