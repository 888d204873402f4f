package officer

import "context"

type Repository interface {
	GetByID(ctx context.Context, officerID uint) (*Officer, error)
	// ListActiveByDepartment returns the active officers in a department,
	// ordered by ID for deterministic selection.
	ListActiveByDepartment(ctx context.Context, departmentID uint) ([]*Officer, error)
	// UpdateDepartment persists a department move. This is the single officer
	// write the workflow core owns.
	UpdateDepartment(ctx context.Context, o *Officer) error
}
