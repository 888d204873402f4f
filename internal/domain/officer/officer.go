// Package officer holds the read model for field officers. The core treats
// the officer store as a lookup oracle; the only write it ever performs is the
// department move executed by the audited officer-department change.
package officer

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusSuspended || s == StatusInactive
}

type Officer struct {
	id           uint
	name         string
	departmentID uint
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

func ReconstructOfficer(
	id uint,
	name string,
	departmentID uint,
	status Status,
	createdAt, updatedAt time.Time,
) (*Officer, error) {
	if id == 0 {
		return nil, fmt.Errorf("officer ID cannot be zero")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("officer name is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid officer status: %s", status)
	}

	return &Officer{
		id:           id,
		name:         name,
		departmentID: departmentID,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (o *Officer) ID() uint            { return o.id }
func (o *Officer) Name() string        { return o.name }
func (o *Officer) DepartmentID() uint  { return o.departmentID }
func (o *Officer) Status() Status      { return o.status }
func (o *Officer) CreatedAt() time.Time { return o.createdAt }
func (o *Officer) UpdatedAt() time.Time { return o.updatedAt }

func (o *Officer) IsActive() bool {
	return o.status == StatusActive
}

// MoveToDepartment changes the officer's department membership. What happens
// to their open tasks is decided by the caller's reassignment strategy.
func (o *Officer) MoveToDepartment(departmentID uint) error {
	if departmentID == 0 {
		return fmt.Errorf("department ID cannot be zero")
	}
	if o.departmentID == departmentID {
		return fmt.Errorf("officer is already in department %d", departmentID)
	}
	o.departmentID = departmentID
	o.updatedAt = time.Now()
	return nil
}
