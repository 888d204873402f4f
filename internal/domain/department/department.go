// Package department holds the read-only department oracle. Department
// management itself lives outside the workflow core.
package department

import (
	"context"
	"fmt"
	"time"
)

type Department struct {
	id        uint
	name      string
	active    bool
	createdAt time.Time
}

func ReconstructDepartment(id uint, name string, active bool, createdAt time.Time) (*Department, error) {
	if id == 0 {
		return nil, fmt.Errorf("department ID cannot be zero")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("department name is required")
	}

	return &Department{
		id:        id,
		name:      name,
		active:    active,
		createdAt: createdAt,
	}, nil
}

func (d *Department) ID() uint             { return d.id }
func (d *Department) Name() string         { return d.name }
func (d *Department) IsActive() bool       { return d.active }
func (d *Department) CreatedAt() time.Time { return d.createdAt }

type Repository interface {
	GetByID(ctx context.Context, departmentID uint) (*Department, error)
	Exists(ctx context.Context, departmentID uint) (bool, error)
}
