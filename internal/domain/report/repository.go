package report

import (
	"context"

	vo "civicwatch/internal/domain/report/valueobjects"
)

type Repository interface {
	Save(ctx context.Context, r *Report) error
	// Update persists the aggregate with an optimistic version check; a stale
	// version yields a ConcurrentModification error.
	Update(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, reportID uint) (*Report, error)
	GetByIDs(ctx context.Context, reportIDs []uint) ([]*Report, error)
	GetByNumber(ctx context.Context, number string) (*Report, error)
	List(ctx context.Context, filter Filter) ([]*Report, int64, error)
}

type Filter struct {
	Status       *vo.ReportStatus
	Severity     *vo.Severity
	DepartmentID *uint
	Category     *string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

// HistoryRepository is the append-only audit sink. There is deliberately no
// update or delete; Append must run inside the same transaction as the state
// change it records.
type HistoryRepository interface {
	Append(ctx context.Context, entry *StatusHistoryEntry) error
	ListByReportID(ctx context.Context, reportID uint) ([]*StatusHistoryEntry, error)
	CountByReportID(ctx context.Context, reportID uint) (int64, error)
}
