package usecases

import (
	"context"
	"time"

	"civicwatch/internal/domain/assignment"
	"civicwatch/internal/domain/department"
	"civicwatch/internal/domain/officer"
	"civicwatch/internal/domain/report"
	"civicwatch/internal/domain/task"
	"civicwatch/internal/shared/logger"
)

type mockReportRepository struct {
	SaveFunc        func(ctx context.Context, r *report.Report) error
	UpdateFunc      func(ctx context.Context, r *report.Report) error
	GetByIDFunc     func(ctx context.Context, reportID uint) (*report.Report, error)
	GetByIDsFunc    func(ctx context.Context, reportIDs []uint) ([]*report.Report, error)
	GetByNumberFunc func(ctx context.Context, number string) (*report.Report, error)
	ListFunc        func(ctx context.Context, filter report.Filter) ([]*report.Report, int64, error)
}

func (m *mockReportRepository) Save(ctx context.Context, r *report.Report) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return nil
}

func (m *mockReportRepository) Update(ctx context.Context, r *report.Report) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r)
	}
	return nil
}

func (m *mockReportRepository) GetByID(ctx context.Context, reportID uint) (*report.Report, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, reportID)
	}
	return nil, nil
}

func (m *mockReportRepository) GetByIDs(ctx context.Context, reportIDs []uint) ([]*report.Report, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, reportIDs)
	}
	return nil, nil
}

func (m *mockReportRepository) GetByNumber(ctx context.Context, number string) (*report.Report, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockReportRepository) List(ctx context.Context, filter report.Filter) ([]*report.Report, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockTaskRepository struct {
	SaveFunc               func(ctx context.Context, t *task.Task) error
	UpdateFunc             func(ctx context.Context, t *task.Task) error
	DeleteFunc             func(ctx context.Context, taskID uint) error
	GetByIDFunc            func(ctx context.Context, taskID uint) (*task.Task, error)
	GetByReportIDFunc      func(ctx context.Context, reportID uint) (*task.Task, error)
	GetActiveByOfficerFunc func(ctx context.Context, officerID uint) ([]*task.Task, error)
}

func (m *mockTaskRepository) Save(ctx context.Context, t *task.Task) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, taskID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, taskID)
	}
	return nil
}

func (m *mockTaskRepository) GetByID(ctx context.Context, taskID uint) (*task.Task, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *mockTaskRepository) GetByReportID(ctx context.Context, reportID uint) (*task.Task, error) {
	if m.GetByReportIDFunc != nil {
		return m.GetByReportIDFunc(ctx, reportID)
	}
	return nil, nil
}

func (m *mockTaskRepository) GetActiveByOfficer(ctx context.Context, officerID uint) ([]*task.Task, error) {
	if m.GetActiveByOfficerFunc != nil {
		return m.GetActiveByOfficerFunc(ctx, officerID)
	}
	return nil, nil
}

type mockOfficerRepository struct {
	GetByIDFunc                func(ctx context.Context, officerID uint) (*officer.Officer, error)
	ListActiveByDepartmentFunc func(ctx context.Context, departmentID uint) ([]*officer.Officer, error)
	UpdateDepartmentFunc       func(ctx context.Context, o *officer.Officer) error
}

func (m *mockOfficerRepository) GetByID(ctx context.Context, officerID uint) (*officer.Officer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, officerID)
	}
	return nil, nil
}

func (m *mockOfficerRepository) ListActiveByDepartment(ctx context.Context, departmentID uint) ([]*officer.Officer, error) {
	if m.ListActiveByDepartmentFunc != nil {
		return m.ListActiveByDepartmentFunc(ctx, departmentID)
	}
	return nil, nil
}

func (m *mockOfficerRepository) UpdateDepartment(ctx context.Context, o *officer.Officer) error {
	if m.UpdateDepartmentFunc != nil {
		return m.UpdateDepartmentFunc(ctx, o)
	}
	return nil
}

type mockDepartmentRepository struct {
	GetByIDFunc func(ctx context.Context, departmentID uint) (*department.Department, error)
	ExistsFunc  func(ctx context.Context, departmentID uint) (bool, error)
}

func (m *mockDepartmentRepository) GetByID(ctx context.Context, departmentID uint) (*department.Department, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, departmentID)
	}
	return department.ReconstructDepartment(departmentID, "Public Works", true, time.Now())
}

func (m *mockDepartmentRepository) Exists(ctx context.Context, departmentID uint) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, departmentID)
	}
	return true, nil
}

type mockHistoryRepository struct {
	AppendFunc           func(ctx context.Context, entry *report.StatusHistoryEntry) error
	ListByReportIDFunc   func(ctx context.Context, reportID uint) ([]*report.StatusHistoryEntry, error)
	CountByReportIDFunc  func(ctx context.Context, reportID uint) (int64, error)
	appended             []*report.StatusHistoryEntry
}

func (m *mockHistoryRepository) Append(ctx context.Context, entry *report.StatusHistoryEntry) error {
	m.appended = append(m.appended, entry)
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	return entry.SetID(uint(len(m.appended)))
}

func (m *mockHistoryRepository) ListByReportID(ctx context.Context, reportID uint) ([]*report.StatusHistoryEntry, error) {
	if m.ListByReportIDFunc != nil {
		return m.ListByReportIDFunc(ctx, reportID)
	}
	return m.appended, nil
}

func (m *mockHistoryRepository) CountByReportID(ctx context.Context, reportID uint) (int64, error) {
	if m.CountByReportIDFunc != nil {
		return m.CountByReportIDFunc(ctx, reportID)
	}
	return int64(len(m.appended)), nil
}

// mockTxManager runs the function directly; rollback behavior is exercised by
// the repository integration tests.
type mockTxManager struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockMetricsReader struct {
	WorkloadMetricsFunc func(ctx context.Context, officerIDs []uint, window time.Duration) (map[uint]assignment.WorkloadMetrics, error)
}

func (m *mockMetricsReader) WorkloadMetrics(ctx context.Context, officerIDs []uint, window time.Duration) (map[uint]assignment.WorkloadMetrics, error) {
	if m.WorkloadMetricsFunc != nil {
		return m.WorkloadMetricsFunc(ctx, officerIDs, window)
	}
	return map[uint]assignment.WorkloadMetrics{}, nil
}

type mockNumberGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockNumberGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "R-20250901-0001", nil
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	DebugwFunc func(msg string, keysAndValues ...interface{})
	InfowFunc  func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface {
	return m
}

func (m *mockLogger) Named(name string) logger.Interface {
	return m
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}
