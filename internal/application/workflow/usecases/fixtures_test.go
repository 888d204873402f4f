package usecases

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"civicwatch/internal/domain/officer"
	"civicwatch/internal/domain/report"
	vo "civicwatch/internal/domain/report/valueobjects"
	"civicwatch/internal/domain/task"
	taskvo "civicwatch/internal/domain/task/valueobjects"
)

func makeReport(t *testing.T, id uint, status vo.ReportStatus, departmentID *uint) *report.Report {
	t.Helper()

	r, err := report.ReconstructReport(
		id,
		fmt.Sprintf("R-20250901-%04d", id),
		"Broken streetlight on Elm Street",
		"The streetlight at the corner of Elm and 5th has been out for a week.",
		"infrastructure",
		"street_lighting",
		vo.SeverityMedium,
		status,
		departmentID,
		nil,
		1,
		time.Now().Add(-24*time.Hour),
		time.Now().Add(-1*time.Hour),
	)
	require.NoError(t, err)
	return r
}

func makeHeldReport(t *testing.T, id uint, heldFrom vo.ReportStatus, departmentID *uint) *report.Report {
	t.Helper()

	r, err := report.ReconstructReport(
		id,
		fmt.Sprintf("R-20250901-%04d", id),
		"Broken streetlight on Elm Street",
		"The streetlight at the corner of Elm and 5th has been out for a week.",
		"infrastructure",
		"street_lighting",
		vo.SeverityMedium,
		vo.StatusOnHold,
		departmentID,
		&heldFrom,
		1,
		time.Now().Add(-24*time.Hour),
		time.Now().Add(-1*time.Hour),
	)
	require.NoError(t, err)
	return r
}

func makeTask(t *testing.T, id, reportID, officerID uint, status taskvo.TaskStatus) *task.Task {
	t.Helper()

	tk, err := task.ReconstructTask(
		id,
		reportID,
		officerID,
		status,
		5,
		time.Now().Add(-2*time.Hour),
		nil,
		nil,
		nil,
		1,
		time.Now().Add(-2*time.Hour),
		time.Now().Add(-2*time.Hour),
	)
	require.NoError(t, err)
	return tk
}

func makeOfficer(t *testing.T, id, departmentID uint, status officer.Status) *officer.Officer {
	t.Helper()

	o, err := officer.ReconstructOfficer(
		id,
		fmt.Sprintf("Officer %d", id),
		departmentID,
		status,
		time.Now().Add(-30*24*time.Hour),
		time.Now().Add(-1*time.Hour),
	)
	require.NoError(t, err)
	return o
}

func uintPtr(v uint) *uint {
	return &v
}
