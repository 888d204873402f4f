package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ReportStatus
		to      ReportStatus
		allowed bool
	}{
		{name: "received to pending_classification", from: StatusReceived, to: StatusPendingClassification, allowed: true},
		{name: "received skips to classified", from: StatusReceived, to: StatusClassified, allowed: true},
		{name: "received skips to assigned_to_department", from: StatusReceived, to: StatusAssignedToDepartment, allowed: true},
		{name: "received cannot skip to officer", from: StatusReceived, to: StatusAssignedToOfficer, allowed: false},
		{name: "classified to department", from: StatusClassified, to: StatusAssignedToDepartment, allowed: true},
		{name: "classified cannot go back to received", from: StatusClassified, to: StatusReceived, allowed: false},
		{name: "department to officer", from: StatusAssignedToDepartment, to: StatusAssignedToOfficer, allowed: true},
		{name: "department can hold", from: StatusAssignedToDepartment, to: StatusOnHold, allowed: true},
		{name: "officer must acknowledge first", from: StatusAssignedToOfficer, to: StatusInProgress, allowed: false},
		{name: "officer to acknowledged", from: StatusAssignedToOfficer, to: StatusAcknowledged, allowed: true},
		{name: "assigned_to_officer cannot hold", from: StatusAssignedToOfficer, to: StatusOnHold, allowed: false},
		{name: "acknowledged to in_progress", from: StatusAcknowledged, to: StatusInProgress, allowed: true},
		{name: "acknowledged can hold", from: StatusAcknowledged, to: StatusOnHold, allowed: true},
		{name: "in_progress to verification", from: StatusInProgress, to: StatusPendingVerification, allowed: true},
		{name: "in_progress can hold", from: StatusInProgress, to: StatusOnHold, allowed: true},
		{name: "verification cannot hold", from: StatusPendingVerification, to: StatusOnHold, allowed: false},
		{name: "verification to resolved", from: StatusPendingVerification, to: StatusResolved, allowed: true},
		{name: "verification to rejected", from: StatusPendingVerification, to: StatusRejected, allowed: true},
		{name: "resolved is terminal", from: StatusResolved, to: StatusInProgress, allowed: false},
		{name: "rejected is terminal", from: StatusRejected, to: StatusReceived, allowed: false},
		{name: "hold resumes to department", from: StatusOnHold, to: StatusAssignedToDepartment, allowed: true},
		{name: "hold resumes to acknowledged", from: StatusOnHold, to: StatusAcknowledged, allowed: true},
		{name: "hold resumes to in_progress", from: StatusOnHold, to: StatusInProgress, allowed: true},
		{name: "hold cannot resolve directly", from: StatusOnHold, to: StatusResolved, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReportStatus_Rank(t *testing.T) {
	ordered := []ReportStatus{
		StatusReceived,
		StatusPendingClassification,
		StatusClassified,
		StatusAssignedToDepartment,
		StatusAssignedToOfficer,
		StatusAcknowledged,
		StatusInProgress,
		StatusPendingVerification,
	}

	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank(),
			"%s should rank above %s", ordered[i], ordered[i-1])
	}

	// Both terminal statuses share the final rank.
	assert.Equal(t, StatusResolved.Rank(), StatusRejected.Rank())
	assert.Greater(t, StatusResolved.Rank(), StatusPendingVerification.Rank())

	// on_hold carries no rank of its own.
	assert.Equal(t, 0, StatusOnHold.Rank())
}

func TestReportStatus_IsBackwardFrom(t *testing.T) {
	assert.True(t, StatusClassified.IsBackwardFrom(StatusInProgress))
	assert.False(t, StatusInProgress.IsBackwardFrom(StatusClassified))

	// on_hold transitions are never counted as backward in either direction.
	assert.False(t, StatusOnHold.IsBackwardFrom(StatusInProgress))
	assert.False(t, StatusAssignedToDepartment.IsBackwardFrom(StatusOnHold))

	// Equal ranks are not backward.
	assert.False(t, StatusResolved.IsBackwardFrom(StatusRejected))
}

func TestReportStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusResolved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusPendingVerification.IsTerminal())
	assert.False(t, StatusOnHold.IsTerminal())
}

func TestReportStatus_Requirements(t *testing.T) {
	assert.False(t, StatusClassified.RequiresDepartment())
	assert.True(t, StatusAssignedToDepartment.RequiresDepartment())
	assert.True(t, StatusInProgress.RequiresDepartment())
	assert.True(t, StatusOnHold.RequiresDepartment())

	assert.False(t, StatusAssignedToDepartment.RequiresTask())
	assert.True(t, StatusAssignedToOfficer.RequiresTask())
	assert.True(t, StatusResolved.RequiresTask())
	assert.False(t, StatusOnHold.RequiresTask())
}

func TestNewReportStatus(t *testing.T) {
	status, err := NewReportStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	_, err = NewReportStatus("escalated")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid report status")
}
