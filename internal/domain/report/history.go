package report

import (
	"fmt"
	"time"

	vo "civicwatch/internal/domain/report/valueobjects"
)

// StatusHistoryEntry is the immutable audit record written alongside every
// accepted mutation. Entries are append-only; nothing in the codebase updates
// or deletes them, and the guard triggers enforce the same at the storage
// level.
type StatusHistoryEntry struct {
	id         uint
	reportID   uint
	fromStatus vo.ReportStatus
	toStatus   vo.ReportStatus
	actorID    uint
	notes      string
	metadata   map[string]interface{}
	recordedAt time.Time
}

func NewStatusHistoryEntry(
	reportID uint,
	fromStatus vo.ReportStatus,
	toStatus vo.ReportStatus,
	actorID uint,
	notes string,
) (*StatusHistoryEntry, error) {
	if reportID == 0 {
		return nil, fmt.Errorf("report ID is required")
	}
	if !fromStatus.IsValid() {
		return nil, fmt.Errorf("invalid from status: %s", fromStatus)
	}
	if !toStatus.IsValid() {
		return nil, fmt.Errorf("invalid to status: %s", toStatus)
	}
	if actorID == 0 {
		return nil, fmt.Errorf("actor ID is required")
	}

	return &StatusHistoryEntry{
		reportID:   reportID,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		actorID:    actorID,
		notes:      notes,
		metadata:   make(map[string]interface{}),
		recordedAt: time.Now(),
	}, nil
}

func ReconstructStatusHistoryEntry(
	id uint,
	reportID uint,
	fromStatus vo.ReportStatus,
	toStatus vo.ReportStatus,
	actorID uint,
	notes string,
	metadata map[string]interface{},
	recordedAt time.Time,
) (*StatusHistoryEntry, error) {
	if id == 0 {
		return nil, fmt.Errorf("history entry ID cannot be zero")
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &StatusHistoryEntry{
		id:         id,
		reportID:   reportID,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		actorID:    actorID,
		notes:      notes,
		metadata:   metadata,
		recordedAt: recordedAt,
	}, nil
}

func (e *StatusHistoryEntry) ID() uint                      { return e.id }
func (e *StatusHistoryEntry) ReportID() uint                { return e.reportID }
func (e *StatusHistoryEntry) FromStatus() vo.ReportStatus   { return e.fromStatus }
func (e *StatusHistoryEntry) ToStatus() vo.ReportStatus     { return e.toStatus }
func (e *StatusHistoryEntry) ActorID() uint                 { return e.actorID }
func (e *StatusHistoryEntry) Notes() string                 { return e.notes }
func (e *StatusHistoryEntry) RecordedAt() time.Time         { return e.recordedAt }

func (e *StatusHistoryEntry) Metadata() map[string]interface{} {
	metadataCopy := make(map[string]interface{}, len(e.metadata))
	for k, v := range e.metadata {
		metadataCopy[k] = v
	}
	return metadataCopy
}

// AddMetadata attaches a key/value pair before the entry is persisted, e.g.
// the cross-department flag written by the KEEP reassignment strategy.
func (e *StatusHistoryEntry) AddMetadata(key string, value interface{}) error {
	if e.id != 0 {
		return fmt.Errorf("history entry is already persisted")
	}
	e.metadata[key] = value
	return nil
}

func (e *StatusHistoryEntry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("history entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("history entry ID cannot be zero")
	}
	e.id = id
	return nil
}
