package models

import "gorm.io/datatypes"

type StatusHistoryModel struct {
	ID         uint           `gorm:"primaryKey"`
	ReportID   uint           `gorm:"not null;index"`
	FromStatus string         `gorm:"size:30;not null"`
	ToStatus   string         `gorm:"size:30;not null"`
	ActorID    uint           `gorm:"not null;index"`
	Notes      string         `gorm:"type:text"`
	Metadata   datatypes.JSON `gorm:"type:json"`
	RecordedAt int64          `gorm:"not null;index"`
}

func (StatusHistoryModel) TableName() string {
	return "report_status_history"
}
