package models

type TaskModel struct {
	ID             uint   `gorm:"primaryKey"`
	ReportID       uint   `gorm:"uniqueIndex;not null"`
	AssignedTo     uint   `gorm:"not null;index"`
	Status         string `gorm:"size:30;not null;index"`
	Priority       int    `gorm:"not null;default:5"`
	AssignedAt     int64  `gorm:"not null"`
	AcknowledgedAt *int64
	StartedAt      *int64
	ResolvedAt     *int64
	Version        int   `gorm:"not null;default:1"`
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (TaskModel) TableName() string {
	return "tasks"
}
