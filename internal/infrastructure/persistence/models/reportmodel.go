package models

type ReportModel struct {
	ID           uint    `gorm:"primaryKey"`
	Number       string  `gorm:"uniqueIndex;size:50;not null"`
	Title        string  `gorm:"size:200;not null"`
	Description  string  `gorm:"type:text;not null"`
	Category     string  `gorm:"size:50;not null;index"`
	SubCategory  string  `gorm:"size:50"`
	Severity     string  `gorm:"size:20;not null;index"`
	Status       string  `gorm:"size:30;not null;index"`
	DepartmentID *uint   `gorm:"index"`
	HeldFrom     *string `gorm:"size:30"`
	Version      int     `gorm:"not null;default:1"`
	CreatedAt    int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64   `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations. Referential and
	// status invariants are re-enforced by the guard constraints/triggers in
	// the migration scripts.
}

func (ReportModel) TableName() string {
	return "reports"
}
