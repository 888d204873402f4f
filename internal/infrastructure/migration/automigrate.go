package migration

import (
	"civicwatch/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.DepartmentModel{},
		&models.OfficerModel{},
		&models.ReportModel{},
		&models.TaskModel{},
		&models.StatusHistoryModel{},
	}
}
