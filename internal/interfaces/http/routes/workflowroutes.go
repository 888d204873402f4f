package routes

import (
	"github.com/gin-gonic/gin"

	workflowhandlers "civicwatch/internal/interfaces/http/handlers/workflow"
)

type WorkflowRouteConfig struct {
	ReportHandler  *workflowhandlers.ReportHandler
	OfficerHandler *workflowhandlers.OfficerHandler
}

func SetupWorkflowRoutes(engine *gin.Engine, config *WorkflowRouteConfig) {
	reports := engine.Group("/reports")
	{
		// Register specific paths BEFORE parameterized paths to avoid route
		// conflicts.
		reports.POST("", config.ReportHandler.CreateReport)
		reports.GET("", config.ReportHandler.ListReports)

		reports.POST("/bulk/status", config.ReportHandler.BulkUpdateStatus)
		reports.POST("/bulk/department", config.ReportHandler.BulkAssignDepartment)

		reports.POST("/:id/department", config.ReportHandler.AssignDepartment)
		reports.POST("/:id/officer", config.ReportHandler.AssignOfficer)
		reports.POST("/:id/officer/auto", config.ReportHandler.AutoAssignOfficer)
		reports.PATCH("/:id/status", config.ReportHandler.UpdateStatus)

		reports.GET("/:id", config.ReportHandler.GetReport)
	}

	officers := engine.Group("/officers")
	{
		officers.POST("/:id/department", config.OfficerHandler.ChangeDepartment)
	}
}
