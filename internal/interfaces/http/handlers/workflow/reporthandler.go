package workflow

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"civicwatch/internal/application/workflow/usecases"
	"civicwatch/internal/shared/logger"
	"civicwatch/internal/shared/utils"
)

type ReportHandler struct {
	createReportUC      usecases.CreateReportExecutor
	getReportUC         usecases.GetReportExecutor
	listReportsUC       usecases.ListReportsExecutor
	assignDepartmentUC  usecases.AssignDepartmentExecutor
	assignOfficerUC     usecases.AssignOfficerExecutor
	autoAssignOfficerUC usecases.AutoAssignOfficerExecutor
	updateStatusUC      usecases.UpdateStatusExecutor
	bulkApplyUC         usecases.BulkApplyExecutor
	logger              logger.Interface
}

func NewReportHandler(
	createReportUC usecases.CreateReportExecutor,
	getReportUC usecases.GetReportExecutor,
	listReportsUC usecases.ListReportsExecutor,
	assignDepartmentUC usecases.AssignDepartmentExecutor,
	assignOfficerUC usecases.AssignOfficerExecutor,
	autoAssignOfficerUC usecases.AutoAssignOfficerExecutor,
	updateStatusUC usecases.UpdateStatusExecutor,
	bulkApplyUC usecases.BulkApplyExecutor,
) *ReportHandler {
	return &ReportHandler{
		createReportUC:      createReportUC,
		getReportUC:         getReportUC,
		listReportsUC:       listReportsUC,
		assignDepartmentUC:  assignDepartmentUC,
		assignOfficerUC:     assignOfficerUC,
		autoAssignOfficerUC: autoAssignOfficerUC,
		updateStatusUC:      updateStatusUC,
		bulkApplyUC:         bulkApplyUC,
		logger:              logger.NewLogger(),
	}
}

// CreateReport handles POST /reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create report", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createReportUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Report created successfully")
}

// GetReport handles GET /reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetReportQuery{
		ReportID:       reportID,
		IncludeHistory: c.Query("include_history") == "true",
	}

	result, err := h.getReportUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListReports handles GET /reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	query := usecases.ListReportsQuery{
		Status:    c.Query("status"),
		Severity:  c.Query("severity"),
		Category:  c.Query("category"),
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("department_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			deptID := uint(id)
			query.DepartmentID = &deptID
		}
	}

	result, err := h.listReportsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Reports, result.Total, result.Page, result.PageSize)
}

// AssignDepartment handles POST /reports/:id/department
func (h *ReportHandler) AssignDepartment(c *gin.Context) {
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.assignDepartmentUC.Execute(c.Request.Context(), usecases.AssignDepartmentCommand{
		ReportID:     reportID,
		DepartmentID: req.DepartmentID,
		ActorID:      req.ActorID,
		Notes:        req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Department assigned successfully", result)
}

// AssignOfficer handles POST /reports/:id/officer
func (h *ReportHandler) AssignOfficer(c *gin.Context) {
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.assignOfficerUC.Execute(c.Request.Context(), usecases.AssignOfficerCommand{
		ReportID:  reportID,
		OfficerID: req.OfficerID,
		Priority:  req.Priority,
		ActorID:   req.ActorID,
		Notes:     req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Officer assigned successfully", result)
}

// AutoAssignOfficer handles POST /reports/:id/officer/auto
func (h *ReportHandler) AutoAssignOfficer(c *gin.Context) {
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AutoAssignOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.autoAssignOfficerUC.Execute(c.Request.Context(), usecases.AutoAssignOfficerCommand{
		ReportID: reportID,
		Strategy: req.Strategy,
		Priority: req.Priority,
		ActorID:  req.ActorID,
		Notes:    req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Officer auto-assigned successfully", result)
}

// UpdateStatus handles PATCH /reports/:id/status
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateStatusUC.Execute(c.Request.Context(), usecases.UpdateStatusCommand{
		ReportID:     reportID,
		TargetStatus: req.TargetStatus,
		ActorID:      req.ActorID,
		Notes:        req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report status updated successfully", result)
}

// BulkUpdateStatus handles POST /reports/bulk/status
func (h *ReportHandler) BulkUpdateStatus(c *gin.Context) {
	var req BulkUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.bulkApplyUC.ExecuteUpdateStatus(c.Request.Context(), usecases.BulkUpdateStatusCommand{
		ReportIDs:    req.ReportIDs,
		TargetStatus: req.TargetStatus,
		ActorID:      req.ActorID,
		Notes:        req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bulk status update completed", result)
}

// BulkAssignDepartment handles POST /reports/bulk/department
func (h *ReportHandler) BulkAssignDepartment(c *gin.Context) {
	var req BulkAssignDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.bulkApplyUC.ExecuteAssignDepartment(c.Request.Context(), usecases.BulkAssignDepartmentCommand{
		ReportIDs:    req.ReportIDs,
		DepartmentID: req.DepartmentID,
		ActorID:      req.ActorID,
		Notes:        req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bulk department assignment completed", result)
}
