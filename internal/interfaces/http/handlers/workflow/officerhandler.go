package workflow

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicwatch/internal/application/workflow/usecases"
	"civicwatch/internal/shared/logger"
	"civicwatch/internal/shared/utils"
)

type OfficerHandler struct {
	changeDepartmentUC usecases.ChangeOfficerDepartmentExecutor
	logger             logger.Interface
}

func NewOfficerHandler(changeDepartmentUC usecases.ChangeOfficerDepartmentExecutor) *OfficerHandler {
	return &OfficerHandler{
		changeDepartmentUC: changeDepartmentUC,
		logger:             logger.NewLogger(),
	}
}

// ChangeDepartment handles POST /officers/:id/department
func (h *OfficerHandler) ChangeDepartment(c *gin.Context) {
	officerID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeOfficerDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for officer department change", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.changeDepartmentUC.Execute(c.Request.Context(), usecases.ChangeOfficerDepartmentCommand{
		OfficerID:       officerID,
		NewDepartmentID: req.NewDepartmentID,
		Strategy:        usecases.ReassignmentStrategy(req.Strategy),
		ActorID:         req.ActorID,
		Notes:           req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Officer department changed successfully", result)
}
