package workflow

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"civicwatch/internal/application/workflow/usecases"
	"civicwatch/internal/shared/errors"
)

type CreateReportRequest struct {
	Title       string `json:"title" binding:"required" validate:"required,max=200"`
	Description string `json:"description" binding:"required" validate:"required"`
	Category    string `json:"category" binding:"required" validate:"required,max=50"`
	SubCategory string `json:"sub_category" validate:"omitempty,max=50"`
	Severity    string `json:"severity" binding:"required" validate:"required,oneof=low medium high critical"`
	ActorID     uint   `json:"actor_id" binding:"required" validate:"required"`
}

func (r CreateReportRequest) ToCommand() usecases.CreateReportCommand {
	return usecases.CreateReportCommand{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		SubCategory: r.SubCategory,
		Severity:    r.Severity,
		ActorID:     r.ActorID,
	}
}

type AssignDepartmentRequest struct {
	DepartmentID uint   `json:"department_id" binding:"required" validate:"required"`
	ActorID      uint   `json:"actor_id" binding:"required" validate:"required"`
	Notes        string `json:"notes"`
}

type AssignOfficerRequest struct {
	OfficerID uint   `json:"officer_id" binding:"required" validate:"required"`
	Priority  int    `json:"priority" validate:"omitempty,min=1,max=10"`
	ActorID   uint   `json:"actor_id" binding:"required" validate:"required"`
	Notes     string `json:"notes"`
}

type AutoAssignOfficerRequest struct {
	Strategy string `json:"strategy" validate:"omitempty,oneof=least_busy balanced round_robin"`
	Priority int    `json:"priority" validate:"omitempty,min=1,max=10"`
	ActorID  uint   `json:"actor_id" binding:"required" validate:"required"`
	Notes    string `json:"notes"`
}

type UpdateStatusRequest struct {
	TargetStatus string `json:"target_status" binding:"required" validate:"required"`
	ActorID      uint   `json:"actor_id" binding:"required" validate:"required"`
	Notes        string `json:"notes"`
}

type ChangeOfficerDepartmentRequest struct {
	NewDepartmentID uint   `json:"new_department_id" binding:"required" validate:"required"`
	Strategy        string `json:"strategy" binding:"required" validate:"required,oneof=keep reassign unassign"`
	ActorID         uint   `json:"actor_id" binding:"required" validate:"required"`
	Notes           string `json:"notes"`
}

type BulkUpdateStatusRequest struct {
	ReportIDs    []uint `json:"report_ids" binding:"required" validate:"required,min=1"`
	TargetStatus string `json:"target_status" binding:"required" validate:"required"`
	ActorID      uint   `json:"actor_id" binding:"required" validate:"required"`
	Notes        string `json:"notes"`
}

type BulkAssignDepartmentRequest struct {
	ReportIDs    []uint `json:"report_ids" binding:"required" validate:"required,min=1"`
	DepartmentID uint   `json:"department_id" binding:"required" validate:"required"`
	ActorID      uint   `json:"actor_id" binding:"required" validate:"required"`
	Notes        string `json:"notes"`
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewBadRequestError("invalid " + name + " parameter")
	}
	return uint(id), nil
}
