package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/app/middleware"
	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// ReportUserController handles resident feedback
type ReportUserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReportUserController creates a ReportUserController
func NewReportUserController(ctx *gin.Context, container *container.ServiceContainer) *ReportUserController {
	return &ReportUserController{
		Ctx:       ctx,
		Container: container,
	}
}

// ReportRequest files feedback on behalf of a resident
type ReportRequest struct {
	UserID      string  `json:"user_id" binding:"required"`
	HouseholdID *string `json:"household_id" example:"HK7Q2M9A"`
	Title       string  `json:"title" binding:"required,max=200" example:"Thang máy tầng 12 hỏng"`
	Content     string  `json:"content" binding:"required" example:"Thang máy B dừng ở tầng 12 từ sáng nay"`
}

// ReportStatusRequest moves feedback through its workflow
type ReportStatusRequest struct {
	Status   string `json:"status" binding:"required,oneof=pending in_progress resolved" example:"in_progress"`
	Response string `json:"response" example:"Đã liên hệ đơn vị bảo trì"`
}

// HandleReportUserFunc dispatches feedback requests
func HandleReportUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReportUserController(ctx, container)

		switch method {
		case "getReports":
			controller.GetReports()
		case "getReport":
			controller.GetReport()
		case "createReport":
			controller.CreateReport()
		case "updateReportStatus":
			controller.UpdateReportStatus()
		case "deleteReport":
			controller.DeleteReport()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *ReportUserController) service() services.InterfaceReportUserService {
	return c.Container.GetService("report_user").(services.InterfaceReportUserService)
}

// 1. GetReports lists feedback, newest first
// @Summary      List feedback
// @Tags         Feedback
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        status query string false "pending, in_progress or resolved"
// @Param        user_id query string false "Resident ID"
// @Success      200  {object}  response.PageResponse
// @Router       /feedback [get]
// @Security     BearerAuth
func (c *ReportUserController) GetReports() {
	page, err := c.service().GetReports(bindPage(c.Ctx), c.Ctx.Query("status"), c.Ctx.Query("user_id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 2. GetReport returns one piece of feedback
// @Summary      Get feedback
// @Tags         Feedback
// @Produce      json
// @Param        id path string true "Feedback ID"
// @Success      200  {object}  models.ReportUser
// @Failure      404  {object}  ErrorResponse
// @Router       /feedback/{id} [get]
// @Security     BearerAuth
func (c *ReportUserController) GetReport() {
	report, err := c.service().GetReport(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, report)
}

// 3. CreateReport files pending feedback
// @Summary      Submit feedback
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Param        request body ReportRequest true "Feedback"
// @Success      201  {object}  models.ReportUser
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /feedback [post]
// @Security     BearerAuth
func (c *ReportUserController) CreateReport() {
	var req ReportRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	report, err := c.service().CreateReport(services.ReportInput{
		UserID:      req.UserID,
		HouseholdID: req.HouseholdID,
		Title:       strings.TrimSpace(req.Title),
		Content:     strings.TrimSpace(req.Content),
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, report)
}

// 4. UpdateReportStatus advances feedback and records the responding admin
// @Summary      Update feedback status
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Param        id path string true "Feedback ID"
// @Param        request body ReportStatusRequest true "Status"
// @Success      200  {object}  models.ReportUser
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /feedback/{id}/status [patch]
// @Security     BearerAuth
func (c *ReportUserController) UpdateReportStatus() {
	var req ReportStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	report, err := c.service().UpdateReportStatus(c.Ctx.Request.Context(), c.Ctx.Param("id"), services.ReportStatusInput{
		Status:      req.Status,
		Response:    strings.TrimSpace(req.Response),
		RespondedBy: middleware.CurrentUserID(c.Ctx),
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, report)
}

// 5. DeleteReport removes feedback
// @Summary      Delete feedback
// @Tags         Feedback
// @Produce      json
// @Param        id path string true "Feedback ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /feedback/{id} [delete]
// @Security     BearerAuth
func (c *ReportUserController) DeleteReport() {
	if err := c.service().DeleteReport(c.Ctx.Param("id")); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
