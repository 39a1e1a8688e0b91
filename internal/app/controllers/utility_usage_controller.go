package controllers

import (
	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// UtilityUsageController handles monthly meter readings
type UtilityUsageController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUtilityUsageController creates a UtilityUsageController
func NewUtilityUsageController(ctx *gin.Context, container *container.ServiceContainer) *UtilityUsageController {
	return &UtilityUsageController{
		Ctx:       ctx,
		Container: container,
	}
}

// UtilityUsageRequest records one month of readings
type UtilityUsageRequest struct {
	HouseholdID string  `json:"household_id" binding:"required" example:"HK7Q2M9A"`
	Month       string  `json:"month" example:"2025-03"`
	Electricity float64 `json:"electricity" binding:"gte=0" example:"120.5"`
	Water       float64 `json:"water" binding:"gte=0" example:"10.3"`
	Internet    bool    `json:"internet" example:"true"`
}

// UtilityPaymentRequest selects the component to mark paid
type UtilityPaymentRequest struct {
	Utility string `json:"utility" binding:"required,oneof=electricity water internet all" example:"all"`
}

// HandleUtilityUsageFunc dispatches utility usage requests
func HandleUtilityUsageFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUtilityUsageController(ctx, container)

		switch method {
		case "getUtilityUsages":
			controller.GetUtilityUsages()
		case "getUtilityUsage":
			controller.GetUtilityUsage()
		case "createUtilityUsage":
			controller.CreateUtilityUsage()
		case "payUtility":
			controller.PayUtility()
		case "deleteUtilityUsage":
			controller.DeleteUtilityUsage()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *UtilityUsageController) service() services.InterfaceUtilityUsageService {
	return c.Container.GetService("utility_usage").(services.InterfaceUtilityUsageService)
}

// 1. GetUtilityUsages lists readings
// @Summary      List utility usage
// @Tags         UtilityUsage
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        household_id query string false "Household code"
// @Param        month query string false "YYYY-MM"
// @Param        is_paid query bool false "Fully paid"
// @Success      200  {object}  response.PageResponse
// @Router       /utility-usages [get]
// @Security     BearerAuth
func (c *UtilityUsageController) GetUtilityUsages() {
	page, err := c.service().GetUtilityUsages(bindPage(c.Ctx), services.UtilityUsageFilter{
		HouseholdID: c.Ctx.Query("household_id"),
		Month:       c.Ctx.Query("month"),
		IsPaid:      optionalBool(c.Ctx, "is_paid"),
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 2. GetUtilityUsage returns one reading
// @Summary      Get utility usage
// @Tags         UtilityUsage
// @Produce      json
// @Param        id path string true "Usage ID"
// @Success      200  {object}  models.UtilityUsage
// @Failure      404  {object}  ErrorResponse
// @Router       /utility-usages/{id} [get]
// @Security     BearerAuth
func (c *UtilityUsageController) GetUtilityUsage() {
	usage, err := c.service().GetUtilityUsage(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, usage)
}

// 3. CreateUtilityUsage prices and stores a month of readings
// @Summary      Record utility usage
// @Tags         UtilityUsage
// @Accept       json
// @Produce      json
// @Param        request body UtilityUsageRequest true "Readings"
// @Success      201  {object}  models.UtilityUsage
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /utility-usages [post]
// @Security     BearerAuth
func (c *UtilityUsageController) CreateUtilityUsage() {
	var req UtilityUsageRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	usage, err := c.service().CreateUtilityUsage(services.UtilityUsageInput{
		HouseholdID: req.HouseholdID,
		Month:       req.Month,
		Electricity: req.Electricity,
		Water:       req.Water,
		Internet:    req.Internet,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, usage)
}

// 4. PayUtility marks a component (or all of them) paid
// @Summary      Record utility payment
// @Tags         UtilityUsage
// @Accept       json
// @Produce      json
// @Param        id path string true "Usage ID"
// @Param        request body UtilityPaymentRequest true "Component"
// @Success      200  {object}  models.UtilityUsage
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /utility-usages/{id}/payment [patch]
// @Security     BearerAuth
func (c *UtilityUsageController) PayUtility() {
	var req UtilityPaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	usage, err := c.service().PayUtility(c.Ctx.Param("id"), req.Utility)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, usage)
}

// 5. DeleteUtilityUsage removes a reading
// @Summary      Delete utility usage
// @Tags         UtilityUsage
// @Produce      json
// @Param        id path string true "Usage ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /utility-usages/{id} [delete]
// @Security     BearerAuth
func (c *UtilityUsageController) DeleteUtilityUsage() {
	if err := c.service().DeleteUtilityUsage(c.Ctx.Param("id")); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
