package controllers

import (
	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// FeeHouseholdController handles monthly household charges
type FeeHouseholdController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFeeHouseholdController creates a FeeHouseholdController
func NewFeeHouseholdController(ctx *gin.Context, container *container.ServiceContainer) *FeeHouseholdController {
	return &FeeHouseholdController{
		Ctx:       ctx,
		Container: container,
	}
}

// AccrueRequest selects the month to accrue; empty means the current month
type AccrueRequest struct {
	Month string `json:"month" example:"2025-03"`
}

// FeePaymentRequest marks a charge paid or unpaid
type FeePaymentRequest struct {
	IsPaid *bool `json:"is_paid" binding:"required" example:"true"`
}

// HandleFeeHouseholdFunc dispatches charge requests
func HandleFeeHouseholdFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFeeHouseholdController(ctx, container)

		switch method {
		case "getFeeHouseholds":
			controller.GetFeeHouseholds()
		case "getFeeHousehold":
			controller.GetFeeHousehold()
		case "accrue":
			controller.Accrue()
		case "setPaid":
			controller.SetPaid()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *FeeHouseholdController) service() services.InterfaceFeeHouseholdService {
	return c.Container.GetService("fee_household").(services.InterfaceFeeHouseholdService)
}

// 1. GetFeeHouseholds lists charges
// @Summary      List household charges
// @Tags         FeeHousehold
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        household_id query string false "Household code"
// @Param        month query string false "YYYY-MM"
// @Param        is_paid query bool false "Paid flag"
// @Success      200  {object}  response.PageResponse
// @Router       /fee-households [get]
// @Security     BearerAuth
func (c *FeeHouseholdController) GetFeeHouseholds() {
	page, err := c.service().GetFeeHouseholds(bindPage(c.Ctx), services.FeeHouseholdFilter{
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

// 2. GetFeeHousehold returns one charge
// @Summary      Get household charge
// @Tags         FeeHousehold
// @Produce      json
// @Param        id path string true "Charge ID"
// @Success      200  {object}  models.FeeHousehold
// @Failure      404  {object}  ErrorResponse
// @Router       /fee-households/{id} [get]
// @Security     BearerAuth
func (c *FeeHouseholdController) GetFeeHousehold() {
	fee, err := c.service().GetFeeHousehold(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, fee)
}

// 3. Accrue creates the month's management and service charges for active households
// @Summary      Accrue monthly fees
// @Tags         FeeHousehold
// @Accept       json
// @Produce      json
// @Param        request body AccrueRequest false "Month"
// @Success      200  {object}  services.AccrualResult
// @Failure      400  {object}  ErrorResponse
// @Router       /fee-households/accrue [post]
// @Security     BearerAuth
func (c *FeeHouseholdController) Accrue() {
	var req AccrueRequest
	if c.Ctx.Request.ContentLength > 0 {
		if err := c.Ctx.ShouldBindJSON(&req); err != nil {
			bindError(c.Ctx, err)
			return
		}
	}
	if req.Month == "" {
		req.Month = c.Ctx.Query("month")
	}

	result, err := c.service().AccrueMonthlyFees(c.Ctx.Request.Context(), req.Month)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// 4. SetPaid marks a charge paid or unpaid
// @Summary      Record charge payment
// @Tags         FeeHousehold
// @Accept       json
// @Produce      json
// @Param        id path string true "Charge ID"
// @Param        request body FeePaymentRequest true "Paid flag"
// @Success      200  {object}  models.FeeHousehold
// @Failure      404  {object}  ErrorResponse
// @Router       /fee-households/{id}/payment [patch]
// @Security     BearerAuth
func (c *FeeHouseholdController) SetPaid() {
	var req FeePaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	fee, err := c.service().SetPaid(c.Ctx.Param("id"), *req.IsPaid)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, fee)
}
