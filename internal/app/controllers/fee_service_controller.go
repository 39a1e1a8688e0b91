package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// FeeServiceController handles the fee service catalogue
type FeeServiceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFeeServiceController creates a FeeServiceController
func NewFeeServiceController(ctx *gin.Context, container *container.ServiceContainer) *FeeServiceController {
	return &FeeServiceController{
		Ctx:       ctx,
		Container: container,
	}
}

// FeeServiceRequest creates a fee service
type FeeServiceRequest struct {
	Name        string  `json:"name" binding:"required,max=100" example:"Phí quản lý"`
	Type        string  `json:"type" binding:"required" example:"Quản lý"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0" example:"7000"`
	Unit        string  `json:"unit" example:"m2"`
	Required    bool    `json:"required" example:"true"`
	Description string  `json:"description" example:"Thu hằng tháng theo diện tích"`
}

// UpdateFeeServiceRequest holds the editable fee service fields
type UpdateFeeServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Type        *string  `json:"type"`
	UnitPrice   *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	Unit        *string  `json:"unit"`
	Required    *bool    `json:"required"`
	Description *string  `json:"description"`
}

// HandleFeeServiceFunc dispatches fee service requests
func HandleFeeServiceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFeeServiceController(ctx, container)

		switch method {
		case "getFeeServices":
			controller.GetFeeServices()
		case "getFeeService":
			controller.GetFeeService()
		case "createFeeService":
			controller.CreateFeeService()
		case "updateFeeService":
			controller.UpdateFeeService()
		case "deleteFeeService":
			controller.DeleteFeeService()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *FeeServiceController) service() services.InterfaceFeeServiceService {
	return c.Container.GetService("fee_service").(services.InterfaceFeeServiceService)
}

// 1. GetFeeServices lists fee services
// @Summary      List fee services
// @Tags         FeeService
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        type query string false "Fee type"
// @Param        search query string false "Name"
// @Success      200  {object}  response.PageResponse
// @Router       /fee-services [get]
// @Security     BearerAuth
func (c *FeeServiceController) GetFeeServices() {
	page, err := c.service().GetFeeServices(bindPage(c.Ctx), c.Ctx.Query("type"), strings.TrimSpace(c.Ctx.Query("search")))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 2. GetFeeService returns one fee service
// @Summary      Get fee service
// @Tags         FeeService
// @Produce      json
// @Param        id path string true "Fee service ID"
// @Success      200  {object}  models.FeeService
// @Failure      404  {object}  ErrorResponse
// @Router       /fee-services/{id} [get]
// @Security     BearerAuth
func (c *FeeServiceController) GetFeeService() {
	feeService, err := c.service().GetFeeService(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, feeService)
}

// 3. CreateFeeService adds a fee service
// @Summary      Create fee service
// @Tags         FeeService
// @Accept       json
// @Produce      json
// @Param        request body FeeServiceRequest true "Fee service"
// @Success      201  {object}  models.FeeService
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /fee-services [post]
// @Security     BearerAuth
func (c *FeeServiceController) CreateFeeService() {
	var req FeeServiceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	feeService := &models.FeeService{
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		UnitPrice:   req.UnitPrice,
		Unit:        strings.TrimSpace(req.Unit),
		Required:    req.Required,
		Description: strings.TrimSpace(req.Description),
	}
	if err := c.service().CreateFeeService(feeService); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, feeService)
}

// 4. UpdateFeeService edits a fee service. Registered vehicles keep their copied price.
// @Summary      Update fee service
// @Tags         FeeService
// @Accept       json
// @Produce      json
// @Param        id path string true "Fee service ID"
// @Param        request body UpdateFeeServiceRequest true "Fields to change"
// @Success      200  {object}  models.FeeService
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /fee-services/{id} [put]
// @Security     BearerAuth
func (c *FeeServiceController) UpdateFeeService() {
	var req UpdateFeeServiceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		updates["type"] = strings.TrimSpace(*req.Type)
	}
	if req.UnitPrice != nil {
		updates["unit_price"] = *req.UnitPrice
	}
	if req.Unit != nil {
		updates["unit"] = strings.TrimSpace(*req.Unit)
	}
	if req.Required != nil {
		updates["required"] = *req.Required
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "no fields to update")
		return
	}

	feeService, err := c.service().UpdateFeeService(c.Ctx.Param("id"), updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, feeService)
}

// 5. DeleteFeeService removes an unreferenced fee service
// @Summary      Delete fee service
// @Tags         FeeService
// @Produce      json
// @Param        id path string true "Fee service ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /fee-services/{id} [delete]
// @Security     BearerAuth
func (c *FeeServiceController) DeleteFeeService() {
	if err := c.service().DeleteFeeService(c.Ctx.Param("id")); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
