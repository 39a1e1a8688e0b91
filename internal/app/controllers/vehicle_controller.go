package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// VehicleController handles parked vehicles
type VehicleController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewVehicleController creates a VehicleController
func NewVehicleController(ctx *gin.Context, container *container.ServiceContainer) *VehicleController {
	return &VehicleController{
		Ctx:       ctx,
		Container: container,
	}
}

// VehicleRequest registers a vehicle
type VehicleRequest struct {
	HouseholdID  string `json:"household_id" binding:"required" example:"HK7Q2M9A"`
	LicensePlate string `json:"license_plate" binding:"required,max=20" example:"29A-123.45"`
	Type         string `json:"type" binding:"required" example:"motorbike"`
	Brand        string `json:"brand" example:"Honda"`
}

// HandleVehicleFunc dispatches vehicle requests
func HandleVehicleFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewVehicleController(ctx, container)

		switch method {
		case "getVehicles":
			controller.GetVehicles()
		case "getVehicle":
			controller.GetVehicle()
		case "createVehicle":
			controller.CreateVehicle()
		case "deleteVehicle":
			controller.DeleteVehicle()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *VehicleController) service() services.InterfaceVehicleService {
	return c.Container.GetService("vehicle").(services.InterfaceVehicleService)
}

// 1. GetVehicles lists vehicles
// @Summary      List vehicles
// @Tags         Vehicle
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        household_id query string false "Household code"
// @Param        type query string false "motorbike or car"
// @Success      200  {object}  response.PageResponse
// @Router       /vehicles [get]
// @Security     BearerAuth
func (c *VehicleController) GetVehicles() {
	page, err := c.service().GetVehicles(bindPage(c.Ctx), c.Ctx.Query("household_id"), c.Ctx.Query("type"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 2. GetVehicle returns one vehicle
// @Summary      Get vehicle
// @Tags         Vehicle
// @Produce      json
// @Param        id path string true "Vehicle ID"
// @Success      200  {object}  models.Vehicle
// @Failure      404  {object}  ErrorResponse
// @Router       /vehicles/{id} [get]
// @Security     BearerAuth
func (c *VehicleController) GetVehicle() {
	vehicle, err := c.service().GetVehicle(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, vehicle)
}

// 3. CreateVehicle registers a vehicle at the current parking price
// @Summary      Register vehicle
// @Tags         Vehicle
// @Accept       json
// @Produce      json
// @Param        request body VehicleRequest true "Vehicle"
// @Success      201  {object}  models.Vehicle
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /vehicles [post]
// @Security     BearerAuth
func (c *VehicleController) CreateVehicle() {
	var req VehicleRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	vehicle, err := c.service().CreateVehicle(services.VehicleInput{
		HouseholdID:  req.HouseholdID,
		LicensePlate: req.LicensePlate,
		Type:         strings.ToLower(strings.TrimSpace(req.Type)),
		Brand:        strings.TrimSpace(req.Brand),
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, vehicle)
}

// 4. DeleteVehicle removes a vehicle
// @Summary      Delete vehicle
// @Tags         Vehicle
// @Produce      json
// @Param        id path string true "Vehicle ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /vehicles/{id} [delete]
// @Security     BearerAuth
func (c *VehicleController) DeleteVehicle() {
	if err := c.service().DeleteVehicle(c.Ctx.Param("id")); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
