package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// InterfaceHouseholdController handles households and their members
type InterfaceHouseholdController interface {
	GetHouseholds()
	GetHousehold()
	CreateHousehold()
	UpdateHousehold()
	DeleteHousehold()
	GetMembers()
	AddMember()
	RemoveMember()
}

// HouseholdController handles households and their members
type HouseholdController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHouseholdController creates a HouseholdController
func NewHouseholdController(ctx *gin.Context, container *container.ServiceContainer) *HouseholdController {
	return &HouseholdController{
		Ctx:       ctx,
		Container: container,
	}
}

// HouseholdRequest creates a household; the code is generated
type HouseholdRequest struct {
	Area float64 `json:"area" binding:"required,gt=0" example:"72.5"`
	Note string  `json:"note" example:"Tầng 12, căn góc"`
}

// UpdateHouseholdRequest holds the editable household fields
type UpdateHouseholdRequest struct {
	Area     *float64 `json:"area" binding:"omitempty,gt=0" example:"80"`
	Note     *string  `json:"note" example:"Đã sửa chữa"`
	IsActive *bool    `json:"is_active" example:"true"`
}

// MemberRequest adds a resident to a household
type MemberRequest struct {
	UserID       string `json:"user_id" binding:"required" example:"6f1c1c9e-8a4e-4c1f-9a53-0c7d2b7f1e10"`
	RoleInFamily string `json:"role_in_family" example:"Con"`
	IsOwner      bool   `json:"is_owner" example:"false"`
	JoinDate     string `json:"join_date" example:"2024-05-01"`
}

// HandleHouseholdFunc dispatches household requests
func HandleHouseholdFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHouseholdController(ctx, container)

		switch method {
		case "getHouseholds":
			controller.GetHouseholds()
		case "getHousehold":
			controller.GetHousehold()
		case "createHousehold":
			controller.CreateHousehold()
		case "updateHousehold":
			controller.UpdateHousehold()
		case "deleteHousehold":
			controller.DeleteHousehold()
		case "getMembers":
			controller.GetMembers()
		case "addMember":
			controller.AddMember()
		case "removeMember":
			controller.RemoveMember()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *HouseholdController) service() services.InterfaceHouseholdService {
	return c.Container.GetService("household").(services.InterfaceHouseholdService)
}

// 1. GetHouseholds lists households
// @Summary      List households
// @Tags         Household
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        is_active query bool false "Only active or inactive households"
// @Param        search query string false "Code or note"
// @Success      200  {object}  response.PageResponse
// @Router       /households [get]
// @Security     BearerAuth
func (c *HouseholdController) GetHouseholds() {
	page, err := c.service().GetHouseholds(bindPage(c.Ctx), optionalBool(c.Ctx, "is_active"), strings.TrimSpace(c.Ctx.Query("search")))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 2. GetHousehold returns a household with its members
// @Summary      Get household
// @Tags         Household
// @Produce      json
// @Param        id path string true "Household code"
// @Success      200  {object}  models.Household
// @Failure      404  {object}  ErrorResponse
// @Router       /households/{id} [get]
// @Security     BearerAuth
func (c *HouseholdController) GetHousehold() {
	household, err := c.service().GetHousehold(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, household)
}

// 3. CreateHousehold creates an inactive household
// @Summary      Create household
// @Tags         Household
// @Accept       json
// @Produce      json
// @Param        request body HouseholdRequest true "Household"
// @Success      201  {object}  models.Household
// @Failure      400  {object}  ErrorResponse
// @Router       /households [post]
// @Security     BearerAuth
func (c *HouseholdController) CreateHousehold() {
	var req HouseholdRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	household, err := c.service().CreateHousehold(services.HouseholdInput{Area: req.Area, Note: strings.TrimSpace(req.Note)})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, household)
}

// 4. UpdateHousehold edits area, note or the active flag
// @Summary      Update household
// @Tags         Household
// @Accept       json
// @Produce      json
// @Param        id path string true "Household code"
// @Param        request body UpdateHouseholdRequest true "Fields to change"
// @Success      200  {object}  models.Household
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /households/{id} [put]
// @Security     BearerAuth
func (c *HouseholdController) UpdateHousehold() {
	var req UpdateHouseholdRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Area != nil {
		updates["area"] = *req.Area
	}
	if req.Note != nil {
		updates["note"] = strings.TrimSpace(*req.Note)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "no fields to update")
		return
	}

	household, err := c.service().UpdateHousehold(c.Ctx.Param("id"), updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, household)
}

// 5. DeleteHousehold removes a household without members
// @Summary      Delete household
// @Tags         Household
// @Produce      json
// @Param        id path string true "Household code"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /households/{id} [delete]
// @Security     BearerAuth
func (c *HouseholdController) DeleteHousehold() {
	if err := c.service().DeleteHousehold(c.Ctx.Param("id")); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// 6. GetMembers lists the residents of a household
// @Summary      List household members
// @Tags         Household
// @Produce      json
// @Param        id path string true "Household code"
// @Success      200  {array}   models.UserHousehold
// @Failure      404  {object}  ErrorResponse
// @Router       /households/{id}/members [get]
// @Security     BearerAuth
func (c *HouseholdController) GetMembers() {
	members, err := c.service().GetMembers(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, members)
}

// 7. AddMember adds a resident; adding the owner activates the household
// @Summary      Add household member
// @Tags         Household
// @Accept       json
// @Produce      json
// @Param        id path string true "Household code"
// @Param        request body MemberRequest true "Membership"
// @Success      201  {object}  models.UserHousehold
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /households/{id}/members [post]
// @Security     BearerAuth
func (c *HouseholdController) AddMember() {
	var req MemberRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}
	joinDate, err := parseDate(req.JoinDate)
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	member, err := c.service().AddMember(c.Ctx.Param("id"), services.MemberInput{
		UserID:       req.UserID,
		RoleInFamily: strings.TrimSpace(req.RoleInFamily),
		IsOwner:      req.IsOwner,
		JoinDate:     joinDate,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, member)
}

// 8. RemoveMember removes a resident; removing the owner deactivates the household
// @Summary      Remove household member
// @Tags         Household
// @Produce      json
// @Param        id path string true "Household code"
// @Param        user_id path string true "Resident ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /households/{id}/members/{user_id} [delete]
// @Security     BearerAuth
func (c *HouseholdController) RemoveMember() {
	if err := c.service().RemoveMember(c.Ctx.Param("id"), c.Ctx.Param("user_id")); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
