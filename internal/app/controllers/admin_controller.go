package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// InterfaceAdminController manages staff accounts
type InterfaceAdminController interface {
	GetAdmins()
	GetAdmin()
	UpdateAdmin()
	DeleteAdmin()
}

// AdminController manages staff accounts
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController creates an AdminController
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateAdminRequest holds the editable account fields
type UpdateAdminRequest struct {
	Email    *string `json:"email" binding:"omitempty,email" example:"admin@bluemoon.vn"`
	FullName *string `json:"full_name" example:"Trần Văn Quản Trị"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin leader accountant" example:"leader"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive" example:"active"`
	Password *string `json:"password" binding:"omitempty,min=6" example:"NewPassword@123"`
}

// HandleAdminFunc dispatches staff account requests
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "getAdmins":
			controller.GetAdmins()
		case "getAdmin":
			controller.GetAdmin()
		case "updateAdmin":
			controller.UpdateAdmin()
		case "deleteAdmin":
			controller.DeleteAdmin()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *AdminController) service() services.InterfaceAdminService {
	return c.Container.GetService("admin").(services.InterfaceAdminService)
}

// 1. GetAdmins lists staff accounts
// @Summary      List staff accounts
// @Tags         Admin
// @Produce      json
// @Param        page query int false "Page, default 1"
// @Param        limit query int false "Page size, default 10"
// @Param        search query string false "Username, email or name"
// @Param        role query string false "admin, leader or accountant"
// @Success      200  {object}  response.PageResponse
// @Router       /admins [get]
// @Security     BearerAuth
func (c *AdminController) GetAdmins() {
	page, err := c.service().GetAllAdmins(bindPage(c.Ctx), strings.TrimSpace(c.Ctx.Query("search")), c.Ctx.Query("role"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 2. GetAdmin returns one staff account
// @Summary      Get staff account
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Admin ID"
// @Success      200  {object}  models.Admin
// @Failure      404  {object}  ErrorResponse
// @Router       /admins/{id} [get]
// @Security     BearerAuth
func (c *AdminController) GetAdmin() {
	admin, err := c.service().GetAdminByID(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, admin)
}

// 3. UpdateAdmin edits a staff account
// @Summary      Update staff account
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Admin ID"
// @Param        request body UpdateAdminRequest true "Fields to change"
// @Success      200  {object}  models.Admin
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admins/{id} [put]
// @Security     BearerAuth
func (c *AdminController) UpdateAdmin() {
	var req UpdateAdminRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = strings.TrimSpace(*req.Email)
	}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "no fields to update")
		return
	}

	admin, err := c.service().UpdateAdmin(c.Ctx.Param("id"), updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, admin)
}

// 4. DeleteAdmin removes a staff account; the last admin cannot be removed
// @Summary      Delete staff account
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Admin ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admins/{id} [delete]
// @Security     BearerAuth
func (c *AdminController) DeleteAdmin() {
	if err := c.service().DeleteAdmin(c.Ctx.Param("id")); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
