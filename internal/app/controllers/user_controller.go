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

// InterfaceUserController handles residents
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	CreateUser()
	UpdateUser()
	DeleteUser()
}

// UserController handles residents
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController creates a UserController
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// UserRequest creates a resident
type UserRequest struct {
	FullName    string `json:"full_name" binding:"required,max=100" example:"Nguyễn Văn An"`
	DateOfBirth string `json:"date_of_birth" example:"1990-04-12"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female other" example:"male"`
	CitizenID   string `json:"citizen_id" binding:"required,max=20" example:"001090001234"`
	Phone       string `json:"phone" binding:"omitempty,max=20" example:"0912345678"`
	Email       string `json:"email" binding:"omitempty,email" example:"an.nguyen@example.com"`
	Occupation  string `json:"occupation" example:"Kỹ sư"`
}

// UpdateUserRequest holds the editable resident fields
type UpdateUserRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,max=100"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female other"`
	CitizenID   *string `json:"citizen_id" binding:"omitempty,max=20"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Occupation  *string `json:"occupation"`
}

// HandleUserFunc dispatches resident requests
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *UserController) service() services.InterfaceUserService {
	return c.Container.GetService("user").(services.InterfaceUserService)
}

// 1. GetUsers lists residents
// @Summary      List residents
// @Tags         User
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        search query string false "Name, citizen id or phone"
// @Success      200  {object}  response.PageResponse
// @Router       /users [get]
// @Security     BearerAuth
func (c *UserController) GetUsers() {
	page, err := c.service().GetUsers(bindPage(c.Ctx), strings.TrimSpace(c.Ctx.Query("search")))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 2. GetUser returns a resident with memberships
// @Summary      Get resident
// @Tags         User
// @Produce      json
// @Param        id path string true "Resident ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (c *UserController) GetUser() {
	user, err := c.service().GetUser(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, user)
}

// 3. CreateUser registers a resident
// @Summary      Create resident
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body UserRequest true "Resident"
// @Success      201  {object}  models.User
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users [post]
// @Security     BearerAuth
func (c *UserController) CreateUser() {
	var req UserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	user := &models.User{
		FullName:    strings.TrimSpace(req.FullName),
		DateOfBirth: dob,
		Gender:      req.Gender,
		CitizenID:   strings.TrimSpace(req.CitizenID),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Occupation:  strings.TrimSpace(req.Occupation),
	}
	if err := c.service().CreateUser(user); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, user)
}

// 4. UpdateUser edits a resident
// @Summary      Update resident
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path string true "Resident ID"
// @Param        request body UpdateUserRequest true "Fields to change"
// @Success      200  {object}  models.User
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users/{id} [put]
// @Security     BearerAuth
func (c *UserController) UpdateUser() {
	var req UpdateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	updates := map[string]interface{}{}
	setString := func(column string, value *string) {
		if value != nil {
			updates[column] = strings.TrimSpace(*value)
		}
	}
	setString("full_name", req.FullName)
	setString("gender", req.Gender)
	setString("citizen_id", req.CitizenID)
	setString("phone", req.Phone)
	setString("email", req.Email)
	setString("occupation", req.Occupation)
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			response.ParamError(c.Ctx, err.Error())
			return
		}
		updates["date_of_birth"] = dob
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "no fields to update")
		return
	}

	user, err := c.service().UpdateUser(c.Ctx.Param("id"), updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, user)
}

// 5. DeleteUser removes a resident, their memberships and their feedback
// @Summary      Delete resident
// @Tags         User
// @Produce      json
// @Param        id path string true "Resident ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (c *UserController) DeleteUser() {
	if err := c.service().DeleteUser(c.Ctx.Param("id")); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
