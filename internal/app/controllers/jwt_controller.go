package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/app/middleware"
	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/v1/auth"
)

// InterfaceJWTController handles staff authentication
type InterfaceJWTController interface {
	Login()
	Refresh()
	Logout()
	Register()
	Me()
}

// JWTController handles staff authentication
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController creates a JWTController
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest is the login body
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// RegisterRequest creates another staff account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"ketoan01"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Email    string `json:"email" binding:"omitempty,email" example:"ketoan@bluemoon.vn"`
	FullName string `json:"full_name" example:"Nguyễn Thị Kế Toán"`
	Role     string `json:"role" binding:"required,oneof=admin leader accountant" example:"accountant"`
}

// HandleJWTFunc dispatches authentication requests
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "refresh":
			controller.Refresh()
		case "logout":
			controller.Logout()
		case "register":
			controller.Register()
		case "me":
			controller.Me()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *JWTController) jwtService() services.InterfaceJWTService {
	return c.Container.GetService("jwt").(services.InterfaceJWTService)
}

func (c *JWTController) setRefreshCookie(value string, maxAge int) {
	cfg := c.Container.GetConfig()
	c.Ctx.SetSameSite(http.SameSiteLaxMode)
	c.Ctx.SetCookie(refreshCookieName, value, maxAge, refreshCookiePath, "", cfg.CookieSecure, true)
}

// 1. Login signs a staff member in
// @Summary      Staff login
// @Description  Returns an access token; the refresh token is set as an http-only cookie
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  services.LoginResult
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	result, err := c.jwtService().Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.setRefreshCookie(result.RefreshToken, int(c.Container.GetConfig().RefreshTokenTTL.Seconds()))
	response.Success(c.Ctx, result)
}

// 2. Refresh issues a new access token from the refresh cookie
// @Summary      Refresh access token
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  services.RefreshResult
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/refresh [post]
func (c *JWTController) Refresh() {
	token, err := c.Ctx.Cookie(refreshCookieName)
	if err != nil || token == "" {
		response.Fail(c.Ctx, code.ErrRefreshTokenInvalid, nil)
		return
	}

	result, err := c.jwtService().Refresh(token)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// 3. Logout revokes the stored refresh token and clears the cookie
// @Summary      Logout
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (c *JWTController) Logout() {
	if err := c.jwtService().Logout(middleware.CurrentUserID(c.Ctx)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	c.setRefreshCookie("", -1)
	response.Success(c.Ctx, nil)
}

// 4. Register creates another staff account
// @Summary      Register staff account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Account"
// @Success      201  {object}  models.Admin
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /auth/register [post]
// @Security     BearerAuth
func (c *JWTController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	admin := &models.Admin{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Email:    strings.TrimSpace(req.Email),
		FullName: strings.TrimSpace(req.FullName),
		Role:     req.Role,
	}
	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.CreateAdmin(admin); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, admin)
}

// 5. Me returns the signed-in account
// @Summary      Current account
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  models.Admin
// @Router       /auth/me [get]
// @Security     BearerAuth
func (c *JWTController) Me() {
	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.GetAdminByID(middleware.CurrentUserID(c.Ctx))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, admin)
}
