package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/app/middleware"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// HealthController reports liveness and dependency status
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a HealthController
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc dispatches health requests
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		case "cacheStats":
			controller.CacheStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. Ping answers as long as the process is serving
// @Summary      Ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /ping [get]
func (c *HealthController) Ping() {
	response.Success(c.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// 2. Status checks the database and, when configured, Redis
// @Summary      Dependency status
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health/status [get]
func (c *HealthController) Status() {
	healthy := true
	result := gin.H{"time": time.Now().Format(time.RFC3339)}

	dbStatus := gin.H{"status": "up"}
	if err := c.pingDatabase(); err != nil {
		healthy = false
		dbStatus = gin.H{"status": "down", "error": err.Error()}
	} else if sqlDB, err := c.Container.GetDB().DB(); err == nil {
		stats := sqlDB.Stats()
		dbStatus["open_connections"] = stats.OpenConnections
		dbStatus["in_use"] = stats.InUse
		dbStatus["idle"] = stats.Idle
	}
	result["database"] = dbStatus

	if redis := c.Container.GetRedisService(); redis != nil {
		if err := redis.Ping(); err != nil {
			healthy = false
			result["redis"] = gin.H{"status": "down", "error": err.Error()}
		} else {
			result["redis"] = gin.H{"status": "up"}
		}
	} else {
		result["redis"] = gin.H{"status": "disabled"}
	}

	if !healthy {
		result["status"] = "degraded"
		c.Ctx.JSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Code:    code.ErrConnectionFailed,
			Message: "dependency check failed",
			Data:    result,
		})
		return
	}
	result["status"] = "healthy"
	response.Success(c.Ctx, result)
}

// 3. CacheStats reports the response cache backend and size
// @Summary      Response cache statistics
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health/cache-stats [get]
// @Security     BearerAuth
func (c *HealthController) CacheStats() {
	response.Success(c.Ctx, middleware.CacheStats())
}

func (c *HealthController) pingDatabase() error {
	sqlDB, err := c.Container.GetDB().DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Ctx.Request.Context(), 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
