package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/error/code"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse is the envelope for paginated lists
type PageResponse struct {
	Response
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// Success answers 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// Created answers 201 with the created resource
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Code:    code.ErrSuccess,
		Message: "created",
		Data:    data,
	})
}

// Paginated answers 200 with one page of rows and the paging metadata
func Paginated(c *gin.Context, data interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, PageResponse{
		Response: Response{
			Success: true,
			Code:    code.ErrSuccess,
			Message: code.GetMessage(code.ErrSuccess),
			Data:    data,
		},
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	})
}

// TotalPages is ceil(total/limit); 0 when there are no rows
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Fail answers with the status and message registered for the code
func Fail(c *gin.Context, errorCode int, data interface{}) {
	c.JSON(code.GetStatus(errorCode), Response{
		Success: false,
		Code:    errorCode,
		Message: code.GetMessage(errorCode),
		Data:    data,
	})
}

// FailWithMessage answers with the code's status and a custom message
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	c.JSON(code.GetStatus(errorCode), Response{
		Success: false,
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// ParamError answers 400
func ParamError(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrValidation)
	}
	FailWithMessage(c, code.ErrValidation, message, nil)
}

// ServerError answers 500
func ServerError(c *gin.Context) {
	Fail(c, code.ErrUnknown, nil)
}

// NotFound answers 404
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrNotFound)
	}
	FailWithMessage(c, code.ErrNotFound, message, nil)
}

// Unauthorized answers 401
func Unauthorized(c *gin.Context) {
	Fail(c, code.ErrTokenInvalid, nil)
}

// Forbidden answers 403
func Forbidden(c *gin.Context) {
	Fail(c, code.ErrForbidden, nil)
}

// AbortWithFail writes the failure envelope and stops the handler chain
func AbortWithFail(c *gin.Context, errorCode int) {
	Fail(c, errorCode, nil)
	c.Abort()
}
