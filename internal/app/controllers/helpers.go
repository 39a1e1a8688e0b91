package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
	"bluemoon-http-service/pkg/logger"
)

// ErrorResponse documents the failure envelope
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Code    int    `json:"code" example:"100003"`
	Message string `json:"message" example:"validation failed"`
}

// serviceErrorCodes maps service sentinels onto the code table
var serviceErrorCodes = []struct {
	err  error
	code int
}{
	{services.ErrAdminNotFound, code.ErrAdminNotFound},
	{services.ErrUsernameExists, code.ErrAdminAlreadyExist},
	{services.ErrInvalidCredentials, code.ErrAdminPasswordIncorrect},
	{services.ErrInvalidRefreshToken, code.ErrRefreshTokenInvalid},
	{services.ErrLastAdmin, code.ErrLastAdmin},
	{services.ErrInvalidRole, code.ErrValidation},

	{services.ErrHouseholdNotFound, code.ErrHouseholdNotFound},
	{services.ErrHouseholdInactive, code.ErrHouseholdInactive},
	{services.ErrHouseholdHasMembers, code.ErrHouseholdHasMembers},
	{services.ErrInvalidArea, code.ErrValidation},
	{services.ErrMemberExists, code.ErrMemberAlreadyExist},
	{services.ErrOwnerExists, code.ErrOwnerAlreadyExist},
	{services.ErrMemberNotFound, code.ErrMemberNotFound},
	{services.ErrUserNotFound, code.ErrUserNotFound},
	{services.ErrCitizenIDExists, code.ErrUserAlreadyExist},

	{services.ErrFeeServiceNotFound, code.ErrFeeServiceNotFound},
	{services.ErrFeeServiceExists, code.ErrFeeServiceAlreadyExist},
	{services.ErrFeeServiceMissing, code.ErrFeeServiceMissing},
	{services.ErrFeeServiceInUse, code.ErrConflict},
	{services.ErrInvalidFeeType, code.ErrValidation},
	{services.ErrFeeHouseholdNotFound, code.ErrFeeHouseholdNotFound},

	{services.ErrUtilityUsageNotFound, code.ErrUtilityUsageNotFound},
	{services.ErrUtilityUsageExists, code.ErrUtilityUsageAlreadyExist},
	{services.ErrInvalidMonth, code.ErrInvalidMonth},
	{services.ErrInvalidReading, code.ErrValidation},
	{services.ErrInvalidUtility, code.ErrValidation},

	{services.ErrVehicleNotFound, code.ErrVehicleNotFound},
	{services.ErrPlateExists, code.ErrVehicleAlreadyExist},
	{services.ErrVehicleTypeInvalid, code.ErrVehicleTypeInvalid},

	{services.ErrFundNotFound, code.ErrFundNotFound},
	{services.ErrFundExists, code.ErrFundAlreadyExist},
	{services.ErrCampaignNotFound, code.ErrCampaignNotFound},
	{services.ErrCampaignClosed, code.ErrCampaignClosed},
	{services.ErrInvalidAmount, code.ErrAmountInvalid},
	{services.ErrInvalidDates, code.ErrValidation},

	{services.ErrReportNotFound, code.ErrReportNotFound},
	{services.ErrInvalidStatus, code.ErrValidation},
	{services.ErrInvalidTransition, code.ErrReportStatusTransition},
}

// handleServiceError answers with the code registered for err. Unknown errors
// are logged and answered with 500.
func handleServiceError(c *gin.Context, err error) {
	for _, m := range serviceErrorCodes {
		if errors.Is(err, m.err) {
			response.FailWithMessage(c, m.code, err.Error(), nil)
			return
		}
	}
	logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	response.Fail(c, code.ErrDatabase, nil)
}

// bindError answers 400 for a request body or query that failed binding
func bindError(c *gin.Context, err error) {
	response.FailWithMessage(c, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
}

// bindPage reads page and limit from the query string
func bindPage(c *gin.Context) models.PaginationQuery {
	var page models.PaginationQuery
	_ = c.ShouldBindQuery(&page)
	page.Normalize()
	return page
}

// paginated writes a service page as a paginated envelope
func paginated[T any](c *gin.Context, page *models.Page[T]) {
	response.Paginated(c, page.Items, page.Total, page.Page, page.Limit)
}

// optionalBool parses a query flag; empty or malformed values mean "no filter"
func optionalBool(c *gin.Context, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// parseDate accepts YYYY-MM-DD or RFC 3339; empty input yields nil
func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, errors.New("dates must be formatted as YYYY-MM-DD")
	}
	return &t, nil
}
