package code

// code -> message
var codeMessageMap = map[int]string{
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "invalid request body",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "invalid or missing token",
	ErrTooManyRequests: "too many requests",
	ErrForbidden:       "insufficient role",
	ErrNotFound:        "resource not found",
	ErrConflict:        "resource conflict",

	ErrAdminNotFound:          "admin not found",
	ErrAdminAlreadyExist:      "username already exists",
	ErrAdminPasswordIncorrect: "invalid username or password",
	ErrRefreshTokenInvalid:    "invalid refresh token",
	ErrLastAdmin:              "the last admin cannot be removed",

	ErrHouseholdNotFound:   "household not found",
	ErrHouseholdInactive:   "household is not active",
	ErrHouseholdHasMembers: "household still has members",
	ErrMemberAlreadyExist:  "user is already a member of this household",
	ErrOwnerAlreadyExist:   "household already has an owner",
	ErrMemberNotFound:      "user is not a member of this household",

	ErrUserNotFound:     "resident not found",
	ErrUserAlreadyExist: "citizen id already exists",

	ErrFeeServiceNotFound:       "fee service not found",
	ErrFeeServiceAlreadyExist:   "fee service name already exists",
	ErrFeeServiceMissing:        "required fee service is not configured",
	ErrFeeHouseholdNotFound:     "household fee not found",
	ErrUtilityUsageNotFound:     "utility usage not found",
	ErrUtilityUsageAlreadyExist: "utility usage already recorded for this month",
	ErrInvalidMonth:             "month must be formatted as YYYY-MM",

	ErrVehicleNotFound:     "vehicle not found",
	ErrVehicleAlreadyExist: "license plate already registered",
	ErrVehicleTypeInvalid:  "unsupported vehicle type",

	ErrFundNotFound:     "contribution fund not found",
	ErrFundAlreadyExist: "contribution fund name already exists",
	ErrCampaignNotFound: "campaign not found",
	ErrCampaignClosed:   "campaign is not accepting payments",
	ErrAmountInvalid:    "amount must be greater than zero",

	ErrReportNotFound:         "feedback not found",
	ErrReportStatusTransition: "feedback status change not allowed",

	ErrDatabase:         "database error",
	ErrRecordNotFound:   "record not found",
	ErrMigrationFailed:  "migration failed",
	ErrConnectionFailed: "connection failed",
}

// code -> HTTP status
var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrForbidden:       StatusForbidden,
	ErrNotFound:        StatusNotFound,
	ErrConflict:        StatusConflict,

	ErrAdminNotFound:          StatusNotFound,
	ErrAdminAlreadyExist:      StatusConflict,
	ErrAdminPasswordIncorrect: StatusUnauthorized,
	ErrRefreshTokenInvalid:    StatusUnauthorized,
	ErrLastAdmin:              StatusConflict,

	ErrHouseholdNotFound:   StatusNotFound,
	ErrHouseholdInactive:   StatusBadRequest,
	ErrHouseholdHasMembers: StatusConflict,
	ErrMemberAlreadyExist:  StatusConflict,
	ErrOwnerAlreadyExist:   StatusConflict,
	ErrMemberNotFound:      StatusNotFound,

	ErrUserNotFound:     StatusNotFound,
	ErrUserAlreadyExist: StatusConflict,

	ErrFeeServiceNotFound:       StatusNotFound,
	ErrFeeServiceAlreadyExist:   StatusConflict,
	ErrFeeServiceMissing:        StatusBadRequest,
	ErrFeeHouseholdNotFound:     StatusNotFound,
	ErrUtilityUsageNotFound:     StatusNotFound,
	ErrUtilityUsageAlreadyExist: StatusConflict,
	ErrInvalidMonth:             StatusBadRequest,

	ErrVehicleNotFound:     StatusNotFound,
	ErrVehicleAlreadyExist: StatusConflict,
	ErrVehicleTypeInvalid:  StatusBadRequest,

	ErrFundNotFound:     StatusNotFound,
	ErrFundAlreadyExist: StatusConflict,
	ErrCampaignNotFound: StatusNotFound,
	ErrCampaignClosed:   StatusBadRequest,
	ErrAmountInvalid:    StatusBadRequest,

	ErrReportNotFound:         StatusNotFound,
	ErrReportStatusTransition: StatusBadRequest,

	ErrDatabase:         StatusInternalServerError,
	ErrRecordNotFound:   StatusNotFound,
	ErrMigrationFailed:  StatusInternalServerError,
	ErrConnectionFailed: StatusInternalServerError,
}

// GetMessage returns the message registered for a code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus returns the HTTP status registered for a code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
