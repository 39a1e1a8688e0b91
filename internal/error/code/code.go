package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusCreated - 201: resource created.
	StatusCreated = 201
	// StatusBadRequest - 400: invalid request.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: unauthenticated.
	StatusUnauthorized = 401
	// StatusForbidden - 403: role not allowed.
	StatusForbidden = 403
	// StatusNotFound - 404: resource missing.
	StatusNotFound = 404
	// StatusConflict - 409: uniqueness or state conflict.
	StatusConflict = 409
	// StatusTooManyRequests - 429: rate limited.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: internal error.
	StatusInternalServerError = 500
)

// Common codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body could not be bound.
	ErrBind
	// ErrValidation - 400: request failed validation.
	ErrValidation
	// ErrTokenInvalid - 401: token missing or invalid.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: rate limited.
	ErrTooManyRequests
	// ErrForbidden - 403: role not allowed.
	ErrForbidden
	// ErrNotFound - 404: generic resource missing.
	ErrNotFound
	// ErrConflict - 409: generic conflict.
	ErrConflict
)

// Staff account codes (101xxx).
const (
	// ErrAdminNotFound - 404: admin does not exist.
	ErrAdminNotFound int = iota + 101000
	// ErrAdminAlreadyExist - 409: username taken.
	ErrAdminAlreadyExist
	// ErrAdminPasswordIncorrect - 401: wrong credentials.
	ErrAdminPasswordIncorrect
	// ErrRefreshTokenInvalid - 401: refresh token missing, stale or revoked.
	ErrRefreshTokenInvalid
	// ErrLastAdmin - 409: the last admin cannot be removed.
	ErrLastAdmin
)

// Household codes (102xxx).
const (
	// ErrHouseholdNotFound - 404: household does not exist.
	ErrHouseholdNotFound int = iota + 102000
	// ErrHouseholdInactive - 400: household is not active.
	ErrHouseholdInactive
	// ErrHouseholdHasMembers - 409: household still has members.
	ErrHouseholdHasMembers
	// ErrMemberAlreadyExist - 409: user already in household.
	ErrMemberAlreadyExist
	// ErrOwnerAlreadyExist - 409: household already has an owner.
	ErrOwnerAlreadyExist
	// ErrMemberNotFound - 404: user is not a member.
	ErrMemberNotFound
)

// Resident codes (103xxx).
const (
	// ErrUserNotFound - 404: resident does not exist.
	ErrUserNotFound int = iota + 103000
	// ErrUserAlreadyExist - 409: citizen id taken.
	ErrUserAlreadyExist
)

// Fee codes (104xxx).
const (
	// ErrFeeServiceNotFound - 404: fee service does not exist.
	ErrFeeServiceNotFound int = iota + 104000
	// ErrFeeServiceAlreadyExist - 409: fee service name taken.
	ErrFeeServiceAlreadyExist
	// ErrFeeServiceMissing - 400: a required fee service is not configured.
	ErrFeeServiceMissing
	// ErrFeeHouseholdNotFound - 404: fee record does not exist.
	ErrFeeHouseholdNotFound
	// ErrUtilityUsageNotFound - 404: usage record does not exist.
	ErrUtilityUsageNotFound
	// ErrUtilityUsageAlreadyExist - 409: usage for the month already recorded.
	ErrUtilityUsageAlreadyExist
	// ErrInvalidMonth - 400: month is not YYYY-MM.
	ErrInvalidMonth
)

// Vehicle codes (105xxx).
const (
	// ErrVehicleNotFound - 404: vehicle does not exist.
	ErrVehicleNotFound int = iota + 105000
	// ErrVehicleAlreadyExist - 409: license plate taken.
	ErrVehicleAlreadyExist
	// ErrVehicleTypeInvalid - 400: unsupported vehicle type.
	ErrVehicleTypeInvalid
)

// Contribution codes (106xxx).
const (
	// ErrFundNotFound - 404: fund does not exist.
	ErrFundNotFound int = iota + 106000
	// ErrFundAlreadyExist - 409: fund name taken.
	ErrFundAlreadyExist
	// ErrCampaignNotFound - 404: campaign does not exist.
	ErrCampaignNotFound
	// ErrCampaignClosed - 400: campaign is closed or ended.
	ErrCampaignClosed
	// ErrAmountInvalid - 400: amount must be positive.
	ErrAmountInvalid
)

// Feedback codes (107xxx).
const (
	// ErrReportNotFound - 404: feedback does not exist.
	ErrReportNotFound int = iota + 107000
	// ErrReportStatusTransition - 400: status change not allowed.
	ErrReportStatusTransition
)

// Database codes (109xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 109000
	// ErrRecordNotFound - 404: record does not exist.
	ErrRecordNotFound
	// ErrMigrationFailed - 500: migration failed.
	ErrMigrationFailed
	// ErrConnectionFailed - 500: connection failed.
	ErrConnectionFailed
)
