package services

import "errors"

// Sentinel errors returned by services. Controllers map them onto error codes.
var (
	ErrAdminNotFound       = errors.New("admin not found")
	ErrUsernameExists      = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrLastAdmin           = errors.New("the last admin cannot be removed")
	ErrInvalidRole         = errors.New("invalid role")

	ErrHouseholdNotFound    = errors.New("household not found")
	ErrHouseholdInactive    = errors.New("household is not active")
	ErrHouseholdHasMembers  = errors.New("household still has members")
	ErrInvalidArea          = errors.New("area must be greater than zero")
	ErrMemberExists         = errors.New("user is already a member of this household")
	ErrOwnerExists          = errors.New("household already has an owner")
	ErrMemberNotFound       = errors.New("user is not a member of this household")
	ErrUserNotFound         = errors.New("resident not found")
	ErrCitizenIDExists      = errors.New("citizen id already exists")
	ErrFeeServiceNotFound   = errors.New("fee service not found")
	ErrFeeServiceExists     = errors.New("fee service name already exists")
	ErrFeeServiceMissing    = errors.New("required fee service is not configured")
	ErrFeeServiceInUse      = errors.New("fee service is referenced by charges or vehicles")
	ErrInvalidFeeType       = errors.New("invalid fee service type")
	ErrFeeHouseholdNotFound = errors.New("household fee not found")

	ErrUtilityUsageNotFound = errors.New("utility usage not found")
	ErrUtilityUsageExists   = errors.New("utility usage already recorded for this month")
	ErrInvalidMonth         = errors.New("month must be formatted as YYYY-MM")
	ErrInvalidReading       = errors.New("meter readings must not be negative")
	ErrInvalidUtility       = errors.New("utility must be electricity, water, internet or all")

	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrPlateExists        = errors.New("license plate already registered")
	ErrVehicleTypeInvalid = errors.New("unsupported vehicle type")

	ErrFundNotFound     = errors.New("contribution fund not found")
	ErrFundExists       = errors.New("contribution fund name already exists")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrCampaignClosed   = errors.New("campaign is not accepting payments")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidDates     = errors.New("end date must not be before start date")

	ErrReportNotFound    = errors.New("feedback not found")
	ErrInvalidStatus     = errors.New("invalid feedback status")
	ErrInvalidTransition = errors.New("feedback status change not allowed")
)

// IsNotFound reports whether err is one of the not-found sentinels
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrAdminNotFound, ErrHouseholdNotFound, ErrUserNotFound, ErrMemberNotFound,
		ErrFeeServiceNotFound, ErrFeeHouseholdNotFound, ErrUtilityUsageNotFound,
		ErrVehicleNotFound, ErrFundNotFound, ErrCampaignNotFound, ErrReportNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
