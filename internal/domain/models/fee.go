package models

import "time"

// Fee service types
const (
	FeeTypeElectricity = "Điện"
	FeeTypeWater       = "Nước"
	FeeTypeInternet    = "Internet"
	FeeTypeManagement  = "Quản lý"
	FeeTypeService     = "Dịch vụ"
	FeeTypeParking     = "Gửi xe"
)

// FeeTypes lists every accepted fee service type
var FeeTypes = []string{
	FeeTypeElectricity, FeeTypeWater, FeeTypeInternet,
	FeeTypeManagement, FeeTypeService, FeeTypeParking,
}

// AccruedFeeTypes are billed per m² by the monthly accrual
var AccruedFeeTypes = []string{FeeTypeManagement, FeeTypeService}

// ValidFeeType reports whether t is a known fee service type
func ValidFeeType(t string) bool {
	for _, ft := range FeeTypes {
		if ft == t {
			return true
		}
	}
	return false
}

// FeeService is a billable service and its unit price
type FeeService struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Type        string  `gorm:"type:varchar(30);index;not null" json:"type"`
	UnitPrice   float64 `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Unit        string  `gorm:"type:varchar(30)" json:"unit"`
	Required    bool    `gorm:"default:false" json:"required"`
	Description string  `gorm:"type:varchar(255)" json:"description"`
}

// FeeHousehold is one accrued monthly charge
type FeeHousehold struct {
	BaseModel
	HouseholdID  string     `gorm:"type:varchar(16);not null;uniqueIndex:idx_fee_household_month" json:"household_id"`
	FeeServiceID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_fee_household_month" json:"fee_service_id"`
	Month        string     `gorm:"type:varchar(7);not null;uniqueIndex:idx_fee_household_month;index" json:"month"`
	Amount       float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	IsPaid       bool       `gorm:"default:false;index" json:"is_paid"`
	PaidAt       *time.Time `json:"paid_at"`

	FeeService *FeeService `gorm:"foreignKey:FeeServiceID" json:"fee_service,omitempty"`
}
