package models

const (
	VehicleMotorbike = "motorbike"
	VehicleCar       = "car"
)

// Vehicle is a parked vehicle; PricePerMonth is copied from the fee service at registration
type Vehicle struct {
	BaseModel
	HouseholdID   string  `gorm:"type:varchar(16);not null;index" json:"household_id"`
	LicensePlate  string  `gorm:"type:varchar(20);uniqueIndex;not null" json:"license_plate"`
	Type          string  `gorm:"type:varchar(20);not null;index" json:"type"`
	Brand         string  `gorm:"type:varchar(50)" json:"brand"`
	FeeServiceID  string  `gorm:"type:varchar(36)" json:"fee_service_id"`
	PricePerMonth float64 `gorm:"type:decimal(15,2)" json:"price_per_month"`

	FeeService *FeeService `gorm:"foreignKey:FeeServiceID" json:"fee_service,omitempty"`
}
