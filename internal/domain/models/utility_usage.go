package models

// Utility components that can be paid separately
const (
	UtilityElectricity = "electricity"
	UtilityWater       = "water"
	UtilityInternet    = "internet"
	UtilityAll         = "all"
)

// UtilityUsage is one household's meter readings and charges for a month
type UtilityUsage struct {
	BaseModel
	HouseholdID string  `gorm:"type:varchar(16);not null;uniqueIndex:idx_usage_household_month" json:"household_id"`
	Month       string  `gorm:"type:varchar(7);not null;uniqueIndex:idx_usage_household_month;index" json:"month"`
	Electricity float64 `gorm:"type:decimal(12,2);not null;default:0" json:"electricity"`
	Water       float64 `gorm:"type:decimal(12,2);not null;default:0" json:"water"`
	Internet    bool    `gorm:"default:false" json:"internet"`

	ElectricityPrice float64 `gorm:"type:decimal(15,2)" json:"electricity_price"`
	WaterPrice       float64 `gorm:"type:decimal(15,2)" json:"water_price"`
	InternetPrice    float64 `gorm:"type:decimal(15,2)" json:"internet_price"`
	TotalPrice       float64 `gorm:"type:decimal(15,2)" json:"total_price"`

	ElectricityPaid bool `gorm:"default:false" json:"electricity_paid"`
	WaterPaid       bool `gorm:"default:false" json:"water_paid"`
	InternetPaid    bool `gorm:"default:false" json:"internet_paid"`
	IsPaid          bool `gorm:"default:false;index" json:"is_paid"`
}

// RefreshPaid sets IsPaid once every component with a charge is paid
func (u *UtilityUsage) RefreshPaid() {
	u.IsPaid = (u.ElectricityPrice <= 0 || u.ElectricityPaid) &&
		(u.WaterPrice <= 0 || u.WaterPaid) &&
		(u.InternetPrice <= 0 || u.InternetPaid)
}
