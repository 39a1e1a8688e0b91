package models

import "time"

// Household is an apartment unit. ID is a code like HK4G7Q2Z.
type Household struct {
	ID        string    `gorm:"type:varchar(16);primaryKey" json:"id"`
	Area      float64   `gorm:"type:decimal(10,2);not null" json:"area"`
	IsActive  bool      `gorm:"default:false;index" json:"is_active"`
	Note      string    `gorm:"type:varchar(255)" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Members       []UserHousehold `gorm:"foreignKey:HouseholdID" json:"members,omitempty"`
	UtilityUsages []UtilityUsage  `gorm:"foreignKey:HouseholdID" json:"utility_usages,omitempty"`
	Fees          []FeeHousehold  `gorm:"foreignKey:HouseholdID" json:"fees,omitempty"`
	Vehicles      []Vehicle       `gorm:"foreignKey:HouseholdID" json:"vehicles,omitempty"`
}

// UserHousehold links a resident to a household
type UserHousehold struct {
	BaseModel
	UserID       string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_household" json:"user_id"`
	HouseholdID  string     `gorm:"type:varchar(16);not null;uniqueIndex:idx_user_household;index" json:"household_id"`
	RoleInFamily string     `gorm:"type:varchar(50)" json:"role_in_family"`
	IsOwner      bool       `gorm:"default:false" json:"is_owner"`
	JoinDate     *time.Time `json:"join_date"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
