package models

import "time"

// User is a resident
type User struct {
	BaseModel
	FullName    string     `gorm:"type:varchar(100);not null" json:"full_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `gorm:"type:varchar(10)" json:"gender"`
	CitizenID   string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"citizen_id"`
	Phone       string     `gorm:"type:varchar(20)" json:"phone"`
	Email       string     `gorm:"type:varchar(100)" json:"email"`
	Occupation  string     `gorm:"type:varchar(100)" json:"occupation"`

	Households []UserHousehold `gorm:"foreignKey:UserID" json:"households,omitempty"`
}
