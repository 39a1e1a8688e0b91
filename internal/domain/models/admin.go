package models

// Staff roles
const (
	RoleAdmin      = "admin"
	RoleLeader     = "leader"
	RoleAccountant = "accountant"
)

// Account statuses; only active accounts can sign in
const (
	AdminActive   = "active"
	AdminInactive = "inactive"
)

// ValidRole reports whether r is one of the staff roles
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleLeader || r == RoleAccountant
}

// Admin is a staff account that can sign in to the API
type Admin struct {
	BaseModel
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password     string `gorm:"type:varchar(100);not null" json:"-"`
	Email        string `gorm:"type:varchar(100)" json:"email"`
	FullName     string `gorm:"type:varchar(100)" json:"full_name"`
	Role         string `gorm:"type:varchar(20);default:'admin';index" json:"role"`
	Status       string `gorm:"type:varchar(20);default:'active'" json:"status"` // active, inactive
	RefreshToken string `gorm:"type:varchar(64)" json:"-"`                       // SHA-256 of the issued refresh token
}
