package models

import "time"

// Feedback statuses
const (
	ReportPending    = "pending"
	ReportInProgress = "in_progress"
	ReportResolved   = "resolved"
)

var reportTransitions = map[string][]string{
	ReportPending:    {ReportInProgress, ReportResolved},
	ReportInProgress: {ReportResolved},
}

// CanTransition reports whether feedback may move from one status to another
func CanTransition(from, to string) bool {
	for _, next := range reportTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ReportUser is resident feedback handled by staff
type ReportUser struct {
	BaseModel
	UserID      string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	HouseholdID *string    `gorm:"type:varchar(16);index" json:"household_id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Status      string     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Response    string     `gorm:"type:text" json:"response"`
	RespondedBy *string    `gorm:"type:varchar(36)" json:"responded_by"`
	RespondedAt *time.Time `json:"responded_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
