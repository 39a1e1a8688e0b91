package models

import "time"

const (
	CampaignActive = "active"
	CampaignClosed = "closed"
)

// ContributionFund accumulates campaign payments and donations
type ContributionFund struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string  `gorm:"type:varchar(255)" json:"description"`
	Balance     float64 `gorm:"type:decimal(15,2);default:0" json:"balance"`

	Campaigns []ContributionCampaign `gorm:"foreignKey:FundID" json:"campaigns,omitempty"`
}

// ContributionCampaign is a time-boxed collection drive for a fund
type ContributionCampaign struct {
	BaseModel
	FundID       string     `gorm:"type:varchar(36);not null;index" json:"fund_id"`
	Title        string     `gorm:"type:varchar(150);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	GoalAmount   float64    `gorm:"type:decimal(15,2);default:0" json:"goal_amount"`
	RaisedAmount float64    `gorm:"type:decimal(15,2);default:0" json:"raised_amount"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Status       string     `gorm:"type:varchar(20);default:'active';index" json:"status"`

	Fund *ContributionFund `gorm:"foreignKey:FundID" json:"fund,omitempty"`
}

// AcceptsPayments reports whether the campaign is active and not past its end date.
// The end date is inclusive: payments are taken until midnight after it.
func (c *ContributionCampaign) AcceptsPayments(now time.Time) bool {
	if c.Status != CampaignActive {
		return false
	}
	if c.EndDate == nil {
		return true
	}
	y, m, d := c.EndDate.Date()
	return now.Before(time.Date(y, m, d+1, 0, 0, 0, 0, c.EndDate.Location()))
}

// ContributionPayment is a household's payment toward a campaign
type ContributionPayment struct {
	BaseModel
	CampaignID  string    `gorm:"type:varchar(36);not null;index" json:"campaign_id"`
	HouseholdID string    `gorm:"type:varchar(16);not null;index" json:"household_id"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaidAt      time.Time `json:"paid_at"`
	Note        string    `gorm:"type:varchar(255)" json:"note"`
}

// Contribution is a one-off donation straight into a fund
type Contribution struct {
	BaseModel
	FundID        string    `gorm:"type:varchar(36);not null;index" json:"fund_id"`
	HouseholdID   string    `gorm:"type:varchar(16);not null;index" json:"household_id"`
	Amount        float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Note          string    `gorm:"type:varchar(255)" json:"note"`
	ContributedAt time.Time `json:"contributed_at"`
}
