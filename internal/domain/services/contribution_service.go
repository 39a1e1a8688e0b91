package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/internal/infrastructure/events"
	"bluemoon-http-service/pkg/logger"
)

// InterfaceContributionService manages funds, campaigns, campaign payments and donations
type InterfaceContributionService interface {
	CreateFund(fund *models.ContributionFund) error
	GetFunds(page models.PaginationQuery) (*models.Page[models.ContributionFund], error)
	GetFund(id string) (*models.ContributionFund, error)

	CreateCampaign(input CampaignInput) (*models.ContributionCampaign, error)
	GetCampaigns(page models.PaginationQuery, fundID, status string) (*models.Page[models.ContributionCampaign], error)
	GetCampaign(id string) (*models.ContributionCampaign, error)
	CloseCampaign(id string) (*models.ContributionCampaign, error)

	CreatePayment(ctx context.Context, input PaymentInput) (*models.ContributionPayment, error)
	GetPayments(page models.PaginationQuery, campaignID, householdID string) (*models.Page[models.ContributionPayment], error)

	CreateContribution(input DonationInput) (*models.Contribution, error)
	GetContributions(page models.PaginationQuery, fundID, householdID string) (*models.Page[models.Contribution], error)
}

// CampaignInput holds a new campaign
type CampaignInput struct {
	FundID      string
	Title       string
	Description string
	GoalAmount  float64
	StartDate   *time.Time
	EndDate     *time.Time
}

// PaymentInput holds a household's campaign payment
type PaymentInput struct {
	CampaignID  string
	HouseholdID string
	Amount      float64
	Note        string
}

// DonationInput holds a one-off donation into a fund
type DonationInput struct {
	FundID      string
	HouseholdID string
	Amount      float64
	Note        string
}

// ContributionService implements InterfaceContributionService
type ContributionService struct {
	DB        *gorm.DB
	Config    *config.Config
	Publisher events.Publisher
	now       func() time.Time
}

// NewContributionService creates the contribution service
func NewContributionService(db *gorm.DB, cfg *config.Config, publisher events.Publisher) InterfaceContributionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ContributionService{
		DB:        db,
		Config:    cfg,
		Publisher: publisher,
		now:       time.Now,
	}
}

// 1 CreateFund creates a fund with a unique name and a zero balance
func (s *ContributionService) CreateFund(fund *models.ContributionFund) error {
	var count int64
	if err := s.DB.Model(&models.ContributionFund{}).Where("name = ?", fund.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrFundExists
	}
	fund.Balance = 0
	return duplicate(s.DB.Create(fund).Error, ErrFundExists)
}

// 2 GetFunds lists funds
func (s *ContributionService) GetFunds(page models.PaginationQuery) (*models.Page[models.ContributionFund], error) {
	return paginate[models.ContributionFund](s.DB.Model(&models.ContributionFund{}), page, "name ASC")
}

// 3 GetFund loads a fund with its campaigns
func (s *ContributionService) GetFund(id string) (*models.ContributionFund, error) {
	var fund models.ContributionFund
	if err := s.DB.Preload("Campaigns").First(&fund, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrFundNotFound)
	}
	return &fund, nil
}

// 4 CreateCampaign opens an active campaign for a fund
func (s *ContributionService) CreateCampaign(input CampaignInput) (*models.ContributionCampaign, error) {
	if input.GoalAmount < 0 {
		return nil, ErrInvalidAmount
	}
	var fund models.ContributionFund
	if err := s.DB.First(&fund, "id = ?", input.FundID).Error; err != nil {
		return nil, notFound(err, ErrFundNotFound)
	}

	start := s.now()
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil && input.EndDate.Before(start) {
		return nil, ErrInvalidDates
	}

	campaign := &models.ContributionCampaign{
		FundID:      fund.ID,
		Title:       input.Title,
		Description: input.Description,
		GoalAmount:  round2(input.GoalAmount),
		StartDate:   start,
		EndDate:     input.EndDate,
		Status:      models.CampaignActive,
	}
	if err := s.DB.Create(campaign).Error; err != nil {
		return nil, err
	}
	return campaign, nil
}

// 5 GetCampaigns lists campaigns by fund and status
func (s *ContributionService) GetCampaigns(page models.PaginationQuery, fundID, status string) (*models.Page[models.ContributionCampaign], error) {
	query := s.DB.Model(&models.ContributionCampaign{})
	if fundID != "" {
		query = query.Where("fund_id = ?", fundID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return paginate[models.ContributionCampaign](query, page, "start_date DESC")
}

// 6 GetCampaign loads a campaign with its fund
func (s *ContributionService) GetCampaign(id string) (*models.ContributionCampaign, error) {
	var campaign models.ContributionCampaign
	if err := s.DB.Preload("Fund").First(&campaign, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCampaignNotFound)
	}
	return &campaign, nil
}

// 7 CloseCampaign stops a campaign from accepting payments
func (s *ContributionService) CloseCampaign(id string) (*models.ContributionCampaign, error) {
	campaign, err := s.GetCampaign(id)
	if err != nil {
		return nil, err
	}
	if campaign.Status == models.CampaignClosed {
		return campaign, nil
	}
	if err := s.DB.Model(&models.ContributionCampaign{}).Where("id = ?", id).Update("status", models.CampaignClosed).Error; err != nil {
		return nil, err
	}
	campaign.Status = models.CampaignClosed
	return campaign, nil
}

// 8 CreatePayment records a campaign payment and adds it to the campaign's raised
// amount and the fund's balance in one transaction.
func (s *ContributionService) CreatePayment(ctx context.Context, input PaymentInput) (*models.ContributionPayment, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	amount := round2(input.Amount)

	var payment models.ContributionPayment
	var campaign models.ContributionCampaign
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&campaign, "id = ?", input.CampaignID).Error; err != nil {
			return notFound(err, ErrCampaignNotFound)
		}
		now := s.now()
		if !campaign.AcceptsPayments(now) {
			return ErrCampaignClosed
		}
		if _, err := findHousehold(tx, input.HouseholdID); err != nil {
			return err
		}

		payment = models.ContributionPayment{
			CampaignID:  campaign.ID,
			HouseholdID: input.HouseholdID,
			Amount:      amount,
			PaidAt:      now,
			Note:        input.Note,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ContributionCampaign{}).Where("id = ?", campaign.ID).
			UpdateColumn("raised_amount", gorm.Expr("raised_amount + ?", amount)).Error; err != nil {
			return err
		}
		return tx.Model(&models.ContributionFund{}).Where("id = ?", campaign.FundID).
			UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error
	})
	if err != nil {
		return nil, err
	}

	err = s.Publisher.Publish(ctx, events.ContributionPaymentCreated, map[string]interface{}{
		"payment_id":   payment.ID,
		"campaign_id":  payment.CampaignID,
		"fund_id":      campaign.FundID,
		"household_id": payment.HouseholdID,
		"amount":       payment.Amount,
	})
	if err != nil {
		logger.Warning("publish %s: %v", events.ContributionPaymentCreated, err)
	}
	return &payment, nil
}

// 9 GetPayments lists campaign payments
func (s *ContributionService) GetPayments(page models.PaginationQuery, campaignID, householdID string) (*models.Page[models.ContributionPayment], error) {
	query := s.DB.Model(&models.ContributionPayment{})
	if campaignID != "" {
		query = query.Where("campaign_id = ?", campaignID)
	}
	if householdID != "" {
		query = query.Where("household_id = ?", householdID)
	}
	return paginate[models.ContributionPayment](query, page, "paid_at DESC")
}

// 10 CreateContribution records a donation and adds it to the fund's balance
func (s *ContributionService) CreateContribution(input DonationInput) (*models.Contribution, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	amount := round2(input.Amount)

	var contribution models.Contribution
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var fund models.ContributionFund
		if err := tx.First(&fund, "id = ?", input.FundID).Error; err != nil {
			return notFound(err, ErrFundNotFound)
		}
		if _, err := findHousehold(tx, input.HouseholdID); err != nil {
			return err
		}

		contribution = models.Contribution{
			FundID:        fund.ID,
			HouseholdID:   input.HouseholdID,
			Amount:        amount,
			Note:          input.Note,
			ContributedAt: s.now(),
		}
		if err := tx.Create(&contribution).Error; err != nil {
			return err
		}
		return tx.Model(&models.ContributionFund{}).Where("id = ?", fund.ID).
			UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error
	})
	if err != nil {
		return nil, err
	}
	return &contribution, nil
}

// 11 GetContributions lists donations
func (s *ContributionService) GetContributions(page models.PaginationQuery, fundID, householdID string) (*models.Page[models.Contribution], error) {
	query := s.DB.Model(&models.Contribution{})
	if fundID != "" {
		query = query.Where("fund_id = ?", fundID)
	}
	if householdID != "" {
		query = query.Where("household_id = ?", householdID)
	}
	return paginate[models.Contribution](query, page, "contributed_at DESC")
}
