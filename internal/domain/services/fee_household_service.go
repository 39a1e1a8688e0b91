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

// InterfaceFeeHouseholdService manages accrued monthly charges
type InterfaceFeeHouseholdService interface {
	GetFeeHouseholds(page models.PaginationQuery, filter FeeHouseholdFilter) (*models.Page[models.FeeHousehold], error)
	GetFeeHousehold(id string) (*models.FeeHousehold, error)
	AccrueMonthlyFees(ctx context.Context, month string) (*AccrualResult, error)
	SetPaid(id string, paid bool) (*models.FeeHousehold, error)
}

// FeeHouseholdFilter narrows a charge listing
type FeeHouseholdFilter struct {
	HouseholdID string
	Month       string
	IsPaid      *bool
}

// AccrualResult summarises one accrual run
type AccrualResult struct {
	Month   string `json:"month"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

// FeeHouseholdService implements InterfaceFeeHouseholdService
type FeeHouseholdService struct {
	DB        *gorm.DB
	Config    *config.Config
	Publisher events.Publisher
	Redis     InterfaceRedisService
}

// NewFeeHouseholdService creates the charge service. redis may be nil.
func NewFeeHouseholdService(db *gorm.DB, cfg *config.Config, publisher events.Publisher, redis InterfaceRedisService) InterfaceFeeHouseholdService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &FeeHouseholdService{
		DB:        db,
		Config:    cfg,
		Publisher: publisher,
		Redis:     redis,
	}
}

// 1 GetFeeHouseholds lists charges with their fee service
func (s *FeeHouseholdService) GetFeeHouseholds(page models.PaginationQuery, filter FeeHouseholdFilter) (*models.Page[models.FeeHousehold], error) {
	query := s.DB.Model(&models.FeeHousehold{}).Preload("FeeService")
	if filter.HouseholdID != "" {
		query = query.Where("household_id = ?", filter.HouseholdID)
	}
	if filter.Month != "" {
		month, err := NormalizeMonth(filter.Month)
		if err != nil {
			return nil, err
		}
		query = query.Where("month = ?", month)
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}
	return paginate[models.FeeHousehold](query, page, "month DESC, household_id ASC")
}

// 2 GetFeeHousehold loads one charge
func (s *FeeHouseholdService) GetFeeHousehold(id string) (*models.FeeHousehold, error) {
	var fee models.FeeHousehold
	if err := s.DB.Preload("FeeService").First(&fee, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrFeeHouseholdNotFound)
	}
	return &fee, nil
}

// 3 AccrueMonthlyFees charges every active household for every management and
// service fee, amount = unit price x area. Pairs already charged for the month
// are skipped, so running it twice creates nothing new. The run is atomic.
func (s *FeeHouseholdService) AccrueMonthlyFees(ctx context.Context, month string) (*AccrualResult, error) {
	month, err := NormalizeMonth(month)
	if err != nil {
		return nil, err
	}
	result := &AccrualResult{Month: month}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var households []models.Household
		if err := tx.Where("is_active = ?", true).Find(&households).Error; err != nil {
			return err
		}

		var feeServices []models.FeeService
		if err := tx.Where("type IN ?", models.AccruedFeeTypes).Find(&feeServices).Error; err != nil {
			return err
		}

		var existing []models.FeeHousehold
		if err := tx.Select("household_id", "fee_service_id").Where("month = ?", month).Find(&existing).Error; err != nil {
			return err
		}
		charged := make(map[string]struct{}, len(existing))
		for _, fee := range existing {
			charged[fee.HouseholdID+"|"+fee.FeeServiceID] = struct{}{}
		}

		var fresh []models.FeeHousehold
		for _, household := range households {
			for _, feeService := range feeServices {
				if _, ok := charged[household.ID+"|"+feeService.ID]; ok {
					result.Skipped++
					continue
				}
				fresh = append(fresh, models.FeeHousehold{
					HouseholdID:  household.ID,
					FeeServiceID: feeService.ID,
					Month:        month,
					Amount:       round2(feeService.UnitPrice * household.Area),
				})
			}
		}

		if len(fresh) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&fresh, 100).Error; err != nil {
			return err
		}
		result.Created = len(fresh)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("fee accrual for %s: created=%d skipped=%d", month, result.Created, result.Skipped)
	if result.Created > 0 {
		InvalidateDashboard(s.Redis, month)
		if err := s.Publisher.Publish(ctx, events.FeeAccrued, result); err != nil {
			logger.Warning("publish %s: %v", events.FeeAccrued, err)
		}
	}
	return result, nil
}

// 4 SetPaid marks a charge paid (stamping paid_at) or unpaid
func (s *FeeHouseholdService) SetPaid(id string, paid bool) (*models.FeeHousehold, error) {
	fee, err := s.GetFeeHousehold(id)
	if err != nil {
		return nil, err
	}

	var paidAt *time.Time
	if paid {
		now := time.Now()
		paidAt = &now
	}
	err = s.DB.Model(&models.FeeHousehold{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_paid": paid, "paid_at": paidAt}).Error
	if err != nil {
		return nil, err
	}

	fee.IsPaid = paid
	fee.PaidAt = paidAt
	InvalidateDashboard(s.Redis, fee.Month)
	return fee, nil
}
