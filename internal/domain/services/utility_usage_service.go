package services

import (
	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
)

// InterfaceUtilityUsageService records monthly meter readings and their charges
type InterfaceUtilityUsageService interface {
	CreateUtilityUsage(input UtilityUsageInput) (*models.UtilityUsage, error)
	GetUtilityUsages(page models.PaginationQuery, filter UtilityUsageFilter) (*models.Page[models.UtilityUsage], error)
	GetUtilityUsage(id string) (*models.UtilityUsage, error)
	PayUtility(id, utility string) (*models.UtilityUsage, error)
	DeleteUtilityUsage(id string) error
}

// UtilityUsageInput holds one month of readings
type UtilityUsageInput struct {
	HouseholdID string
	Month       string
	Electricity float64
	Water       float64
	Internet    bool
}

// UtilityUsageFilter narrows a usage listing
type UtilityUsageFilter struct {
	HouseholdID string
	Month       string
	IsPaid      *bool
}

// UtilityUsageService implements InterfaceUtilityUsageService
type UtilityUsageService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewUtilityUsageService creates the utility usage service. redis may be nil.
func NewUtilityUsageService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceUtilityUsageService {
	return &UtilityUsageService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// 1 CreateUtilityUsage prices the readings with the current electricity, water
// and internet rates. Each price is rounded before summing so total_price is
// exactly the sum of the stored components.
func (s *UtilityUsageService) CreateUtilityUsage(input UtilityUsageInput) (*models.UtilityUsage, error) {
	month, err := NormalizeMonth(input.Month)
	if err != nil {
		return nil, err
	}
	if input.Electricity < 0 || input.Water < 0 {
		return nil, ErrInvalidReading
	}

	household, err := findHousehold(s.DB, input.HouseholdID)
	if err != nil {
		return nil, err
	}
	if !household.IsActive {
		return nil, ErrHouseholdInactive
	}

	var count int64
	if err := s.DB.Model(&models.UtilityUsage{}).
		Where("household_id = ? AND month = ?", household.ID, month).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUtilityUsageExists
	}

	electric, err := findFeeServiceByType(s.DB, models.FeeTypeElectricity)
	if err != nil {
		return nil, err
	}
	water, err := findFeeServiceByType(s.DB, models.FeeTypeWater)
	if err != nil {
		return nil, err
	}
	if electric == nil || water == nil {
		return nil, ErrFeeServiceMissing
	}

	usage := &models.UtilityUsage{
		HouseholdID:      household.ID,
		Month:            month,
		Electricity:      input.Electricity,
		Water:            input.Water,
		Internet:         input.Internet,
		ElectricityPrice: round2(input.Electricity * electric.UnitPrice),
		WaterPrice:       round2(input.Water * water.UnitPrice),
	}
	if input.Internet {
		internet, err := findFeeServiceByType(s.DB, models.FeeTypeInternet)
		if err != nil {
			return nil, err
		}
		if internet != nil {
			usage.InternetPrice = round2(internet.UnitPrice)
		}
	}
	usage.TotalPrice = round2(usage.ElectricityPrice + usage.WaterPrice + usage.InternetPrice)
	usage.RefreshPaid()

	if err := s.DB.Create(usage).Error; err != nil {
		return nil, duplicate(err, ErrUtilityUsageExists)
	}
	InvalidateDashboard(s.Redis, usage.Month)
	return usage, nil
}

// 2 GetUtilityUsages lists usage records
func (s *UtilityUsageService) GetUtilityUsages(page models.PaginationQuery, filter UtilityUsageFilter) (*models.Page[models.UtilityUsage], error) {
	query := s.DB.Model(&models.UtilityUsage{})
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
	return paginate[models.UtilityUsage](query, page, "month DESC, household_id ASC")
}

// 3 GetUtilityUsage loads one usage record
func (s *UtilityUsageService) GetUtilityUsage(id string) (*models.UtilityUsage, error) {
	var usage models.UtilityUsage
	if err := s.DB.First(&usage, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrUtilityUsageNotFound)
	}
	return &usage, nil
}

// 4 PayUtility marks electricity, water, internet or all of them paid
func (s *UtilityUsageService) PayUtility(id, utility string) (*models.UtilityUsage, error) {
	usage, err := s.GetUtilityUsage(id)
	if err != nil {
		return nil, err
	}

	switch utility {
	case models.UtilityElectricity:
		usage.ElectricityPaid = true
	case models.UtilityWater:
		usage.WaterPaid = true
	case models.UtilityInternet:
		usage.InternetPaid = true
	case models.UtilityAll:
		usage.ElectricityPaid = true
		usage.WaterPaid = true
		usage.InternetPaid = true
	default:
		return nil, ErrInvalidUtility
	}
	usage.RefreshPaid()

	if err := s.DB.Save(usage).Error; err != nil {
		return nil, err
	}
	InvalidateDashboard(s.Redis, usage.Month)
	return usage, nil
}

// 5 DeleteUtilityUsage removes a usage record
func (s *UtilityUsageService) DeleteUtilityUsage(id string) error {
	usage, err := s.GetUtilityUsage(id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(usage).Error; err != nil {
		return err
	}
	InvalidateDashboard(s.Redis, usage.Month)
	return nil
}
