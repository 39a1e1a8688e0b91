package services

import (
	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
)

// InterfaceFeeServiceService manages the fee service catalogue
type InterfaceFeeServiceService interface {
	GetFeeServices(page models.PaginationQuery, feeType, search string) (*models.Page[models.FeeService], error)
	GetFeeService(id string) (*models.FeeService, error)
	CreateFeeService(feeService *models.FeeService) error
	UpdateFeeService(id string, updates map[string]interface{}) (*models.FeeService, error)
	DeleteFeeService(id string) error
}

// FeeServiceService implements InterfaceFeeServiceService
type FeeServiceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewFeeServiceService creates the fee service catalogue service
func NewFeeServiceService(db *gorm.DB, cfg *config.Config) InterfaceFeeServiceService {
	return &FeeServiceService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetFeeServices lists fee services by type and name
func (s *FeeServiceService) GetFeeServices(page models.PaginationQuery, feeType, search string) (*models.Page[models.FeeService], error) {
	query := s.DB.Model(&models.FeeService{})
	if feeType != "" {
		query = query.Where("type = ?", feeType)
	}
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	return paginate[models.FeeService](query, page, "type ASC, name ASC")
}

// 2 GetFeeService loads one fee service
func (s *FeeServiceService) GetFeeService(id string) (*models.FeeService, error) {
	var feeService models.FeeService
	if err := s.DB.First(&feeService, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrFeeServiceNotFound)
	}
	return &feeService, nil
}

// 3 CreateFeeService adds a fee service with a unique name
func (s *FeeServiceService) CreateFeeService(feeService *models.FeeService) error {
	if !models.ValidFeeType(feeService.Type) {
		return ErrInvalidFeeType
	}
	if feeService.UnitPrice < 0 {
		return ErrInvalidAmount
	}
	if err := s.ensureUniqueName(feeService.Name, ""); err != nil {
		return err
	}
	feeService.UnitPrice = round2(feeService.UnitPrice)
	return duplicate(s.DB.Create(feeService).Error, ErrFeeServiceExists)
}

// 4 UpdateFeeService applies updates. Existing charges keep the amount they were created with.
func (s *FeeServiceService) UpdateFeeService(id string, updates map[string]interface{}) (*models.FeeService, error) {
	feeService, err := s.GetFeeService(id)
	if err != nil {
		return nil, err
	}

	if feeType, ok := updates["type"].(string); ok && !models.ValidFeeType(feeType) {
		return nil, ErrInvalidFeeType
	}
	if price, ok := updates["unit_price"].(float64); ok {
		if price < 0 {
			return nil, ErrInvalidAmount
		}
		updates["unit_price"] = round2(price)
	}
	if name, ok := updates["name"].(string); ok && name != feeService.Name {
		if err := s.ensureUniqueName(name, id); err != nil {
			return nil, err
		}
	}

	if err := s.DB.Model(feeService).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetFeeService(id)
}

// 5 DeleteFeeService removes a fee service no charge or vehicle refers to
func (s *FeeServiceService) DeleteFeeService(id string) error {
	feeService, err := s.GetFeeService(id)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.DB.Model(&models.FeeHousehold{}).Where("fee_service_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs == 0 {
		if err := s.DB.Model(&models.Vehicle{}).Where("fee_service_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
	}
	if refs > 0 {
		return ErrFeeServiceInUse
	}

	return s.DB.Delete(feeService).Error
}

func (s *FeeServiceService) ensureUniqueName(name, exceptID string) error {
	query := s.DB.Model(&models.FeeService{}).Where("name = ?", name)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrFeeServiceExists
	}
	return nil
}

// findFeeServiceByType returns the first fee service of a type, or nil when none exists
func findFeeServiceByType(db *gorm.DB, feeType string) (*models.FeeService, error) {
	var feeServices []models.FeeService
	if err := db.Where("type = ?", feeType).Order("created_at ASC").Limit(1).Find(&feeServices).Error; err != nil {
		return nil, err
	}
	if len(feeServices) == 0 {
		return nil, nil
	}
	return &feeServices[0], nil
}
