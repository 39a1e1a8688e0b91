package services

import (
	"strings"

	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
)

// InterfaceVehicleService manages parked vehicles
type InterfaceVehicleService interface {
	CreateVehicle(input VehicleInput) (*models.Vehicle, error)
	GetVehicles(page models.PaginationQuery, householdID, vehicleType string) (*models.Page[models.Vehicle], error)
	GetVehicle(id string) (*models.Vehicle, error)
	DeleteVehicle(id string) error
}

// VehicleInput holds a vehicle registration
type VehicleInput struct {
	HouseholdID  string
	LicensePlate string
	Type         string
	Brand        string
}

// VehicleService implements InterfaceVehicleService
type VehicleService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewVehicleService creates the vehicle service
func NewVehicleService(db *gorm.DB, cfg *config.Config) InterfaceVehicleService {
	return &VehicleService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateVehicle registers a vehicle. The parking fee service is resolved from the
// vehicle type through configuration and its unit price is copied at registration.
func (s *VehicleService) CreateVehicle(input VehicleInput) (*models.Vehicle, error) {
	feeName, ok := s.Config.VehicleFeeNames()[input.Type]
	if !ok {
		return nil, ErrVehicleTypeInvalid
	}

	if _, err := findHousehold(s.DB, input.HouseholdID); err != nil {
		return nil, err
	}

	plate := normalizePlate(input.LicensePlate)
	var count int64
	if err := s.DB.Model(&models.Vehicle{}).Where("license_plate = ?", plate).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrPlateExists
	}

	var feeServices []models.FeeService
	if err := s.DB.Where("name = ?", feeName).Limit(1).Find(&feeServices).Error; err != nil {
		return nil, err
	}
	if len(feeServices) == 0 {
		return nil, ErrFeeServiceMissing
	}
	feeService := feeServices[0]

	vehicle := &models.Vehicle{
		HouseholdID:   input.HouseholdID,
		LicensePlate:  plate,
		Type:          input.Type,
		Brand:         input.Brand,
		FeeServiceID:  feeService.ID,
		PricePerMonth: feeService.UnitPrice,
	}
	if err := s.DB.Create(vehicle).Error; err != nil {
		return nil, duplicate(err, ErrPlateExists)
	}
	vehicle.FeeService = &feeService
	return vehicle, nil
}

// 2 GetVehicles lists vehicles by household and type
func (s *VehicleService) GetVehicles(page models.PaginationQuery, householdID, vehicleType string) (*models.Page[models.Vehicle], error) {
	query := s.DB.Model(&models.Vehicle{}).Preload("FeeService")
	if householdID != "" {
		query = query.Where("household_id = ?", householdID)
	}
	if vehicleType != "" {
		query = query.Where("type = ?", vehicleType)
	}
	return paginate[models.Vehicle](query, page, "created_at DESC")
}

// 3 GetVehicle loads one vehicle
func (s *VehicleService) GetVehicle(id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.DB.Preload("FeeService").First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrVehicleNotFound)
	}
	return &vehicle, nil
}

// 4 DeleteVehicle removes a vehicle
func (s *VehicleService) DeleteVehicle(id string) error {
	vehicle, err := s.GetVehicle(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(vehicle).Error
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), ""))
}
