package database

import (
	"fmt"

	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/pkg/logger"
	"bluemoon-http-service/pkg/utils"
)

// Migrate runs the schema step selected by DB_MIGRATION_MODE
func Migrate(db *gorm.DB, mode string) error {
	if mode == "drop" {
		logger.Warning("running in drop mode: every table will be dropped and recreated")
		return DropAndRecreateTables(db)
	}
	return AutoMigrate(db)
}

// AutoMigrate creates missing tables, columns and indexes. It never drops columns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("database migration completed")
	return nil
}

// DropAndRecreateTables drops every model table, dependents first, then migrates
func DropAndRecreateTables(db *gorm.DB) error {
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop table for %T: %w", all[i], err)
		}
	}
	return AutoMigrate(db)
}

// DefaultFeeServices are inserted on first start so utility pricing, accrual
// and vehicle registration work out of the box.
func DefaultFeeServices(cfg *config.Config) []models.FeeService {
	return []models.FeeService{
		{Name: "Tiền điện", Type: models.FeeTypeElectricity, UnitPrice: 3500, Unit: "kWh", Required: true},
		{Name: "Tiền nước", Type: models.FeeTypeWater, UnitPrice: 15000, Unit: "m3", Required: true},
		{Name: "Internet", Type: models.FeeTypeInternet, UnitPrice: 200000, Unit: "tháng"},
		{Name: "Phí quản lý", Type: models.FeeTypeManagement, UnitPrice: 7000, Unit: "m2", Required: true},
		{Name: "Phí dịch vụ", Type: models.FeeTypeService, UnitPrice: 5000, Unit: "m2", Required: true},
		{Name: cfg.VehicleFeeMotorbike, Type: models.FeeTypeParking, UnitPrice: 70000, Unit: "xe/tháng"},
		{Name: cfg.VehicleFeeCar, Type: models.FeeTypeParking, UnitPrice: 1200000, Unit: "xe/tháng"},
	}
}

// SeedFeeServices inserts the default fee services when the table is empty
func SeedFeeServices(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.FeeService{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := DefaultFeeServices(cfg)
	if err := db.Create(&defaults).Error; err != nil {
		return fmt.Errorf("seed fee services: %w", err)
	}
	logger.Info("seeded %d default fee services", len(defaults))
	return nil
}

// EnsureAdminExists creates the default admin account when no admin exists
func EnsureAdminExists(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.Admin{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	admin := models.Admin{
		Username: "admin",
		Password: hashed,
		FullName: "Administrator",
		Role:     models.RoleAdmin,
		Status:   "active",
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	logger.Info("default admin account created")
	return nil
}
