package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/pkg/utils"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultAdminPassword: "admin123",
		VehicleFeeMotorbike:  "Phí gửi xe máy",
		VehicleFeeCar:        "Phí gửi ô tô",
	}
}

func TestMigrateSeedAndEnsureAdmin(t *testing.T) {
	db := newSQLiteDB(t)
	cfg := testConfig()

	require.NoError(t, Migrate(db, "auto"))
	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "%T table missing", m)
	}

	require.NoError(t, SeedFeeServices(db, cfg))
	require.NoError(t, SeedFeeServices(db, cfg))
	var feeCount int64
	db.Model(&models.FeeService{}).Count(&feeCount)
	assert.Equal(t, int64(len(DefaultFeeServices(cfg))), feeCount)

	var moto models.FeeService
	require.NoError(t, db.Where("name = ?", cfg.VehicleFeeMotorbike).First(&moto).Error)
	assert.Equal(t, models.FeeTypeParking, moto.Type)

	require.NoError(t, EnsureAdminExists(db, cfg))
	require.NoError(t, EnsureAdminExists(db, cfg))
	var admins []models.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, models.RoleAdmin, admins[0].Role)
	assert.True(t, utils.CheckPasswordHash("admin123", admins[0].Password))
}

func TestDropAndRecreateTables(t *testing.T) {
	db := newSQLiteDB(t)
	require.NoError(t, AutoMigrate(db))
	require.NoError(t, db.Create(&models.Household{ID: "HKAAAAAA", Area: 50}).Error)

	require.NoError(t, Migrate(db, "drop"))

	var count int64
	db.Model(&models.Household{}).Count(&count)
	assert.Zero(t, count)
}
