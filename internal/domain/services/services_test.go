package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/internal/infrastructure/database"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:         "test-secret",
		AccessTokenTTL:       15 * time.Minute,
		RefreshTokenTTL:      7 * 24 * time.Hour,
		DefaultAdminPassword: "admin123",
		VehicleFeeMotorbike:  "Phí gửi xe máy",
		VehicleFeeCar:        "Phí gửi ô tô",
	}
}

// newTestDB returns a migrated in-memory database seeded with the default fee services
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedFeeServices(db, testConfig()))
	return db
}

func createHousehold(t *testing.T, db *gorm.DB, id string, area float64, active bool) *models.Household {
	t.Helper()
	h := &models.Household{ID: id, Area: area}
	require.NoError(t, db.Create(h).Error)
	if active {
		require.NoError(t, db.Model(h).Update("is_active", true).Error)
		h.IsActive = true
	}
	return h
}

func createUser(t *testing.T, db *gorm.DB, name, citizenID string) *models.User {
	t.Helper()
	u := &models.User{FullName: name, CitizenID: citizenID}
	require.NoError(t, db.Create(u).Error)
	return u
}

func feeServiceByName(t *testing.T, db *gorm.DB, name string) models.FeeService {
	t.Helper()
	var fs models.FeeService
	require.NoError(t, db.Where("name = ?", name).First(&fs).Error)
	return fs
}

type publishedEvent struct {
	Type    string
	Payload interface{}
}

// recordingPublisher keeps every published event in memory
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}
