package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluemoon-http-service/internal/domain/models"
)

func TestCreateUtilityUsage(t *testing.T) {
	db := newTestDB(t)
	svc := NewUtilityUsageService(db, testConfig(), nil)
	createHousehold(t, db, "HKACT001", 60, true)

	usage, err := svc.CreateUtilityUsage(UtilityUsageInput{
		HouseholdID: "HKACT001", Month: "2025-03", Electricity: 120.5, Water: 10.3, Internet: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 421750.0, usage.ElectricityPrice)
	assert.Equal(t, 154500.0, usage.WaterPrice)
	assert.Equal(t, 200000.0, usage.InternetPrice)
	assert.Equal(t, usage.ElectricityPrice+usage.WaterPrice+usage.InternetPrice, usage.TotalPrice)
	assert.False(t, usage.IsPaid)

	stored, err := svc.GetUtilityUsage(usage.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ElectricityPrice+stored.WaterPrice+stored.InternetPrice, stored.TotalPrice)
}

func TestCreateUtilityUsageWithoutInternet(t *testing.T) {
	db := newTestDB(t)
	svc := NewUtilityUsageService(db, testConfig(), nil)
	createHousehold(t, db, "HKACT001", 60, true)

	usage, err := svc.CreateUtilityUsage(UtilityUsageInput{HouseholdID: "HKACT001", Month: "2025-03", Electricity: 0.333, Water: 0.777})
	require.NoError(t, err)
	assert.Zero(t, usage.InternetPrice)
	assert.Equal(t, 1165.5, usage.ElectricityPrice)
	assert.Equal(t, 11655.0, usage.WaterPrice)
	assert.Equal(t, 12820.5, usage.TotalPrice)
}

func TestCreateUtilityUsageDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUtilityUsageService(db, testConfig(), nil)
	createHousehold(t, db, "HKACT001", 60, true)

	_, err := svc.CreateUtilityUsage(UtilityUsageInput{HouseholdID: "HKACT001", Month: "2025-03", Electricity: 1, Water: 1})
	require.NoError(t, err)
	_, err = svc.CreateUtilityUsage(UtilityUsageInput{HouseholdID: "HKACT001", Month: "2025-03", Electricity: 2, Water: 2})
	assert.ErrorIs(t, err, ErrUtilityUsageExists)

	var count int64
	db.Model(&models.UtilityUsage{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateUtilityUsageRejections(t *testing.T) {
	db := newTestDB(t)
	svc := NewUtilityUsageService(db, testConfig(), nil)
	createHousehold(t, db, "HKIDLE01", 60, false)
	createHousehold(t, db, "HKACT001", 60, true)

	_, err := svc.CreateUtilityUsage(UtilityUsageInput{HouseholdID: "HKIDLE01", Month: "2025-03"})
	assert.ErrorIs(t, err, ErrHouseholdInactive)

	_, err = svc.CreateUtilityUsage(UtilityUsageInput{HouseholdID: "HKNONE01", Month: "2025-03"})
	assert.ErrorIs(t, err, ErrHouseholdNotFound)

	_, err = svc.CreateUtilityUsage(UtilityUsageInput{HouseholdID: "HKACT001", Month: "2025-3x"})
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = svc.CreateUtilityUsage(UtilityUsageInput{HouseholdID: "HKACT001", Month: "2025-03", Water: -1})
	assert.ErrorIs(t, err, ErrInvalidReading)

	require.NoError(t, db.Where("type = ?", models.FeeTypeWater).Delete(&models.FeeService{}).Error)
	_, err = svc.CreateUtilityUsage(UtilityUsageInput{HouseholdID: "HKACT001", Month: "2025-03", Electricity: 1})
	assert.ErrorIs(t, err, ErrFeeServiceMissing)
}

func TestPayUtility(t *testing.T) {
	db := newTestDB(t)
	svc := NewUtilityUsageService(db, testConfig(), nil)
	createHousehold(t, db, "HKACT001", 60, true)

	usage, err := svc.CreateUtilityUsage(UtilityUsageInput{HouseholdID: "HKACT001", Month: "2025-03", Electricity: 10, Water: 2})
	require.NoError(t, err)

	usage, err = svc.PayUtility(usage.ID, models.UtilityElectricity)
	require.NoError(t, err)
	assert.True(t, usage.ElectricityPaid)
	assert.False(t, usage.IsPaid)

	usage, err = svc.PayUtility(usage.ID, models.UtilityWater)
	require.NoError(t, err)
	assert.True(t, usage.IsPaid, "internet carries no charge")

	_, err = svc.PayUtility(usage.ID, "gas")
	assert.ErrorIs(t, err, ErrInvalidUtility)

	paid := true
	page, err := svc.GetUtilityUsages(models.PaginationQuery{}, UtilityUsageFilter{IsPaid: &paid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestPayUtilityAll(t *testing.T) {
	db := newTestDB(t)
	svc := NewUtilityUsageService(db, testConfig(), nil)
	createHousehold(t, db, "HKACT001", 60, true)

	usage, err := svc.CreateUtilityUsage(UtilityUsageInput{HouseholdID: "HKACT001", Month: "2025-03", Electricity: 10, Water: 2, Internet: true})
	require.NoError(t, err)

	usage, err = svc.PayUtility(usage.ID, models.UtilityAll)
	require.NoError(t, err)
	assert.True(t, usage.IsPaid)

	require.NoError(t, svc.DeleteUtilityUsage(usage.ID))
	_, err = svc.GetUtilityUsage(usage.ID)
	assert.ErrorIs(t, err, ErrUtilityUsageNotFound)
}
