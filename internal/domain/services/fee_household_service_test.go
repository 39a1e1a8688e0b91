package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/events"
)

func TestAccrueMonthlyFees(t *testing.T) {
	db := newTestDB(t)
	pub := &recordingPublisher{}
	svc := NewFeeHouseholdService(db, testConfig(), pub, nil)
	createHousehold(t, db, "HKACT001", 60, true)
	createHousehold(t, db, "HKACT002", 45.5, true)
	createHousehold(t, db, "HKIDLE01", 80, false)

	result, err := svc.AccrueMonthlyFees(context.Background(), "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", result.Month)
	assert.Equal(t, 4, result.Created)
	assert.Equal(t, 0, result.Skipped)

	var fees []models.FeeHousehold
	require.NoError(t, db.Preload("FeeService").Where("household_id = ?", "HKACT001").Find(&fees).Error)
	require.Len(t, fees, 2)
	amounts := map[string]float64{}
	for _, f := range fees {
		amounts[f.FeeService.Type] = f.Amount
		assert.Equal(t, "2025-03", f.Month)
		assert.False(t, f.IsPaid)
	}
	assert.Equal(t, 420000.0, amounts[models.FeeTypeManagement])
	assert.Equal(t, 300000.0, amounts[models.FeeTypeService])

	var idle int64
	db.Model(&models.FeeHousehold{}).Where("household_id = ?", "HKIDLE01").Count(&idle)
	assert.Zero(t, idle)

	assert.Equal(t, []string{events.FeeAccrued}, pub.Types())
}

func TestAccrueTwiceCreatesNoDuplicates(t *testing.T) {
	db := newTestDB(t)
	pub := &recordingPublisher{}
	svc := NewFeeHouseholdService(db, testConfig(), pub, nil)
	createHousehold(t, db, "HKACT001", 60, true)

	_, err := svc.AccrueMonthlyFees(context.Background(), "2025-03")
	require.NoError(t, err)
	second, err := svc.AccrueMonthlyFees(context.Background(), "2025-03")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Skipped)

	var count int64
	db.Model(&models.FeeHousehold{}).Count(&count)
	assert.Equal(t, int64(2), count)
	assert.Len(t, pub.Types(), 1, "a run that creates nothing publishes nothing")

	next, err := svc.AccrueMonthlyFees(context.Background(), "2025-04")
	require.NoError(t, err)
	assert.Equal(t, 2, next.Created)
}

func TestAccrueInvalidMonth(t *testing.T) {
	svc := NewFeeHouseholdService(newTestDB(t), testConfig(), nil, nil)
	_, err := svc.AccrueMonthlyFees(context.Background(), "March")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestSetPaidAndFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeHouseholdService(db, testConfig(), nil, nil)
	createHousehold(t, db, "HKACT001", 60, true)
	_, err := svc.AccrueMonthlyFees(context.Background(), "2025-03")
	require.NoError(t, err)

	page, err := svc.GetFeeHouseholds(models.PaginationQuery{}, FeeHouseholdFilter{Month: "2025-03"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.NotNil(t, page.Items[0].FeeService)

	fee, err := svc.SetPaid(page.Items[0].ID, true)
	require.NoError(t, err)
	assert.True(t, fee.IsPaid)
	assert.NotNil(t, fee.PaidAt)

	paid := true
	page, err = svc.GetFeeHouseholds(models.PaginationQuery{}, FeeHouseholdFilter{HouseholdID: "HKACT001", IsPaid: &paid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	fee, err = svc.SetPaid(fee.ID, false)
	require.NoError(t, err)
	assert.False(t, fee.IsPaid)
	assert.Nil(t, fee.PaidAt)

	_, err = svc.SetPaid("missing", true)
	assert.ErrorIs(t, err, ErrFeeHouseholdNotFound)
}
