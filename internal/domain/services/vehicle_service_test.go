package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluemoon-http-service/internal/domain/models"
)

func TestCreateVehicleCopiesFee(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicleService(db, testConfig())
	createHousehold(t, db, "HKIDLE01", 60, false)

	v, err := svc.CreateVehicle(VehicleInput{HouseholdID: "HKIDLE01", LicensePlate: "29a-123 45", Type: models.VehicleMotorbike, Brand: "Honda"})
	require.NoError(t, err)
	assert.Equal(t, "29A-12345", v.LicensePlate)
	assert.Equal(t, 70000.0, v.PricePerMonth)
	require.NotNil(t, v.FeeService)
	assert.Equal(t, "Phí gửi xe máy", v.FeeService.Name)

	// later price changes do not touch registered vehicles
	require.NoError(t, db.Model(&models.FeeService{}).Where("id = ?", v.FeeServiceID).Update("unit_price", 90000).Error)
	got, err := svc.GetVehicle(v.ID)
	require.NoError(t, err)
	assert.Equal(t, 70000.0, got.PricePerMonth)

	car, err := svc.CreateVehicle(VehicleInput{HouseholdID: "HKIDLE01", LicensePlate: "30A-99999", Type: models.VehicleCar})
	require.NoError(t, err)
	assert.Equal(t, 1200000.0, car.PricePerMonth)
}

func TestCreateVehicleRejections(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicleService(db, testConfig())
	createHousehold(t, db, "HKACT001", 60, true)

	_, err := svc.CreateVehicle(VehicleInput{HouseholdID: "HKACT001", LicensePlate: "X1", Type: "bicycle"})
	assert.ErrorIs(t, err, ErrVehicleTypeInvalid)

	_, err = svc.CreateVehicle(VehicleInput{HouseholdID: "HKNONE01", LicensePlate: "X1", Type: models.VehicleCar})
	assert.ErrorIs(t, err, ErrHouseholdNotFound)

	_, err = svc.CreateVehicle(VehicleInput{HouseholdID: "HKACT001", LicensePlate: "X1", Type: models.VehicleCar})
	require.NoError(t, err)
	_, err = svc.CreateVehicle(VehicleInput{HouseholdID: "HKACT001", LicensePlate: "x 1", Type: models.VehicleMotorbike})
	assert.ErrorIs(t, err, ErrPlateExists)

	require.NoError(t, db.Where("name = ?", "Phí gửi xe máy").Delete(&models.FeeService{}).Error)
	_, err = svc.CreateVehicle(VehicleInput{HouseholdID: "HKACT001", LicensePlate: "X2", Type: models.VehicleMotorbike})
	assert.ErrorIs(t, err, ErrFeeServiceMissing)
}

func TestVehicleListAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicleService(db, testConfig())
	createHousehold(t, db, "HKACT001", 60, true)
	createHousehold(t, db, "HKACT002", 60, true)

	for _, in := range []VehicleInput{
		{HouseholdID: "HKACT001", LicensePlate: "A1", Type: models.VehicleCar},
		{HouseholdID: "HKACT001", LicensePlate: "A2", Type: models.VehicleMotorbike},
		{HouseholdID: "HKACT002", LicensePlate: "B1", Type: models.VehicleMotorbike},
	} {
		_, err := svc.CreateVehicle(in)
		require.NoError(t, err)
	}

	page, err := svc.GetVehicles(models.PaginationQuery{}, "HKACT001", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = svc.GetVehicles(models.PaginationQuery{}, "", models.VehicleMotorbike)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	require.NoError(t, svc.DeleteVehicle(page.Items[0].ID))
	assert.ErrorIs(t, svc.DeleteVehicle(page.Items[0].ID), ErrVehicleNotFound)
}
