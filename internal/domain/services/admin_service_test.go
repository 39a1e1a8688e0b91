package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/pkg/utils"
)

func TestCreateAdmin(t *testing.T) {
	svc := NewAdminService(newTestDB(t), testConfig())

	admin := &models.Admin{Username: "totruong", Password: "pw", Role: models.RoleLeader}
	require.NoError(t, svc.CreateAdmin(admin))
	assert.NotEmpty(t, admin.ID)
	assert.True(t, utils.CheckPasswordHash("pw", admin.Password))
	assert.Equal(t, "active", admin.Status)

	err := svc.CreateAdmin(&models.Admin{Username: "totruong", Password: "pw"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	err = svc.CreateAdmin(&models.Admin{Username: "x", Password: "pw", Role: "system_admin"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestGetAllAdminsFiltersByRole(t *testing.T) {
	svc := NewAdminService(newTestDB(t), testConfig())
	require.NoError(t, svc.CreateAdmin(&models.Admin{Username: "a1", Password: "pw", Role: models.RoleAdmin}))
	require.NoError(t, svc.CreateAdmin(&models.Admin{Username: "l1", Password: "pw", Role: models.RoleLeader}))
	require.NoError(t, svc.CreateAdmin(&models.Admin{Username: "l2", Password: "pw", Role: models.RoleLeader}))

	page, err := svc.GetAllAdmins(models.PaginationQuery{}, "", models.RoleLeader)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = svc.GetAllAdmins(models.PaginationQuery{}, "a1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestDeleteLastAdmin(t *testing.T) {
	svc := NewAdminService(newTestDB(t), testConfig())
	admin := &models.Admin{Username: "root", Password: "pw", Role: models.RoleAdmin}
	require.NoError(t, svc.CreateAdmin(admin))
	leader := &models.Admin{Username: "leader", Password: "pw", Role: models.RoleLeader}
	require.NoError(t, svc.CreateAdmin(leader))

	assert.ErrorIs(t, svc.DeleteAdmin(admin.ID), ErrLastAdmin)
	_, err := svc.UpdateAdmin(admin.ID, map[string]interface{}{"role": models.RoleLeader})
	assert.ErrorIs(t, err, ErrLastAdmin)

	assert.NoError(t, svc.DeleteAdmin(leader.ID))
	assert.ErrorIs(t, svc.DeleteAdmin(leader.ID), ErrAdminNotFound)

	second := &models.Admin{Username: "root2", Password: "pw", Role: models.RoleAdmin}
	require.NoError(t, svc.CreateAdmin(second))
	assert.NoError(t, svc.DeleteAdmin(admin.ID))
}

func TestUpdateAdminPasswordClearsSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, testConfig())
	admin := &models.Admin{Username: "root", Password: "old", Role: models.RoleAdmin}
	require.NoError(t, svc.CreateAdmin(admin))
	require.NoError(t, db.Model(admin).UpdateColumn("refresh_token", "abc").Error)

	updated, err := svc.UpdateAdmin(admin.ID, map[string]interface{}{"password": "new", "full_name": "Root"})
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("new", updated.Password))
	assert.Empty(t, updated.RefreshToken)
	assert.Equal(t, "Root", updated.FullName)
}

func TestDeactivateLastAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, testConfig())
	admin := &models.Admin{Username: "root", Password: "pw", Role: models.RoleAdmin}
	require.NoError(t, svc.CreateAdmin(admin))

	_, err := svc.UpdateAdmin(admin.ID, map[string]interface{}{"status": models.AdminInactive})
	assert.ErrorIs(t, err, ErrLastAdmin)

	got, err := svc.GetAdminByID(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AdminActive, got.Status)

	// an inactive admin does not count as a replacement
	dormant := &models.Admin{Username: "dormant", Password: "pw", Role: models.RoleAdmin, Status: models.AdminInactive}
	require.NoError(t, svc.CreateAdmin(dormant))
	_, err = svc.UpdateAdmin(admin.ID, map[string]interface{}{"status": models.AdminInactive})
	assert.ErrorIs(t, err, ErrLastAdmin)
	assert.ErrorIs(t, svc.DeleteAdmin(admin.ID), ErrLastAdmin)
	assert.NoError(t, svc.DeleteAdmin(dormant.ID))

	second := &models.Admin{Username: "root2", Password: "pw", Role: models.RoleAdmin}
	require.NoError(t, svc.CreateAdmin(second))
	updated, err := svc.UpdateAdmin(admin.ID, map[string]interface{}{"status": models.AdminInactive})
	require.NoError(t, err)
	assert.Equal(t, models.AdminInactive, updated.Status)
	_, err = svc.UpdateAdmin(second.ID, map[string]interface{}{"status": models.AdminInactive})
	assert.ErrorIs(t, err, ErrLastAdmin)
}
