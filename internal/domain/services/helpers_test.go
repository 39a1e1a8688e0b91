package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluemoon-http-service/internal/domain/models"
)

func TestNormalizeMonth(t *testing.T) {
	m, err := NormalizeMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", m)

	m, err = NormalizeMonth("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01"), m)

	for _, bad := range []string{"2025-13", "03-2025", "2025/03", "abc"} {
		_, err := NormalizeMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidMonth, bad)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.3, round2(0.1+0.2))
	assert.Equal(t, 1.01, round2(1.005000001))
	assert.Equal(t, 350000.0, round2(100*3500))
}

func TestPaginate(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 23; i++ {
		createUser(t, db, "Resident", "CID"+string(rune('A'+i)))
	}

	page, err := paginate[models.User](db.Model(&models.User{}), models.PaginationQuery{Page: 3, Limit: 10}, "citizen_id ASC")
	require.NoError(t, err)
	assert.Equal(t, int64(23), page.Total)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 3, page.Page)

	page, err = paginate[models.User](db.Model(&models.User{}).Where("citizen_id = ?", "none"), models.PaginationQuery{}, "id")
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 10, page.Limit)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrVehicleNotFound))
	assert.False(t, IsNotFound(ErrPlateExists))
}
