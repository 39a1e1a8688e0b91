package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")

	cfg := LoadConfig()

	assert.Equal(t, "LOCAL", cfg.EnvType)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "auto", cfg.DBMigrationMode)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, "Phí gửi xe máy", cfg.VehicleFeeMotorbike)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_PrefixOverridesPlainKey(t *testing.T) {
	t.Setenv("ENV_TYPE", "server")
	t.Setenv("DB_HOST", "plain-host")
	t.Setenv("SERVER_DB_HOST", "server-host")
	t.Setenv("LOCAL_DB_HOST", "local-host")

	cfg := LoadConfig()

	assert.Equal(t, "SERVER", cfg.EnvType)
	assert.Equal(t, "server-host", cfg.DBHost)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadConfig_UnknownEnvFallsBackToLocal(t *testing.T) {
	t.Setenv("ENV_TYPE", "staging")
	t.Setenv("LOCAL_SERVER_PORT", "9090")

	cfg := LoadConfig()

	assert.Equal(t, "LOCAL", cfg.EnvType)
	assert.Equal(t, "9090", cfg.ServerPort)
}

func TestLoadConfig_TypedValues(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("REFRESH_TOKEN_TTL", "not-a-duration")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_ENABLED", "true")

	cfg := LoadConfig()

	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.RedisEnabled)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		DBDriver:        "sqlite",
		SQLitePath:      "test.db",
		JWTSecretKey:    "secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "test.db", cfg.GetDSN())

	cfg.DBDriver = "postgres"
	assert.Error(t, cfg.Validate())

	cfg.DBDriver = "sqlite"
	cfg.RefreshTokenTTL = time.Second
	assert.Error(t, cfg.Validate())
}

func TestGetDSN_MySQL(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBName: "bm"}
	assert.Equal(t, "u:p@tcp(h:3306)/bm?charset=utf8mb4&parseTime=True&loc=Local", cfg.GetDSN())
}

func TestVehicleFeeNames(t *testing.T) {
	cfg := &Config{VehicleFeeMotorbike: "moto", VehicleFeeCar: "auto"}
	names := cfg.VehicleFeeNames()
	assert.Equal(t, "moto", names["motorbike"])
	assert.Equal(t, "auto", names["car"])
	assert.Len(t, names, 2)
}
