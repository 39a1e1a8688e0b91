package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string // "mysql" (default) or "sqlite"
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	SQLitePath      string
	DBMigrationMode string // "auto" (default) or "drop"
	DBLogLevel      string // silent, error, warn, info

	// Server
	ServerPort      string
	CORSAllowOrigin string
	RateLimitRPS    int // requests per second per client IP
	RateLimitBurst  int

	// Redis
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// AMQP events; empty URL disables publishing
	AMQPURL      string
	AMQPExchange string

	// JWT Authentication
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool

	// Admin
	DefaultAdminPassword string

	// Vehicle type -> fee service name
	VehicleFeeMotorbike string
	VehicleFeeCar       string

	// Logging
	LogLevel  string
	LogFormat string
	LogDir    string
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	envType := strings.ToUpper(getEnv("ENV_TYPE", "LOCAL"))
	prefix := ""

	switch envType {
	case "LOCAL":
		prefix = "LOCAL_"
	case "SERVER":
		prefix = "SERVER_"
	default:
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	// prefixed key wins over the plain key
	env := func(key, defaultValue string) string {
		return getEnv(prefix+key, getEnv(key, defaultValue))
	}

	return &Config{
		EnvType: envType,

		DBDriver:        strings.ToLower(env("DB_DRIVER", "mysql")),
		DBHost:          env("DB_HOST", "localhost"),
		DBUser:          env("DB_USER", "root"),
		DBPassword:      env("DB_PASSWORD", ""),
		DBName:          env("DB_NAME", "bluemoon"),
		DBPort:          env("DB_PORT", "3306"),
		SQLitePath:      env("SQLITE_PATH", "bluemoon.db"),
		DBMigrationMode: env("DB_MIGRATION_MODE", "auto"),
		DBLogLevel:      env("DB_LOG_LEVEL", "warn"),

		ServerPort:      env("SERVER_PORT", "8080"),
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "http://localhost:5173"),
		RateLimitRPS:    getEnvAsInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 20),

		RedisEnabled:  getEnvAsBool(prefix+"REDIS_ENABLED", getEnvAsBool("REDIS_ENABLED", false)),
		RedisHost:     env("REDIS_HOST", "localhost"),
		RedisPort:     env("REDIS_PORT", "6379"),
		RedisPassword: env("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		AMQPURL:      env("AMQP_URL", ""),
		AMQPExchange: env("AMQP_EXCHANGE", "bluemoon.events"),

		JWTSecretKey:    getEnv("JWT_SECRET_KEY", "bluemoon-secret-key-change-in-production"),
		AccessTokenTTL:  getEnvAsDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvAsDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		CookieSecure:    getEnvAsBool("COOKIE_SECURE", envType == "SERVER"),

		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),

		VehicleFeeMotorbike: getEnv("VEHICLE_FEE_MOTORBIKE", "Phí gửi xe máy"),
		VehicleFeeCar:       getEnv("VEHICLE_FEE_CAR", "Phí gửi ô tô"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		LogDir:    getEnv("LOG_DIR", "logs"),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql":
		if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
			return fmt.Errorf("mysql driver requires DB_HOST, DB_NAME and DB_USER")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite driver requires SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY must not be empty")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= c.AccessTokenTTL {
		return fmt.Errorf("refresh token TTL must be longer than access token TTL")
	}
	return nil
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// VehicleFeeNames maps each supported vehicle type to its fee service name.
func (c *Config) VehicleFeeNames() map[string]string {
	return map[string]string{
		"motorbike": c.VehicleFeeMotorbike,
		"car":       c.VehicleFeeCar,
	}
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
