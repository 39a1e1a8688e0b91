package container

import (
	"sync"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/internal/infrastructure/events"
)

// ServiceContainer wires every service once and hands them out by name
type ServiceContainer struct {
	db        *gorm.DB
	config    *config.Config
	redis     *redis.Client
	publisher events.Publisher

	jwtService          services.InterfaceJWTService
	redisService        services.InterfaceRedisService
	adminService        services.InterfaceAdminService
	householdService    services.InterfaceHouseholdService
	userService         services.InterfaceUserService
	feeServiceService   services.InterfaceFeeServiceService
	feeHouseholdService services.InterfaceFeeHouseholdService
	utilityUsageService services.InterfaceUtilityUsageService
	vehicleService      services.InterfaceVehicleService
	contributionService services.InterfaceContributionService
	reportUserService   services.InterfaceReportUserService
	reportService       services.InterfaceReportService

	mu sync.RWMutex
}

// NewServiceContainer builds the container. redisClient may be nil and publisher
// defaults to a NopPublisher.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client, publisher events.Publisher) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	container := &ServiceContainer{
		db:        db,
		config:    cfg,
		redis:     redisClient,
		publisher: publisher,
	}
	container.initializeServices()
	return container
}

func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config, c.db)
	c.redisService = services.NewRedisService(c.redis)

	c.adminService = services.NewAdminService(c.db, c.config)
	c.householdService = services.NewHouseholdService(c.db, c.config)
	c.userService = services.NewUserService(c.db, c.config)
	c.feeServiceService = services.NewFeeServiceService(c.db, c.config)
	c.feeHouseholdService = services.NewFeeHouseholdService(c.db, c.config, c.publisher, c.redisService)
	c.utilityUsageService = services.NewUtilityUsageService(c.db, c.config, c.redisService)
	c.vehicleService = services.NewVehicleService(c.db, c.config)
	c.contributionService = services.NewContributionService(c.db, c.config, c.publisher)
	c.reportUserService = services.NewReportUserService(c.db, c.config, c.publisher)
	c.reportService = services.NewReportService(c.db, c.config, c.redisService)
}

// GetService returns the named service, or nil for an unknown name
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "admin":
		return c.adminService
	case "household":
		return c.householdService
	case "user":
		return c.userService
	case "fee_service":
		return c.feeServiceService
	case "fee_household":
		return c.feeHouseholdService
	case "utility_usage":
		return c.utilityUsageService
	case "vehicle":
		return c.vehicleService
	case "contribution":
		return c.contributionService
	case "report_user":
		return c.reportUserService
	case "report":
		return c.reportService
	default:
		return nil
	}
}

// GetDB returns the database handle
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig returns the configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetRedisService returns the Redis service, nil when Redis is disabled
func (c *ServiceContainer) GetRedisService() services.InterfaceRedisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redisService
}

// Close releases the event publisher and the Redis client
func (c *ServiceContainer) Close() error {
	if c.redis != nil {
		c.redis.Close()
	}
	return c.publisher.Close()
}
