package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/app/controllers"
	"bluemoon-http-service/internal/app/middleware"
	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/infrastructure/config"
)

const apiPrefix = "/api/v1"

// Role sets used by the route policy
var (
	adminOnly   = []string{models.RoleAdmin}
	leaders     = []string{models.RoleAdmin, models.RoleLeader}
	accountants = []string{models.RoleAdmin, models.RoleAccountant}
	anyStaff    = []string{models.RoleAdmin, models.RoleLeader, models.RoleAccountant}
)

// SetupRouter builds the engine with middleware and every API route
func SetupRouter(serviceContainer *container.ServiceContainer, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	middleware.InitAuthMiddleware(serviceContainer.GetService("jwt").(services.InterfaceJWTService))
	middleware.UseRedisCache(serviceContainer.GetRedisService())

	registerRoutes(r, serviceContainer, cfg)
	return r
}

// registerRoutes mounts the public and role-guarded groups under /api/v1
func registerRoutes(r *gin.Engine, container *container.ServiceContainer, cfg *config.Config) {
	rps, burst := cfg.RateLimitRPS, cfg.RateLimitBurst
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 20
	}

	api := r.Group(apiPrefix)
	api.Use(middleware.IPRateLimiter(float64(rps), burst))

	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

func registerPublicRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health/status", controllers.HandleHealthFunc(container, "status"))

	authGroup := api.Group("/auth")
	authGroup.POST("/login", controllers.HandleJWTFunc(container, "login"))
	authGroup.POST("/refresh", controllers.HandleJWTFunc(container, "refresh"))
}

func registerAuthenticatedRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	authGroup := api.Group("/auth")
	authGroup.POST("/logout", middleware.RequireRoles(anyStaff...), controllers.HandleJWTFunc(container, "logout"))
	authGroup.GET("/me", middleware.RequireRoles(anyStaff...), controllers.HandleJWTFunc(container, "me"))
	authGroup.POST("/register", middleware.RequireRoles(adminOnly...), controllers.HandleJWTFunc(container, "register"))

	api.GET("/health/cache-stats", middleware.RequireRoles(adminOnly...), controllers.HandleHealthFunc(container, "cacheStats"))

	// Staff accounts
	adminGroup := api.Group("/admins", middleware.RequireRoles(adminOnly...))
	adminGroup.GET("", controllers.HandleAdminFunc(container, "getAdmins"))
	adminGroup.GET("/:id", controllers.HandleAdminFunc(container, "getAdmin"))
	adminGroup.PUT("/:id", controllers.HandleAdminFunc(container, "updateAdmin"))
	adminGroup.DELETE("/:id", controllers.HandleAdminFunc(container, "deleteAdmin"))

	// Households and membership
	householdGroup := api.Group("/households", middleware.RequireRoles(leaders...))
	householdGroup.GET("", controllers.HandleHouseholdFunc(container, "getHouseholds"))
	householdGroup.GET("/:id", controllers.HandleHouseholdFunc(container, "getHousehold"))
	householdGroup.POST("", controllers.HandleHouseholdFunc(container, "createHousehold"))
	householdGroup.PUT("/:id", controllers.HandleHouseholdFunc(container, "updateHousehold"))
	householdGroup.DELETE("/:id", controllers.HandleHouseholdFunc(container, "deleteHousehold"))
	householdGroup.GET("/:id/members", controllers.HandleHouseholdFunc(container, "getMembers"))
	householdGroup.POST("/:id/members", controllers.HandleHouseholdFunc(container, "addMember"))
	householdGroup.DELETE("/:id/members/:user_id", controllers.HandleHouseholdFunc(container, "removeMember"))

	// Residents
	userGroup := api.Group("/users", middleware.RequireRoles(leaders...))
	userGroup.GET("", controllers.HandleUserFunc(container, "getUsers"))
	userGroup.GET("/:id", controllers.HandleUserFunc(container, "getUser"))
	userGroup.POST("", controllers.HandleUserFunc(container, "createUser"))
	userGroup.PUT("/:id", controllers.HandleUserFunc(container, "updateUser"))
	userGroup.DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))

	// Fee catalogue, cached until the next successful write
	feeServiceCache := middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute})
	feeServiceGroup := api.Group("/fee-services", middleware.RequireRoles(accountants...), middleware.PurgeOnWrite(apiPrefix+"/fee-services"))
	feeServiceGroup.GET("", feeServiceCache, controllers.HandleFeeServiceFunc(container, "getFeeServices"))
	feeServiceGroup.GET("/:id", feeServiceCache, controllers.HandleFeeServiceFunc(container, "getFeeService"))
	feeServiceGroup.POST("", controllers.HandleFeeServiceFunc(container, "createFeeService"))
	feeServiceGroup.PUT("/:id", controllers.HandleFeeServiceFunc(container, "updateFeeService"))
	feeServiceGroup.DELETE("/:id", controllers.HandleFeeServiceFunc(container, "deleteFeeService"))

	feeHouseholdGroup := api.Group("/fee-households", middleware.RequireRoles(accountants...))
	feeHouseholdGroup.GET("", controllers.HandleFeeHouseholdFunc(container, "getFeeHouseholds"))
	feeHouseholdGroup.POST("/accrue", controllers.HandleFeeHouseholdFunc(container, "accrue"))
	feeHouseholdGroup.GET("/:id", controllers.HandleFeeHouseholdFunc(container, "getFeeHousehold"))
	feeHouseholdGroup.PATCH("/:id/payment", controllers.HandleFeeHouseholdFunc(container, "setPaid"))

	utilityGroup := api.Group("/utility-usages", middleware.RequireRoles(accountants...))
	utilityGroup.GET("", controllers.HandleUtilityUsageFunc(container, "getUtilityUsages"))
	utilityGroup.GET("/:id", controllers.HandleUtilityUsageFunc(container, "getUtilityUsage"))
	utilityGroup.POST("", controllers.HandleUtilityUsageFunc(container, "createUtilityUsage"))
	utilityGroup.PATCH("/:id/payment", controllers.HandleUtilityUsageFunc(container, "payUtility"))
	utilityGroup.DELETE("/:id", controllers.HandleUtilityUsageFunc(container, "deleteUtilityUsage"))

	vehicleGroup := api.Group("/vehicles", middleware.RequireRoles(anyStaff...))
	vehicleGroup.GET("", controllers.HandleVehicleFunc(container, "getVehicles"))
	vehicleGroup.GET("/:id", controllers.HandleVehicleFunc(container, "getVehicle"))
	vehicleGroup.POST("", controllers.HandleVehicleFunc(container, "createVehicle"))
	vehicleGroup.DELETE("/:id", controllers.HandleVehicleFunc(container, "deleteVehicle"))

	// Contributions
	fundGroup := api.Group("/funds", middleware.RequireRoles(accountants...))
	fundGroup.GET("", controllers.HandleContributionFunc(container, "getFunds"))
	fundGroup.GET("/:id", controllers.HandleContributionFunc(container, "getFund"))
	fundGroup.POST("", controllers.HandleContributionFunc(container, "createFund"))
	fundGroup.GET("/:id/contributions", controllers.HandleContributionFunc(container, "getDonations"))
	fundGroup.POST("/:id/contributions", controllers.HandleContributionFunc(container, "createDonation"))

	campaignGroup := api.Group("/campaigns", middleware.RequireRoles(accountants...))
	campaignGroup.GET("", controllers.HandleContributionFunc(container, "getCampaigns"))
	campaignGroup.GET("/:id", controllers.HandleContributionFunc(container, "getCampaign"))
	campaignGroup.POST("", controllers.HandleContributionFunc(container, "createCampaign"))
	campaignGroup.PATCH("/:id/close", controllers.HandleContributionFunc(container, "closeCampaign"))
	campaignGroup.GET("/:id/payments", controllers.HandleContributionFunc(container, "getPayments"))
	campaignGroup.POST("/:id/payments", controllers.HandleContributionFunc(container, "createPayment"))

	// Feedback: any staff member may file it, leaders work it
	feedbackGroup := api.Group("/feedback")
	feedbackGroup.POST("", middleware.RequireRoles(anyStaff...), controllers.HandleReportUserFunc(container, "createReport"))
	feedbackGroup.GET("", middleware.RequireRoles(leaders...), controllers.HandleReportUserFunc(container, "getReports"))
	feedbackGroup.GET("/:id", middleware.RequireRoles(leaders...), controllers.HandleReportUserFunc(container, "getReport"))
	feedbackGroup.PATCH("/:id/status", middleware.RequireRoles(leaders...), controllers.HandleReportUserFunc(container, "updateReportStatus"))
	feedbackGroup.DELETE("/:id", middleware.RequireRoles(leaders...), controllers.HandleReportUserFunc(container, "deleteReport"))

	reportGroup := api.Group("/reports", middleware.RequireRoles(anyStaff...))
	reportGroup.GET("/dashboard", controllers.HandleReportFunc(container, "dashboard"))
	reportGroup.GET("/fee-households/export", controllers.HandleReportFunc(container, "exportFees"))
	reportGroup.GET("/utility-usages/export", controllers.HandleReportFunc(container, "exportUtilities"))
}
