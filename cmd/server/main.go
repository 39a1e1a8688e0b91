// @title           BlueMoon Building Admin API
// @version         1.0
// @description     Administration API for the BlueMoon residential building: households, residents, fees, utilities, vehicles, contributions and feedback.

// @BasePath  /api/v1

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer ` prefix
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bluemoon-http-service/internal/app/routes"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/infrastructure/cache"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/internal/infrastructure/database"
	"bluemoon-http-service/internal/infrastructure/events"
	"bluemoon-http-service/pkg/logger"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.GetConfig()
	if err := logger.SetupLogger(logger.Options{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Dir:         cfg.LogDir,
		ServiceName: "bluemoon-http-service",
	}); err != nil {
		fmt.Printf("failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Warning("no .env file loaded: %v", envErr)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	if cfg.EnvType == "SERVER" {
		gin.SetMode(gin.ReleaseMode)
	}

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		logger.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer pool.Close()
	db := pool.GetDB()

	if err := database.Migrate(db, cfg.DBMigrationMode); err != nil {
		logger.Error("migration failed: %v", err)
		os.Exit(1)
	}
	if err := database.SeedFeeServices(db, cfg); err != nil {
		logger.Error("failed to seed fee services: %v", err)
		os.Exit(1)
	}
	if err := database.EnsureAdminExists(db, cfg); err != nil {
		logger.Error("failed to create default admin: %v", err)
		os.Exit(1)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		logger.Warning("redis unavailable, falling back to in-process cache: %v", err)
		redisClient = nil
	}
	publisher := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)

	serviceContainer := container.NewServiceContainer(db, cfg, redisClient, publisher)
	defer serviceContainer.Close()

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           routes.SetupRouter(serviceContainer, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSystemInfo(pool)

	go func() {
		logger.Info("server listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed: %v", err)
	}
}

// printSystemInfo logs pool and runtime figures at startup
func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		logger.Info("database pool: %+v", stats)
	}
	logger.Info("cpus=%d goroutines=%d", runtime.NumCPU(), runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	logger.Info("memory: alloc=%vMiB total_alloc=%vMiB sys=%vMiB", m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)
}
