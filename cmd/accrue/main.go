// Command accrue creates the monthly management and service charges. It is
// meant to be run from cron on the first day of each month.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/infrastructure/cache"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/internal/infrastructure/database"
	"bluemoon-http-service/internal/infrastructure/events"
	"bluemoon-http-service/pkg/logger"
)

func main() {
	month := flag.String("month", "", "month to accrue as YYYY-MM (default: current month)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.GetConfig()
	if err := logger.SetupLogger(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, ServiceName: "bluemoon-accrue"}); err != nil {
		fmt.Printf("failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *month); err != nil {
		logger.Error("accrual failed: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, month string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.AutoMigrate(pool.GetDB()); err != nil {
		return err
	}

	publisher := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		logger.Warning("redis unavailable, cached dashboards will expire on their own: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := services.NewFeeHouseholdService(pool.GetDB(), cfg, publisher, services.NewRedisService(redisClient)).
		AccrueMonthlyFees(ctx, month)
	if err != nil {
		return err
	}
	logger.Info("accrued %s: created=%d skipped=%d", result.Month, result.Created, result.Skipped)
	return nil
}
