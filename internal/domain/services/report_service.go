package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/pkg/logger"
)

const dashboardCacheTTL = 60 * time.Second

// InterfaceReportService builds the dashboard and spreadsheet exports
type InterfaceReportService interface {
	GetDashboard(ctx context.Context, month string) (*DashboardStats, error)
	ExportFeeHouseholds(ctx context.Context, month string) ([]byte, error)
	ExportUtilityUsages(ctx context.Context, month string) ([]byte, error)
}

// DashboardStats are the headline numbers for one month
type DashboardStats struct {
	Month              string  `json:"month"`
	TotalHouseholds    int64   `json:"total_households"`
	ActiveHouseholds   int64   `json:"active_households"`
	Residents          int64   `json:"residents"`
	Vehicles           int64   `json:"vehicles"`
	OpenFeedback       int64   `json:"open_feedback"`
	UnpaidFeeTotal     float64 `json:"unpaid_fee_total"`
	UnpaidUtilityTotal float64 `json:"unpaid_utility_total"`
}

// ReportService implements InterfaceReportService
type ReportService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewReportService creates the report service. redis may be nil.
func NewReportService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceReportService {
	return &ReportService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// DashboardCacheKey is the Redis key of a month's dashboard
func DashboardCacheKey(month string) string {
	return "dashboard:" + month
}

// InvalidateDashboard drops a month's cached dashboard after its unpaid totals
// change. redis may be nil.
func InvalidateDashboard(redis InterfaceRedisService, month string) {
	if redis == nil {
		return
	}
	if err := redis.Delete(DashboardCacheKey(month)); err != nil {
		logger.Warning("invalidate dashboard %s: %v", month, err)
	}
}

// 1 GetDashboard runs the counts concurrently; results are cached for a minute when Redis is enabled
func (s *ReportService) GetDashboard(ctx context.Context, month string) (*DashboardStats, error) {
	month, err := NormalizeMonth(month)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		var cached DashboardStats
		if err := s.Redis.Get(DashboardCacheKey(month), &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{Month: month}
	g, gctx := errgroup.WithContext(ctx)
	db := s.DB.WithContext(gctx)

	g.Go(func() error {
		return db.Model(&models.Household{}).Count(&stats.TotalHouseholds).Error
	})
	g.Go(func() error {
		return db.Model(&models.Household{}).Where("is_active = ?", true).Count(&stats.ActiveHouseholds).Error
	})
	g.Go(func() error {
		return db.Model(&models.User{}).Count(&stats.Residents).Error
	})
	g.Go(func() error {
		return db.Model(&models.Vehicle{}).Count(&stats.Vehicles).Error
	})
	g.Go(func() error {
		return db.Model(&models.ReportUser{}).Where("status <> ?", models.ReportResolved).Count(&stats.OpenFeedback).Error
	})
	g.Go(func() error {
		return db.Model(&models.FeeHousehold{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("month = ? AND is_paid = ?", month, false).
			Scan(&stats.UnpaidFeeTotal).Error
	})
	g.Go(func() error {
		return db.Model(&models.UtilityUsage{}).
			Select("COALESCE(SUM(total_price), 0)").
			Where("month = ? AND is_paid = ?", month, false).
			Scan(&stats.UnpaidUtilityTotal).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats.UnpaidFeeTotal = round2(stats.UnpaidFeeTotal)
	stats.UnpaidUtilityTotal = round2(stats.UnpaidUtilityTotal)

	if s.Redis != nil {
		if err := s.Redis.Set(DashboardCacheKey(month), stats, dashboardCacheTTL); err != nil {
			logger.Warning("cache dashboard %s: %v", month, err)
		}
	}
	return stats, nil
}

var feeExportHeader = []string{"Household", "Fee Service", "Type", "Month", "Amount", "Paid", "Paid At"}

var utilityExportHeader = []string{
	"Household", "Month", "Electricity (kWh)", "Water (m3)", "Internet",
	"Electricity Price", "Water Price", "Internet Price", "Total", "Paid",
}

// 2 ExportFeeHouseholds writes a month's charges to an xlsx workbook
func (s *ReportService) ExportFeeHouseholds(ctx context.Context, month string) ([]byte, error) {
	month, err := NormalizeMonth(month)
	if err != nil {
		return nil, err
	}

	var fees []models.FeeHousehold
	err = s.DB.WithContext(ctx).Preload("FeeService").
		Where("month = ?", month).
		Order("household_id ASC").
		Find(&fees).Error
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(fees))
	for _, fee := range fees {
		name, feeType := "", ""
		if fee.FeeService != nil {
			name, feeType = fee.FeeService.Name, fee.FeeService.Type
		}
		paidAt := ""
		if fee.PaidAt != nil {
			paidAt = fee.PaidAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []interface{}{fee.HouseholdID, name, feeType, fee.Month, fee.Amount, yesNo(fee.IsPaid), paidAt})
	}
	return writeWorkbook("Fees "+month, feeExportHeader, rows)
}

// 3 ExportUtilityUsages writes a month's utility usage to an xlsx workbook
func (s *ReportService) ExportUtilityUsages(ctx context.Context, month string) ([]byte, error) {
	month, err := NormalizeMonth(month)
	if err != nil {
		return nil, err
	}

	var usages []models.UtilityUsage
	err = s.DB.WithContext(ctx).Where("month = ?", month).Order("household_id ASC").Find(&usages).Error
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(usages))
	for _, u := range usages {
		rows = append(rows, []interface{}{
			u.HouseholdID, u.Month, u.Electricity, u.Water, yesNo(u.Internet),
			u.ElectricityPrice, u.WaterPrice, u.InternetPrice, u.TotalPrice, yesNo(u.IsPaid),
		})
	}
	return writeWorkbook("Utilities "+month, utilityExportHeader, rows)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// writeWorkbook renders a single styled sheet and returns the xlsx bytes
func writeWorkbook(sheetName string, headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
