package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController serves the dashboard and spreadsheet exports
type ReportController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReportController creates a ReportController
func NewReportController(ctx *gin.Context, container *container.ServiceContainer) *ReportController {
	return &ReportController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleReportFunc dispatches report requests
func HandleReportFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReportController(ctx, container)

		switch method {
		case "dashboard":
			controller.Dashboard()
		case "exportFees":
			controller.ExportFees()
		case "exportUtilities":
			controller.ExportUtilities()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *ReportController) service() services.InterfaceReportService {
	return c.Container.GetService("report").(services.InterfaceReportService)
}

// 1. Dashboard returns the month's headline numbers
// @Summary      Dashboard
// @Tags         Report
// @Produce      json
// @Param        month query string false "YYYY-MM, defaults to the current month"
// @Success      200  {object}  services.DashboardStats
// @Failure      400  {object}  ErrorResponse
// @Router       /reports/dashboard [get]
// @Security     BearerAuth
func (c *ReportController) Dashboard() {
	stats, err := c.service().GetDashboard(c.Ctx.Request.Context(), c.Ctx.Query("month"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, stats)
}

// 2. ExportFees downloads the month's household charges
// @Summary      Export household charges
// @Tags         Report
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        month query string false "YYYY-MM"
// @Success      200  {file}  file
// @Router       /reports/fee-households/export [get]
// @Security     BearerAuth
func (c *ReportController) ExportFees() {
	month := c.monthOrCurrent()
	data, err := c.service().ExportFeeHouseholds(c.Ctx.Request.Context(), month)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	c.attachment(fmt.Sprintf("fees-%s.xlsx", month), data)
}

// 3. ExportUtilities downloads the month's utility usage
// @Summary      Export utility usage
// @Tags         Report
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        month query string false "YYYY-MM"
// @Success      200  {file}  file
// @Router       /reports/utility-usages/export [get]
// @Security     BearerAuth
func (c *ReportController) ExportUtilities() {
	month := c.monthOrCurrent()
	data, err := c.service().ExportUtilityUsages(c.Ctx.Request.Context(), month)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	c.attachment(fmt.Sprintf("utilities-%s.xlsx", month), data)
}

func (c *ReportController) monthOrCurrent() string {
	if month := c.Ctx.Query("month"); month != "" {
		return month
	}
	return time.Now().Format("2006-01")
}

func (c *ReportController) attachment(filename string, data []byte) {
	c.Ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Ctx.Data(http.StatusOK, xlsxContentType, data)
}
