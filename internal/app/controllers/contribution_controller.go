package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/domain/services/container"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// ContributionController handles funds, campaigns, payments and donations
type ContributionController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewContributionController creates a ContributionController
func NewContributionController(ctx *gin.Context, container *container.ServiceContainer) *ContributionController {
	return &ContributionController{
		Ctx:       ctx,
		Container: container,
	}
}

// FundRequest creates a fund
type FundRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Quỹ khuyến học"`
	Description string `json:"description" example:"Hỗ trợ học sinh giỏi trong tòa nhà"`
}

// CampaignRequest opens a campaign for a fund
type CampaignRequest struct {
	FundID      string  `json:"fund_id" binding:"required"`
	Title       string  `json:"title" binding:"required,max=200" example:"Trung thu 2025"`
	Description string  `json:"description"`
	GoalAmount  float64 `json:"goal_amount" binding:"gte=0" example:"5000000"`
	StartDate   string  `json:"start_date" example:"2025-09-01"`
	EndDate     string  `json:"end_date" example:"2025-09-30"`
}

// PaymentRequest records a household's campaign payment
type PaymentRequest struct {
	HouseholdID string  `json:"household_id" binding:"required" example:"HK7Q2M9A"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"200000"`
	Note        string  `json:"note"`
}

// DonationRequest records a one-off donation into a fund
type DonationRequest struct {
	HouseholdID string  `json:"household_id" binding:"required" example:"HK7Q2M9A"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"100000"`
	Note        string  `json:"note"`
}

// HandleContributionFunc dispatches contribution requests
func HandleContributionFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewContributionController(ctx, container)

		switch method {
		case "getFunds":
			controller.GetFunds()
		case "getFund":
			controller.GetFund()
		case "createFund":
			controller.CreateFund()
		case "getCampaigns":
			controller.GetCampaigns()
		case "getCampaign":
			controller.GetCampaign()
		case "createCampaign":
			controller.CreateCampaign()
		case "closeCampaign":
			controller.CloseCampaign()
		case "getPayments":
			controller.GetPayments()
		case "createPayment":
			controller.CreatePayment()
		case "getDonations":
			controller.GetDonations()
		case "createDonation":
			controller.CreateDonation()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *ContributionController) service() services.InterfaceContributionService {
	return c.Container.GetService("contribution").(services.InterfaceContributionService)
}

// 1. GetFunds lists funds
// @Summary      List funds
// @Tags         Contribution
// @Produce      json
// @Success      200  {object}  response.PageResponse
// @Router       /funds [get]
// @Security     BearerAuth
func (c *ContributionController) GetFunds() {
	page, err := c.service().GetFunds(bindPage(c.Ctx))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 2. GetFund returns a fund with its campaigns
// @Summary      Get fund
// @Tags         Contribution
// @Produce      json
// @Param        id path string true "Fund ID"
// @Success      200  {object}  models.ContributionFund
// @Failure      404  {object}  ErrorResponse
// @Router       /funds/{id} [get]
// @Security     BearerAuth
func (c *ContributionController) GetFund() {
	fund, err := c.service().GetFund(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, fund)
}

// 3. CreateFund creates a fund
// @Summary      Create fund
// @Tags         Contribution
// @Accept       json
// @Produce      json
// @Param        request body FundRequest true "Fund"
// @Success      201  {object}  models.ContributionFund
// @Failure      409  {object}  ErrorResponse
// @Router       /funds [post]
// @Security     BearerAuth
func (c *ContributionController) CreateFund() {
	var req FundRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	fund := &models.ContributionFund{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := c.service().CreateFund(fund); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, fund)
}

// 4. GetCampaigns lists campaigns
// @Summary      List campaigns
// @Tags         Contribution
// @Produce      json
// @Param        fund_id query string false "Fund ID"
// @Param        status query string false "active or closed"
// @Success      200  {object}  response.PageResponse
// @Router       /campaigns [get]
// @Security     BearerAuth
func (c *ContributionController) GetCampaigns() {
	page, err := c.service().GetCampaigns(bindPage(c.Ctx), c.Ctx.Query("fund_id"), c.Ctx.Query("status"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 5. GetCampaign returns a campaign with its fund
// @Summary      Get campaign
// @Tags         Contribution
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Success      200  {object}  models.ContributionCampaign
// @Failure      404  {object}  ErrorResponse
// @Router       /campaigns/{id} [get]
// @Security     BearerAuth
func (c *ContributionController) GetCampaign() {
	campaign, err := c.service().GetCampaign(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, campaign)
}

// 6. CreateCampaign opens a campaign
// @Summary      Create campaign
// @Tags         Contribution
// @Accept       json
// @Produce      json
// @Param        request body CampaignRequest true "Campaign"
// @Success      201  {object}  models.ContributionCampaign
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /campaigns [post]
// @Security     BearerAuth
func (c *ContributionController) CreateCampaign() {
	var req CampaignRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	campaign, err := c.service().CreateCampaign(services.CampaignInput{
		FundID:      req.FundID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		GoalAmount:  req.GoalAmount,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, campaign)
}

// 7. CloseCampaign stops a campaign from taking payments
// @Summary      Close campaign
// @Tags         Contribution
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Success      200  {object}  models.ContributionCampaign
// @Failure      404  {object}  ErrorResponse
// @Router       /campaigns/{id}/close [patch]
// @Security     BearerAuth
func (c *ContributionController) CloseCampaign() {
	campaign, err := c.service().CloseCampaign(c.Ctx.Param("id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, campaign)
}

// 8. GetPayments lists a campaign's payments
// @Summary      List campaign payments
// @Tags         Contribution
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        household_id query string false "Household code"
// @Success      200  {object}  response.PageResponse
// @Router       /campaigns/{id}/payments [get]
// @Security     BearerAuth
func (c *ContributionController) GetPayments() {
	page, err := c.service().GetPayments(bindPage(c.Ctx), c.Ctx.Param("id"), c.Ctx.Query("household_id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 9. CreatePayment records a campaign payment
// @Summary      Record campaign payment
// @Tags         Contribution
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        request body PaymentRequest true "Payment"
// @Success      201  {object}  models.ContributionPayment
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /campaigns/{id}/payments [post]
// @Security     BearerAuth
func (c *ContributionController) CreatePayment() {
	var req PaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	payment, err := c.service().CreatePayment(c.Ctx.Request.Context(), services.PaymentInput{
		CampaignID:  c.Ctx.Param("id"),
		HouseholdID: req.HouseholdID,
		Amount:      req.Amount,
		Note:        strings.TrimSpace(req.Note),
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, payment)
}

// 10. GetDonations lists a fund's donations
// @Summary      List donations
// @Tags         Contribution
// @Produce      json
// @Param        id path string true "Fund ID"
// @Param        household_id query string false "Household code"
// @Success      200  {object}  response.PageResponse
// @Router       /funds/{id}/contributions [get]
// @Security     BearerAuth
func (c *ContributionController) GetDonations() {
	page, err := c.service().GetContributions(bindPage(c.Ctx), c.Ctx.Param("id"), c.Ctx.Query("household_id"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	paginated(c.Ctx, page)
}

// 11. CreateDonation records a donation into a fund
// @Summary      Record donation
// @Tags         Contribution
// @Accept       json
// @Produce      json
// @Param        id path string true "Fund ID"
// @Param        request body DonationRequest true "Donation"
// @Success      201  {object}  models.Contribution
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /funds/{id}/contributions [post]
// @Security     BearerAuth
func (c *ContributionController) CreateDonation() {
	var req DonationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		bindError(c.Ctx, err)
		return
	}

	donation, err := c.service().CreateContribution(services.DonationInput{
		FundID:      c.Ctx.Param("id"),
		HouseholdID: req.HouseholdID,
		Amount:      req.Amount,
		Note:        strings.TrimSpace(req.Note),
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, donation)
}
