package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/internal/infrastructure/events"
	"bluemoon-http-service/pkg/logger"
)

// InterfaceReportUserService manages resident feedback
type InterfaceReportUserService interface {
	CreateReport(input ReportInput) (*models.ReportUser, error)
	GetReports(page models.PaginationQuery, status, userID string) (*models.Page[models.ReportUser], error)
	GetReport(id string) (*models.ReportUser, error)
	UpdateReportStatus(ctx context.Context, id string, input ReportStatusInput) (*models.ReportUser, error)
	DeleteReport(id string) error
}

// ReportInput holds new feedback
type ReportInput struct {
	UserID      string
	HouseholdID *string
	Title       string
	Content     string
}

// ReportStatusInput moves feedback forward and optionally answers it
type ReportStatusInput struct {
	Status      string
	Response    string
	RespondedBy string
}

// ReportUserService implements InterfaceReportUserService
type ReportUserService struct {
	DB        *gorm.DB
	Config    *config.Config
	Publisher events.Publisher
}

// NewReportUserService creates the feedback service
func NewReportUserService(db *gorm.DB, cfg *config.Config, publisher events.Publisher) InterfaceReportUserService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ReportUserService{
		DB:        db,
		Config:    cfg,
		Publisher: publisher,
	}
}

// 1 CreateReport files pending feedback for an existing resident
func (s *ReportUserService) CreateReport(input ReportInput) (*models.ReportUser, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", input.UserID).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if input.HouseholdID != nil && *input.HouseholdID != "" {
		if _, err := findHousehold(s.DB, *input.HouseholdID); err != nil {
			return nil, err
		}
	} else {
		input.HouseholdID = nil
	}

	report := &models.ReportUser{
		UserID:      user.ID,
		HouseholdID: input.HouseholdID,
		Title:       input.Title,
		Content:     input.Content,
		Status:      models.ReportPending,
	}
	if err := s.DB.Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// 2 GetReports lists feedback by status and resident
func (s *ReportUserService) GetReports(page models.PaginationQuery, status, userID string) (*models.Page[models.ReportUser], error) {
	query := s.DB.Model(&models.ReportUser{}).Preload("User")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	return paginate[models.ReportUser](query, page, "created_at DESC")
}

// 3 GetReport loads one feedback entry
func (s *ReportUserService) GetReport(id string) (*models.ReportUser, error) {
	var report models.ReportUser
	if err := s.DB.Preload("User").First(&report, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrReportNotFound)
	}
	return &report, nil
}

// 4 UpdateReportStatus moves feedback forward (pending -> in_progress -> resolved,
// or pending -> resolved) and records who answered and when.
func (s *ReportUserService) UpdateReportStatus(ctx context.Context, id string, input ReportStatusInput) (*models.ReportUser, error) {
	report, err := s.GetReport(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	previous := report.Status
	statusChanged := input.Status != "" && input.Status != report.Status

	if statusChanged {
		switch input.Status {
		case models.ReportPending, models.ReportInProgress, models.ReportResolved:
		default:
			return nil, ErrInvalidStatus
		}
		if !models.CanTransition(report.Status, input.Status) {
			return nil, ErrInvalidTransition
		}
		updates["status"] = input.Status
	}

	if input.Response != "" {
		now := time.Now()
		updates["response"] = input.Response
		updates["responded_at"] = &now
		if input.RespondedBy != "" {
			updates["responded_by"] = input.RespondedBy
		}
	}

	if len(updates) == 0 {
		return nil, ErrInvalidTransition
	}

	if err := s.DB.Model(&models.ReportUser{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	if statusChanged {
		err := s.Publisher.Publish(ctx, events.FeedbackStatusChanged, map[string]string{
			"report_id": id,
			"user_id":   report.UserID,
			"from":      previous,
			"to":        input.Status,
		})
		if err != nil {
			logger.Warning("publish %s: %v", events.FeedbackStatusChanged, err)
		}
	}

	return s.GetReport(id)
}

// 5 DeleteReport removes feedback
func (s *ReportUserService) DeleteReport(id string) error {
	report, err := s.GetReport(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(&models.ReportUser{}, "id = ?", report.ID).Error
}
