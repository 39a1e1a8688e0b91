package services

import (
	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
)

// InterfaceUserService manages residents
type InterfaceUserService interface {
	GetUsers(page models.PaginationQuery, search string) (*models.Page[models.User], error)
	GetUser(id string) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(id string, updates map[string]interface{}) (*models.User, error)
	DeleteUser(id string) error
}

// UserService implements InterfaceUserService
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService creates the resident service
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetUsers lists residents, searching name, citizen id and phone
func (s *UserService) GetUsers(page models.PaginationQuery, search string) (*models.Page[models.User], error) {
	query := s.DB.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR citizen_id LIKE ? OR phone LIKE ?", like, like, like)
	}
	return paginate[models.User](query, page, "full_name ASC")
}

// 2 GetUser loads a resident with memberships
func (s *UserService) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Households").First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

// 3 CreateUser creates a resident with a unique citizen id
func (s *UserService) CreateUser(user *models.User) error {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("citizen_id = ?", user.CitizenID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCitizenIDExists
	}
	return duplicate(s.DB.Create(user).Error, ErrCitizenIDExists)
}

// 4 UpdateUser applies updates, keeping citizen ids unique
func (s *UserService) UpdateUser(id string, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if citizenID, ok := updates["citizen_id"].(string); ok && citizenID != user.CitizenID {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("citizen_id = ? AND id <> ?", citizenID, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCitizenIDExists
		}
	}

	if err := s.DB.Model(&models.User{BaseModel: models.BaseModel{ID: id}}).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetUser(id)
}

// 5 DeleteUser removes a resident, their memberships and feedback.
// Households they owned become inactive.
func (s *UserService) DeleteUser(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return notFound(err, ErrUserNotFound)
		}

		var owned []string
		if err := tx.Model(&models.UserHousehold{}).
			Where("user_id = ? AND is_owner = ?", id, true).
			Pluck("household_id", &owned).Error; err != nil {
			return err
		}
		if len(owned) > 0 {
			if err := tx.Model(&models.Household{}).Where("id IN ?", owned).Update("is_active", false).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.UserHousehold{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ReportUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
