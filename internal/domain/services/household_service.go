package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/pkg/utils"
)

const (
	householdCodePrefix   = "HK"
	householdCodeLength   = 6
	householdCodeAttempts = 5
)

// InterfaceHouseholdService manages households and their members
type InterfaceHouseholdService interface {
	GetHouseholds(page models.PaginationQuery, isActive *bool, search string) (*models.Page[models.Household], error)
	GetHousehold(id string) (*models.Household, error)
	CreateHousehold(input HouseholdInput) (*models.Household, error)
	UpdateHousehold(id string, updates map[string]interface{}) (*models.Household, error)
	DeleteHousehold(id string) error
	GetMembers(householdID string) ([]models.UserHousehold, error)
	AddMember(householdID string, input MemberInput) (*models.UserHousehold, error)
	RemoveMember(householdID, userID string) error
}

// HouseholdInput holds the fields of a new household
type HouseholdInput struct {
	Area float64
	Note string
}

// MemberInput holds the fields of a new membership
type MemberInput struct {
	UserID       string
	RoleInFamily string
	IsOwner      bool
	JoinDate     *time.Time
}

// HouseholdService implements InterfaceHouseholdService
type HouseholdService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHouseholdService creates the household service
func NewHouseholdService(db *gorm.DB, cfg *config.Config) InterfaceHouseholdService {
	return &HouseholdService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetHouseholds lists households, optionally filtered by activity and id/note text
func (s *HouseholdService) GetHouseholds(page models.PaginationQuery, isActive *bool, search string) (*models.Page[models.Household], error) {
	query := s.DB.Model(&models.Household{})
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("id LIKE ? OR note LIKE ?", like, like)
	}
	return paginate[models.Household](query, page, "created_at DESC")
}

// 2 GetHousehold loads a household with its members
func (s *HouseholdService) GetHousehold(id string) (*models.Household, error) {
	var household models.Household
	err := s.DB.Preload("Members.User").First(&household, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrHouseholdNotFound)
	}
	return &household, nil
}

// 3 CreateHousehold creates an inactive household with a generated HK code
func (s *HouseholdService) CreateHousehold(input HouseholdInput) (*models.Household, error) {
	if input.Area <= 0 {
		return nil, ErrInvalidArea
	}

	id, err := s.newHouseholdCode()
	if err != nil {
		return nil, err
	}

	household := &models.Household{
		ID:   id,
		Area: round2(input.Area),
		Note: input.Note,
	}
	if err := s.DB.Create(household).Error; err != nil {
		return nil, err
	}
	return household, nil
}

func (s *HouseholdService) newHouseholdCode() (string, error) {
	for i := 0; i < householdCodeAttempts; i++ {
		suffix, err := utils.RandomCode(householdCodeLength)
		if err != nil {
			return "", err
		}
		code := householdCodePrefix + suffix

		var count int64
		if err := s.DB.Model(&models.Household{}).Where("id = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique household code after %d attempts", householdCodeAttempts)
}

// 4 UpdateHousehold updates area, note or is_active
func (s *HouseholdService) UpdateHousehold(id string, updates map[string]interface{}) (*models.Household, error) {
	household, err := findHousehold(s.DB, id)
	if err != nil {
		return nil, err
	}

	if area, ok := updates["area"].(float64); ok {
		if area <= 0 {
			return nil, ErrInvalidArea
		}
		updates["area"] = round2(area)
	}

	if err := s.DB.Model(household).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetHousehold(id)
}

// 5 DeleteHousehold removes a household without members, together with its
// charges, utility usage and vehicles.
func (s *HouseholdService) DeleteHousehold(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := findHousehold(tx, id); err != nil {
			return err
		}

		var members int64
		if err := tx.Model(&models.UserHousehold{}).Where("household_id = ?", id).Count(&members).Error; err != nil {
			return err
		}
		if members > 0 {
			return ErrHouseholdHasMembers
		}

		for _, dependent := range []interface{}{&models.FeeHousehold{}, &models.UtilityUsage{}, &models.Vehicle{}} {
			if err := tx.Where("household_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Household{}, "id = ?", id).Error
	})
}

// 6 GetMembers lists the members of a household with their resident details
func (s *HouseholdService) GetMembers(householdID string) ([]models.UserHousehold, error) {
	if _, err := findHousehold(s.DB, householdID); err != nil {
		return nil, err
	}

	members := make([]models.UserHousehold, 0)
	err := s.DB.Preload("User").
		Where("household_id = ?", householdID).
		Order("is_owner DESC, created_at ASC").
		Find(&members).Error
	return members, err
}

// 7 AddMember adds a resident to a household. Adding the owner activates the household.
func (s *HouseholdService) AddMember(householdID string, input MemberInput) (*models.UserHousehold, error) {
	var member models.UserHousehold

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		household, err := findHousehold(tx, householdID)
		if err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", input.UserID).Error; err != nil {
			return notFound(err, ErrUserNotFound)
		}

		var existing int64
		if err := tx.Model(&models.UserHousehold{}).
			Where("household_id = ? AND user_id = ?", householdID, input.UserID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrMemberExists
		}

		if input.IsOwner {
			var owners int64
			if err := tx.Model(&models.UserHousehold{}).
				Where("household_id = ? AND is_owner = ?", householdID, true).
				Count(&owners).Error; err != nil {
				return err
			}
			if owners > 0 {
				return ErrOwnerExists
			}
		}

		joinDate := input.JoinDate
		if joinDate == nil {
			now := time.Now()
			joinDate = &now
		}
		member = models.UserHousehold{
			UserID:       input.UserID,
			HouseholdID:  householdID,
			RoleInFamily: input.RoleInFamily,
			IsOwner:      input.IsOwner,
			JoinDate:     joinDate,
		}
		if err := tx.Create(&member).Error; err != nil {
			return duplicate(err, ErrMemberExists)
		}

		if input.IsOwner && !household.IsActive {
			if err := tx.Model(household).Update("is_active", true).Error; err != nil {
				return err
			}
		}

		member.User = &user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// 8 RemoveMember removes a resident from a household. Removing the owner deactivates it.
func (s *HouseholdService) RemoveMember(householdID, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		household, err := findHousehold(tx, householdID)
		if err != nil {
			return err
		}

		var member models.UserHousehold
		err = tx.Where("household_id = ? AND user_id = ?", householdID, userID).First(&member).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		if err := tx.Delete(&member).Error; err != nil {
			return err
		}

		if member.IsOwner && household.IsActive {
			return tx.Model(household).Update("is_active", false).Error
		}
		return nil
	})
}
