package services

import (
	"fmt"

	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/pkg/utils"
)

// InterfaceAdminService manages staff accounts
type InterfaceAdminService interface {
	GetAllAdmins(page models.PaginationQuery, search, role string) (*models.Page[models.Admin], error)
	GetAdminByID(id string) (*models.Admin, error)
	GetAdminByUsername(username string) (*models.Admin, error)
	CreateAdmin(admin *models.Admin) error
	UpdateAdmin(id string, updates map[string]interface{}) (*models.Admin, error)
	DeleteAdmin(id string) error
}

// AdminService implements InterfaceAdminService
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService creates the admin service
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllAdmins lists staff accounts, optionally filtered by search text and role
func (s *AdminService) GetAllAdmins(page models.PaginationQuery, search, role string) (*models.Page[models.Admin], error) {
	query := s.DB.Model(&models.Admin{})

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR full_name LIKE ?", like, like, like)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	return paginate[models.Admin](query, page, "created_at ASC")
}

// 2 GetAdminByID loads one staff account
func (s *AdminService) GetAdminByID(id string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrAdminNotFound)
	}
	return &admin, nil
}

// 3 GetAdminByUsername loads a staff account by username
func (s *AdminService) GetAdminByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, notFound(err, ErrAdminNotFound)
	}
	return &admin, nil
}

// 4 CreateAdmin registers a staff account; admin.Password holds the plain password
func (s *AdminService) CreateAdmin(admin *models.Admin) error {
	if admin.Role == "" {
		admin.Role = models.RoleAdmin
	}
	if !models.ValidRole(admin.Role) {
		return ErrInvalidRole
	}
	if admin.Status == "" {
		admin.Status = models.AdminActive
	}

	var count int64
	if err := s.DB.Model(&models.Admin{}).Where("username = ?", admin.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameExists
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	admin.Password = hashed

	return duplicate(s.DB.Create(admin).Error, ErrUsernameExists)
}

// 5 UpdateAdmin applies updates. A password is re-hashed; demoting or deactivating
// the last active admin is rejected.
func (s *AdminService) UpdateAdmin(id string, updates map[string]interface{}) (*models.Admin, error) {
	admin, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}

	if username, ok := updates["username"].(string); ok && username != admin.Username {
		var count int64
		if err := s.DB.Model(&models.Admin{}).Where("username = ? AND id <> ?", username, admin.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUsernameExists
		}
	}

	if role, ok := updates["role"].(string); ok && role != admin.Role {
		if !models.ValidRole(role) {
			return nil, ErrInvalidRole
		}
		if err := s.guardLastAdmin(admin); err != nil {
			return nil, err
		}
	}

	if status, ok := updates["status"].(string); ok && status != models.AdminActive {
		if err := s.guardLastAdmin(admin); err != nil {
			return nil, err
		}
	}

	if password, ok := updates["password"].(string); ok {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = hashed
		// a new password ends existing sessions
		updates["refresh_token"] = ""
	}

	if err := s.DB.Model(admin).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetAdminByID(id)
}

// 6 DeleteAdmin removes a staff account; at least one admin must remain
func (s *AdminService) DeleteAdmin(id string) error {
	admin, err := s.GetAdminByID(id)
	if err != nil {
		return err
	}
	if err := s.guardLastAdmin(admin); err != nil {
		return err
	}
	return s.DB.Delete(admin).Error
}

// guardLastAdmin fails when admin is the only active account with the admin role
func (s *AdminService) guardLastAdmin(admin *models.Admin) error {
	if admin.Role != models.RoleAdmin || admin.Status != models.AdminActive {
		return nil
	}
	var count int64
	err := s.DB.Model(&models.Admin{}).
		Where("role = ? AND status = ? AND id <> ?", models.RoleAdmin, models.AdminActive, admin.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrLastAdmin
	}
	return nil
}
