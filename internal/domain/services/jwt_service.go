package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
	"bluemoon-http-service/internal/infrastructure/config"
	"bluemoon-http-service/pkg/utils"
)

// Token types carried in the token_type claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// InterfaceJWTService issues and verifies staff tokens
type InterfaceJWTService interface {
	GenerateToken(admin *models.Admin, tokenType string) (string, time.Time, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Login(username, password string) (*LoginResult, error)
	Refresh(refreshToken string) (*RefreshResult, error)
	Logout(adminID string) error
}

// LoginResult is returned by a successful login. RefreshToken goes into a cookie, never the body.
type LoginResult struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"-"`
	ExpiresAt    time.Time     `json:"expires_at"`
	Admin        *models.Admin `json:"admin"`
}

// RefreshResult carries a newly issued access token
type RefreshResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// JWTService signs tokens with HS256
type JWTService struct {
	secretKey  string
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	DB         *gorm.DB
}

// JWTClaims are the claims of both access and refresh tokens
type JWTClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// NewJWTService creates the JWT service
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey:  cfg.JWTSecretKey,
		issuer:     "bluemoon-http-service",
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		DB:         db,
	}
}

// GenerateToken signs an access or refresh token for admin
func (s *JWTService) GenerateToken(admin *models.Admin, tokenType string) (string, time.Time, error) {
	ttl := s.accessTTL
	if tokenType == TokenTypeRefresh {
		ttl = s.refreshTTL
	}
	now := time.Now()
	expirationTime := now.Add(ttl)

	claims := &JWTClaims{
		UserID:    admin.ID,
		Username:  admin.Username,
		Role:      admin.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   admin.ID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expirationTime, nil
}

// ValidateToken parses and verifies the signature and registered claims
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims validates the token and returns its claims
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Login checks credentials and issues an access and a refresh token.
// Only the SHA-256 of the refresh token is persisted.
func (s *JWTService) Login(username, password string) (*LoginResult, error) {
	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, admin.Password) || admin.Status != models.AdminActive {
		return nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.GenerateToken(&admin, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.GenerateToken(&admin, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	hashed := utils.HashToken(refreshToken)
	if err := s.DB.Model(&admin).UpdateColumn("refresh_token", hashed).Error; err != nil {
		return nil, err
	}
	admin.RefreshToken = hashed

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		Admin:        &admin,
	}, nil
}

// Refresh issues a new access token for a refresh token that matches the stored hash
func (s *JWTService) Refresh(refreshToken string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}
	claims, err := s.ExtractClaims(refreshToken)
	if err != nil || claims.TokenType != TokenTypeRefresh {
		return nil, ErrInvalidRefreshToken
	}

	var admin models.Admin
	if err := s.DB.First(&admin, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if admin.RefreshToken == "" || admin.RefreshToken != utils.HashToken(refreshToken) || admin.Status != models.AdminActive {
		return nil, ErrInvalidRefreshToken
	}

	accessToken, expiresAt, err := s.GenerateToken(&admin, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Logout revokes the stored refresh token
func (s *JWTService) Logout(adminID string) error {
	var admin models.Admin
	if err := s.DB.Select("id").First(&admin, "id = ?", adminID).Error; err != nil {
		return notFound(err, ErrAdminNotFound)
	}
	return s.DB.Model(&admin).UpdateColumn("refresh_token", "").Error
}
