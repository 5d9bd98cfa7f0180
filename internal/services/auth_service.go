// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues admin tokens for the catalog management endpoints.
type AuthService struct {
	cfg *config.Config
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=8"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // in seconds
}

func NewAuthService(cfg *config.Config) *AuthService {
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	return &AuthService{cfg: cfg}
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Admin login is disabled until a password hash is configured
	if s.cfg.Admin.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	usernameOK := utils.ConstantTimeEqual(req.Username, s.cfg.Admin.Username)
	passwordOK := utils.CheckPassword(s.cfg.Admin.PasswordHash, req.Password)
	if !usernameOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateJWT(req.Username, utils.RoleAdmin, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
