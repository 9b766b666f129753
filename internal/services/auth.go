package services

import (
	"errors"
	"time"

	"github.com/rajapi-cop/projecthub/internal/config"
	"github.com/rajapi-cop/projecthub/internal/models"
	"github.com/rajapi-cop/projecthub/internal/repository"
	"github.com/rajapi-cop/projecthub/internal/utils"
	"github.com/rajapi-cop/projecthub/pkg/logger"
)

// AuthService handles login and user lookup for the HTTP layer.
type AuthService struct {
	store repository.Store
	cfg   *config.JWTConfig
}

func NewAuthService(store repository.Store, cfg *config.JWTConfig) *AuthService {
	return &AuthService{store: store, cfg: cfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.store.Users().FindByUsername(req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.cfg.ExpireHour)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.store.Users().Save(user); err != nil {
		logger.Warn().Err(err).Msg("failed to record last login")
	}

	return &LoginResponse{Token: token, User: user}, nil
}

// GetUser returns a user by id.
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	user, err := s.store.Users().FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// EnsureAdmin creates the default admin account on first startup.
func (s *AuthService) EnsureAdmin(username, password string) error {
	if _, err := s.store.Users().FindByUsername(username); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: username,
		Password: hash,
		FullName: "Administrator",
		Role:     "admin",
		IsActive: true,
	}
	if err := s.store.Users().Create(admin); err != nil {
		return err
	}
	logger.Info().Str("username", username).Msg("created default admin user")
	return nil
}
