package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carpool/internal/apperrors"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"
	"carpool/internal/utils"
	"carpool/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}

type RegisterRequest struct {
	Name          string          `json:"name" binding:"required"`
	Email         string          `json:"email" binding:"required,email"`
	Phone         string          `json:"phone"`
	Password      string          `json:"password" binding:"required,min=8"`
	Role          models.UserRole `json:"role" binding:"required"`
	VehicleModel  string          `json:"vehicle_model"`
	VehicleNumber string          `json:"vehicle_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token *utils.TokenResult `json:"token"`
	User  *models.User       `json:"user"`
}

type authService struct {
	userRepo  interfaces.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    log,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	// Admin accounts are provisioned out of band, never self-registered.
	if req.Role != models.RoleDriver && req.Role != models.RolePassenger {
		return nil, fmt.Errorf("%w: role must be DRIVER or PASSENGER", apperrors.ErrValidation)
	}

	user := &models.User{
		Name:          req.Name,
		Email:         strings.ToLower(req.Email),
		Phone:         req.Phone,
		Role:          req.Role,
		Active:        true,
		VehicleModel:  req.VehicleModel,
		VehicleNumber: req.VehicleNumber,
	}
	if user.Role != models.RoleDriver {
		user.VehicleModel = ""
		user.VehicleNumber = ""
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithUserID(user.ID).WithField("role", user.Role).Info("user registered")

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, apperrors.ErrAccountInactive
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("user logged in")

	return &LoginResponse{Token: token, User: user}, nil
}
