package services

import (
	"context"

	"carpool/internal/auth"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"
	"carpool/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	Profile(ctx context.Context, ident auth.Identity) (*models.User, error)
	UpdateProfile(ctx context.Context, ident auth.Identity, req *UpdateProfileRequest) (*models.User, error)

	// Admin surface.
	ListUsers(ctx context.Context, ident auth.Identity) ([]*models.User, error)
	SetUserStatus(ctx context.Context, ident auth.Identity, userID primitive.ObjectID, active bool) (*models.User, error)
}

type UpdateProfileRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	VehicleModel  string `json:"vehicle_model"`
	VehicleNumber string `json:"vehicle_number"`
}

type userService struct {
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

func NewUserService(userRepo interfaces.UserRepository, log *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   log,
	}
}

func (s *userService) Profile(ctx context.Context, ident auth.Identity) (*models.User, error) {
	return s.userRepo.GetByID(ctx, ident.UserID)
}

func (s *userService) UpdateProfile(ctx context.Context, ident auth.Identity, req *UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{
		"name":  req.Name,
		"phone": req.Phone,
	}

	// Vehicle details only apply to drivers.
	if ident.IsDriver() {
		updates["vehicle_model"] = req.VehicleModel
		updates["vehicle_number"] = req.VehicleNumber
	}

	return s.userRepo.UpdateProfile(ctx, ident.UserID, updates)
}

func (s *userService) ListUsers(ctx context.Context, ident auth.Identity) ([]*models.User, error) {
	if err := authorize(opManageUsers, ident, primitive.NilObjectID); err != nil {
		return nil, err
	}

	return s.userRepo.List(ctx)
}

func (s *userService) SetUserStatus(ctx context.Context, ident auth.Identity, userID primitive.ObjectID, active bool) (*models.User, error) {
	if err := authorize(opManageUsers, ident, primitive.NilObjectID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.SetActive(ctx, userID, active)
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(userID).WithField("active", active).Info("user status changed")

	return user, nil
}
