package services

import (
	"context"
	"errors"
	"fmt"

	"carpool/internal/apperrors"
	"carpool/internal/auth"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"
	"carpool/internal/utils"
	"carpool/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService records one rating per (ride, reviewer) pair for completed
// rides and aggregates per-driver averages. It reads ride state for
// eligibility but never mutates rides.
type ReviewService interface {
	Submit(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID, req *SubmitReviewRequest) (*models.Review, error)
	ForDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Review, error)
	AverageRating(ctx context.Context, driverID primitive.ObjectID) (float64, error)
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,rating"`
	Comment string `json:"comment"`
}

type reviewService struct {
	reviewRepo interfaces.ReviewRepository
	rideRepo   interfaces.RideRepository
	logger     *logger.Logger
}

func NewReviewService(reviewRepo interfaces.ReviewRepository, rideRepo interfaces.RideRepository, log *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		rideRepo:   rideRepo,
		logger:     log,
	}
}

func (s *reviewService) Submit(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID, req *SubmitReviewRequest) (*models.Review, error) {
	if req.Rating < utils.MinRating || req.Rating > utils.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d",
			apperrors.ErrValidation, utils.MinRating, utils.MaxRating)
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if err := authorize(opSubmitReview, ident, primitive.NilObjectID); err != nil {
		return nil, err
	}
	if ride.Status != models.RideStatusCompleted {
		return nil, apperrors.ErrInvalidState
	}
	if !ride.HasPassenger(ident.UserID) {
		return nil, apperrors.Rule(apperrors.RuleNotARider)
	}

	if _, err := s.reviewRepo.GetByRideAndReviewer(ctx, rideID, ident.UserID); err == nil {
		return nil, apperrors.Rule(apperrors.RuleAlreadyReviewed)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	review := &models.Review{
		RideID:     rideID,
		ReviewerID: ident.UserID,
		// The reviewed driver comes from the ride record, never from the
		// caller.
		ReviewedDriverID: ride.DriverID,
		Rating:           req.Rating,
		Comment:          req.Comment,
	}

	// The store's uniqueness guard catches the duplicate that slips past the
	// lookup above when two submissions race.
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.WithRideID(rideID).WithUserID(ident.UserID).
		WithField("rating", req.Rating).Info("review submitted")

	return review, nil
}

func (s *reviewService) ForDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Review, error) {
	return s.reviewRepo.GetByDriver(ctx, driverID)
}

func (s *reviewService) AverageRating(ctx context.Context, driverID primitive.ObjectID) (float64, error) {
	return s.reviewRepo.AverageForDriver(ctx, driverID)
}
