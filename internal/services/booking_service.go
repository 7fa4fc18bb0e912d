package services

import (
	"context"

	"carpool/internal/apperrors"
	"carpool/internal/auth"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"
	"carpool/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService owns seat accounting. Book and CancelBooking are symmetric
// inverses on the conserved quantity availableSeats + len(passengerIDs);
// both re-validate against the freshly loaded ride inside the version-checked
// write loop, so a concurrent booking can never drive the seat count
// negative or book the same passenger twice.
type BookingService interface {
	Book(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID) (*models.Ride, error)
	CancelBooking(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID) (*models.Ride, error)
}

type bookingService struct {
	rideRepo interfaces.RideRepository
	logger   *logger.Logger
}

func NewBookingService(rideRepo interfaces.RideRepository, log *logger.Logger) BookingService {
	return &bookingService{
		rideRepo: rideRepo,
		logger:   log,
	}
}

func (s *bookingService) Book(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := mutateRide(ctx, s.rideRepo, rideID, func(ride *models.Ride) error {
		if err := authorize(opBookSeat, ident, primitive.NilObjectID); err != nil {
			return err
		}
		if ride.AvailableSeats <= 0 {
			return apperrors.Rule(apperrors.RuleFull)
		}
		if ride.Status != models.RideStatusUpcoming {
			return apperrors.ErrInvalidState
		}
		if ride.DriverID == ident.UserID {
			return apperrors.Rule(apperrors.RuleSelfBook)
		}
		if ride.HasPassenger(ident.UserID) {
			return apperrors.Rule(apperrors.RuleDuplicate)
		}

		ride.AddPassenger(ident.UserID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithRideID(rideID).WithUserID(ident.UserID).Info("seat booked")

	return ride, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := mutateRide(ctx, s.rideRepo, rideID, func(ride *models.Ride) error {
		if err := authorize(opCancelBooking, ident, primitive.NilObjectID); err != nil {
			return err
		}
		if ride.Status != models.RideStatusUpcoming {
			return apperrors.ErrInvalidState
		}
		if !ride.HasPassenger(ident.UserID) {
			return apperrors.Rule(apperrors.RuleNotBooked)
		}

		ride.RemovePassenger(ident.UserID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithRideID(rideID).WithUserID(ident.UserID).Info("booking cancelled")

	return ride, nil
}
