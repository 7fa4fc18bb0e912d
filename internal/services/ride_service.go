package services

import (
	"context"
	"time"

	"carpool/internal/apperrors"
	"carpool/internal/auth"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"
	"carpool/internal/utils"
	"carpool/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideService owns the ride lifecycle: UPCOMING is the only mutable state,
// COMPLETED and CANCELLED are terminal. Every mutation re-validates against
// the freshly loaded ride and goes through the store's version check.
type RideService interface {
	Offer(ctx context.Context, ident auth.Identity, req *OfferRideRequest) (*models.Ride, error)
	Edit(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID, req *UpdateRideRequest) (*models.Ride, error)
	CancelOffer(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID) (*models.Ride, error)
	Complete(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID) (*models.Ride, error)
	GetDetails(ctx context.Context, rideID primitive.ObjectID) (*models.Ride, error)
	Search(ctx context.Context, source, destination string, date time.Time) ([]*models.Ride, error)
	RidesAsDriver(ctx context.Context, ident auth.Identity) ([]*models.Ride, error)
	RidesAsPassenger(ctx context.Context, ident auth.Identity) ([]*models.Ride, error)
}

type OfferRideRequest struct {
	Source         string    `json:"source" binding:"required"`
	Destination    string    `json:"destination" binding:"required"`
	RideDateTime   time.Time `json:"ride_date_time" binding:"required"`
	AvailableSeats int       `json:"available_seats" binding:"required,gt=0"`
	PricePerSeat   float64   `json:"price_per_seat" binding:"gte=0"`
}

type UpdateRideRequest struct {
	Source         string    `json:"source" binding:"required"`
	Destination    string    `json:"destination" binding:"required"`
	RideDateTime   time.Time `json:"ride_date_time" binding:"required"`
	AvailableSeats int       `json:"available_seats" binding:"required,gte=0"`
	PricePerSeat   float64   `json:"price_per_seat" binding:"gte=0"`
}

type rideService struct {
	rideRepo interfaces.RideRepository
	logger   *logger.Logger
}

func NewRideService(rideRepo interfaces.RideRepository, log *logger.Logger) RideService {
	return &rideService{
		rideRepo: rideRepo,
		logger:   log,
	}
}

func (s *rideService) Offer(ctx context.Context, ident auth.Identity, req *OfferRideRequest) (*models.Ride, error) {
	if err := authorize(opOfferRide, ident, primitive.NilObjectID); err != nil {
		return nil, err
	}

	ride := &models.Ride{
		DriverID:       ident.UserID,
		DriverName:     ident.Name,
		Source:         req.Source,
		Destination:    req.Destination,
		RideDateTime:   req.RideDateTime,
		AvailableSeats: req.AvailableSeats,
		PricePerSeat:   req.PricePerSeat,
		Status:         models.RideStatusUpcoming,
		PassengerIDs:   []primitive.ObjectID{},
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	s.logger.WithRideID(ride.ID).WithUserID(ident.UserID).Info("ride offered")

	return ride, nil
}

func (s *rideService) Edit(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID, req *UpdateRideRequest) (*models.Ride, error) {
	ride, err := mutateRide(ctx, s.rideRepo, rideID, func(ride *models.Ride) error {
		if err := authorize(opEditRide, ident, ride.DriverID); err != nil {
			return err
		}
		if ride.Status != models.RideStatusUpcoming {
			return apperrors.ErrInvalidState
		}
		if req.AvailableSeats < ride.BookedSeats() {
			return apperrors.ErrCapacityViolation
		}

		ride.Source = req.Source
		ride.Destination = req.Destination
		ride.RideDateTime = req.RideDateTime
		ride.AvailableSeats = req.AvailableSeats
		ride.PricePerSeat = req.PricePerSeat
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithRideID(rideID).WithUserID(ident.UserID).Info("ride edited")

	return ride, nil
}

func (s *rideService) CancelOffer(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := mutateRide(ctx, s.rideRepo, rideID, func(ride *models.Ride) error {
		if err := authorize(opCancelOffer, ident, ride.DriverID); err != nil {
			return err
		}
		if ride.Status != models.RideStatusUpcoming {
			return apperrors.ErrInvalidState
		}

		// Passenger list stays as a historical record of who was booked.
		ride.Status = models.RideStatusCancelled
		ride.AvailableSeats = 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithRideID(rideID).WithUserID(ident.UserID).Info("ride offer cancelled")

	return ride, nil
}

func (s *rideService) Complete(ctx context.Context, ident auth.Identity, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := mutateRide(ctx, s.rideRepo, rideID, func(ride *models.Ride) error {
		if err := authorize(opCompleteRide, ident, ride.DriverID); err != nil {
			return err
		}
		if ride.Status != models.RideStatusUpcoming {
			return apperrors.ErrInvalidState
		}

		// Seats and passengers are untouched; review eligibility reads them.
		ride.Status = models.RideStatusCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithRideID(rideID).WithUserID(ident.UserID).Info("ride completed")

	return ride, nil
}

func (s *rideService) GetDetails(ctx context.Context, rideID primitive.ObjectID) (*models.Ride, error) {
	return s.rideRepo.GetByID(ctx, rideID)
}

func (s *rideService) Search(ctx context.Context, source, destination string, date time.Time) ([]*models.Ride, error) {
	return s.rideRepo.SearchUpcoming(ctx, source, destination, utils.StartOfDay(date), utils.EndOfDay(date))
}

func (s *rideService) RidesAsDriver(ctx context.Context, ident auth.Identity) ([]*models.Ride, error) {
	return s.rideRepo.GetByDriver(ctx, ident.UserID)
}

func (s *rideService) RidesAsPassenger(ctx context.Context, ident auth.Identity) ([]*models.Ride, error) {
	return s.rideRepo.GetByPassenger(ctx, ident.UserID)
}
