package services

import (
	"context"
	"errors"

	"carpool/internal/apperrors"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxPutAttempts bounds the read-validate-write retry loop. Exhausting it
// surfaces ErrConflict, which the caller may retry from the request boundary.
const maxPutAttempts = 3

// mutateRide runs one read-validate-write sequence against the ride under
// the store's optimistic version check. mutate sees the freshly loaded ride
// and either rejects (its error is returned as-is, nothing is written) or
// updates it in place. A version conflict re-reads and retries, so two
// writers racing on the same ride serialize without blocking writers on
// other rides.
func mutateRide(ctx context.Context, repo interfaces.RideRepository, rideID primitive.ObjectID, mutate func(*models.Ride) error) (*models.Ride, error) {
	for attempt := 0; attempt < maxPutAttempts; attempt++ {
		ride, err := repo.GetByID(ctx, rideID)
		if err != nil {
			return nil, err
		}

		if err := mutate(ride); err != nil {
			return nil, err
		}

		expected := ride.Version
		err = repo.Put(ctx, ride, expected)
		if err == nil {
			return ride, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
	}

	return nil, apperrors.ErrConflict
}
