package services

import (
	"context"
	"testing"
	"time"

	"carpool/internal/apperrors"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"
	"carpool/internal/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// conflictingRideRepo rejects the first N writes with a version conflict, as
// if another writer won each time.
type conflictingRideRepo struct {
	interfaces.RideRepository
	conflicts int
	puts      int
}

func (r *conflictingRideRepo) Put(ctx context.Context, ride *models.Ride, expectedVersion int64) error {
	r.puts++
	if r.puts <= r.conflicts {
		return apperrors.ErrConflict
	}
	return r.RideRepository.Put(ctx, ride, expectedVersion)
}

func seedRide(t *testing.T, repo interfaces.RideRepository) *models.Ride {
	t.Helper()
	ride := &models.Ride{
		DriverID:       primitive.NewObjectID(),
		DriverName:     "Dana Driver",
		Source:         "Pune",
		Destination:    "Mumbai",
		RideDateTime:   time.Now().Add(24 * time.Hour),
		AvailableSeats: 3,
		Status:         models.RideStatusUpcoming,
	}
	require.NoError(t, repo.Create(context.Background(), ride))
	return ride
}

func TestMutateRideRetriesOnConflict(t *testing.T) {
	repo := &conflictingRideRepo{RideRepository: memory.NewRideRepository(), conflicts: 2}
	ride := seedRide(t, repo)

	updated, err := mutateRide(context.Background(), repo, ride.ID, func(ride *models.Ride) error {
		ride.AvailableSeats = 1
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, updated.AvailableSeats)
	assert.Equal(t, 3, repo.puts)
}

func TestMutateRideGivesUpAfterRepeatedConflicts(t *testing.T) {
	repo := &conflictingRideRepo{RideRepository: memory.NewRideRepository(), conflicts: maxPutAttempts}
	ride := seedRide(t, repo)

	_, err := mutateRide(context.Background(), repo, ride.ID, func(ride *models.Ride) error {
		ride.AvailableSeats = 1
		return nil
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestMutateRideRejectionWritesNothing(t *testing.T) {
	repo := memory.NewRideRepository()
	ride := seedRide(t, repo)

	_, err := mutateRide(context.Background(), repo, ride.ID, func(ride *models.Ride) error {
		ride.AvailableSeats = 0
		return apperrors.ErrInvalidState
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	stored, err := repo.GetByID(context.Background(), ride.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.AvailableSeats)
	assert.Equal(t, int64(1), stored.Version)
}

func TestMutateRideUnknownRide(t *testing.T) {
	repo := memory.NewRideRepository()

	_, err := mutateRide(context.Background(), repo, primitive.NewObjectID(), func(ride *models.Ride) error {
		return nil
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
