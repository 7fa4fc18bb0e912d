// Package memory holds in-process repository implementations with the same
// semantics as the mongodb package, including the per-ride optimistic
// version check. They back the service tests and small deployments that run
// without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"carpool/internal/apperrors"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type rideRepository struct {
	mu    sync.RWMutex
	rides map[primitive.ObjectID]*models.Ride
}

func NewRideRepository() interfaces.RideRepository {
	return &rideRepository{
		rides: make(map[primitive.ObjectID]*models.Ride),
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride.ID = primitive.NewObjectID()
	ride.Version = 1
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = ride.CreatedAt
	if ride.PassengerIDs == nil {
		ride.PassengerIDs = []primitive.ObjectID{}
	}

	r.rides[ride.ID] = copyRide(ride)
	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ride, ok := r.rides[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return copyRide(ride), nil
}

func (r *rideRepository) Put(ctx context.Context, ride *models.Ride, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rides[ride.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return apperrors.ErrConflict
	}

	ride.Version = expectedVersion + 1
	ride.UpdatedAt = time.Now()
	r.rides[ride.ID] = copyRide(ride)
	return nil
}

func (r *rideRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(ride *models.Ride) bool {
		return ride.DriverID == driverID
	}), nil
}

func (r *rideRepository) GetByPassenger(ctx context.Context, passengerID primitive.ObjectID) ([]*models.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(ride *models.Ride) bool {
		return ride.HasPassenger(passengerID)
	}), nil
}

func (r *rideRepository) SearchUpcoming(ctx context.Context, source, destination string, dayStart, dayEnd time.Time) ([]*models.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(ride *models.Ride) bool {
		return ride.Status == models.RideStatusUpcoming &&
			strings.EqualFold(ride.Source, source) &&
			strings.EqualFold(ride.Destination, destination) &&
			!ride.RideDateTime.Before(dayStart) &&
			!ride.RideDateTime.After(dayEnd)
	}), nil
}

// collect must be called with the lock held.
func (r *rideRepository) collect(match func(*models.Ride) bool) []*models.Ride {
	result := []*models.Ride{}
	for _, ride := range r.rides {
		if match(ride) {
			result = append(result, copyRide(ride))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].RideDateTime.Before(result[j].RideDateTime)
	})

	return result
}

func copyRide(ride *models.Ride) *models.Ride {
	dup := *ride
	dup.PassengerIDs = append([]primitive.ObjectID{}, ride.PassengerIDs...)
	return &dup
}
