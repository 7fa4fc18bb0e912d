package interfaces

import (
	"context"
	"time"

	"carpool/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideRepository is the durable store of Ride records. Put is the only write
// path for existing rides and enforces the optimistic concurrency check:
// the write succeeds only if the stored version still equals expectedVersion,
// otherwise apperrors.ErrConflict is returned and the caller must re-read.
type RideRepository interface {
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)
	Put(ctx context.Context, ride *models.Ride, expectedVersion int64) error

	GetByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Ride, error)
	GetByPassenger(ctx context.Context, passengerID primitive.ObjectID) ([]*models.Ride, error)

	// SearchUpcoming matches source and destination case-insensitively among
	// UPCOMING rides departing within [dayStart, dayEnd].
	SearchUpcoming(ctx context.Context, source, destination string, dayStart, dayEnd time.Time) ([]*models.Ride, error)
}
