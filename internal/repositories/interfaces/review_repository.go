package interfaces

import (
	"context"

	"carpool/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewRepository stores immutable reviews. Create must reject a second
// review for the same (ride, reviewer) pair with the already-reviewed rule
// violation, even under concurrent submission.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByRideAndReviewer(ctx context.Context, rideID, reviewerID primitive.ObjectID) (*models.Review, error)
	GetByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Review, error)

	// AverageForDriver returns the arithmetic mean rating of the driver's
	// reviews, or 0 if the driver has none.
	AverageForDriver(ctx context.Context, driverID primitive.ObjectID) (float64, error)
}
