package memory

import (
	"context"
	"math"
	"sync"
	"time"

	"carpool/internal/apperrors"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type reviewKey struct {
	rideID     primitive.ObjectID
	reviewerID primitive.ObjectID
}

type reviewRepository struct {
	mu      sync.RWMutex
	reviews map[reviewKey]*models.Review
}

func NewReviewRepository() interfaces.ReviewRepository {
	return &reviewRepository{
		reviews: make(map[reviewKey]*models.Review),
	}
}

// Create enforces (ride, reviewer) uniqueness under the lock, mirroring the
// unique index the mongodb implementation relies on.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := reviewKey{rideID: review.RideID, reviewerID: review.ReviewerID}
	if _, exists := r.reviews[key]; exists {
		return apperrors.Rule(apperrors.RuleAlreadyReviewed)
	}

	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()

	dup := *review
	r.reviews[key] = &dup
	return nil
}

func (r *reviewRepository) GetByRideAndReviewer(ctx context.Context, rideID, reviewerID primitive.ObjectID) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[reviewKey{rideID: rideID, reviewerID: reviewerID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	dup := *review
	return &dup, nil
}

func (r *reviewRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Review{}
	for _, review := range r.reviews {
		if review.ReviewedDriverID == driverID {
			dup := *review
			result = append(result, &dup)
		}
	}
	return result, nil
}

func (r *reviewRepository) AverageForDriver(ctx context.Context, driverID primitive.ObjectID) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum, count := 0, 0
	for _, review := range r.reviews {
		if review.ReviewedDriverID == driverID {
			sum += review.Rating
			count++
		}
	}

	if count == 0 {
		return 0, nil
	}

	avg := float64(sum) / float64(count)
	return math.Round(avg*100) / 100, nil
}
