package mongodb

import (
	"context"
	"fmt"
	"math"
	"time"

	"carpool/internal/apperrors"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"
	"carpool/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const avgRatingCacheTTL = 15 * time.Minute

type reviewRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewReviewRepository(db *mongo.Database, cache services.CacheService) interfaces.ReviewRepository {
	return &reviewRepository{
		collection: db.Collection("reviews"),
		cache:      cache,
	}
}

// Create inserts the review. The unique (ride_id, reviewer_id) index closes
// the lookup-then-insert race: the loser of a concurrent duplicate submission
// gets the already-reviewed rule violation from the index, not a second row.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Rule(apperrors.RuleAlreadyReviewed)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	r.invalidateAverageCache(ctx, review.ReviewedDriverID)

	return nil
}

func (r *reviewRepository) GetByRideAndReviewer(ctx context.Context, rideID, reviewerID primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"ride_id": rideID, "reviewer_id": reviewerID}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

func (r *reviewRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Review, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"reviewed_driver_id": driverID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews by driver: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*models.Review{}
	for cursor.Next(ctx) {
		var review models.Review
		if err := cursor.Decode(&review); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) AverageForDriver(ctx context.Context, driverID primitive.ObjectID) (float64, error) {
	cacheKey := avgRatingCacheKey(driverID)
	if r.cache != nil {
		var avgRating float64
		if err := r.cache.Get(ctx, cacheKey, &avgRating); err == nil {
			return avgRating, nil
		}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"reviewed_driver_id": driverID}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"avg_rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate average rating: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		AvgRating float64 `bson:"avg_rating"`
	}

	avgRating := float64(0)
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err == nil {
			avgRating = math.Round(result.AvgRating*100) / 100
		}
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, avgRating, avgRatingCacheTTL)
	}

	return avgRating, nil
}

func avgRatingCacheKey(driverID primitive.ObjectID) string {
	return fmt.Sprintf("avg_rating:%s", driverID.Hex())
}

func (r *reviewRepository) invalidateAverageCache(ctx context.Context, driverID primitive.ObjectID) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, avgRatingCacheKey(driverID))
}
