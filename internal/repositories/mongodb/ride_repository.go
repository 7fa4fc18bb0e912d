package mongodb

import (
	"context"
	"fmt"
	"regexp"
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

const rideCacheTTL = 5 * time.Minute

type rideRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewRideRepository(db *mongo.Database, cache services.CacheService) interfaces.RideRepository {
	return &rideRepository{
		collection: db.Collection("rides"),
		cache:      cache,
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	ride.Version = 1
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = ride.CreatedAt
	if ride.PassengerIDs == nil {
		ride.PassengerIDs = []primitive.ObjectID{}
	}

	_, err := r.collection.InsertOne(ctx, ride)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	if ride := r.getRideFromCache(ctx, id); ride != nil {
		return ride, nil
	}

	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	// Only upcoming rides are hot; terminal rides are read rarely.
	if ride.Status == models.RideStatusUpcoming {
		r.cacheRide(ctx, &ride)
	}

	return &ride, nil
}

// Put replaces the ride document only if its stored version still equals
// expectedVersion. A concurrent writer that got there first leaves
// MatchedCount at zero, which surfaces as ErrConflict so the caller can
// re-read and retry.
func (r *rideRepository) Put(ctx context.Context, ride *models.Ride, expectedVersion int64) error {
	ride.Version = expectedVersion + 1
	ride.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": ride.ID, "version": expectedVersion},
		ride,
	)
	if err != nil {
		return fmt.Errorf("failed to put ride: %w", err)
	}

	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": ride.ID})
		if err != nil {
			return fmt.Errorf("failed to check ride existence: %w", err)
		}
		if count == 0 {
			return apperrors.ErrNotFound
		}
		// Drop any cached copy so the caller's retry re-reads the winner.
		r.invalidateRideCache(ctx, ride.ID)
		return apperrors.ErrConflict
	}

	r.invalidateRideCache(ctx, ride.ID)

	return nil
}

func (r *rideRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Ride, error) {
	opts := options.Find().SetSort(bson.M{"ride_date_time": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"driver_id": driverID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get rides by driver: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeRides(ctx, cursor)
}

func (r *rideRepository) GetByPassenger(ctx context.Context, passengerID primitive.ObjectID) ([]*models.Ride, error) {
	opts := options.Find().SetSort(bson.M{"ride_date_time": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"passenger_ids": passengerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get rides by passenger: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeRides(ctx, cursor)
}

func (r *rideRepository) SearchUpcoming(ctx context.Context, source, destination string, dayStart, dayEnd time.Time) ([]*models.Ride, error) {
	filter := bson.M{
		"source":      exactInsensitive(source),
		"destination": exactInsensitive(destination),
		"status":      models.RideStatusUpcoming,
		"ride_date_time": bson.M{
			"$gte": dayStart,
			"$lte": dayEnd,
		},
	}

	opts := options.Find().SetSort(bson.M{"ride_date_time": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search rides: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeRides(ctx, cursor)
}

// exactInsensitive builds a whole-string case-insensitive match for a
// caller-supplied route endpoint.
func exactInsensitive(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func decodeRides(ctx context.Context, cursor *mongo.Cursor) ([]*models.Ride, error) {
	rides := []*models.Ride{}
	for cursor.Next(ctx) {
		var ride models.Ride
		if err := cursor.Decode(&ride); err != nil {
			return nil, fmt.Errorf("failed to decode ride: %w", err)
		}
		rides = append(rides, &ride)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return rides, nil
}

func rideCacheKey(id primitive.ObjectID) string {
	return fmt.Sprintf("ride:%s", id.Hex())
}

// cachedRide carries the version alongside the ride because the ride's JSON
// form hides it; a cached copy without its version would fail every
// subsequent conditional write.
type cachedRide struct {
	Ride    *models.Ride `json:"ride"`
	Version int64        `json:"version"`
}

func (r *rideRepository) cacheRide(ctx context.Context, ride *models.Ride) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, rideCacheKey(ride.ID), &cachedRide{Ride: ride, Version: ride.Version}, rideCacheTTL)
}

func (r *rideRepository) getRideFromCache(ctx context.Context, id primitive.ObjectID) *models.Ride {
	if r.cache == nil {
		return nil
	}

	var entry cachedRide
	if err := r.cache.Get(ctx, rideCacheKey(id), &entry); err != nil || entry.Ride == nil {
		return nil
	}
	entry.Ride.Version = entry.Version
	return entry.Ride
}

func (r *rideRepository) invalidateRideCache(ctx context.Context, id primitive.ObjectID) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, rideCacheKey(id))
}
