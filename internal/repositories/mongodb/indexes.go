package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// index on (ride_id, reviewer_id) is load-bearing: it is what makes review
// submission race-safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = db.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ride_id", Value: 1}, {Key: "reviewer_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create reviews index: %w", err)
	}

	_, err = db.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "reviewed_driver_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create reviews driver index: %w", err)
	}

	_, err = db.Collection("rides").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "source", Value: 1},
			{Key: "destination", Value: 1},
			{Key: "status", Value: 1},
			{Key: "ride_date_time", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create rides search index: %w", err)
	}

	_, err = db.Collection("rides").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "driver_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create rides driver index: %w", err)
	}

	_, err = db.Collection("rides").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "passenger_ids", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create rides passenger index: %w", err)
	}

	return nil
}
