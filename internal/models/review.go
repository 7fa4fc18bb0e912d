package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is one passenger's rating of a driver for one completed ride.
// At most one review exists per (ride, reviewer) pair; the store enforces
// this with a unique compound index. Reviews are never mutated once written.
type Review struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RideID           primitive.ObjectID `json:"ride_id" bson:"ride_id"`
	ReviewerID       primitive.ObjectID `json:"reviewer_id" bson:"reviewer_id"`
	ReviewedDriverID primitive.ObjectID `json:"reviewed_driver_id" bson:"reviewed_driver_id"`
	Rating           int                `json:"rating" bson:"rating"`
	Comment          string             `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}
