package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideStatus string

const (
	RideStatusUpcoming  RideStatus = "UPCOMING"
	RideStatusCompleted RideStatus = "COMPLETED"
	RideStatusCancelled RideStatus = "CANCELLED"
)

// Terminal reports whether no further status transition is allowed.
func (s RideStatus) Terminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// Ride is one driver's offer of transportation. AvailableSeats and
// PassengerIDs together hold the seat accounting: every seat is either
// available or held by exactly one passenger. Version is the optimistic
// concurrency token checked by the store on every write.
type Ride struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID     primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	DriverName   string             `json:"driver_name" bson:"driver_name"`
	Source       string             `json:"source" bson:"source"`
	Destination  string             `json:"destination" bson:"destination"`
	RideDateTime time.Time          `json:"ride_date_time" bson:"ride_date_time"`

	AvailableSeats int     `json:"available_seats" bson:"available_seats"`
	PricePerSeat   float64 `json:"price_per_seat" bson:"price_per_seat"`

	Status       RideStatus           `json:"status" bson:"status"`
	PassengerIDs []primitive.ObjectID `json:"passenger_ids" bson:"passenger_ids"`

	Version   int64     `json:"-" bson:"version"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (r *Ride) BookedSeats() int {
	return len(r.PassengerIDs)
}

func (r *Ride) HasPassenger(userID primitive.ObjectID) bool {
	for _, id := range r.PassengerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AddPassenger appends the passenger and takes one seat. Callers must have
// verified capacity and membership beforehand.
func (r *Ride) AddPassenger(userID primitive.ObjectID) {
	r.PassengerIDs = append(r.PassengerIDs, userID)
	r.AvailableSeats--
}

// RemovePassenger drops the passenger and releases one seat. It is a no-op
// if the passenger is not booked.
func (r *Ride) RemovePassenger(userID primitive.ObjectID) {
	for i, id := range r.PassengerIDs {
		if id == userID {
			r.PassengerIDs = append(r.PassengerIDs[:i], r.PassengerIDs[i+1:]...)
			r.AvailableSeats++
			return
		}
	}
}
