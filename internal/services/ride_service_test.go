package services

import (
	"context"
	"testing"
	"time"

	"carpool/internal/apperrors"
	"carpool/internal/auth"
	"carpool/internal/models"
	"carpool/internal/repositories/memory"
	"carpool/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func driverIdentity() auth.Identity {
	return auth.Identity{
		UserID: primitive.NewObjectID(),
		Name:   "Dana Driver",
		Role:   models.RoleDriver,
		Active: true,
	}
}

func passengerIdentity() auth.Identity {
	return auth.Identity{
		UserID: primitive.NewObjectID(),
		Name:   "Pat Passenger",
		Role:   models.RolePassenger,
		Active: true,
	}
}

func newRideFixture(t *testing.T) (RideService, BookingService, auth.Identity) {
	t.Helper()
	repo := memory.NewRideRepository()
	log := logger.NewNop()
	return NewRideService(repo, log), NewBookingService(repo, log), driverIdentity()
}

func offerRide(t *testing.T, svc RideService, driver auth.Identity, seats int) *models.Ride {
	t.Helper()
	ride, err := svc.Offer(context.Background(), driver, &OfferRideRequest{
		Source:         "Pune",
		Destination:    "Mumbai",
		RideDateTime:   time.Now().Add(48 * time.Hour),
		AvailableSeats: seats,
		PricePerSeat:   250,
	})
	require.NoError(t, err)
	return ride
}

func TestOfferRide(t *testing.T) {
	svc, _, driver := newRideFixture(t)

	ride := offerRide(t, svc, driver, 3)

	assert.Equal(t, models.RideStatusUpcoming, ride.Status)
	assert.Equal(t, driver.UserID, ride.DriverID)
	assert.Equal(t, driver.Name, ride.DriverName)
	assert.Equal(t, 3, ride.AvailableSeats)
	assert.Empty(t, ride.PassengerIDs)
	assert.False(t, ride.ID.IsZero())
}

func TestOfferRideRequiresDriverRole(t *testing.T) {
	svc, _, _ := newRideFixture(t)

	_, err := svc.Offer(context.Background(), passengerIdentity(), &OfferRideRequest{
		Source:         "Pune",
		Destination:    "Mumbai",
		RideDateTime:   time.Now().Add(24 * time.Hour),
		AvailableSeats: 2,
	})

	assert.ErrorIs(t, err, apperrors.ErrRoleViolation)
}

func TestEditRide(t *testing.T) {
	svc, _, driver := newRideFixture(t)
	ride := offerRide(t, svc, driver, 3)

	updated, err := svc.Edit(context.Background(), driver, ride.ID, &UpdateRideRequest{
		Source:         "Pune",
		Destination:    "Nashik",
		RideDateTime:   ride.RideDateTime,
		AvailableSeats: 2,
		PricePerSeat:   300,
	})

	require.NoError(t, err)
	assert.Equal(t, "Nashik", updated.Destination)
	assert.Equal(t, 2, updated.AvailableSeats)
	assert.Equal(t, 300.0, updated.PricePerSeat)
}

func TestEditRideOnlyByOwner(t *testing.T) {
	svc, _, driver := newRideFixture(t)
	ride := offerRide(t, svc, driver, 3)

	otherDriver := driverIdentity()
	_, err := svc.Edit(context.Background(), otherDriver, ride.ID, &UpdateRideRequest{
		Source:         "Pune",
		Destination:    "Mumbai",
		RideDateTime:   ride.RideDateTime,
		AvailableSeats: 3,
	})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestEditRideCannotDropSeatsBelowBooked(t *testing.T) {
	svc, bookings, driver := newRideFixture(t)
	ride := offerRide(t, svc, driver, 3)

	for i := 0; i < 2; i++ {
		_, err := bookings.Book(context.Background(), passengerIdentity(), ride.ID)
		require.NoError(t, err)
	}

	_, err := svc.Edit(context.Background(), driver, ride.ID, &UpdateRideRequest{
		Source:         ride.Source,
		Destination:    ride.Destination,
		RideDateTime:   ride.RideDateTime,
		AvailableSeats: 1,
	})

	assert.ErrorIs(t, err, apperrors.ErrCapacityViolation)
}

func TestEditAfterCancelIsRejected(t *testing.T) {
	svc, _, driver := newRideFixture(t)
	ride := offerRide(t, svc, driver, 3)

	_, err := svc.CancelOffer(context.Background(), driver, ride.ID)
	require.NoError(t, err)

	_, err = svc.Edit(context.Background(), driver, ride.ID, &UpdateRideRequest{
		Source:         ride.Source,
		Destination:    ride.Destination,
		RideDateTime:   ride.RideDateTime,
		AvailableSeats: 5,
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestCancelOfferKeepsPassengerRecord(t *testing.T) {
	svc, bookings, driver := newRideFixture(t)
	ride := offerRide(t, svc, driver, 2)

	passenger := passengerIdentity()
	_, err := bookings.Book(context.Background(), passenger, ride.ID)
	require.NoError(t, err)

	cancelled, err := svc.CancelOffer(context.Background(), driver, ride.ID)
	require.NoError(t, err)

	assert.Equal(t, models.RideStatusCancelled, cancelled.Status)
	assert.Equal(t, 0, cancelled.AvailableSeats)
	assert.True(t, cancelled.HasPassenger(passenger.UserID))
}

func TestCompleteRidePreservesSeatsAndPassengers(t *testing.T) {
	svc, bookings, driver := newRideFixture(t)
	ride := offerRide(t, svc, driver, 3)

	passenger := passengerIdentity()
	_, err := bookings.Book(context.Background(), passenger, ride.ID)
	require.NoError(t, err)

	completed, err := svc.Complete(context.Background(), driver, ride.ID)
	require.NoError(t, err)

	assert.Equal(t, models.RideStatusCompleted, completed.Status)
	assert.Equal(t, 2, completed.AvailableSeats)
	assert.True(t, completed.HasPassenger(passenger.UserID))
}

func TestTerminalStatesRejectFurtherTransitions(t *testing.T) {
	svc, _, driver := newRideFixture(t)
	ride := offerRide(t, svc, driver, 3)

	_, err := svc.Complete(context.Background(), driver, ride.ID)
	require.NoError(t, err)

	_, err = svc.CancelOffer(context.Background(), driver, ride.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = svc.Complete(context.Background(), driver, ride.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestGetDetailsUnknownRide(t *testing.T) {
	svc, _, _ := newRideFixture(t)

	_, err := svc.GetDetails(context.Background(), primitive.NewObjectID())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSearchMatchesRouteCaseInsensitively(t *testing.T) {
	repo := memory.NewRideRepository()
	svc := NewRideService(repo, logger.NewNop())
	driver := driverIdentity()

	date := time.Now().Add(72 * time.Hour)

	_, err := svc.Offer(context.Background(), driver, &OfferRideRequest{
		Source:         "Pune",
		Destination:    "Mumbai",
		RideDateTime:   date,
		AvailableSeats: 2,
	})
	require.NoError(t, err)

	// Same day, different route: must not match.
	_, err = svc.Offer(context.Background(), driver, &OfferRideRequest{
		Source:         "Pune",
		Destination:    "Nashik",
		RideDateTime:   date,
		AvailableSeats: 2,
	})
	require.NoError(t, err)

	// Same route, different day: must not match.
	_, err = svc.Offer(context.Background(), driver, &OfferRideRequest{
		Source:         "Pune",
		Destination:    "Mumbai",
		RideDateTime:   date.Add(48 * time.Hour),
		AvailableSeats: 2,
	})
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), "pune", "MUMBAI", date)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Pune", results[0].Source)
	assert.Equal(t, "Mumbai", results[0].Destination)
}

func TestSearchExcludesNonUpcomingRides(t *testing.T) {
	repo := memory.NewRideRepository()
	svc := NewRideService(repo, logger.NewNop())
	driver := driverIdentity()

	date := time.Now().Add(72 * time.Hour)
	ride, err := svc.Offer(context.Background(), driver, &OfferRideRequest{
		Source:         "Pune",
		Destination:    "Mumbai",
		RideDateTime:   date,
		AvailableSeats: 2,
	})
	require.NoError(t, err)

	_, err = svc.CancelOffer(context.Background(), driver, ride.ID)
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), "Pune", "Mumbai", date)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRideListingsByRole(t *testing.T) {
	repo := memory.NewRideRepository()
	log := logger.NewNop()
	svc := NewRideService(repo, log)
	bookings := NewBookingService(repo, log)

	driver := driverIdentity()
	passenger := passengerIdentity()

	ride := offerRide(t, svc, driver, 2)
	_, err := bookings.Book(context.Background(), passenger, ride.ID)
	require.NoError(t, err)

	offered, err := svc.RidesAsDriver(context.Background(), driver)
	require.NoError(t, err)
	require.Len(t, offered, 1)
	assert.Equal(t, ride.ID, offered[0].ID)

	booked, err := svc.RidesAsPassenger(context.Background(), passenger)
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, ride.ID, booked[0].ID)

	none, err := svc.RidesAsPassenger(context.Background(), passengerIdentity())
	require.NoError(t, err)
	assert.Empty(t, none)
}
