package services

import (
	"context"
	"sync"
	"testing"

	"carpool/internal/apperrors"
	"carpool/internal/auth"
	"carpool/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatSum(ride *models.Ride) int {
	return ride.AvailableSeats + ride.BookedSeats()
}

func TestBookSeat(t *testing.T) {
	rides, bookings, driver := newRideFixture(t)
	ride := offerRide(t, rides, driver, 3)

	passenger := passengerIdentity()
	booked, err := bookings.Book(context.Background(), passenger, ride.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, booked.AvailableSeats)
	assert.True(t, booked.HasPassenger(passenger.UserID))
	assert.Equal(t, seatSum(ride), seatSum(booked))
}

func TestBookSeatErrors(t *testing.T) {
	rides, bookings, driver := newRideFixture(t)
	passenger := passengerIdentity()
	ctx := context.Background()

	t.Run("driver role cannot book", func(t *testing.T) {
		ride := offerRide(t, rides, driver, 2)
		_, err := bookings.Book(ctx, driverIdentity(), ride.ID)
		assert.ErrorIs(t, err, apperrors.ErrRoleViolation)
	})

	t.Run("full ride reports the capacity rule before state", func(t *testing.T) {
		ride := offerRide(t, rides, driver, 1)
		_, err := bookings.Book(ctx, passengerIdentity(), ride.ID)
		require.NoError(t, err)

		_, err = bookings.Book(ctx, passenger, ride.ID)
		assert.ErrorIs(t, err, apperrors.ErrRuleViolation)
		assert.Equal(t, apperrors.RuleFull, apperrors.RuleCode(err))
	})

	t.Run("cancelled ride", func(t *testing.T) {
		ride := offerRide(t, rides, driver, 2)
		_, err := rides.CancelOffer(ctx, driver, ride.ID)
		require.NoError(t, err)

		// The cancel zeroed the seats, so the full rule wins over state.
		_, err = bookings.Book(ctx, passenger, ride.ID)
		assert.ErrorIs(t, err, apperrors.ErrRuleViolation)
		assert.Equal(t, apperrors.RuleFull, apperrors.RuleCode(err))
	})

	t.Run("completed ride with free seats", func(t *testing.T) {
		ride := offerRide(t, rides, driver, 2)
		_, err := rides.Complete(ctx, driver, ride.ID)
		require.NoError(t, err)

		_, err = bookings.Book(ctx, passenger, ride.ID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	})

	t.Run("driver booking own ride under a passenger identity", func(t *testing.T) {
		ride := offerRide(t, rides, driver, 2)
		ownRide := auth.Identity{UserID: driver.UserID, Name: driver.Name, Role: models.RolePassenger, Active: true}
		_, err := bookings.Book(ctx, ownRide, ride.ID)
		assert.ErrorIs(t, err, apperrors.ErrRuleViolation)
		assert.Equal(t, apperrors.RuleSelfBook, apperrors.RuleCode(err))
	})

	t.Run("duplicate booking", func(t *testing.T) {
		ride := offerRide(t, rides, driver, 3)
		_, err := bookings.Book(ctx, passenger, ride.ID)
		require.NoError(t, err)

		_, err = bookings.Book(ctx, passenger, ride.ID)
		assert.ErrorIs(t, err, apperrors.ErrRuleViolation)
		assert.Equal(t, apperrors.RuleDuplicate, apperrors.RuleCode(err))
	})
}

func TestCancelBookingRestoresSeat(t *testing.T) {
	rides, bookings, driver := newRideFixture(t)
	ride := offerRide(t, rides, driver, 3)
	passenger := passengerIdentity()
	ctx := context.Background()

	_, err := bookings.Book(ctx, passenger, ride.ID)
	require.NoError(t, err)

	after, err := bookings.CancelBooking(ctx, passenger, ride.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, after.AvailableSeats)
	assert.False(t, after.HasPassenger(passenger.UserID))
	assert.Equal(t, seatSum(ride), seatSum(after))
}

func TestCancelBookingWithoutBooking(t *testing.T) {
	rides, bookings, driver := newRideFixture(t)
	ride := offerRide(t, rides, driver, 3)

	_, err := bookings.CancelBooking(context.Background(), passengerIdentity(), ride.ID)

	assert.ErrorIs(t, err, apperrors.ErrRuleViolation)
	assert.Equal(t, apperrors.RuleNotBooked, apperrors.RuleCode(err))
}

// Two passengers race for the last seat; exactly one must win and the seat
// sum must stay conserved.
func TestConcurrentBookingLastSeat(t *testing.T) {
	rides, bookings, driver := newRideFixture(t)
	ride := offerRide(t, rides, driver, 1)
	ctx := context.Background()

	passengers := []auth.Identity{passengerIdentity(), passengerIdentity()}
	errs := make([]error, len(passengers))

	var wg sync.WaitGroup
	for i, p := range passengers {
		wg.Add(1)
		go func(i int, p auth.Identity) {
			defer wg.Done()
			_, errs[i] = bookings.Book(ctx, p, ride.ID)
		}(i, p)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.Equal(t, apperrors.RuleFull, apperrors.RuleCode(err))
			lost++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)

	final, err := rides.GetDetails(ctx, ride.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.AvailableSeats)
	assert.Len(t, final.PassengerIDs, 1)
	assert.Equal(t, 1, seatSum(final))
}

// Many passengers book and cancel concurrently; the conserved quantity
// availableSeats + bookedSeats must hold whatever the interleaving.
func TestConcurrentBookAndCancelConservesSeats(t *testing.T) {
	rides, bookings, driver := newRideFixture(t)
	ride := offerRide(t, rides, driver, 4)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := passengerIdentity()
			if _, err := bookings.Book(ctx, p, ride.ID); err != nil {
				return
			}
			_, _ = bookings.CancelBooking(ctx, p, ride.ID)
		}()
	}
	wg.Wait()

	final, err := rides.GetDetails(ctx, ride.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, seatSum(final))
	assert.GreaterOrEqual(t, final.AvailableSeats, 0)
}
