package routes

import (
	"carpool/internal/handlers"
	"carpool/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRideRoutes sets up routes for the ride lifecycle and seat bookings
func SetupRideRoutes(r *gin.RouterGroup, authRequired gin.HandlerFunc, rideHandler *handlers.RideHandler, bookingHandler *handlers.BookingHandler) {
	rides := r.Group("/rides")
	rides.Use(authRequired)
	{
		// Lifecycle operations. Ownership and role checks live in the
		// services, so these are not role-gated here.
		rides.POST("/", rideHandler.OfferRide)
		rides.GET("/search", rideHandler.SearchRides)
		rides.GET("/:id", rideHandler.GetRide)
		rides.PUT("/:id", rideHandler.EditRide)
		rides.PUT("/:id/cancel", rideHandler.CancelOffer)
		rides.PUT("/:id/complete", rideHandler.CompleteRide)

		// Seat bookings
		rides.POST("/:id/book", bookingHandler.BookRide)
		rides.DELETE("/:id/book", bookingHandler.CancelBooking)

		// Reviews are submitted against the ride they concern
		rides.GET("/mine/offered", middleware.DriverRequired(), rideHandler.MyOfferedRides)
		rides.GET("/mine/booked", middleware.PassengerRequired(), rideHandler.MyBookedRides)
	}
}
