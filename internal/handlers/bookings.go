package handlers

import (
	"carpool/internal/middleware"
	"carpool/internal/services"
	"carpool/internal/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookRide claims one seat on the ride for the calling passenger.
func (h *BookingHandler) BookRide(c *gin.Context) {
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	ride, err := h.bookingService.Book(c.Request.Context(), middleware.Identity(c), rideID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Seat booked", ride)
}

// CancelBooking releases the calling passenger's seat.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	ride, err := h.bookingService.CancelBooking(c.Request.Context(), middleware.Identity(c), rideID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled", ride)
}
