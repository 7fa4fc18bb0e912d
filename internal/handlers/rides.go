package handlers

import (
	"net/http"
	"time"

	"carpool/internal/middleware"
	"carpool/internal/services"
	"carpool/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideHandler struct {
	rideService services.RideService
}

func NewRideHandler(rideService services.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// OfferRide creates a new UPCOMING ride owned by the calling driver.
func (h *RideHandler) OfferRide(c *gin.Context) {
	var req services.OfferRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrorDetails(err))
		return
	}

	if req.RideDateTime.Before(time.Now()) {
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Ride date must be in the future")
		return
	}

	ride, err := h.rideService.Offer(c.Request.Context(), middleware.Identity(c), &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Ride offered", ride)
}

func (h *RideHandler) EditRide(c *gin.Context) {
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrorDetails(err))
		return
	}

	ride, err := h.rideService.Edit(c.Request.Context(), middleware.Identity(c), rideID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride updated", ride)
}

func (h *RideHandler) CancelOffer(c *gin.Context) {
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	ride, err := h.rideService.CancelOffer(c.Request.Context(), middleware.Identity(c), rideID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride cancelled", ride)
}

func (h *RideHandler) CompleteRide(c *gin.Context) {
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	ride, err := h.rideService.Complete(c.Request.Context(), middleware.Identity(c), rideID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride completed", ride)
}

// GetRide is readable by any authenticated user regardless of role.
func (h *RideHandler) GetRide(c *gin.Context) {
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	ride, err := h.rideService.GetDetails(c.Request.Context(), rideID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride details", ride)
}

// SearchRides matches source and destination case-insensitively among
// upcoming rides on the given calendar date.
func (h *RideHandler) SearchRides(c *gin.Context) {
	source := c.Query("source")
	destination := c.Query("destination")
	dateStr := c.Query("date")

	if source == "" || destination == "" || dateStr == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"source, destination and date query parameters are required")
		return
	}

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be in YYYY-MM-DD format")
		return
	}

	rides, err := h.rideService.Search(c.Request.Context(), source, destination, date)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Search results", rides)
}

func (h *RideHandler) MyOfferedRides(c *gin.Context) {
	rides, err := h.rideService.RidesAsDriver(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Offered rides", rides)
}

func (h *RideHandler) MyBookedRides(c *gin.Context) {
	rides, err := h.rideService.RidesAsPassenger(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booked rides", rides)
}

func rideIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid ride ID")
		return primitive.NilObjectID, false
	}
	return rideID, true
}
