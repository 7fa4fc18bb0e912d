package handlers

import (
	"net/http"

	"carpool/internal/middleware"
	"carpool/internal/services"
	"carpool/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// SubmitReview records the calling passenger's rating for a completed ride.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	var req services.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrorDetails(err))
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), middleware.Identity(c), rideID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Review submitted", review)
}

func (h *ReviewHandler) DriverReviews(c *gin.Context) {
	driverID, ok := driverIDParam(c)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ForDriver(c.Request.Context(), driverID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Driver reviews", reviews)
}

func (h *ReviewHandler) DriverAverage(c *gin.Context) {
	driverID, ok := driverIDParam(c)
	if !ok {
		return
	}

	average, err := h.reviewService.AverageRating(c.Request.Context(), driverID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Driver average rating", gin.H{
		"driver_id":      driverID.Hex(),
		"average_rating": average,
	})
}

func driverIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	driverID, err := primitive.ObjectIDFromHex(c.Param("driverId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid driver ID")
		return primitive.NilObjectID, false
	}
	return driverID, true
}
