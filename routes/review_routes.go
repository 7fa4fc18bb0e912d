package routes

import (
	"carpool/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupReviewRoutes sets up routes for ride reviews and driver ratings
func SetupReviewRoutes(r *gin.RouterGroup, authRequired gin.HandlerFunc, reviewHandler *handlers.ReviewHandler) {
	rides := r.Group("/rides")
	rides.Use(authRequired)
	{
		rides.POST("/:id/reviews", reviewHandler.SubmitReview)
	}

	reviews := r.Group("/reviews")
	reviews.Use(authRequired)
	{
		reviews.GET("/driver/:driverId", reviewHandler.DriverReviews)
		reviews.GET("/driver/:driverId/average", reviewHandler.DriverAverage)
	}
}
