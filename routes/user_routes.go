package routes

import (
	"carpool/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up routes for the caller's own profile
func SetupUserRoutes(r *gin.RouterGroup, authRequired gin.HandlerFunc, userHandler *handlers.UserHandler) {
	users := r.Group("/users")
	users.Use(authRequired)
	{
		users.GET("/me", userHandler.GetProfile)
		users.PUT("/me", userHandler.UpdateProfile)
	}
}
