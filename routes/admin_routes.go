package routes

import (
	"carpool/internal/handlers"
	"carpool/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up routes for account administration
func SetupAdminRoutes(r *gin.RouterGroup, authRequired gin.HandlerFunc, adminHandler *handlers.AdminHandler) {
	admin := r.Group("/admin")
	admin.Use(authRequired, middleware.AdminRequired())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.PUT("/users/:id/status", adminHandler.SetUserStatus)
	}
}
