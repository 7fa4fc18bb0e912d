package handlers

import (
	"net/http"

	"carpool/internal/middleware"
	"carpool/internal/services"
	"carpool/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminHandler struct {
	userService services.UserService
}

func NewAdminHandler(userService services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Users", users)
}

type setUserStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetUserStatus activates or deactivates an account. Deactivated accounts
// are rejected at the authentication layer on their next request.
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req setUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrorDetails(err))
		return
	}

	user, err := h.userService.SetUserStatus(c.Request.Context(), middleware.Identity(c), userID, *req.Active)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "User status updated", user)
}
