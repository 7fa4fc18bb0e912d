package middleware

import (
	"errors"
	"net/http"
	"strings"

	"carpool/internal/apperrors"
	"carpool/internal/auth"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"
	"carpool/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const identityKey = "identity"

// AuthRequired validates the bearer token, loads the account, rejects
// inactive users and stores the caller identity on the request context. The
// services downstream receive the identity explicitly and never parse
// tokens themselves.
func AuthRequired(userRepo interfaces.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c, "Bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid token")
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid user ID in token")
			c.Abort()
			return
		}

		// The account is re-read on every request so a deactivation takes
		// effect before the token expires.
		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				utils.UnauthorizedResponse(c, "Account no longer exists")
			} else {
				utils.InternalServerErrorResponse(c)
			}
			c.Abort()
			return
		}

		if !user.Active {
			utils.ErrorResponse(c, http.StatusForbidden, "ACCOUNT_INACTIVE", "Account is deactivated")
			c.Abort()
			return
		}

		c.Set(identityKey, auth.Identity{
			UserID: user.ID,
			Name:   user.Name,
			Role:   user.Role,
			Active: user.Active,
		})

		c.Next()
	}
}

// Identity returns the caller identity set by AuthRequired.
func Identity(c *gin.Context) auth.Identity {
	return c.MustGet(identityKey).(auth.Identity)
}

// AdminRequired short-circuits non-admin callers before the handler runs.
func AdminRequired() gin.HandlerFunc {
	return requireRole(models.RoleAdmin, "Admin access required")
}

// DriverRequired short-circuits non-driver callers before the handler runs.
func DriverRequired() gin.HandlerFunc {
	return requireRole(models.RoleDriver, "Driver access required")
}

// PassengerRequired short-circuits non-passenger callers before the handler
// runs.
func PassengerRequired() gin.HandlerFunc {
	return requireRole(models.RolePassenger, "Passenger access required")
}

func requireRole(role models.UserRole, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, exists := c.Get(identityKey)
		if !exists {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		if ident.(auth.Identity).Role != role {
			utils.ErrorResponse(c, http.StatusForbidden, "ROLE_VIOLATION", message)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware tags every request with an id for log correlation.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = primitive.NewObjectID().Hex()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// CORSMiddleware allows browser clients on other origins to call the API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
