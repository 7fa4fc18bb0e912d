package utils

import (
	"errors"
	"net/http"
	"time"

	"carpool/internal/apperrors"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, APIResponse{
		Status: StatusError,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now(),
	})
}

func ErrorResponseWithDetails(c *gin.Context, statusCode int, code, message string, details map[string]string) {
	c.JSON(statusCode, APIResponse{
		Status: StatusError,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	})
}

func ValidationErrorResponse(c *gin.Context, errs map[string]string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", ErrValidationFailed, errs)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func InternalServerErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", ErrInternalServer)
}

// ServiceErrorResponse maps a service error kind to its HTTP representation.
// This is the only place error kinds and status codes meet.
func ServiceErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, apperrors.ErrRoleViolation):
		ErrorResponse(c, http.StatusForbidden, "ROLE_VIOLATION", err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, apperrors.ErrInvalidState):
		ErrorResponse(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, apperrors.ErrCapacityViolation):
		ErrorResponse(c, http.StatusUnprocessableEntity, "CAPACITY_VIOLATION", err.Error())
	case errors.Is(err, apperrors.ErrRuleViolation):
		ErrorResponseWithDetails(c, http.StatusConflict, "RULE_VIOLATION", err.Error(),
			map[string]string{"rule": apperrors.RuleCode(err)})
	case errors.Is(err, apperrors.ErrValidation):
		ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		ErrorResponse(c, http.StatusConflict, "CONFLICT", "concurrent update, please retry")
	case errors.Is(err, apperrors.ErrEmailInUse):
		ErrorResponse(c, http.StatusConflict, "EMAIL_IN_USE", err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, apperrors.ErrAccountInactive):
		ErrorResponse(c, http.StatusForbidden, "ACCOUNT_INACTIVE", err.Error())
	default:
		InternalServerErrorResponse(c)
	}
}
