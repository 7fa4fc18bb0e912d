package utils

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Register domain validators on gin's binding engine so request DTOs can
	// use them in binding tags.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("rating", validateRating)
	}
}

func validateRating(fl validator.FieldLevel) bool {
	rating := fl.Field().Int()
	return rating >= MinRating && rating <= MaxRating
}

// ValidationErrorDetails flattens validator errors into a field→message map
// for the error response body.
func ValidationErrorDetails(err error) map[string]string {
	details := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		details["error"] = err.Error()
		return details
	}

	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			details[field] = fmt.Sprintf("%s is required", field)
		case "email":
			details[field] = "must be a valid email address"
		case "min":
			details[field] = fmt.Sprintf("must be at least %s", fieldErr.Param())
		case "max":
			details[field] = fmt.Sprintf("must be at most %s", fieldErr.Param())
		case "gt":
			details[field] = fmt.Sprintf("must be greater than %s", fieldErr.Param())
		case "gte":
			details[field] = fmt.Sprintf("must be at least %s", fieldErr.Param())
		case "rating":
			details[field] = fmt.Sprintf("must be between %d and %d", MinRating, MaxRating)
		default:
			details[field] = fmt.Sprintf("failed %s validation", fieldErr.Tag())
		}
	}

	return details
}
