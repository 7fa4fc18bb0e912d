package utils

const (
	AppName = "Carpool"

	// Ratings
	MinRating = 1
	MaxRating = 5

	// Response statuses
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
)
