// Package apperrors defines the error kinds the core services return. All of
// them are recoverable at the request boundary; handlers map each kind to an
// HTTP status in exactly one place.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced ride, review or user does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrRoleViolation means the caller's role cannot perform this class of
	// operation at all.
	ErrRoleViolation = errors.New("role cannot perform this operation")

	// ErrForbidden means the caller's role is right but the caller does not
	// own the resource.
	ErrForbidden = errors.New("caller does not own this resource")

	// ErrInvalidState means the ride's current status forbids the requested
	// transition.
	ErrInvalidState = errors.New("ride status forbids this operation")

	// ErrCapacityViolation means an edit would set available seats below the
	// number of passengers already booked.
	ErrCapacityViolation = errors.New("available seats below booked count")

	// ErrRuleViolation is the base kind for business rule failures; use
	// Rule() to attach the specific rule code.
	ErrRuleViolation = errors.New("business rule violated")

	// ErrValidation means a malformed input value, e.g. a rating out of range.
	ErrValidation = errors.New("invalid input value")

	// ErrConflict means a concurrent modification was detected; the caller
	// should retry the request.
	ErrConflict = errors.New("concurrent modification detected")

	// ErrEmailInUse means registration was attempted with a taken email.
	ErrEmailInUse = errors.New("email already in use")

	// ErrInvalidCredentials means login failed; deliberately silent about
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountInactive means the account was deactivated by an admin.
	ErrAccountInactive = errors.New("account is deactivated")
)

// Rule codes carried by RuleError.
const (
	RuleFull            = "full"
	RuleSelfBook        = "self-book"
	RuleDuplicate       = "duplicate"
	RuleNotBooked       = "not-booked"
	RuleNotARider       = "not-a-rider"
	RuleAlreadyReviewed = "already-reviewed"
)

// RuleError is a business rule failure with a machine-readable code.
type RuleError struct {
	Code string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("business rule violated: %s", e.Code)
}

func (e *RuleError) Unwrap() error {
	return ErrRuleViolation
}

// Rule returns a RuleError for the given code. errors.Is(err, ErrRuleViolation)
// matches any rule failure; RuleCode recovers the specific code.
func Rule(code string) error {
	return &RuleError{Code: code}
}

// RuleCode returns the rule code carried by err, or "" if err is not a rule
// violation.
func RuleCode(err error) string {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}
