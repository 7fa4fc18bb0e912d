package services

import (
	"carpool/internal/apperrors"
	"carpool/internal/auth"
	"carpool/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type operation string

const (
	opOfferRide     operation = "ride.offer"
	opEditRide      operation = "ride.edit"
	opCancelOffer   operation = "ride.cancel_offer"
	opCompleteRide  operation = "ride.complete"
	opBookSeat      operation = "booking.book"
	opCancelBooking operation = "booking.cancel"
	opSubmitReview  operation = "review.submit"
	opManageUsers   operation = "admin.manage_users"
)

type policyRule struct {
	role           models.UserRole
	needsOwnership bool
}

// policy is the full authorization rule set, one row per mutating operation.
// Keeping it in one table makes the rules auditable without reading every
// service method.
var policy = map[operation]policyRule{
	opOfferRide:     {role: models.RoleDriver},
	opEditRide:      {role: models.RoleDriver, needsOwnership: true},
	opCancelOffer:   {role: models.RoleDriver, needsOwnership: true},
	opCompleteRide:  {role: models.RoleDriver, needsOwnership: true},
	opBookSeat:      {role: models.RolePassenger},
	opCancelBooking: {role: models.RolePassenger},
	opSubmitReview:  {role: models.RolePassenger},
	opManageUsers:   {role: models.RoleAdmin},
}

// authorize checks the caller's role for the operation and, where the rule
// demands ownership, that the caller is the resource owner. Wrong role and
// right-role-wrong-owner are distinct failures so callers can present
// different messages.
func authorize(op operation, ident auth.Identity, ownerID primitive.ObjectID) error {
	rule, ok := policy[op]
	if !ok {
		return apperrors.ErrForbidden
	}

	if ident.Role != rule.role {
		return apperrors.ErrRoleViolation
	}

	if rule.needsOwnership && ident.UserID != ownerID {
		return apperrors.ErrForbidden
	}

	return nil
}
