package services

import (
	"testing"

	"carpool/internal/apperrors"
	"carpool/internal/auth"
	"carpool/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthorize(t *testing.T) {
	ownerID := primitive.NewObjectID()
	owner := auth.Identity{UserID: ownerID, Role: models.RoleDriver, Active: true}
	otherDriver := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleDriver, Active: true}
	passenger := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RolePassenger, Active: true}
	admin := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleAdmin, Active: true}

	tests := []struct {
		name    string
		op      operation
		ident   auth.Identity
		ownerID primitive.ObjectID
		want    error
	}{
		{"driver offers", opOfferRide, owner, primitive.NilObjectID, nil},
		{"passenger cannot offer", opOfferRide, passenger, primitive.NilObjectID, apperrors.ErrRoleViolation},
		{"admin cannot offer", opOfferRide, admin, primitive.NilObjectID, apperrors.ErrRoleViolation},
		{"owner edits", opEditRide, owner, ownerID, nil},
		{"other driver cannot edit", opEditRide, otherDriver, ownerID, apperrors.ErrForbidden},
		{"passenger cannot edit", opEditRide, passenger, ownerID, apperrors.ErrRoleViolation},
		{"owner cancels offer", opCancelOffer, owner, ownerID, nil},
		{"other driver cannot complete", opCompleteRide, otherDriver, ownerID, apperrors.ErrForbidden},
		{"passenger books", opBookSeat, passenger, primitive.NilObjectID, nil},
		{"driver cannot book", opBookSeat, owner, primitive.NilObjectID, apperrors.ErrRoleViolation},
		{"passenger cancels booking", opCancelBooking, passenger, primitive.NilObjectID, nil},
		{"passenger reviews", opSubmitReview, passenger, primitive.NilObjectID, nil},
		{"driver cannot review", opSubmitReview, owner, primitive.NilObjectID, apperrors.ErrRoleViolation},
		{"admin manages users", opManageUsers, admin, primitive.NilObjectID, nil},
		{"driver cannot manage users", opManageUsers, owner, primitive.NilObjectID, apperrors.ErrRoleViolation},
		{"unknown operation", operation("nope"), admin, primitive.NilObjectID, apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorize(tt.op, tt.ident, tt.ownerID)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
