// Package auth carries the authenticated caller identity through the request.
// The identity is resolved once, by the HTTP middleware, and passed explicitly
// into every service operation; the core never reaches back into ambient
// request state.
package auth

import (
	"carpool/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the (user, role, active) tuple of the authenticated caller.
// Inactive accounts are rejected before any service operation runs.
type Identity struct {
	UserID primitive.ObjectID
	Name   string
	Role   models.UserRole
	Active bool
}

func (i Identity) IsDriver() bool {
	return i.Role == models.RoleDriver
}

func (i Identity) IsPassenger() bool {
	return i.Role == models.RolePassenger
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}
