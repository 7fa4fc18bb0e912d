package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	RoleDriver    UserRole = "DRIVER"
	RolePassenger UserRole = "PASSENGER"
	RoleAdmin     UserRole = "ADMIN"
)

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Role         UserRole           `json:"role" bson:"role"`
	Phone        string             `json:"phone" bson:"phone"`
	Active       bool               `json:"active" bson:"active"`

	// Vehicle details, only meaningful for drivers.
	VehicleModel  string `json:"vehicle_model,omitempty" bson:"vehicle_model,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty" bson:"vehicle_number,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
