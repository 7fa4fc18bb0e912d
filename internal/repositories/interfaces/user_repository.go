package interfaces

import (
	"context"

	"carpool/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error)
}
