package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"carpool/internal/apperrors"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewUserRepository() interfaces.UserRepository {
	return &userRepository{
		users: make(map[primitive.ObjectID]*models.User),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperrors.ErrEmailInUse
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	dup := *user
	r.users[user.ID] = &dup
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	dup := *user
	return &dup, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			dup := *user
			return &dup, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.User{}
	for _, user := range r.users {
		dup := *user
		result = append(result, &dup)
	}
	return result, nil
}

func (r *userRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	user.Active = active
	user.UpdatedAt = time.Now()

	dup := *user
	return &dup, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	for field, value := range updates {
		str, _ := value.(string)
		switch field {
		case "name":
			user.Name = str
		case "phone":
			user.Phone = str
		case "vehicle_model":
			user.VehicleModel = str
		case "vehicle_number":
			user.VehicleNumber = str
		}
	}
	user.UpdatedAt = time.Now()

	dup := *user
	return &dup, nil
}
