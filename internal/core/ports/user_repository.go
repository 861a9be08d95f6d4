package ports

import (
	"context"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByNameAndPhone looks up a user by the (name, phone) login key.
	FindByNameAndPhone(ctx context.Context, name, phone string) (*domain.User, error)
	// Update replaces the stored record for user.ID. A (name, phone) pair
	// that collides with another user maps to ErrUserExists.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}
