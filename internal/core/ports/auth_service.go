package ports

import (
	"context"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

// AuthService handles registration and login. Identity is name+phone; there
// are no passwords. Both operations return a freshly minted bearer token.
type AuthService interface {
	Register(ctx context.Context, name, phone string) (*domain.User, string, error)
	Login(ctx context.Context, name, phone string) (*domain.User, string, error)
}
