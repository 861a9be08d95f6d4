package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/LeaEliezrov/ai-learning-platform/internal/auth"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
)

// AuthService implements registration and login by name+phone.
type AuthService struct {
	users  ports.UserRepository
	codec  *auth.Codec
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *auth.Codec, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, logger: logger}
}

// Register creates a user with the default USER role and mints a token for
// it. The (name, phone) pair must be unique.
func (s *AuthService) Register(ctx context.Context, name, phone string) (*domain.User, string, error) {
	if name == "" || phone == "" {
		return nil, "", domain.ErrInvalidLogin
	}

	if _, err := s.users.FindByNameAndPhone(ctx, name, phone); err == nil {
		return nil, "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	user := &domain.User{
		Name:      name,
		Phone:     phone,
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.codec.Encode(created)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("name", created.Name).Msg("user registered")
	return created, token, nil
}

// Login resolves the (name, phone) pair and mints a fresh token. A miss is
// reported as invalid credentials, not as a not-found, so login probes don't
// reveal which half of the pair was wrong.
func (s *AuthService) Login(ctx context.Context, name, phone string) (*domain.User, string, error) {
	if name == "" || phone == "" {
		return nil, "", domain.ErrInvalidLogin
	}

	user, err := s.users.FindByNameAndPhone(ctx, name, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidLogin
		}
		return nil, "", err
	}

	token, err := s.codec.Encode(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}
