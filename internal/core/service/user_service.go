package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
)

// UserService backs the administrator-facing user endpoints.
type UserService struct {
	users   ports.UserRepository
	prompts ports.PromptRepository
	logger  zerolog.Logger
}

func NewUserService(users ports.UserRepository, prompts ports.PromptRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, prompts: prompts, logger: logger}
}

// List returns all users, each with their derived prompt count.
func (s *UserService) List(ctx context.Context) ([]ports.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		count, err := s.prompts.CountByUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ports.UserSummary{User: u, PromptCount: count})
	}
	return summaries, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*ports.UserSummary, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.prompts.CountByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.UserSummary{User: *user, PromptCount: count}, nil
}

// Update applies a partial profile update. Empty input fields keep their
// stored values; a non-empty role must be one of the known roles. Changing
// the role here is how a user is promoted to administrator after bootstrap.
func (s *UserService) Update(ctx context.Context, id int64, in ports.UpdateUserInput) (*ports.UserSummary, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Role != "" {
		role := domain.Role(in.Role)
		if role != domain.RoleUser && role != domain.RoleAdmin {
			return nil, domain.ErrInvalidRole
		}
		user.Role = role
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	count, err := s.prompts.CountByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Str("role", string(updated.Role)).Msg("user updated")
	return &ports.UserSummary{User: *updated, PromptCount: count}, nil
}

// Delete removes a user and cascades to their prompt history. The prompts
// go first so a failure cannot leave orphaned history behind a missing user.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.prompts.DeleteByUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Int64("prompts_removed", removed).Msg("user deleted")
	return nil
}
