package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
)

// SeedService bootstraps a fresh deployment: it fills the taxonomy catalog
// and guarantees one administrator account. Registration only ever creates
// USER accounts, so without this there is no way to reach the admin-gated
// routes. Every operation is find-or-create; running the seed twice leaves
// the database unchanged.
type SeedService struct {
	users    ports.UserRepository
	taxonomy ports.TaxonomyWriter
	logger   zerolog.Logger
}

func NewSeedService(users ports.UserRepository, taxonomy ports.TaxonomyWriter, logger zerolog.Logger) *SeedService {
	return &SeedService{users: users, taxonomy: taxonomy, logger: logger}
}

// SeedTaxonomy ensures every seed category and its subcategories exist.
func (s *SeedService) SeedTaxonomy(ctx context.Context, seeds []ports.CategorySeed) error {
	for _, seed := range seeds {
		category, err := s.taxonomy.EnsureCategory(ctx, seed.Name)
		if err != nil {
			return err
		}
		for _, name := range seed.Subcategories {
			if _, err := s.taxonomy.EnsureSubcategory(ctx, category.ID, name); err != nil {
				return err
			}
		}
		s.logger.Info().
			Str("category", category.Name).
			Int("subcategories", len(seed.Subcategories)).
			Msg("category seeded")
	}
	return nil
}

// EnsureAdmin makes sure the (name, phone) account exists and holds the
// ADMIN role, creating or promoting as needed.
func (s *SeedService) EnsureAdmin(ctx context.Context, name, phone string) (*domain.User, error) {
	user, err := s.users.FindByNameAndPhone(ctx, name, phone)
	switch {
	case err == nil:
		if user.Role == domain.RoleAdmin {
			return user, nil
		}
		user.Role = domain.RoleAdmin
		promoted, err := s.users.Update(ctx, user)
		if err != nil {
			return nil, err
		}
		s.logger.Info().Int64("user_id", promoted.ID).Msg("existing user promoted to administrator")
		return promoted, nil

	case errors.Is(err, domain.ErrUserNotFound):
		created, err := s.users.Create(ctx, &domain.User{
			Name:      name,
			Phone:     phone,
			Role:      domain.RoleAdmin,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
		s.logger.Info().Int64("user_id", created.ID).Msg("administrator created")
		return created, nil

	default:
		return nil, err
	}
}
