package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
)

const (
	defaultPage       = 1
	defaultLimit      = 10
	defaultAdminLimit = 20
	maxLimit          = 100

	defaultGenerationTimeout = 30 * time.Second
)

// PromptService orchestrates the prompt pipeline: validate input, resolve
// the taxonomy, call the generation provider, persist the result. Each stage
// is a distinct failure domain; a failed generation never leaves a record
// behind because persistence runs strictly after a successful generate.
type PromptService struct {
	prompts    ports.PromptRepository
	taxonomy   ports.TaxonomyRepository
	users      ports.UserRepository
	generator  ports.LessonGenerator
	genTimeout time.Duration
	logger     zerolog.Logger
}

func NewPromptService(
	prompts ports.PromptRepository,
	taxonomy ports.TaxonomyRepository,
	users ports.UserRepository,
	generator ports.LessonGenerator,
	genTimeout time.Duration,
	logger zerolog.Logger,
) *PromptService {
	if genTimeout <= 0 {
		genTimeout = defaultGenerationTimeout
	}
	return &PromptService{
		prompts:    prompts,
		taxonomy:   taxonomy,
		users:      users,
		generator:  generator,
		genTimeout: genTimeout,
		logger:     logger,
	}
}

// Submit runs the full pipeline for one prompt. There is no idempotency key:
// a retried submission creates a second, independent record.
func (s *PromptService) Submit(ctx context.Context, in ports.SubmitPromptInput) (*ports.SubmitPromptResult, error) {
	if in.CategoryID == 0 || in.SubcategoryID == 0 || strings.TrimSpace(in.Prompt) == "" {
		return nil, domain.ErrMissingFields
	}

	category, err := s.taxonomy.FindCategoryByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	subcategory, err := s.taxonomy.FindSubcategoryByID(ctx, in.SubcategoryID)
	if err != nil {
		return nil, err
	}

	// The provider call is bounded so a hung upstream cannot hold the
	// request open indefinitely. The deadline derives from the request
	// context, so a client disconnect aborts before persistence.
	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	lesson, err := s.generator.Generate(genCtx, ports.LessonRequest{
		Category:    category.Name,
		Subcategory: subcategory.Name,
		Prompt:      in.Prompt,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Int64("user_id", in.Identity.UserID).
			Str("category", category.Name).
			Msg("lesson generation failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	prompt := &domain.Prompt{
		UserID:        in.Identity.UserID,
		CategoryID:    category.ID,
		SubcategoryID: subcategory.ID,
		Prompt:        in.Prompt,
		Response:      lesson.Content,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.prompts.Create(ctx, prompt); err != nil {
		s.logger.Error().Err(err).Int64("user_id", in.Identity.UserID).Msg("failed to persist prompt")
		return nil, err
	}

	s.logger.Info().
		Int64("prompt_id", prompt.ID).
		Int64("user_id", in.Identity.UserID).
		Int("tokens_used", lesson.TokensUsed).
		Msg("prompt created")

	return &ports.SubmitPromptResult{
		Prompt:      prompt,
		Category:    category,
		Subcategory: subcategory,
		TokensUsed:  lesson.TokensUsed,
	}, nil
}

// ListForUser returns one page of the caller's own history, newest first.
func (s *PromptService) ListForUser(ctx context.Context, userID int64, page, limit int) (*ports.PromptPage, error) {
	page, limit = normalizePage(page, limit, defaultLimit)

	prompts, total, err := s.prompts.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.PromptPage{
		Prompts: prompts,
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pageCount(total, limit),
	}, nil
}

// ListAll returns one page across all users, each row annotated with its
// owner. The administrator gate runs upstream in the middleware chain.
func (s *PromptService) ListAll(ctx context.Context, page, limit int) (*ports.AdminPromptPage, error) {
	page, limit = normalizePage(page, limit, defaultAdminLimit)

	prompts, total, err := s.prompts.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	owners := make(map[int64]domain.PromptOwner, len(prompts))
	annotated := make([]domain.PromptWithOwner, 0, len(prompts))
	for _, p := range prompts {
		owner, ok := owners[p.UserID]
		if !ok {
			user, err := s.users.FindByID(ctx, p.UserID)
			if err == nil {
				owner = domain.PromptOwner{ID: user.ID, Name: user.Name, Phone: user.Phone}
			} else {
				// Owner deleted between cascade and read; keep the row.
				owner = domain.PromptOwner{ID: p.UserID}
			}
			owners[p.UserID] = owner
		}
		annotated = append(annotated, domain.PromptWithOwner{Prompt: p, User: owner})
	}

	return &ports.AdminPromptPage{
		Prompts: annotated,
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pageCount(total, limit),
	}, nil
}

// GetByID fetches one prompt. Non-admin callers are scoped to their own
// records inside the repository query, so a foreign id behaves exactly like
// a missing one.
func (s *PromptService) GetByID(ctx context.Context, identity domain.Identity, id int64) (*domain.Prompt, error) {
	return s.prompts.FindByID(ctx, id, s.ownerScope(ctx, identity))
}

// Delete removes one prompt under the same ownership scoping as GetByID.
// A foreign or unknown id yields ErrPromptNotFound, never a forbidden.
func (s *PromptService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	if err := s.prompts.Delete(ctx, id, s.ownerScope(ctx, identity)); err != nil {
		return err
	}
	s.logger.Info().Int64("prompt_id", id).Int64("user_id", identity.UserID).Msg("prompt deleted")
	return nil
}

// ownerScope maps an identity to the repository's user filter: verified
// administrators read and delete unscoped, everyone else is pinned to their
// own user id. The token's role claim alone never widens scope: the
// persisted role is re-checked, so a stale or forged ADMIN claim degrades
// to owner-only access.
func (s *PromptService) ownerScope(ctx context.Context, identity domain.Identity) int64 {
	if !identity.IsAdmin() {
		return identity.UserID
	}
	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil || user.Role != domain.RoleAdmin {
		return identity.UserID
	}
	return 0
}

func normalizePage(page, limit, fallbackLimit int) (int, int) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = fallbackLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
