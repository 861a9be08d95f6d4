package ports

import (
	"context"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

// PromptRepository defines persistence operations for the prompt history.
//
// Ownership is enforced at the query boundary: every method that takes a
// userID applies it inside the query predicate when non-zero, never as a
// post-fetch check. userID == 0 means unscoped (administrator access).
type PromptRepository interface {
	Create(ctx context.Context, p *domain.Prompt) error
	// FindByID retrieves a prompt by id. A non-zero userID additionally
	// filters by owner; a mismatch is indistinguishable from absence.
	FindByID(ctx context.Context, id, userID int64) (*domain.Prompt, error)
	// Delete removes a prompt, owner-scoped like FindByID. Returns
	// domain.ErrPromptNotFound when nothing matched.
	Delete(ctx context.Context, id, userID int64) error
	// ListByUser returns one page of the user's prompts, newest first,
	// along with the total count for that user.
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]domain.Prompt, int64, error)
	// ListAll returns one page across all users, newest first.
	ListAll(ctx context.Context, page, limit int) ([]domain.Prompt, int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	// DeleteByUser removes all prompts owned by userID (user delete cascade).
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
