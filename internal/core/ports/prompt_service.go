package ports

import (
	"context"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

// SubmitPromptInput carries everything needed to run the prompt pipeline.
// Identity comes from the authentication middleware, never from the body.
type SubmitPromptInput struct {
	Identity      domain.Identity
	CategoryID    int64
	SubcategoryID int64
	Prompt        string
}

// SubmitPromptResult is returned after a successful pipeline run: the
// persisted record, the resolved taxonomy nodes, and the provider-reported
// token usage.
type SubmitPromptResult struct {
	Prompt      *domain.Prompt
	Category    *domain.Category
	Subcategory *domain.Subcategory
	TokensUsed  int
}

// PromptPage is one page of a user's history, newest first.
type PromptPage struct {
	Prompts []domain.Prompt
	Page    int
	Limit   int
	Total   int64
	// Pages is ceil(Total / Limit).
	Pages int
}

// AdminPromptPage is the all-users variant, each row annotated with its owner.
type AdminPromptPage struct {
	Prompts []domain.PromptWithOwner
	Page    int
	Limit   int
	Total   int64
	Pages   int
}

// PromptService defines the prompt orchestration use cases.
type PromptService interface {
	Submit(ctx context.Context, in SubmitPromptInput) (*SubmitPromptResult, error)
	ListForUser(ctx context.Context, userID int64, page, limit int) (*PromptPage, error)
	// ListAll is administrator-only; the role gate runs upstream.
	ListAll(ctx context.Context, page, limit int) (*AdminPromptPage, error)
	GetByID(ctx context.Context, identity domain.Identity, id int64) (*domain.Prompt, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
}
