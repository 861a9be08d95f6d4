package ports

import (
	"context"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

// UserSummary is a user annotated with the derived count of their prompts.
type UserSummary struct {
	domain.User
	PromptCount int64 `json:"promptCount"`
}

// UpdateUserInput carries a partial profile update. Empty fields keep their
// stored values.
type UpdateUserInput struct {
	Name  string
	Phone string
	Role  string
}

// UserService covers the administrator-facing user operations. Deleting a
// user cascades to their prompt history.
type UserService interface {
	List(ctx context.Context) ([]UserSummary, error)
	Get(ctx context.Context, id int64) (*UserSummary, error)
	Update(ctx context.Context, id int64, in UpdateUserInput) (*UserSummary, error)
	Delete(ctx context.Context, id int64) error
}
