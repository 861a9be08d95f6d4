package handler

import (
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

// --- Request / Response types ---

type createPromptRequest struct {
	CategoryID    int64  `json:"categoryId"    validate:"required,gt=0"`
	SubcategoryID int64  `json:"subcategoryId" validate:"required,gt=0"`
	Prompt        string `json:"prompt"        validate:"required"`
}

// promptResponse is the stored record enriched with the resolved taxonomy
// names. Kept separate from the domain type so the JSON contract is not
// coupled to storage changes.
type promptResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	CategoryID    int64  `json:"categoryId"`
	SubcategoryID int64  `json:"subcategoryId"`
	Category      string `json:"category,omitempty"`
	Subcategory   string `json:"subcategory,omitempty"`
	Prompt        string `json:"prompt"`
	Response      string `json:"response"`
	CreatedAt     string `json:"createdAt"`
}

type createPromptResponse struct {
	Success    bool           `json:"success"`
	Prompt     promptResponse `json:"prompt"`
	TokensUsed int            `json:"tokensUsed"`
}

type paginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type listPromptsResponse struct {
	Prompts    []domain.Prompt    `json:"prompts"`
	Pagination paginationResponse `json:"pagination"`
}

type listAllPromptsResponse struct {
	Prompts    []domain.PromptWithOwner `json:"prompts"`
	Pagination paginationResponse       `json:"pagination"`
}

type getPromptResponse struct {
	Prompt domain.Prompt `json:"prompt"`
}

type deletePromptResponse struct {
	Message string `json:"message"`
}
