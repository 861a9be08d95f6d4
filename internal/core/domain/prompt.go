package domain

import (
	"errors"
	"time"
)

var ErrPromptNotFound = errors.New("prompt not found")
var ErrMissingFields = errors.New("missing required fields: categoryId, subcategoryId, prompt")
var ErrGenerationFailed = errors.New("failed to generate lesson")

// Prompt is an immutable history record: one submitted prompt and the
// generated response, scoped to its owning user. It is only ever created by
// the prompt service after a successful generation call, and only ever
// deleted, never updated in place.
type Prompt struct {
	ID            int64     `json:"id" bson:"_id"`
	UserID        int64     `json:"userId" bson:"user_id"`
	CategoryID    int64     `json:"categoryId" bson:"category_id"`
	SubcategoryID int64     `json:"subcategoryId" bson:"subcategory_id"`
	Prompt        string    `json:"prompt" bson:"prompt"`
	Response      string    `json:"response" bson:"response"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
}

// PromptOwner is the reduced user view attached to admin-facing listings.
type PromptOwner struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PromptWithOwner annotates a prompt with its owner for the all-users
// administrator listing.
type PromptWithOwner struct {
	Prompt
	User PromptOwner `json:"user"`
}
