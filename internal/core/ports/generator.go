package ports

import "context"

// LessonRequest carries the resolved taxonomy names plus the user's free-text
// prompt to the generation provider.
type LessonRequest struct {
	Category    string
	Subcategory string
	Prompt      string
}

// LessonResult is the provider's answer. TokensUsed is pass-through metadata;
// the service does not interpret it.
type LessonResult struct {
	Content    string
	TokensUsed int
}

// LessonGenerator is the narrow interface over the external generative-text
// provider. A single synchronous call, no automatic retry; callers bound it
// with a context deadline.
type LessonGenerator interface {
	Generate(ctx context.Context, req LessonRequest) (*LessonResult, error)
}
