// Package ai adapts the OpenAI chat-completions API to the LessonGenerator
// port. The adapter is a single synchronous call; retries and deadlines are
// the caller's concern.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
)

const (
	defaultModel      = openai.GPT3Dot5Turbo
	lessonMaxTokens   = 1500
	lessonTemperature = 0.7
)

type LessonGenerator struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

func NewLessonGenerator(apiKey, model string, logger zerolog.Logger) *LessonGenerator {
	if model == "" {
		model = defaultModel
	}
	return &LessonGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

func (g *LessonGenerator) Generate(ctx context.Context, req ports.LessonRequest) (*ports.LessonResult, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   lessonMaxTokens,
		Temperature: lessonTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.New("openai: empty completion")
	}

	g.logger.Debug().
		Str("model", g.model).
		Int("tokens_used", resp.Usage.TotalTokens).
		Msg("lesson generated")

	return &ports.LessonResult{
		Content:    resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

func systemPrompt(req ports.LessonRequest) string {
	return fmt.Sprintf(`You are an expert educator. Your role is to create comprehensive, engaging, and well-structured lessons based on the user's request.

Guidelines:
- Provide clear, easy-to-understand explanations
- Use examples and analogies when helpful
- Structure your response with headings and bullet points for readability
- Make the content educational and informative
- Adapt the complexity to the topic and context

The user is learning about: %s → %s`, req.Category, req.Subcategory)
}
