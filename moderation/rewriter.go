package moderation

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// TextRewriter is the capability the moderator needs from a
// text-generation service: one prompt in, rewritten text out.
type TextRewriter interface {
	Rewrite(ctx context.Context, prompt string) (string, error)
}

// OpenAIRewriter talks to any OpenAI-compatible chat completion
// endpoint.
type OpenAIRewriter struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIRewriter builds a rewriter for the given endpoint. baseURL
// may be empty to use the public OpenAI API.
func NewOpenAIRewriter(apiKey, baseURL, model string, temperature float64) *OpenAIRewriter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIRewriter{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: float32(temperature),
	}
}

// Rewrite sends the prompt as a single user message and returns the
// first choice's content.
func (r *OpenAIRewriter) Rewrite(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: r.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		// Content withheld, e.g. by a provider-side safety filter.
		return "", errors.New("completion response contains no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
