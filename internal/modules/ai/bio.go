package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

var (
	ErrNotConfigured = errors.New("AI text generation is not configured")
	ErrEmptyDraft    = errors.New("AI provider returned no text")
)

const defaultModel = "gpt-4o-mini"

// BioInput is what the artist tells the drafter about themselves.
type BioInput struct {
	Name      string
	Specialty string
	City      string
	Notes     string
}

// OpenAIDrafter drafts artist bios through any OpenAI-compatible chat
// completion endpoint.
type OpenAIDrafter struct {
	client *openai.Client
	model  string
}

// NewOpenAIDrafter returns ErrNotConfigured when apiKey is empty.
func NewOpenAIDrafter(apiKey, baseURL, model string) (*OpenAIDrafter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	if model == "" {
		model = defaultModel
	}
	return &OpenAIDrafter{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (d *OpenAIDrafter) DraftBio(ctx context.Context, in BioInput) (string, error) {
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     d.model,
		MaxTokens: 300,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write short, friendly professional bios for tattoo artists. Reply with the bio only, at most three sentences.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: bioPrompt(in),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("draft bio: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyDraft
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyDraft
	}
	return text, nil
}

func bioPrompt(in BioInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Artist name: %s\n", in.Name)
	if in.Specialty != "" {
		fmt.Fprintf(&b, "Specialty: %s\n", in.Specialty)
	}
	if in.City != "" {
		fmt.Fprintf(&b, "Based in: %s\n", in.City)
	}
	if in.Notes != "" {
		fmt.Fprintf(&b, "Notes from the artist: %s\n", in.Notes)
	}
	return b.String()
}

// Unconfigured is the drafter used when no API key is set.
type Unconfigured struct{}

func (Unconfigured) DraftBio(context.Context, BioInput) (string, error) {
	return "", ErrNotConfigured
}
