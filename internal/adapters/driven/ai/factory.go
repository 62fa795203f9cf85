// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/coastline-labs/anchor/internal/adapters/driven/ai/openai"
	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Settings selects and configures the AI provider. An empty APIKey means
// AI features are not configured and the factories return nil services;
// the rest of the system degrades rather than failing.
type Settings struct {
	APIKey  string
	BaseURL string

	ChatModel           string
	EmbeddingModel      string
	EmbeddingDimensions int
}

// IsConfigured reports whether an AI provider has been set up.
func (s Settings) IsConfigured() bool {
	return s.APIKey != ""
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity. Returns (nil, nil) when not configured.
func CreateAndValidateEmbeddingService(settings Settings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := openai.NewEmbeddingService(openai.EmbeddingConfig{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.EmbeddingModel,
		Dimensions: settings.EmbeddingDimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateCompletionService creates a chat-completion service
// and validates connectivity. Returns (nil, nil) when not configured.
func CreateAndValidateCompletionService(settings Settings) (driven.CompletionService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := openai.NewCompletionService(openai.CompletionConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.ChatModel,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAssistantUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrAssistantUnavailable, err)
	}
	return svc, nil
}
