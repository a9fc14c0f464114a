package provider

import (
	"context"
	"errors"

	"github.com/smartretail/assistant/config"
	"github.com/smartretail/assistant/models"
	azure_provider "github.com/smartretail/assistant/provider/azure"
	openai_provider "github.com/smartretail/assistant/provider/openai"
)

// Provider is the capability interface the RAG engine depends on: turn text
// into a vector and turn a message sequence into a single completion. Both
// calls fail on transport/auth/quota problems and are never retried here.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// NewProvider selects the concrete client once at startup: the Azure OpenAI
// gateway when an endpoint is configured, the direct OpenAI API otherwise.
func NewProvider(cfg config.OpenAIConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY not set (providers.openai.api_key)")
	}
	if cfg.Endpoint != "" {
		return azure_provider.NewClient(cfg)
	}
	return openai_provider.NewClient(cfg), nil
}
