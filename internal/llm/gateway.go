package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
)

// Completer is the single operation agents need from a provider.
// An empty provider selects the gateway's default.
type Completer interface {
	Complete(ctx context.Context, prompt string, provider string) (string, error)
}

// Gateway routes prompts to the configured providers. It holds one Config per
// provider and picks the default when a call does not name one. There is no
// retry and no timeout beyond what the caller's context carries.
type Gateway struct {
	defaultProvider Provider
	configs         map[Provider]Config
}

// NewGateway builds a gateway from per-provider configs. Providers without a
// model get that provider's default model.
func NewGateway(defaultProvider Provider, configs ...Config) *Gateway {
	byProvider := make(map[Provider]Config, len(configs))
	for _, cfg := range configs {
		if cfg.Model == "" {
			cfg.Model = DefaultModelForProvider(string(cfg.Provider))
		}
		byProvider[cfg.Provider] = cfg
	}
	return &Gateway{
		defaultProvider: defaultProvider,
		configs:         byProvider,
	}
}

// Complete sends a single user prompt and returns the completion text.
// Any transport or API failure comes back as one generic wrapped error;
// provider-specific error codes are not interpreted.
func (g *Gateway) Complete(ctx context.Context, prompt string, provider string) (string, error) {
	p := g.defaultProvider
	if provider != "" {
		validated, err := ValidateProvider(provider)
		if err != nil {
			return "", err
		}
		p = validated
	}

	cfg, ok := g.configs[p]
	if !ok {
		return "", fmt.Errorf("provider %s is not configured", p)
	}

	chatModel, err := NewChatModel(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("create model: %w", err)
	}

	resp, err := chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", fmt.Errorf("ai response error: %w", err)
	}
	return resp.Content, nil
}

// DefaultProviderName returns the provider used when a call does not name one.
func (g *Gateway) DefaultProviderName() string {
	return string(g.defaultProvider)
}
