package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentlab/ideaforge/internal/llm"
)

// LLMSettings names the default provider and carries one Config per provider
// that has credentials available.
type LLMSettings struct {
	DefaultProvider llm.Provider `validate:"required"`
	Providers       []llm.Config `validate:"min=1"`
}

// NewGateway builds the provider gateway from these settings.
func (s LLMSettings) NewGateway() *llm.Gateway {
	return llm.NewGateway(s.DefaultProvider, s.Providers...)
}

// LoadLLMSettings resolves the default provider and enumerates every provider
// that can be used: key-based providers need an API key from config or env,
// Ollama only needs a base URL. A missing key for the default provider is not
// an error here; calls through the gateway will surface it.
func LoadLLMSettings() (LLMSettings, error) {
	provider := stringSetting("llm.provider", string(llm.DefaultProvider))
	defaultProvider, err := llm.ValidateProvider(provider)
	if err != nil {
		return LLMSettings{}, fmt.Errorf("invalid provider: %w", err)
	}

	model := stringSetting("llm.model", "")

	var configs []llm.Config
	for _, p := range []llm.Provider{llm.ProviderAnthropic, llm.ProviderOpenAI, llm.ProviderGemini} {
		key := ResolveAPIKey(p)
		if key == "" {
			continue
		}
		cfg := llm.Config{Provider: p, APIKey: key}
		if p == defaultProvider {
			cfg.Model = model
		}
		configs = append(configs, cfg)
	}

	ollama := llm.Config{
		Provider: llm.ProviderOllama,
		BaseURL:  stringSetting("llm.ollamaURL", llm.DefaultOllamaURL),
	}
	if defaultProvider == llm.ProviderOllama {
		ollama.Model = model
	}
	configs = append(configs, ollama)

	return LLMSettings{
		DefaultProvider: defaultProvider,
		Providers:       configs,
	}, nil
}

// ResolveAPIKey returns the best API key for the given provider using
// per-provider config keys first, then provider-specific env vars.
func ResolveAPIKey(provider llm.Provider) string {
	if key := strings.TrimSpace(viper.GetString(fmt.Sprintf("llm.apiKeys.%s", provider))); key != "" {
		return key
	}
	return providerEnvKey(provider)
}

func providerEnvKey(provider llm.Provider) string {
	switch provider {
	case llm.ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case llm.ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderGemini:
		key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if key == "" {
			key = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
		return key
	default:
		return ""
	}
}
