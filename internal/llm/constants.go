package llm

// Provider constants
const (
	// DefaultProvider is the provider used when a task does not name one.
	DefaultProvider = ProviderAnthropic

	// ProviderAnthropic represents the Anthropic provider
	ProviderAnthropic = "anthropic"

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI = "openai"

	// ProviderOllama represents a local Ollama server
	ProviderOllama = "ollama"

	// ProviderGemini represents the Google Gemini provider
	ProviderGemini = "gemini"
)

// Default chat models per provider.
const (
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultOllamaModel    = "llama3.1"
	DefaultGeminiModel    = "gemini-2.0-flash"
)

// DefaultOllamaURL is the default URL for an Ollama server.
const DefaultOllamaURL = "http://localhost:11434"

// DefaultMaxTokens caps completion length on providers that require a limit.
const DefaultMaxTokens = 4000

// DefaultModelForProvider returns the default chat model ID for a provider.
func DefaultModelForProvider(provider string) string {
	switch Provider(provider) {
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderOpenAI:
		return DefaultOpenAIModel
	case ProviderOllama:
		return DefaultOllamaModel
	case ProviderGemini:
		return DefaultGeminiModel
	default:
		return ""
	}
}
