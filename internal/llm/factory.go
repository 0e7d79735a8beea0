package llm

import (
	"context"
	"fmt"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "openai", "anthropic", "gemini", "mock".
	Provider  string
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Retry     RetryConfig
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

const mockReply = "Great effort! Let's look at this one step by step together."

// NewProvider creates a Provider from configuration, wrapped with retry
// and logging middleware.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		m := NewMockProvider()
		m.Fallback = mockReply
		return m, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	return WithRetry(WithLogging(base), cfg.Retry), nil
}
