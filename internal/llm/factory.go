package llm

import (
	"fmt"

	"github.com/sant0-9/hookline/internal/config"
)

// NewProvider creates a provider from config
func NewProvider(cfg *config.Config) (Provider, error) {
	info := config.GetProvider(cfg.Provider)
	if info == nil {
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}

	model := cfg.Model
	if model == "" {
		model = info.DefaultModel
	}
	baseURL := info.BaseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	if info.NeedsAPIKey && cfg.APIKey == "" {
		return nil, &ProviderError{Kind: KindUnavailable, Provider: info.ID,
			Err: fmt.Errorf("%s requires an API key", info.ID)}
	}

	switch info.ID {
	case "ollama":
		return NewOllamaProvider(baseURL, model), nil

	case "anthropic":
		p := NewAnthropicProvider(cfg.APIKey, model)
		if cfg.BaseURL != "" {
			p.baseURL = cfg.BaseURL
		}
		return p, nil

	case "openrouter":
		return NewOpenAIProvider(info.ID, baseURL, cfg.APIKey, model).
			WithHeader("HTTP-Referer", "https://github.com/sant0-9/hookline").
			WithHeader("X-Title", "Hookline"), nil

	case "custom":
		if baseURL == "" {
			return nil, &ProviderError{Kind: KindUnavailable, Provider: "custom",
				Err: fmt.Errorf("custom provider requires base_url")}
		}
		return NewOpenAIProvider(info.ID, baseURL, cfg.APIKey, model), nil

	default:
		return NewOpenAIProvider(info.ID, baseURL, cfg.APIKey, model), nil
	}
}
