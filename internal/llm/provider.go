package llm

import "context"

// NewClient builds the client for cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	default:
		return NewOllamaClient(cfg, observer), nil
	}
}
