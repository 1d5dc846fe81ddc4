package llm

import "fmt"

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskDecompose TaskType = "decompose"
	TaskEstimate  TaskType = "estimate"
)

// Provider names a completion backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	TimeoutMs   int     `mapstructure:"timeout_ms" yaml:"timeout_ms"` // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled   bool                    `mapstructure:"enabled" yaml:"enabled"`
	LogCalls  bool                    `mapstructure:"log_calls" yaml:"log_calls"`
	Provider  Provider                `mapstructure:"provider" yaml:"provider"`
	Endpoint  string                  `mapstructure:"endpoint" yaml:"endpoint"`
	Model     string                  `mapstructure:"model" yaml:"model"`
	APIKey    string                  `mapstructure:"api_key" yaml:"-" json:"-"`
	TimeoutMs int                     `mapstructure:"timeout_ms" yaml:"timeout_ms"`
	Tasks     map[TaskType]TaskConfig `mapstructure:"tasks" yaml:"tasks"`
}

// DefaultConfig returns an LLMConfig with sensible defaults. Provider calls
// are made once per phase.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:   true,
		LogCalls:  false,
		Provider:  ProviderOllama,
		Endpoint:  "http://localhost:11434",
		Model:     "llama3.2",
		TimeoutMs: 30000,
		Tasks: map[TaskType]TaskConfig{
			TaskDecompose: {Temperature: 0.3, MaxTokens: 2048, TimeoutMs: 30000},
			TaskEstimate:  {Temperature: 0.2, MaxTokens: 2048, TimeoutMs: 30000},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// Validate checks the settings needed to build a client.
func (c LLMConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Provider {
	case ProviderOllama:
		if c.Endpoint == "" {
			return fmt.Errorf("%w: ollama endpoint is required", ErrNotConfigured)
		}
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("%w: gemini api key is required", ErrNotConfigured)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: model is required", ErrNotConfigured)
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("%w: timeout_ms must be positive", ErrNotConfigured)
	}
	return nil
}

// resolveSampling applies request overrides on top of the task defaults.
func (c LLMConfig) resolveSampling(req GenerateRequest) (float64, int) {
	tc := c.Tasks[req.Task]
	temp, maxTok := tc.Temperature, tc.MaxTokens
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}
