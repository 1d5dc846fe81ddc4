package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.NoError(t, cfg.Validate())
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 9000
	cfg.Tasks[TaskDecompose] = TaskConfig{Temperature: 0.3, MaxTokens: 100, TimeoutMs: 15000}
	cfg.Tasks[TaskEstimate] = TaskConfig{Temperature: 0.2, MaxTokens: 100}

	assert.Equal(t, 15000, cfg.TaskTimeout(TaskDecompose))
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskEstimate))
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskType("other")))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*LLMConfig)
		ok     bool
	}{
		{"disabled skips checks", func(c *LLMConfig) { c.Enabled = false; c.Model = "" }, true},
		{"missing endpoint", func(c *LLMConfig) { c.Endpoint = "" }, false},
		{"gemini needs key", func(c *LLMConfig) { c.Provider = ProviderGemini }, false},
		{"gemini with key", func(c *LLMConfig) { c.Provider = ProviderGemini; c.APIKey = "k" }, true},
		{"unknown provider", func(c *LLMConfig) { c.Provider = "openai" }, false},
		{"missing model", func(c *LLMConfig) { c.Model = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrNotConfigured)
			}
		})
	}
}
