package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCost_KnownModel(t *testing.T) {
	usage := Usage{PromptTokens: 1_000_000, CompletionTokens: 1_000_000}
	assert.InDelta(t, 12.50, Cost(usage, "gpt-4o"), 1e-9)
	assert.InDelta(t, 0.75, Cost(usage, "gpt-4o-mini"), 1e-9)
}

func TestCost_DatedSnapshotUsesLongestPrefix(t *testing.T) {
	usage := Usage{PromptTokens: 2000, CompletionTokens: 1000}
	assert.InDelta(t, Cost(usage, "gpt-4o-mini"), Cost(usage, "gpt-4o-mini-2024-07-18"), 1e-12)
	assert.InDelta(t, Cost(usage, "gemini-2.0-flash"), Cost(usage, "models/gemini-2.0-flash-001"), 1e-12)
}

func TestCost_UnknownModelIsFree(t *testing.T) {
	assert.Equal(t, 0.0, Cost(Usage{PromptTokens: 5000, CompletionTokens: 5000}, "llama3.2"))
	assert.Equal(t, 0.0, Cost(Usage{PromptTokens: 5000}, ""))
}

func TestCost_ZeroUsage(t *testing.T) {
	assert.Equal(t, 0.0, Cost(Usage{}, "gpt-4o"))
}

func TestUsage_Add(t *testing.T) {
	got := Usage{PromptTokens: 10, CompletionTokens: 4}.Add(Usage{PromptTokens: 3, CompletionTokens: 1})
	assert.Equal(t, Usage{PromptTokens: 13, CompletionTokens: 5}, got)
}
