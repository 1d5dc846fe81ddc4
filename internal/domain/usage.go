package domain

import "time"

// UsageRecord is one row of AI usage telemetry.
type UsageRecord struct {
	ID               string
	UserID           string
	ProjectID        int64
	Feature          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	CostAmount       float64
	Model            string
	Metadata         map[string]any
	CreatedAt        time.Time
}
