package contract

import (
	"time"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

// EstimateRequest is the input to the two-phase estimation workflow.
type EstimateRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ItemKind    domain.ItemKind `json:"itemKind,omitempty"`
}

type EstimateMetadata struct {
	PromptTokens     int     `json:"promptTokens"`
	CompletionTokens int     `json:"completionTokens"`
	Tokens           int     `json:"tokens"`
	Cost             float64 `json:"cost"`
	Model            string  `json:"model,omitempty"`
	ExecutionTimeMs  int64   `json:"executionTimeMs"`
}

// EstimateResult is either a successful estimate or a structured failure.
// On failure only Error, Message and possibly Confidence are set.
type EstimateResult struct {
	Success             bool                   `json:"success"`
	Error               ErrorKind              `json:"error,omitempty"`
	Message             string                 `json:"message,omitempty"`
	TotalHours          float64                `json:"totalHours"`
	Confidence          domain.Confidence      `json:"confidence,omitempty"`
	ConfidenceReasoning string                 `json:"confidenceReasoning,omitempty"`
	Breakdown           []domain.BreakdownItem `json:"breakdown,omitempty"`
	Assumptions         []string               `json:"assumptions,omitempty"`
	Risks               []string               `json:"risks,omitempty"`
	Metadata            EstimateMetadata       `json:"metadata"`
}

// Failure builds a structured failure result.
func Failure(kind ErrorKind, message string) *EstimateResult {
	return &EstimateResult{Success: false, Error: kind, Message: message}
}

// EstimateOptions controls how a generated estimate is recorded.
type EstimateOptions struct {
	Source    domain.EstimateSource `json:"source,omitempty"`
	CreatedBy string                `json:"createdBy,omitempty"`
	UserID    string                `json:"userId,omitempty"`
}

// PersistedEstimate is the outcome of generating and saving an estimate.
// Persisted is false only for soft failures, which are never written.
type PersistedEstimate struct {
	ItemKind  domain.ItemKind `json:"itemKind"`
	ItemID    int64           `json:"itemId"`
	Persisted bool            `json:"persisted"`
	Version   int             `json:"version,omitempty"`
	HistoryID string          `json:"historyId,omitempty"`
	Result    *EstimateResult `json:"result"`
}

// EstimateHistoryEntry is the wire form of one history version.
type EstimateHistoryEntry struct {
	ID            string                 `json:"id"`
	Version       int                    `json:"version"`
	EstimateHours float64                `json:"estimateHours"`
	Confidence    domain.Confidence      `json:"confidence"`
	Breakdown     []domain.BreakdownItem `json:"breakdown"`
	Reasoning     string                 `json:"reasoning,omitempty"`
	Assumptions   []string               `json:"assumptions,omitempty"`
	Risks         []string               `json:"risks,omitempty"`
	Source        domain.EstimateSource  `json:"source"`
	CreatedBy     string                 `json:"createdBy,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

func NewEstimateHistoryEntry(rec *domain.EstimateHistoryRecord) EstimateHistoryEntry {
	return EstimateHistoryEntry{
		ID:            rec.ID,
		Version:       rec.Version,
		EstimateHours: rec.EstimateHours,
		Confidence:    rec.Confidence,
		Breakdown:     rec.Breakdown,
		Reasoning:     rec.Reasoning,
		Assumptions:   rec.Assumptions,
		Risks:         rec.Risks,
		Source:        rec.Source,
		CreatedBy:     rec.CreatedBy,
		CreatedAt:     rec.CreatedAt,
	}
}
