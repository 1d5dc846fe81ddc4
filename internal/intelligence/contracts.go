package intelligence

import (
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/llm"
)

// Decomposition bounds.
const (
	MinTasks = 3
	MaxTasks = 8
)

// DecomposeInput describes the work item being broken down.
type DecomposeInput struct {
	Title       string
	Description string
	ItemKind    domain.ItemKind
}

// DecomposedTask is one sub-task. ID is assigned by the decomposer (T1..Tn)
// and threads through estimation so the two phases can be joined by key.
type DecomposedTask struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Complexity domain.Complexity `json:"complexity"`
	Category   string            `json:"category,omitempty"`
}

type Decomposition struct {
	Input       DecomposeInput
	Tasks       []DecomposedTask
	Assumptions []string
	Risks       []string
	Usage       llm.Usage
	Model       string
}

type TaskEstimate struct {
	TaskID    string
	Task      string
	Hours     float64
	Reasoning string
}

// TaskEstimates is the estimation phase output. TotalHours is the exact sum
// rounded to one decimal.
type TaskEstimates struct {
	Estimates           []TaskEstimate
	TotalHours          float64
	Confidence          domain.Confidence
	ConfidenceReasoning string
	Usage               llm.Usage
	Model               string
}

// decomposeOutput is the JSON shape requested from the model. Some models
// answer with "task" instead of "name".
type decomposeOutput struct {
	Tasks []struct {
		Name       string `json:"name"`
		Task       string `json:"task"`
		Complexity string `json:"complexity"`
		Category   string `json:"category"`
	} `json:"tasks"`
	Assumptions []string `json:"assumptions"`
	Risks       []string `json:"risks"`
}

type estimateOutput struct {
	Estimates []struct {
		TaskID    string   `json:"taskId"`
		Task      string   `json:"task"`
		Hours     *float64 `json:"hours"`
		Reasoning string   `json:"reasoning"`
	} `json:"estimates"`
	Confidence          string `json:"confidence"`
	ConfidenceReasoning string `json:"confidenceReasoning"`
}
