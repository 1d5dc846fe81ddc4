package intelligence

import (
	"encoding/json"
	"fmt"
)

type tt struct {
	Name       string `json:"name"`
	Complexity string `json:"complexity"`
	Category   string `json:"category,omitempty"`
}

func tasksJSON(tasks ...tt) string {
	data, _ := json.Marshal(map[string]any{
		"tasks":       tasks,
		"assumptions": []string{"existing auth middleware is reused"},
		"risks":       []string{"third-party API rate limits"},
	})
	return string(data)
}

type est struct {
	TaskID    string   `json:"taskId"`
	Task      string   `json:"task,omitempty"`
	Hours     *float64 `json:"hours,omitempty"`
	Reasoning string   `json:"reasoning,omitempty"`
}

func hours(h float64) *float64 { return &h }

func estimatesJSON(confidence string, ests ...est) string {
	data, _ := json.Marshal(map[string]any{
		"estimates":           ests,
		"confidence":          confidence,
		"confidenceReasoning": "tasks are well understood",
	})
	return string(data)
}

// threeTasks is the canonical decomposition used across tests.
func threeTasks() string {
	return tasksJSON(
		tt{Name: "Design schema", Complexity: "medium", Category: "design"},
		tt{Name: "Write migration", Complexity: "low", Category: "development"},
		tt{Name: "Build API endpoints", Complexity: "high", Category: "development"},
	)
}

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("T%d", i+1)
	}
	return out
}
