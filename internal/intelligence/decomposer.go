package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/llm"
)

// Decomposer splits a work item into sub-tasks.
type Decomposer interface {
	// Decompose makes exactly one completion call. Every failure is an
	// EngineError of kind decomposition_failed.
	Decompose(ctx context.Context, in DecomposeInput) (*Decomposition, error)
}

type decomposer struct {
	client llm.LLMClient
}

func NewDecomposer(client llm.LLMClient) Decomposer {
	return &decomposer{client: client}
}

func (d *decomposer) Decompose(ctx context.Context, in DecomposeInput) (*Decomposition, error) {
	resp, err := d.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskDecompose,
		SystemPrompt: decomposeSystemPrompt,
		UserPrompt:   buildDecomposePrompt(in),
		JSONMode:     true,
	})
	if err != nil {
		return nil, contract.NewError(contract.ErrDecompositionFailed, providerMessage(err), err)
	}

	out, err := llm.ExtractJSON[decomposeOutput](resp.Text, validateDecomposeOutput)
	if err != nil {
		return nil, contract.NewError(contract.ErrDecompositionFailed, "model returned an unusable task list", err)
	}

	result := &Decomposition{
		Input:       in,
		Tasks:       make([]DecomposedTask, 0, len(out.Tasks)),
		Assumptions: nonEmpty(out.Assumptions),
		Risks:       nonEmpty(out.Risks),
		Usage:       resp.Usage,
		Model:       resp.Model,
	}
	for i, t := range out.Tasks {
		result.Tasks = append(result.Tasks, DecomposedTask{
			ID:         fmt.Sprintf("T%d", i+1),
			Name:       taskName(t.Name, t.Task),
			Complexity: domain.Complexity(normalizeLabel(t.Complexity)),
			Category:   strings.TrimSpace(t.Category),
		})
	}
	return result, nil
}

func validateDecomposeOutput(out decomposeOutput) error {
	if n := len(out.Tasks); n < MinTasks || n > MaxTasks {
		return fmt.Errorf("expected %d-%d tasks, got %d", MinTasks, MaxTasks, n)
	}
	for i, t := range out.Tasks {
		if taskName(t.Name, t.Task) == "" {
			return fmt.Errorf("task %d has no name", i+1)
		}
		c := domain.Complexity(normalizeLabel(t.Complexity))
		if !domain.ValidComplexities[c] {
			return fmt.Errorf("task %d has invalid complexity %q", i+1, t.Complexity)
		}
	}
	return nil
}

func taskName(name, alt string) string {
	return strings.TrimSpace(domain.CoalesceStr(strings.TrimSpace(name), alt))
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// providerMessage turns a client error into a short human message.
func providerMessage(err error) string {
	switch {
	case errors.Is(err, llm.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "completion provider timed out"
	case errors.Is(err, llm.ErrProviderUnavailable):
		return "completion provider unavailable"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	default:
		return "completion provider call failed"
	}
}
