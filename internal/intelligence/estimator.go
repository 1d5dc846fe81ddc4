package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/llm"
)

// Estimator assigns hours to each decomposed task.
type Estimator interface {
	// Estimate makes exactly one completion call. Every failure is an
	// EngineError of kind estimation_failed.
	Estimate(ctx context.Context, d *Decomposition) (*TaskEstimates, error)
}

type estimator struct {
	client llm.LLMClient
}

func NewEstimator(client llm.LLMClient) Estimator {
	return &estimator{client: client}
}

func (e *estimator) Estimate(ctx context.Context, d *Decomposition) (*TaskEstimates, error) {
	resp, err := e.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskEstimate,
		SystemPrompt: estimateSystemPrompt,
		UserPrompt:   buildEstimatePrompt(d),
		JSONMode:     true,
	})
	if err != nil {
		return nil, contract.NewError(contract.ErrEstimationFailed, providerMessage(err), err)
	}

	out, err := llm.ExtractJSON[estimateOutput](resp.Text, validateEstimateOutput)
	if err != nil {
		return nil, contract.NewError(contract.ErrEstimationFailed, "model returned unusable estimates", err)
	}

	result := &TaskEstimates{
		Estimates:           make([]TaskEstimate, 0, len(out.Estimates)),
		Confidence:          domain.Confidence(normalizeLabel(out.Confidence)),
		ConfidenceReasoning: strings.TrimSpace(out.ConfidenceReasoning),
		Usage:               resp.Usage,
		Model:               resp.Model,
	}
	var total float64
	for _, est := range out.Estimates {
		result.Estimates = append(result.Estimates, TaskEstimate{
			TaskID:    strings.ToUpper(strings.TrimSpace(est.TaskID)),
			Task:      strings.TrimSpace(est.Task),
			Hours:     *est.Hours,
			Reasoning: strings.TrimSpace(est.Reasoning),
		})
		total += *est.Hours
	}
	result.TotalHours = domain.RoundTo(total, 1)
	return result, nil
}

func validateEstimateOutput(out estimateOutput) error {
	if len(out.Estimates) == 0 {
		return fmt.Errorf("no estimates returned")
	}
	seen := make(map[string]bool, len(out.Estimates))
	for i, est := range out.Estimates {
		id := strings.ToUpper(strings.TrimSpace(est.TaskID))
		if id == "" {
			return fmt.Errorf("estimate %d has no taskId", i+1)
		}
		if seen[id] {
			return fmt.Errorf("duplicate estimate for %s", id)
		}
		seen[id] = true
		if est.Hours == nil {
			return fmt.Errorf("estimate %s has no hours", id)
		}
		if *est.Hours < 0 {
			return fmt.Errorf("estimate %s has negative hours %v", id, *est.Hours)
		}
	}
	if _, err := domain.ParseConfidence(normalizeLabel(out.Confidence)); err != nil {
		return err
	}
	return nil
}
