package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient on the Google Gemini API.
type geminiClient struct {
	cfg      LLMConfig
	models   *genai.Models
	observer Observer
}

// NewGeminiClient creates an LLMClient backed by google.golang.org/genai.
// A non-empty cfg.Endpoint overrides the API base URL.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is required", ErrNotConfigured)
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, models: client.Models, observer: observer}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := c.cfg.resolveSampling(req)

	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temp)),
	}
	if maxTok > 0 {
		gc.MaxOutputTokens = int32(maxTok)
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.JSONMode {
		gc.ResponseMIMEType = "application/json"
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	resp, err := c.models.GenerateContent(callCtx, c.cfg.Model, genai.Text(req.UserPrompt), gc)
	if err != nil {
		err = callError(ctx, callCtx, err)
		c.observer.OnCallComplete(LLMCallEvent{
			Task:      req.Task,
			Provider:  ProviderGemini,
			Model:     c.cfg.Model,
			LatencyMs: time.Since(start).Milliseconds(),
			Success:   false,
			ErrorCode: errorCode(err),
		})
		return nil, err
	}

	out := &GenerateResponse{
		Text:      resp.Text(),
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if um := resp.UsageMetadata; um != nil {
		out.Usage = Usage{
			PromptTokens:     int(um.PromptTokenCount),
			CompletionTokens: int(um.CandidatesTokenCount),
		}
	}
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  ProviderGemini,
		Model:     out.Model,
		LatencyMs: out.LatencyMs,
		Usage:     out.Usage,
		Success:   true,
	})
	return out, nil
}

// Available reports whether the configured model can be resolved.
func (c *geminiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := c.models.Get(ctx, c.cfg.Model, nil)
	return err == nil
}
