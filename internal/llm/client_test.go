package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

func withTaskTimeout(cfg LLMConfig, task TaskType, ms int) LLMConfig {
	cfg.Tasks = map[TaskType]TaskConfig{
		task: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: ms},
	}
	return cfg
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)
		assert.Equal(t, 0.3, req.Options.Temperature)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{
			Model:           "llama3.2",
			Response:        `{"tasks":[]}`,
			PromptEvalCount: 120,
			EvalCount:       45,
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskDecompose,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
		JSONMode:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"tasks":[]}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.Equal(t, Usage{PromptTokens: 120, CompletionTokens: 45}, resp.Usage)
	assert.Equal(t, 165, resp.Usage.Total())
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_RequestOverrides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 0.9, req.Options.Temperature)
		assert.Equal(t, 64, req.Options.NumPredict)
		assert.Empty(t, req.Format)
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	temp, maxTok := 0.9, 64
	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:        TaskEstimate,
		UserPrompt:  "x",
		Temperature: &temp,
		MaxTokens:   &maxTok,
	})
	require.NoError(t, err)
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewOllamaClient(withTaskTimeout(testConfig(srv.URL), TaskDecompose, 50), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskDecompose,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := withTaskTimeout(testConfig("http://127.0.0.1:1"), TaskEstimate, 1000)

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskEstimate,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestOllamaClient_Generate_ServerErrorIsSingleAttempt(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	for _, task := range []TaskType{TaskDecompose, TaskEstimate} {
		_, err := NewOllamaClient(testConfig(srv.URL), NoopObserver{}).Generate(context.Background(), GenerateRequest{Task: task, UserPrompt: "test"})
		assert.ErrorIs(t, err, ErrRequestFailed)
	}
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOllamaClient_Generate_TimeoutIsSingleAttempt(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	var captured LLMCallEvent
	cfg := withTaskTimeout(testConfig(srv.URL), TaskDecompose, 50)
	client := NewOllamaClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDecompose, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, int32(1), attempts.Load())
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

func TestOllamaClient_Generate_CallerCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var captured LLMCallEvent
	client := NewOllamaClient(testConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(ctx, GenerateRequest{Task: TaskDecompose, UserPrompt: "test"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Equal(t, "CANCELLED", captured.ErrorCode)
}

func TestOllamaClient_Generate_CallerDeadlineIsNotTaskTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := NewOllamaClient(testConfig(srv.URL), NoopObserver{}).Generate(ctx, GenerateRequest{Task: TaskDecompose, UserPrompt: "test"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(testConfig(srv.URL), NoopObserver{}).Available(context.Background()))
	assert.False(t, NewOllamaClient(testConfig("http://127.0.0.1:1"), NoopObserver{}).Available(context.Background()))
}

func TestOllamaClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok", PromptEvalCount: 10, EvalCount: 5})
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	_, err := NewOllamaClient(testConfig(srv.URL), obs).Generate(context.Background(), GenerateRequest{
		Task:       TaskEstimate,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, TaskEstimate, captured.Task)
	assert.Equal(t, ProviderOllama, captured.Provider)
	assert.Equal(t, "llama3.2", captured.Model)
	assert.Equal(t, 15, captured.Usage.Total())
	assert.True(t, captured.Success)
}

func TestOllamaClient_ObserverTimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}
	client := NewOllamaClient(withTaskTimeout(testConfig(srv.URL), TaskDecompose, 50), obs)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDecompose, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
