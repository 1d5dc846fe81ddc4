package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/llm"
)

// ErrScriptExhausted is returned once every scripted reply has been used.
var ErrScriptExhausted = errors.New("scripted llm: no replies left")

// Reply is one canned completion. Err takes precedence over Text.
type Reply struct {
	Text  string
	Model string
	Usage llm.Usage
	Err   error
}

// ScriptedLLM answers Generate calls with Replies in order and records
// every request it saw.
type ScriptedLLM struct {
	Replies []Reply

	mu       sync.Mutex
	requests []llm.GenerateRequest
}

func NewScriptedLLM(replies ...Reply) *ScriptedLLM {
	return &ScriptedLLM{Replies: replies}
}

func (s *ScriptedLLM) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.requests)
	s.requests = append(s.requests, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n >= len(s.Replies) {
		return nil, ErrScriptExhausted
	}
	r := s.Replies[n]
	if r.Err != nil {
		return nil, r.Err
	}
	model := r.Model
	if model == "" {
		model = "llama3.2"
	}
	return &llm.GenerateResponse{Text: r.Text, Model: model, Usage: r.Usage}, nil
}

func (s *ScriptedLLM) Available(context.Context) bool { return true }

// Requests returns a copy of the requests received so far.
func (s *ScriptedLLM) Requests() []llm.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.GenerateRequest(nil), s.requests...)
}

// Calls reports how many times Generate was invoked.
func (s *ScriptedLLM) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
