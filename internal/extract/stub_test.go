package extract

import (
	"context"
	"sync"

	"github.com/ppiankov/landwatch/internal/llm"
)

// stubProvider answers every Generate call from a fixed reply or error
// and records the requests it saw.
type stubProvider struct {
	mu    sync.Mutex
	reply string
	err   error
	reqs  []llm.GenerateRequest
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) IsAvailable(context.Context) bool { return true }

func (s *stubProvider) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return &llm.GenerateResponse{Text: s.reply, Model: "stub", TokensUsed: 42}, nil
}

func (s *stubProvider) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reqs)
}
