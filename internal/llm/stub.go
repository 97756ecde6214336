package llm

import (
	"context"
	"sync"
)

// StubClient is an in-process Client that answers every prompt with a
// caller-supplied function. It backs tests and offline runs of the server.
type StubClient struct {
	Respond func(prompt string, tier ModelTier, json bool) (string, error)

	mu      sync.Mutex
	prompts []string
}

// NewStubClient returns a StubClient using respond.
func NewStubClient(respond func(prompt string, tier ModelTier, json bool) (string, error)) *StubClient {
	return &StubClient{Respond: respond}
}

// GenerateContent records the prompt and returns Respond(prompt, tier, false).
func (s *StubClient) GenerateContent(_ context.Context, prompt string, tier ModelTier) (string, error) {
	s.record(prompt)
	return s.Respond(prompt, tier, false)
}

// GenerateJSON records the prompt and returns the cleaned Respond(prompt, tier, true).
func (s *StubClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	s.record(prompt)
	text, err := s.Respond(prompt, tier, true)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns "stub" for every tier.
func (s *StubClient) GetModel(ModelTier) string { return "stub" }

// Close is a no-op.
func (s *StubClient) Close() error { return nil }

// Prompts returns every prompt received so far.
func (s *StubClient) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

func (s *StubClient) record(prompt string) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
}
