// Package aitest provides Completer doubles for tests.
package aitest

import (
	"context"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/social-agent/internal/ai"
)

// MockCompleter is a testify mock implementation of ai.Completer
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// Reply is one canned response of a ScriptedCompleter
type Reply struct {
	Text string
	Err  error
}

// ScriptedCompleter answers by matching a substring of the user prompt.
// Unmatched prompts get Fallback. It is safe for concurrent use.
type ScriptedCompleter struct {
	Rules    []Rule
	Fallback Reply

	mu       sync.Mutex
	requests []ai.CompletionRequest
}

// Rule maps prompts containing Match to Reply
type Rule struct {
	Match string
	Reply Reply
}

func (s *ScriptedCompleter) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, r := range s.Rules {
		if strings.Contains(req.UserPrompt, r.Match) {
			return r.Reply.Text, r.Reply.Err
		}
	}
	return s.Fallback.Text, s.Fallback.Err
}

// Requests returns a copy of every request received so far
func (s *ScriptedCompleter) Requests() []ai.CompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ai.CompletionRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

var (
	_ ai.Completer = (*MockCompleter)(nil)
	_ ai.Completer = (*ScriptedCompleter)(nil)
)
