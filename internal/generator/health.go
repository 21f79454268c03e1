package generator

import (
	"context"
	"time"

	"github.com/social-agent/internal/ai"
)

// HealthState is the overall backend state
type HealthState string

const (
	Healthy  HealthState = "healthy"
	Degraded HealthState = "degraded"
)

// Health is the result of a backend probe
type Health struct {
	Status    HealthState `json:"status"`
	Backend   bool        `json:"backend"`
	Error     string      `json:"error,omitempty"`
	CheckedAt time.Time   `json:"checked_at"`
}

// HealthCheck sends a minimal completion to the backend. A failed probe
// reports degraded; rule-based features keep working without the backend.
func (g *Generator) HealthCheck(ctx context.Context) Health {
	h := Health{Status: Degraded, CheckedAt: g.now()}

	if g.completer == nil {
		h.Error = "no completion backend configured"
		return h
	}

	_, err := g.completer.Complete(ctx, ai.CompletionRequest{
		UserPrompt:  ai.HealthCheckPrompt,
		MaxTokens:   ai.HealthCheckMaxTokens,
		Temperature: ai.TemperatureHealth,
	})
	if err != nil {
		g.log.Warn().Err(err).Msg("Backend health check failed")
		h.Error = err.Error()
		return h
	}

	h.Status = Healthy
	h.Backend = true
	return h
}
