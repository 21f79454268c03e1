// Package generator orchestrates prompt composition, completion and
// post-processing into platform-ready content.
package generator

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/social-agent/internal/ai"
	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/content"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/platform"
	"github.com/social-agent/internal/scoring"
	"github.com/social-agent/internal/tone"
	"github.com/social-agent/pkg/logger"
)

// FailureMessage is the only error text callers of the response envelope see
const FailureMessage = "Failed to generate content"

// DefaultFormat is reported in metadata when a request names no format
const DefaultFormat = "custom"

// Generator turns requests into post-processed content. It holds no mutable
// state and is safe for concurrent use.
type Generator struct {
	completer   ai.Completer
	analyzer    *tone.Analyzer
	resolver    platform.Resolver
	concurrency int
	now         func() time.Time
	log         *logger.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithResolver sets how platform identifiers are resolved
func WithResolver(r platform.Resolver) Option {
	return func(g *Generator) { g.resolver = r }
}

// WithConcurrency sets how many plan pairs are generated in parallel.
// Values below 2 keep plan generation sequential.
func WithConcurrency(n int) Option {
	return func(g *Generator) { g.concurrency = n }
}

// WithClock replaces the time source used for scheduling
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a generator. A nil completer is allowed; generation calls then
// fail with a configuration error and tone analysis uses the rule-based path.
func New(completer ai.Completer, log *logger.Logger, opts ...Option) *Generator {
	g := &Generator{
		completer:   completer,
		resolver:    platform.Resolver{Fallback: platform.Default},
		concurrency: 1,
		now:         time.Now,
		log:         log.WithComponent("generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.analyzer = tone.NewAnalyzer(completer, log)
	return g
}

// GenerateContent produces one post for req. The tone defaults to the
// profile's preferred tone. No partial content is returned on failure.
func (g *Generator) GenerateContent(ctx context.Context, req models.GenerationRequest, profile *models.UserProfile) (*models.GenerationResult, error) {
	const op = "generator.GenerateContent"

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, apperr.Validation(op, "prompt is required")
	}

	spec, substituted, err := g.resolver.Resolve(req.Platform)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, op, err)
	}
	if substituted {
		g.log.Warn().
			Str("requested", req.Platform).
			Str("platform", string(spec.ID)).
			Msg("Unknown platform, using default")
	}

	if g.completer == nil {
		return nil, apperr.Configuration(op, errors.New("no completion backend configured"))
	}

	toneLabel := strings.TrimSpace(req.Tone)
	if toneLabel == "" {
		toneLabel = string(profile.Tone())
	}

	log := g.log.WithPlatform(string(spec.ID))
	log.Debug().
		Str("tone", toneLabel).
		Str("format", req.Format).
		Msg("Generating content")

	raw, err := g.completer.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: content.SystemPrompt(spec, toneLabel),
		UserPrompt:   content.Compose(req, profile, spec, toneLabel),
		MaxTokens:    spec.TokenBudget,
		Temperature:  ai.TemperatureGeneration,
	})
	if err != nil {
		log.Error().Err(err).Msg("Content generation failed")
		return nil, err
	}

	processed := content.Enforce(raw, spec)
	if processed == "" {
		return nil, apperr.Parse(op, errors.New("completion returned no content"))
	}

	format := req.Format
	if format == "" {
		format = DefaultFormat
	}

	result := &models.GenerationResult{
		Content: processed,
		Metadata: models.GenerationMetadata{
			Platform:            string(spec.ID),
			Tone:                toneLabel,
			Format:              format,
			WordCount:           len(strings.Fields(processed)),
			CharacterCount:      utf8.RuneCountInString(processed),
			EstimatedEngagement: scoring.EstimateEngagement(processed, spec.ID),
		},
	}

	log.Info().
		Int("characters", result.Metadata.CharacterCount).
		Int("engagement", result.Metadata.EstimatedEngagement).
		Msg("Content generated")

	return result, nil
}

// Response is the success/failure envelope returned to outer callers
type Response struct {
	Success  bool                       `json:"success"`
	Content  string                     `json:"content,omitempty"`
	Metadata *models.GenerationMetadata `json:"metadata,omitempty"`
	Error    string                     `json:"error,omitempty"`
}

// NewResponse collapses a GenerateContent result into the envelope. Every
// failure carries FailureMessage regardless of its kind.
func NewResponse(res *models.GenerationResult, err error) Response {
	if err != nil || res == nil {
		return Response{Success: false, Error: FailureMessage}
	}
	md := res.Metadata
	return Response{Success: true, Content: res.Content, Metadata: &md}
}
