package generator

import (
	"context"
	"strings"

	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/content"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/platform"
	"github.com/social-agent/internal/scoring"
)

// PerformanceReport is the heuristic analysis of a post with recommendations
type PerformanceReport struct {
	Platform        string                   `json:"platform"`
	Analysis        scoring.Analysis         `json:"analysis"`
	ToneConsistency models.ToneProfile       `json:"tone_consistency"`
	Recommendations []scoring.Recommendation `json:"recommendations"`
}

// AnalyzeContent scores a post for a platform. Unknown platforms are
// analyzed against the default platform.
func (g *Generator) AnalyzeContent(ctx context.Context, post, platformID string) (*PerformanceReport, error) {
	const op = "generator.AnalyzeContent"

	if strings.TrimSpace(post) == "" {
		return nil, apperr.Validation(op, "content is required")
	}

	spec := g.resolvePlatform(platformID)
	analysis := scoring.Analyze(post, string(spec.ID))

	return &PerformanceReport{
		Platform:        string(spec.ID),
		Analysis:        analysis,
		ToneConsistency: g.analyzer.Analyze(ctx, post),
		Recommendations: scoring.Recommend(analysis),
	}, nil
}

// SuggestionKind tells generated suggestions from template ones
type SuggestionKind string

const (
	SuggestionGenerated SuggestionKind = "generated"
	SuggestionTemplate  SuggestionKind = "template"
)

// Suggestion is one candidate post
type Suggestion struct {
	Kind         SuggestionKind             `json:"type"`
	Platform     string                     `json:"platform"`
	Content      string                     `json:"content"`
	TemplateName string                     `json:"template_name,omitempty"`
	Metadata     *models.GenerationMetadata `json:"metadata,omitempty"`
}

// Suggest returns one generated post per profile platform followed by every
// relevant template. Failed generations are skipped.
func (g *Generator) Suggest(ctx context.Context, input string, profile *models.UserProfile) ([]Suggestion, error) {
	const op = "generator.Suggest"

	if strings.TrimSpace(input) == "" {
		return nil, apperr.Validation(op, "input is required")
	}

	var platforms []string
	if profile != nil {
		platforms = profile.Platforms
	}
	if len(platforms) == 0 {
		platforms = []string{string(platform.Default)}
	}

	var goals []string
	var niche string
	if profile != nil {
		goals = profile.Goals
		niche = profile.Niche
	}

	suggestions := []Suggestion{}
	for _, p := range platforms {
		res, err := g.GenerateContent(ctx, models.GenerationRequest{
			Prompt:       input,
			Platform:     p,
			Tone:         string(profile.Tone()),
			Niche:        niche,
			ContentGoals: goals,
		}, profile)
		if err != nil {
			g.log.Warn().Err(err).Str("platform", p).Msg("Suggestion generation failed")
			continue
		}
		md := res.Metadata
		suggestions = append(suggestions, Suggestion{
			Kind:     SuggestionGenerated,
			Platform: md.Platform,
			Content:  res.Content,
			Metadata: &md,
		})
	}

	for _, p := range platforms {
		for _, tpl := range content.Templates(platform.Normalize(p)) {
			if !tpl.IsRelevant(input) {
				continue
			}
			suggestions = append(suggestions, Suggestion{
				Kind:         SuggestionTemplate,
				Platform:     string(tpl.Platform),
				Content:      tpl.Adapt(input, profile),
				TemplateName: tpl.Name,
			})
		}
	}

	return suggestions, nil
}
