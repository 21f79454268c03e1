package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/social-agent/internal/ai"
	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/content"
	"github.com/social-agent/internal/models"
)

const (
	defaultIdeaCount    = 5
	defaultHashtagCount = 5
)

// GenerateIdeas asks the backend for count post ideas for a niche. A
// response that is not a JSON array of ideas is a parse error.
func (g *Generator) GenerateIdeas(ctx context.Context, niche string, goals []string, count int) ([]models.ContentIdea, error) {
	const op = "generator.GenerateIdeas"

	if strings.TrimSpace(niche) == "" {
		return nil, apperr.Validation(op, "niche is required")
	}
	if count <= 0 {
		count = defaultIdeaCount
	}
	if g.completer == nil {
		return nil, apperr.Configuration(op, errors.New("no completion backend configured"))
	}

	goalList := strings.Join(goals, ", ")
	response, err := g.completer.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: fmt.Sprintf(ai.IdeasSystemPrompt, count, niche, goalList),
		UserPrompt:   fmt.Sprintf(ai.IdeasUserPrompt, niche, goalList),
		MaxTokens:    ai.IdeasMaxTokens,
		Temperature:  ai.TemperatureIdeas,
	})
	if err != nil {
		return nil, err
	}

	var ideas []models.ContentIdea
	if err := ai.DecodeJSON(op, response, &ideas); err != nil {
		g.log.Warn().Err(err).Msg("Failed to parse content ideas")
		return nil, err
	}

	g.log.Info().Int("ideas", len(ideas)).Str("niche", niche).Msg("Content ideas generated")
	return ideas, nil
}

// SuggestHashtags asks the backend for up to count hashtags for a post.
// Only tokens starting with '#' are kept.
func (g *Generator) SuggestHashtags(ctx context.Context, post, platformID string, count int) ([]string, error) {
	const op = "generator.SuggestHashtags"

	if strings.TrimSpace(post) == "" {
		return nil, apperr.Validation(op, "content is required")
	}
	if count <= 0 {
		count = defaultHashtagCount
	}
	if g.completer == nil {
		return nil, apperr.Configuration(op, errors.New("no completion backend configured"))
	}

	spec := g.resolvePlatform(platformID)
	response, err := g.completer.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: content.SystemPrompt(spec, string(models.ToneProfessional)),
		UserPrompt:   fmt.Sprintf(ai.HashtagSuggestionUserPrompt, count, spec.ID, post),
		MaxTokens:    ai.HashtagSuggestionMaxTokens,
		Temperature:  ai.TemperatureHashtags,
	})
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, count)
	for _, tok := range strings.Fields(response) {
		if !strings.HasPrefix(tok, "#") {
			continue
		}
		tags = append(tags, tok)
		if len(tags) == count {
			break
		}
	}
	return tags, nil
}
