package generator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/platform"
)

// ScheduleSettings selects what a content plan covers
type ScheduleSettings struct {
	Topics []string `json:"topics"`
	// ContentTypes are post formats assigned to plan pairs round-robin.
	ContentTypes []string `json:"content_types,omitempty"`
}

type planPair struct {
	platform string
	topic    string
	format   string
}

// GenerateScheduledContent generates one post per platform and topic of the
// profile. Failed pairs are logged and counted; the plan keeps the successes
// in platform-major order. An empty platform list means the default platform.
func (g *Generator) GenerateScheduledContent(ctx context.Context, profile *models.UserProfile, settings ScheduleSettings) (*models.ContentPlan, error) {
	const op = "generator.GenerateScheduledContent"

	if profile == nil {
		return nil, apperr.Validation(op, "user profile is required")
	}
	if len(settings.Topics) == 0 {
		return nil, apperr.Validation(op, "at least one topic is required")
	}

	platforms := []string(profile.Platforms)
	if len(platforms) == 0 {
		platforms = []string{string(g.resolver.Fallback)}
	}

	pairs := make([]planPair, 0, len(platforms)*len(settings.Topics))
	for _, p := range platforms {
		for _, topic := range settings.Topics {
			pair := planPair{platform: p, topic: topic}
			if len(settings.ContentTypes) > 0 {
				pair.format = settings.ContentTypes[len(pairs)%len(settings.ContentTypes)]
			}
			pairs = append(pairs, pair)
		}
	}

	planID := uuid.NewString()
	log := g.log.WithUserID(profile.UserID)
	log.Info().
		Str("plan_id", planID).
		Int("platforms", len(platforms)).
		Int("topics", len(settings.Topics)).
		Msg("Generating content plan")

	slots := make([]*models.PlanEntry, len(pairs))
	generate := func(i int) {
		pair := pairs[i]
		res, err := g.GenerateContent(ctx, models.GenerationRequest{
			Prompt:       pair.topic,
			Platform:     pair.platform,
			Format:       pair.format,
			Niche:        profile.Niche,
			ContentGoals: profile.Goals,
		}, profile)
		if err != nil {
			log.Warn().
				Err(err).
				Str("platform", pair.platform).
				Str("topic", pair.topic).
				Msg("Plan entry failed")
			return
		}
		slots[i] = &models.PlanEntry{
			PlanID:       planID,
			Platform:     res.Metadata.Platform,
			Topic:        pair.topic,
			Content:      res.Content,
			Metadata:     res.Metadata,
			ScheduledFor: g.scheduleTime(profile.PostFrequency),
			Status:       models.PlanStatusDraft,
		}
	}

	if g.concurrency > 1 {
		var eg errgroup.Group
		eg.SetLimit(g.concurrency)
		for i := range pairs {
			eg.Go(func() error {
				generate(i)
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		for i := range pairs {
			generate(i)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, apperr.Transport(op, err)
	}

	plan := &models.ContentPlan{
		ID:      planID,
		Entries: make([]models.PlanEntry, 0, len(pairs)),
	}
	for _, entry := range slots {
		if entry != nil {
			plan.Entries = append(plan.Entries, *entry)
		}
	}
	plan.Summary = models.PlanSummary{
		TotalPosts: len(plan.Entries),
		Platforms:  len(platforms),
		Topics:     len(settings.Topics),
		Failed:     len(pairs) - len(plan.Entries),
	}

	log.Info().
		Str("plan_id", planID).
		Int("total_posts", plan.Summary.TotalPosts).
		Int("failed", plan.Summary.Failed).
		Msg("Content plan generated")

	return plan, nil
}

func (g *Generator) scheduleTime(freq models.PostFrequency) time.Time {
	return g.now().Add(time.Duration(freq.Days()) * 24 * time.Hour)
}

// resolvePlatform is the lenient lookup used by operations that never reject
// a platform
func (g *Generator) resolvePlatform(id string) platform.Spec {
	lenient := g.resolver
	lenient.Strict = false
	spec, _, _ := lenient.Resolve(id)
	return spec
}
