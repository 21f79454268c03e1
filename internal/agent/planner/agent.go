package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/social-agent/internal/generator"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/source"
	"github.com/social-agent/internal/storage"
	"github.com/social-agent/pkg/logger"
)

// Exporter mirrors drafts somewhere for review
type Exporter interface {
	ExportDrafts(ctx context.Context, drafts []*models.Draft) (added int, updated int, err error)
}

// Agent plans a batch of content for a profile and stores it as drafts
type Agent struct {
	generator     *generator.Generator
	repository    storage.Repository
	sourceManager *source.Manager
	exporter      Exporter
	ranker        *Ranker
	maxTopics     int
	log           *logger.Logger
}

// NewAgent creates a new planner agent. The source manager and exporter
// are optional.
func NewAgent(
	gen *generator.Generator,
	repository storage.Repository,
	sourceManager *source.Manager,
	exporter Exporter,
	maxTopics int,
	log *logger.Logger,
) *Agent {
	return &Agent{
		generator:     gen,
		repository:    repository,
		sourceManager: sourceManager,
		exporter:      exporter,
		maxTopics:     maxTopics,
		log:           log.WithComponent("planner"),
	}
}

// SetRanker enables relevance ranking of discovered topics
func (a *Agent) SetRanker(r *Ranker) {
	a.ranker = r
}

// Request is what a planning run covers
type Request struct {
	UserID       string
	Topics       []string
	ContentTypes []string
	// Discover fills topics from the registered sources before planning
	Discover bool
}

// RunResult contains the results of a planning run
type RunResult struct {
	Plan          *models.ContentPlan
	Drafts        []*models.Draft
	TopicsFetched int
	Exported      int
	Errors        []error
	Duration      time.Duration
}

// Run generates a content plan for the stored profile of req.UserID and
// saves every entry as a draft. Source and export failures are collected in
// the result rather than failing the run.
func (a *Agent) Run(ctx context.Context, req Request) (*RunResult, error) {
	startTime := time.Now()
	result := &RunResult{}
	log := a.log.WithUserID(req.UserID)

	profile, err := a.repository.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("profile not found: %w", err)
	}

	topics := req.Topics
	if req.Discover && a.sourceManager != nil {
		discovered, fetchErrors := a.sourceManager.FetchAll(ctx)
		result.Errors = append(result.Errors, fetchErrors...)
		result.TopicsFetched = len(discovered)

		if a.ranker != nil && len(discovered) > 0 {
			var rankErrors []error
			discovered, rankErrors = a.ranker.Rank(ctx, profile.Niche, discovered)
			result.Errors = append(result.Errors, rankErrors...)
		}

		topics = mergeTopics(source.Titles(discovered, a.maxTopics), topics)
		log.Info().
			Int("topics_found", result.TopicsFetched).
			Int("topics_kept", len(discovered)).
			Int("fetch_errors", len(fetchErrors)).
			Msg("Fetched topics from sources")
	}

	log.Info().Strs("topics", topics).Msg("Starting content planning")

	plan, err := a.generator.GenerateScheduledContent(ctx, profile, generator.ScheduleSettings{
		Topics:       topics,
		ContentTypes: req.ContentTypes,
	})
	if err != nil {
		return nil, err
	}
	result.Plan = plan

	drafts := make([]*models.Draft, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		drafts = append(drafts, models.DraftFromPlanEntry(profile.UserID, entry))
	}
	if err := a.repository.CreateDrafts(ctx, drafts); err != nil {
		return nil, fmt.Errorf("failed to save drafts: %w", err)
	}
	result.Drafts = drafts

	if a.exporter != nil && len(drafts) > 0 {
		added, _, err := a.exporter.ExportDrafts(ctx, drafts)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to export drafts")
			result.Errors = append(result.Errors, fmt.Errorf("export failed: %w", err))
		}
		result.Exported = added
	}

	result.Duration = time.Since(startTime)

	log.Info().
		Str("plan_id", plan.ID).
		Int("drafts_saved", len(drafts)).
		Int("failed", plan.Summary.Failed).
		Int("exported", result.Exported).
		Dur("duration", result.Duration).
		Msg("Planning completed")

	return result, nil
}

// mergeTopics appends fallback topics not already present in primary
func mergeTopics(primary, fallback []string) []string {
	merged := append([]string{}, primary...)
	seen := make(map[string]bool, len(primary))
	for _, t := range primary {
		seen[t] = true
	}
	for _, t := range fallback {
		if !seen[t] {
			seen[t] = true
			merged = append(merged, t)
		}
	}
	return merged
}
