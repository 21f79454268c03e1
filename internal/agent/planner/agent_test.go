package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/social-agent/internal/ai/aitest"
	"github.com/social-agent/internal/config"
	"github.com/social-agent/internal/generator"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/source"
	"github.com/social-agent/internal/storage"
	"github.com/social-agent/internal/storage/sqlite"
	"github.com/social-agent/pkg/logger"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeExporter struct {
	drafts []*models.Draft
	err    error
}

func (f *fakeExporter) ExportDrafts(_ context.Context, drafts []*models.Draft) (int, int, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	f.drafts = append(f.drafts, drafts...)
	return len(drafts), 0, nil
}

type stubSource struct {
	topics []*models.RawTopic
	err    error
}

func (s *stubSource) Name() string { return "stub" }
func (s *stubSource) Type() string { return "custom" }
func (s *stubSource) HealthCheck(ctx context.Context) error { return nil }
func (s *stubSource) Fetch(ctx context.Context) ([]*models.RawTopic, error) {
	return s.topics, s.err
}

func newTestRepo(t *testing.T) storage.Repository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	repo, err := sqlite.New(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, repo.Migrate())
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.SaveProfile(context.Background(), &models.UserProfile{
		UserID:        "u-1",
		Niche:         "Developer tools",
		Platforms:     models.StringSlice{"linkedin", "twitter"},
		PostFrequency: models.FrequencyDaily,
	}))
	return repo
}

func newTestGenerator() *generator.Generator {
	completer := &aitest.ScriptedCompleter{
		Fallback: aitest.Reply{Text: "Ship small, ship often. #DevTools"},
	}
	return generator.New(completer, logger.Nop(), generator.WithClock(func() time.Time { return fixedNow }))
}

func TestRun_SavesAndExportsDrafts(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{}
	agent := NewAgent(newTestGenerator(), repo, nil, exporter, 3, logger.Nop())

	result, err := agent.Run(context.Background(), Request{UserID: "u-1", Topics: []string{"CI caching", "Code review"}})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Plan.Summary.TotalPosts)
	require.Len(t, result.Drafts, 4)
	assert.Equal(t, 4, result.Exported)
	assert.Empty(t, result.Errors)

	stored, err := repo.ListDrafts(context.Background(), storage.DraftFilter{PlanID: result.Plan.ID, OrderBy: "id"})
	require.NoError(t, err)
	require.Len(t, stored, 4)
	for _, d := range stored {
		assert.Equal(t, "u-1", d.UserID)
		assert.Equal(t, models.PlanStatusDraft, d.Status)
		require.NotNil(t, d.ScheduledFor)
		assert.True(t, fixedNow.AddDate(0, 0, 1).Equal(*d.ScheduledFor))
	}
	assert.Equal(t, "linkedin", stored[0].Platform)
	assert.Equal(t, "CI caching", stored[0].Topic)
	assert.Equal(t, "twitter", stored[3].Platform)
	assert.Len(t, exporter.drafts, 4)
}

func TestRun_DiscoversTopics(t *testing.T) {
	repo := newTestRepo(t)
	manager := source.NewManager()
	manager.Register(&stubSource{topics: []*models.RawTopic{
		{Title: "Monorepos"}, {Title: "monorepos"}, {Title: "Flaky tests"}, {Title: "Build graphs"},
	}})
	manager.Register(&stubSource{err: errors.New("feed down")})

	agent := NewAgent(newTestGenerator(), repo, manager, nil, 2, logger.Nop())
	result, err := agent.Run(context.Background(), Request{UserID: "u-1", Topics: []string{"Flaky tests", "Release notes"}, Discover: true})
	require.NoError(t, err)

	assert.Equal(t, 4, result.TopicsFetched)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Plan.Summary.Topics)
	assert.Equal(t, 0, result.Exported)

	var topics []string
	for _, e := range result.Plan.Entries {
		if e.Platform == "linkedin" {
			topics = append(topics, e.Topic)
		}
	}
	assert.Equal(t, []string{"Monorepos", "Flaky tests", "Release notes"}, topics)
}

func TestRun_ExportFailureIsNotFatal(t *testing.T) {
	repo := newTestRepo(t)
	agent := NewAgent(newTestGenerator(), repo, nil, &fakeExporter{err: errors.New("quota")}, 0, logger.Nop())

	result, err := agent.Run(context.Background(), Request{UserID: "u-1", Topics: []string{"Linters"}})
	require.NoError(t, err)
	assert.Len(t, result.Drafts, 2)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "quota")
}

func TestRun_Failures(t *testing.T) {
	repo := newTestRepo(t)
	agent := NewAgent(newTestGenerator(), repo, nil, nil, 0, logger.Nop())

	_, err := agent.Run(context.Background(), Request{UserID: "nobody", Topics: []string{"X"}})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = agent.Run(context.Background(), Request{UserID: "u-1"})
	assert.Error(t, err)
}

func TestMergeTopics(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, mergeTopics([]string{"a", "b"}, []string{"b", "c"}))
	assert.Equal(t, []string{"c"}, mergeTopics(nil, []string{"c"}))
	assert.Empty(t, mergeTopics(nil, nil))
}

func TestEnsureProfile(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	existing, err := EnsureProfile(ctx, repo, config.ProfileConfig{UserID: "u-1", Niche: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Developer tools", existing.Niche)

	created, err := EnsureProfile(ctx, repo, config.ProfileConfig{
		UserID:        "u-2",
		Niche:         "Coffee",
		Goals:         []string{"Brand Awareness"},
		Platforms:     []string{"instagram"},
		Tone:          "casual",
		PostFrequency: "daily",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	stored, err := repo.GetProfile(ctx, "u-2")
	require.NoError(t, err)
	assert.Equal(t, models.ToneCasual, stored.PreferredTone)
	assert.Equal(t, models.FrequencyDaily, stored.PostFrequency)
	assert.Equal(t, models.StringSlice{"instagram"}, stored.Platforms)
}
