package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/social-agent/internal/ai"
	"github.com/social-agent/internal/ai/aitest"
	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/source"
	"github.com/social-agent/pkg/logger"
)

func rawTopics(titles ...string) []*models.RawTopic {
	topics := make([]*models.RawTopic, 0, len(titles))
	for _, title := range titles {
		topics = append(topics, &models.RawTopic{Title: title, SourceName: "feed"})
	}
	return topics
}

func titles(topics []*models.RawTopic) []string {
	return source.Titles(topics, 0)
}

func TestRank_OrdersAndFilters(t *testing.T) {
	completer := &aitest.ScriptedCompleter{Fallback: aitest.Reply{Text: "```json\n" + `{"rankings": [
		{"index": 0, "score": 4, "angle": "meh"},
		{"index": 1, "score": 9, "angle": "great"},
		{"index": 2, "score": 6.5},
		{"index": 3, "score": 9},
		{"index": 17, "score": 10}
	]}` + "\n```"}}

	ranker := NewRanker(completer, 5, logger.Nop())
	ranked, errs := ranker.Rank(context.Background(), "Cloud", rawTopics("Printers", "Kubernetes 2.0", "Serverless costs", "FinOps"))
	assert.Empty(t, errs)
	assert.Equal(t, []string{"Kubernetes 2.0", "FinOps", "Serverless costs"}, titles(ranked))

	reqs := completer.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].SystemPrompt, "in the Cloud niche")
	assert.Contains(t, reqs[0].UserPrompt, "[1] Title: Kubernetes 2.0")
	assert.Equal(t, ai.TopicRankingMaxTokens, reqs[0].MaxTokens)
}

func TestRank_BatchesAndFailures(t *testing.T) {
	var names []string
	for i := 0; i < 12; i++ {
		names = append(names, fmt.Sprintf("Topic %02d", i))
	}

	completer := &aitest.ScriptedCompleter{
		Rules: []aitest.Rule{{
			Match: "Topic 10",
			Reply: aitest.Reply{Err: apperr.Transport("ai.Complete", errors.New("timeout"))},
		}},
		Fallback: aitest.Reply{Text: `{"rankings": [{"index": 9, "score": 8}, {"index": 0, "score": 7}]}`},
	}

	ranked, errs := NewRanker(completer, 5, logger.Nop()).Rank(context.Background(), "", rawTopics(names...))
	require.Len(t, errs, 1)
	assert.True(t, apperr.Is(errs[0], apperr.KindTransport))
	assert.Equal(t, []string{"Topic 09", "Topic 00", "Topic 10", "Topic 11"}, titles(ranked))
	assert.Len(t, completer.Requests(), 2)
	assert.Contains(t, completer.Requests()[0].SystemPrompt, "general professional")
}

func TestRank_UnparseableResponse(t *testing.T) {
	completer := &aitest.ScriptedCompleter{Fallback: aitest.Reply{Text: "I would rank them highly."}}

	ranked, errs := NewRanker(completer, 5, logger.Nop()).Rank(context.Background(), "Cloud", rawTopics("A", "B"))
	require.Len(t, errs, 1)
	assert.True(t, apperr.Is(errs[0], apperr.KindParse))
	assert.Equal(t, []string{"A", "B"}, titles(ranked))
}

func TestRank_NoCompleter(t *testing.T) {
	ranked, errs := NewRanker(nil, 5, logger.Nop()).Rank(context.Background(), "Cloud", rawTopics("A"))
	require.Len(t, errs, 1)
	assert.True(t, apperr.Is(errs[0], apperr.KindConfiguration))
	assert.Len(t, ranked, 1)
}

func TestRun_RanksDiscoveredTopics(t *testing.T) {
	repo := newTestRepo(t)
	manager := source.NewManager()
	manager.Register(&stubSource{topics: rawTopics("Office snacks", "Build caching", "Release trains")})

	completer := &aitest.ScriptedCompleter{
		Rules: []aitest.Rule{{
			Match: "Rank these topics",
			Reply: aitest.Reply{Text: `{"rankings": [{"index": 0, "score": 1}, {"index": 1, "score": 6}, {"index": 2, "score": 9}]}`},
		}},
	}

	agent := NewAgent(newTestGenerator(), repo, manager, nil, 5, logger.Nop())
	agent.SetRanker(NewRanker(completer, 5, logger.Nop()))

	result, err := agent.Run(context.Background(), Request{UserID: "u-1", Discover: true})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 3, result.TopicsFetched)
	assert.Equal(t, 2, result.Plan.Summary.Topics)
	assert.Equal(t, "Release trains", result.Plan.Entries[0].Topic)
	assert.Equal(t, "Build caching", result.Plan.Entries[1].Topic)
}
