package planner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/social-agent/internal/ai"
	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/pkg/logger"
)

// rankBatchSize caps how many topics go into one ranking prompt
const rankBatchSize = 10

// TopicRanking is the score the model gave one discovered topic
type TopicRanking struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
	Angle string  `json:"angle"`
}

// Ranker orders discovered topics by relevance to a niche
type Ranker struct {
	completer ai.Completer
	minScore  float64
	log       *logger.Logger
}

// NewRanker creates a ranker. Topics scoring below minScore are dropped.
func NewRanker(completer ai.Completer, minScore float64, log *logger.Logger) *Ranker {
	return &Ranker{
		completer: completer,
		minScore:  minScore,
		log:       log.WithComponent("ranker"),
	}
}

// Rank returns the topics that reached the minimum score, best first. Ties
// keep discovery order. A batch that fails to rank keeps its topics unranked
// at the end, and the failures are returned alongside.
func (r *Ranker) Rank(ctx context.Context, niche string, topics []*models.RawTopic) ([]*models.RawTopic, []error) {
	type scored struct {
		topic *models.RawTopic
		score float64
	}

	var ranked []scored
	var unranked []*models.RawTopic
	var errs []error

	for i := 0; i < len(topics); i += rankBatchSize {
		end := min(i+rankBatchSize, len(topics))
		batch := topics[i:end]

		rankings, err := r.rankBatch(ctx, niche, batch)
		if err != nil {
			r.log.Warn().Err(err).Int("batch_start", i).Msg("Failed to rank topic batch")
			errs = append(errs, fmt.Errorf("batch ranking failed: %w", err))
			unranked = append(unranked, batch...)
			continue
		}

		for j, topic := range batch {
			ranking, ok := rankings[j]
			if !ok || ranking.Score < r.minScore {
				continue
			}
			ranked = append(ranked, scored{topic: topic, score: ranking.Score})
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })

	out := make([]*models.RawTopic, 0, len(ranked)+len(unranked))
	for _, s := range ranked {
		out = append(out, s.topic)
	}
	out = append(out, unranked...)

	r.log.Debug().
		Int("topics", len(topics)).
		Int("kept", len(ranked)).
		Int("unranked", len(unranked)).
		Msg("Ranked topics")

	return out, errs
}

// rankBatch maps batch indexes to their rankings
func (r *Ranker) rankBatch(ctx context.Context, niche string, batch []*models.RawTopic) (map[int]TopicRanking, error) {
	const op = "planner.Rank"

	if r.completer == nil {
		return nil, apperr.Configuration(op, errors.New("no completion backend configured"))
	}

	var b strings.Builder
	for i, topic := range batch {
		fmt.Fprintf(&b, "\n[%d] Title: %s\nDescription: %s\nSource: %s\n", i, topic.Title, topic.Description, topic.SourceName)
	}

	if niche == "" {
		niche = "general professional"
	}

	response, err := r.completer.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: fmt.Sprintf(ai.TopicRankingSystemPrompt, niche),
		UserPrompt:   fmt.Sprintf(ai.TopicRankingUserPrompt, b.String()),
		MaxTokens:    ai.TopicRankingMaxTokens,
		Temperature:  ai.TemperatureRanking,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Rankings []TopicRanking `json:"rankings"`
	}
	if err := ai.DecodeJSON(op, response, &parsed); err != nil {
		return nil, err
	}

	rankings := make(map[int]TopicRanking, len(parsed.Rankings))
	for _, ranking := range parsed.Rankings {
		if ranking.Index >= 0 && ranking.Index < len(batch) {
			rankings[ranking.Index] = ranking
		}
	}
	return rankings, nil
}
