package custom

import (
	"context"
	"strings"
	"time"

	"github.com/social-agent/internal/config"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/source"
	"github.com/social-agent/pkg/logger"
)

// Source implements TopicSource for configured keywords
type Source struct {
	keywords []string
	log      *logger.Logger
}

// New creates a new custom source
func New(cfg config.CustomConfig, log *logger.Logger) *Source {
	return &Source{
		keywords: cfg.Keywords,
		log:      log.WithSource("custom", "keywords"),
	}
}

// Name returns the source name
func (s *Source) Name() string {
	return "custom-keywords"
}

// Type returns "custom"
func (s *Source) Type() string {
	return "custom"
}

// Fetch returns each configured keyword as a topic
func (s *Source) Fetch(ctx context.Context) ([]*models.RawTopic, error) {
	now := time.Now()
	topics := make([]*models.RawTopic, 0, len(s.keywords))

	for _, keyword := range s.keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		topics = append(topics, &models.RawTopic{
			Title:       keyword,
			Description: "Configured keyword",
			SourceType:  "custom",
			SourceName:  "keywords",
			Keywords:    []string{keyword},
			PublishedAt: now,
		})
	}

	s.log.Debug().
		Int("count", len(topics)).
		Msg("Returned custom keyword topics")

	return topics, nil
}

// HealthCheck always succeeds for custom source
func (s *Source) HealthCheck(ctx context.Context) error {
	return nil
}

// Ensure Source implements source.TopicSource
var _ source.TopicSource = (*Source)(nil)
