package rss

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/social-agent/internal/config"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/source"
	"github.com/social-agent/pkg/logger"
	"github.com/social-agent/pkg/ratelimit"
)

// DefaultMaxAge drops feed items older than a week
const DefaultMaxAge = 7 * 24 * time.Hour

// Source implements TopicSource for RSS feeds
type Source struct {
	name   string
	url    string
	maxAge time.Duration
	parser *gofeed.Parser
	now    func() time.Time

	rateLimiter *ratelimit.MultiLimiter
	log         *logger.Logger
}

// New creates a new RSS source for a single feed. The limiter may be nil.
func New(feed config.RSSFeed, maxAge time.Duration, limiter *ratelimit.MultiLimiter, log *logger.Logger) *Source {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Source{
		name:   feed.Name,
		url:    feed.URL,
		maxAge: maxAge,
		parser: gofeed.NewParser(),
		now:    time.Now,

		rateLimiter: limiter,
		log:         log.WithSource("rss", feed.Name),
	}
}

// NewMultiple creates multiple RSS sources from config
func NewMultiple(cfg config.RSSConfig, limiter *ratelimit.MultiLimiter, log *logger.Logger) []*Source {
	maxAge := time.Duration(cfg.MaxAgeDays) * 24 * time.Hour
	sources := make([]*Source, 0, len(cfg.Feeds))
	for _, feed := range cfg.Feeds {
		sources = append(sources, New(feed, maxAge, limiter, log))
	}
	return sources
}

// Name returns the source name
func (s *Source) Name() string {
	return s.name
}

// Type returns "rss"
func (s *Source) Type() string {
	return "rss"
}

// Fetch retrieves recent items of the feed as topics
func (s *Source) Fetch(ctx context.Context) ([]*models.RawTopic, error) {
	if s.rateLimiter != nil {
		if err := s.rateLimiter.Wait(ctx, ratelimit.LimiterRSS); err != nil {
			return nil, fmt.Errorf("rate limit wait for %s: %w", s.name, err)
		}
	}

	s.log.Debug().Str("url", s.url).Msg("Fetching RSS feed")

	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed %s: %w", s.name, err)
	}

	now := s.now()
	topics := make([]*models.RawTopic, 0, len(feed.Items))

	for _, item := range feed.Items {
		publishedAt := now
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
			if now.Sub(publishedAt) > s.maxAge {
				continue
			}
		}

		title := cleanText(item.Title)
		if title == "" {
			continue
		}

		topics = append(topics, &models.RawTopic{
			Title:       title,
			Description: cleanText(item.Description),
			URL:         item.Link,
			SourceType:  "rss",
			SourceName:  s.name,
			Keywords:    extractKeywords(item),
			PublishedAt: publishedAt,
		})
	}

	s.log.Info().
		Int("count", len(topics)).
		Str("feed", s.name).
		Msg("Fetched RSS topics")

	return topics, nil
}

// HealthCheck verifies the RSS feed is accessible
func (s *Source) HealthCheck(ctx context.Context) error {
	_, err := s.parser.ParseURLWithContext(s.url, ctx)
	return err
}

// cleanText removes HTML tags and extra whitespace
func cleanText(text string) string {
	text = strings.NewReplacer("<br>", " ", "<br/>", " ", "<br />", " ", "</p>", " ", "<p>", "").Replace(text)

	var result strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(result.String()), " ")
}

// extractKeywords collects categories and the author name
func extractKeywords(item *gofeed.Item) []string {
	keywords := make([]string, 0, len(item.Categories)+1)
	keywords = append(keywords, item.Categories...)
	if item.Author != nil && item.Author.Name != "" {
		keywords = append(keywords, item.Author.Name)
	}
	return keywords
}

// Ensure Source implements source.TopicSource
var _ source.TopicSource = (*Source)(nil)
