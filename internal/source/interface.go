package source

import (
	"context"
	"strings"
	"sync"

	"github.com/social-agent/internal/models"
)

// TopicSource defines the interface for post topic sources
type TopicSource interface {
	// Name returns the unique name of this source
	Name() string

	// Type returns the source type (rss, custom)
	Type() string

	// Fetch retrieves topics from the source
	Fetch(ctx context.Context) ([]*models.RawTopic, error)

	// HealthCheck verifies the source is accessible
	HealthCheck(ctx context.Context) error
}

// Manager manages multiple topic sources
type Manager struct {
	sources []TopicSource
}

// NewManager creates a new source manager
func NewManager() *Manager {
	return &Manager{
		sources: make([]TopicSource, 0),
	}
}

// Register adds a source to the manager
func (m *Manager) Register(source TopicSource) {
	m.sources = append(m.sources, source)
}

// Sources returns all registered sources
func (m *Manager) Sources() []TopicSource {
	return m.sources
}

// Len returns the number of registered sources
func (m *Manager) Len() int {
	return len(m.sources)
}

// FetchAll fetches topics from all sources concurrently. Topics keep the
// registration order of their sources.
func (m *Manager) FetchAll(ctx context.Context) ([]*models.RawTopic, []error) {
	results := make([][]*models.RawTopic, len(m.sources))
	errs := make([]error, len(m.sources))

	var wg sync.WaitGroup
	for i, s := range m.sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.Fetch(ctx)
		}()
	}
	wg.Wait()

	var allTopics []*models.RawTopic
	var fetchErrors []error
	for i := range m.sources {
		if errs[i] != nil {
			fetchErrors = append(fetchErrors, errs[i])
			continue
		}
		allTopics = append(allTopics, results[i]...)
	}

	return allTopics, fetchErrors
}

// Titles returns up to limit distinct topic titles in order. Titles are
// compared case-insensitively; a limit of 0 means no limit.
func Titles(topics []*models.RawTopic, limit int) []string {
	seen := make(map[string]struct{}, len(topics))
	titles := make([]string, 0, len(topics))
	for _, t := range topics {
		title := strings.TrimSpace(t.Title)
		key := strings.ToLower(title)
		if title == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		titles = append(titles, title)
		if limit > 0 && len(titles) == limit {
			break
		}
	}
	return titles
}
