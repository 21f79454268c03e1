package storage

import (
	"context"
	"errors"
	"time"

	"github.com/social-agent/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Repository defines the interface for data persistence
type Repository interface {
	// Profile operations
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)

	// Draft operations
	CreateDraft(ctx context.Context, draft *models.Draft) error
	CreateDrafts(ctx context.Context, drafts []*models.Draft) error
	GetDraft(ctx context.Context, id uint) (*models.Draft, error)
	ListDrafts(ctx context.Context, filter DraftFilter) ([]*models.Draft, error)
	UpdateDraft(ctx context.Context, draft *models.Draft) error
	DeleteDraft(ctx context.Context, id uint) error
	GetScheduledDrafts(ctx context.Context, before time.Time) ([]*models.Draft, error)

	// Maintenance
	Close() error
	Migrate() error
}

// DraftFilter defines filtering options for drafts
type DraftFilter struct {
	UserID    string
	PlanID    string
	Platform  string
	Status    *models.PlanStatus
	Limit     int
	Offset    int
	OrderBy   string // "created_at", "scheduled_for"
	OrderDesc bool
}

// DefaultDraftFilter returns a filter with sensible defaults
func DefaultDraftFilter() DraftFilter {
	return DraftFilter{
		Limit:     50,
		OrderBy:   "created_at",
		OrderDesc: true,
	}
}
