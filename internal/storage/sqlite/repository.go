package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/storage"
)

// Repository implements storage.Repository using SQLite
type Repository struct {
	db *gorm.DB
}

var draftOrderColumns = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"scheduled_for": true,
	"id":            true,
}

// New creates a new SQLite repository
func New(dsn string) (*Repository, error) {
	// Ensure directory exists
	if !strings.HasPrefix(dsn, "file:") && !strings.Contains(dsn, ":memory:") {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Repository{db: db}, nil
}

// Migrate runs database migrations
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(
		&models.UserProfile{},
		&models.Draft{},
	)
}

// Close closes the database connection
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}

// Profile operations

// SaveProfile inserts the profile or replaces the one with the same user ID
func (r *Repository) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	// Upsert - update if exists, create if not
	var existing models.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	}
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *Repository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

// Draft operations

func (r *Repository) CreateDraft(ctx context.Context, draft *models.Draft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

// CreateDrafts stores all drafts in one transaction
func (r *Repository) CreateDrafts(ctx context.Context, drafts []*models.Draft) error {
	if len(drafts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&drafts).Error
	})
}

func (r *Repository) GetDraft(ctx context.Context, id uint) (*models.Draft, error) {
	var draft models.Draft
	if err := r.db.WithContext(ctx).First(&draft, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &draft, nil
}

func (r *Repository) ListDrafts(ctx context.Context, filter storage.DraftFilter) ([]*models.Draft, error) {
	var drafts []*models.Draft
	query := r.db.WithContext(ctx).Model(&models.Draft{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.PlanID != "" {
		query = query.Where("plan_id = ?", filter.PlanID)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", strings.ToLower(filter.Platform))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	// Ordering
	orderCol := "created_at"
	if draftOrderColumns[filter.OrderBy] {
		orderCol = filter.OrderBy
	}
	if filter.OrderDesc {
		query = query.Order(orderCol + " DESC")
	} else {
		query = query.Order(orderCol + " ASC")
	}
	query = query.Order("id ASC")

	// Pagination
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

func (r *Repository) UpdateDraft(ctx context.Context, draft *models.Draft) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

func (r *Repository) DeleteDraft(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Draft{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetScheduledDrafts returns scheduled drafts due at or before the given time
func (r *Repository) GetScheduledDrafts(ctx context.Context, before time.Time) ([]*models.Draft, error) {
	var drafts []*models.Draft
	if err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_for <= ?", models.PlanStatusScheduled, before).
		Order("scheduled_for ASC").
		Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

var _ storage.Repository = (*Repository)(nil)
