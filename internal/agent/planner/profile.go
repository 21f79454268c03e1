package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/social-agent/internal/config"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/storage"
)

// ProfileFromConfig builds the profile described by the configuration
func ProfileFromConfig(cfg config.ProfileConfig) *models.UserProfile {
	return &models.UserProfile{
		UserID:           cfg.UserID,
		Niche:            cfg.Niche,
		Goals:            models.StringSlice(cfg.Goals),
		VoiceDescription: cfg.VoiceDescription,
		PreferredTone:    models.Tone(cfg.Tone),
		Platforms:        models.StringSlice(cfg.Platforms),
		PostFrequency:    models.PostFrequency(cfg.PostFrequency),
	}
}

// EnsureProfile returns the stored profile for the configured user, saving
// the configured one first when none exists yet
func EnsureProfile(ctx context.Context, repo storage.Repository, cfg config.ProfileConfig) (*models.UserProfile, error) {
	profile, err := repo.GetProfile(ctx, cfg.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile = ProfileFromConfig(cfg)
	if err := repo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}
