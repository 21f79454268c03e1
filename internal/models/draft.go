package models

import (
	"time"
)

// Draft is a stored post belonging to a user
type Draft struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       string     `gorm:"index;not null" json:"user_id"`
	PlanID       string     `gorm:"index" json:"plan_id"` // empty for one-off generations
	Platform     string     `gorm:"size:20;not null" json:"platform"`
	Topic        string     `gorm:"type:text" json:"topic"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	Metadata     JSON       `gorm:"type:json" json:"metadata"`
	Status       PlanStatus `gorm:"size:20;default:'draft'" json:"status"`
	ScheduledFor *time.Time `gorm:"index" json:"scheduled_for"`
	PublishedAt  *time.Time `json:"published_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// MetadataJSON flattens generation metadata for storage
func MetadataJSON(m GenerationMetadata) JSON {
	return JSON{
		"platform":             m.Platform,
		"tone":                 m.Tone,
		"format":               m.Format,
		"word_count":           m.WordCount,
		"character_count":      m.CharacterCount,
		"estimated_engagement": m.EstimatedEngagement,
	}
}

// DraftFromResult builds an unsaved draft from a generation result
func DraftFromResult(userID, topic string, res *GenerationResult) *Draft {
	return &Draft{
		UserID:   userID,
		Platform: res.Metadata.Platform,
		Topic:    topic,
		Content:  res.Content,
		Metadata: MetadataJSON(res.Metadata),
		Status:   PlanStatusDraft,
	}
}

// DraftFromPlanEntry builds an unsaved draft from a content plan entry
func DraftFromPlanEntry(userID string, e PlanEntry) *Draft {
	scheduledFor := e.ScheduledFor
	status := e.Status
	if status == "" {
		status = PlanStatusDraft
	}
	return &Draft{
		UserID:       userID,
		PlanID:       e.PlanID,
		Platform:     e.Platform,
		Topic:        e.Topic,
		Content:      e.Content,
		Metadata:     MetadataJSON(e.Metadata),
		Status:       status,
		ScheduledFor: &scheduledFor,
	}
}

// CanSchedule reports whether the draft may still be scheduled
func (d *Draft) CanSchedule() bool {
	return d.Status != PlanStatusPublished
}
