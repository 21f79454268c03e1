package models

import (
	"time"
)

// GenerationMetadata describes a generated post
type GenerationMetadata struct {
	Platform            string `json:"platform"`
	Tone                string `json:"tone"`
	Format              string `json:"format"`
	WordCount           int    `json:"word_count"`
	CharacterCount      int    `json:"character_count"`
	EstimatedEngagement int    `json:"estimated_engagement"`
}

// GenerationResult is a successfully generated and post-processed post
type GenerationResult struct {
	Content  string             `json:"content"`
	Metadata GenerationMetadata `json:"metadata"`
}

// PlanStatus is the lifecycle state of a content plan entry
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusScheduled PlanStatus = "scheduled"
	PlanStatusPublished PlanStatus = "published"
)

// PlanEntry is one generated post of a scheduled content plan
type PlanEntry struct {
	PlanID       string             `json:"plan_id"`
	Platform     string             `json:"platform"`
	Topic        string             `json:"topic"`
	Content      string             `json:"content"`
	Metadata     GenerationMetadata `json:"metadata"`
	ScheduledFor time.Time          `json:"scheduled_for"`
	Status       PlanStatus         `json:"status"`
}

// PlanSummary counts what a plan run covered
type PlanSummary struct {
	TotalPosts int `json:"total_posts"`
	Platforms  int `json:"platforms"`
	Topics     int `json:"topics"`
	Failed     int `json:"failed"`
}

// ContentPlan is the ordered output of a scheduled-content batch
type ContentPlan struct {
	ID      string      `json:"id"`
	Entries []PlanEntry `json:"content_plan"`
	Summary PlanSummary `json:"summary"`
}

// ContentIdea is a suggested post idea
type ContentIdea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
	Hook        string `json:"hook"`
	CTA         string `json:"cta"`
}

// RawTopic represents a topic fetched from a source before it is planned
type RawTopic struct {
	Title       string
	Description string
	URL         string
	SourceType  string
	SourceName  string
	Keywords    []string
	PublishedAt time.Time
}

// GenerationRequest is a single content generation ask
type GenerationRequest struct {
	Prompt       string   `json:"prompt"`
	Platform     string   `json:"platform"`
	Tone         string   `json:"tone"`
	Format       string   `json:"format,omitempty"`
	Niche        string   `json:"niche,omitempty"`
	ContentGoals []string `json:"content_goals,omitempty"`
}
