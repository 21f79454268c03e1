package models

import (
	"time"
)

// PostFrequency is how often a user wants to publish
type PostFrequency string

const (
	FrequencyDaily    PostFrequency = "daily"
	FrequencyWeekly   PostFrequency = "weekly"
	FrequencyBiweekly PostFrequency = "biweekly"
	FrequencyMonthly  PostFrequency = "monthly"
)

// Days returns the scheduling offset for the frequency. Unrecognized values
// mean weekly.
func (f PostFrequency) Days() int {
	switch f {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencyMonthly:
		return 30
	default:
		return 7
	}
}

// UserProfile is the per-user context that shapes generated content
type UserProfile struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	UserID           string        `gorm:"uniqueIndex;not null" json:"user_id"`
	Niche            string        `json:"niche"`
	Goals            StringSlice   `gorm:"type:json" json:"goals"` // ordered; the first goal drives strategy guidance
	VoiceDescription string        `gorm:"type:text" json:"voice_description"`
	PreferredTone    Tone          `gorm:"default:'professional'" json:"preferred_tone"`
	Platforms        StringSlice   `gorm:"type:json" json:"platforms"`
	PostFrequency    PostFrequency `gorm:"default:'weekly'" json:"post_frequency"`
	ToneProfile      ToneProfile   `gorm:"type:json" json:"tone_profile"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// Voice returns the explicit voice description, or the one detected by tone
// analysis when none was set
func (p *UserProfile) Voice() string {
	if p == nil {
		return ""
	}
	if p.VoiceDescription != "" {
		return p.VoiceDescription
	}
	return p.ToneProfile.VoiceDescription
}

// Tone returns the preferred tone, defaulting to professional
func (p *UserProfile) Tone() Tone {
	if p == nil || p.PreferredTone == "" {
		return ToneProfessional
	}
	return p.PreferredTone
}

// ApplyToneProfile attaches a tone analysis result to the profile
func (p *UserProfile) ApplyToneProfile(tp ToneProfile) {
	p.ToneProfile = tp
	if p.PreferredTone == "" && tp.PrimaryTone.Valid() {
		p.PreferredTone = tp.PrimaryTone
	}
}
