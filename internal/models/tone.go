package models

import (
	"database/sql/driver"
	"encoding/json"
)

// Tone is a categorical writing-style label
type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneInspirational Tone = "inspirational"
	ToneEducational   Tone = "educational"
	ToneHumorous      Tone = "humorous"
	ToneAuthoritative Tone = "authoritative"
)

// Tones lists every tone in its fixed enumeration order. Ties between tone
// scores are broken by this order.
var Tones = []Tone{
	ToneProfessional,
	ToneCasual,
	ToneInspirational,
	ToneEducational,
	ToneHumorous,
	ToneAuthoritative,
}

// Valid reports whether t is one of the known tones
func (t Tone) Valid() bool {
	for _, known := range Tones {
		if t == known {
			return true
		}
	}
	return false
}

// AnalysisMethod records which path produced a tone profile
type AnalysisMethod string

const (
	AnalysisAI        AnalysisMethod = "ai"
	AnalysisRuleBased AnalysisMethod = "rule-based"
	AnalysisDefault   AnalysisMethod = "default"
)

// ToneProfile describes the writing voice detected in a body of text
type ToneProfile struct {
	PrimaryTone      Tone           `json:"primary_tone"`
	StyleElements    []string       `json:"style_elements"`
	VoiceDescription string         `json:"voice_description"`
	Confidence       float64        `json:"confidence"`
	AnalysisMethod   AnalysisMethod `json:"analysis_method"`
	Scores           map[Tone]int   `json:"scores,omitempty"`
}

func (p ToneProfile) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *ToneProfile) Scan(value interface{}) error {
	if value == nil {
		*p = ToneProfile{}
		return nil
	}
	b, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, p)
}
