package tone

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/social-agent/internal/models"
)

func TestClassify_DefaultProfile(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t  \n"} {
		profile := Classify(input)
		assert.Equal(t, models.ToneProfessional, profile.PrimaryTone)
		assert.Equal(t, 0.5, profile.Confidence)
		assert.Equal(t, models.AnalysisDefault, profile.AnalysisMethod)
		assert.Nil(t, profile.Scores)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		tone       models.Tone
		confidence float64
		voice      string
	}{
		{
			name:       "exclamation heavy casual",
			text:       "Hey! This is so fun and easy, check it out!!!",
			tone:       models.ToneCasual,
			confidence: 0.8,
			voice:      "Conversational and approachable with friendly, informal communication with elements of inspirational and humorous communication",
		},
		{
			name:       "long professional sentence",
			text:       "Our industry analysis shows that a data strategy built on deep expertise and shared insights is the foundation every team needs to grow over the coming years.",
			tone:       models.ToneProfessional,
			confidence: 0.8,
			voice:      "Uses formal language with industry expertise and data-driven insights with elements of authoritative communication",
		},
		{
			name:       "long professional sentence without terminal punctuation",
			text:       "Our industry analysis shows that a data strategy built on deep expertise and shared insights is the foundation every team needs to grow over the coming years",
			tone:       models.ToneProfessional,
			confidence: 0.8,
			voice:      "Uses formal language with industry expertise and data-driven insights with elements of authoritative communication",
		},
		{
			name:       "exclamation ratio on the threshold",
			text:       "Great work! We did it. Thanks team. See you.",
			tone:       models.ToneCasual,
			confidence: 0.8,
			voice:      "Conversational and approachable with friendly, informal communication",
		},
		{
			name:       "questions favour educational",
			text:       "What do you want to learn? How do we explain it? Why guide?",
			tone:       models.ToneEducational,
			confidence: 0.8,
			voice:      "Clear and informative, focused on teaching and sharing knowledge with elements of casual communication",
		},
		{
			name:       "no signal falls back to first tone",
			text:       "the cat sat on the mat and then it went home to rest for a while",
			tone:       models.ToneProfessional,
			confidence: 0,
			voice:      "Uses formal language with industry expertise and data-driven insights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := Classify(tt.text)
			assert.Equal(t, tt.tone, profile.PrimaryTone)
			assert.InDelta(t, tt.confidence, profile.Confidence, 1e-9)
			assert.Equal(t, tt.voice, profile.VoiceDescription)
			assert.Equal(t, models.AnalysisRuleBased, profile.AnalysisMethod)
			assert.Equal(t, Characteristics(tt.tone), profile.StyleElements)
			assert.Len(t, profile.Scores, len(models.Tones))
		})
	}
}

func TestClassify_Scores(t *testing.T) {
	profile := Classify("Hey! This is so fun and easy, check it out!!!")

	assert.Equal(t, map[models.Tone]int{
		models.ToneProfessional:  0,
		models.ToneCasual:        5,
		models.ToneInspirational: 2,
		models.ToneEducational:   0,
		models.ToneHumorous:      1,
		models.ToneAuthoritative: 0,
	}, profile.Scores)
}

func TestClassify_TrailingPunctuationCountsAsSentence(t *testing.T) {
	profile := Classify("Great work! We did it. Thanks team. See you.")

	assert.Equal(t, map[models.Tone]int{
		models.ToneProfessional:  0,
		models.ToneCasual:        2,
		models.ToneInspirational: 0,
		models.ToneEducational:   0,
		models.ToneHumorous:      0,
		models.ToneAuthoritative: 0,
	}, profile.Scores)

	long := "Our industry analysis shows that a data strategy built on deep expertise and shared insights is the foundation every team needs to grow over the coming years"
	assert.Equal(t, 7, Classify(long).Scores[models.ToneProfessional])
	assert.Equal(t, 2, Classify(long).Scores[models.ToneAuthoritative])
	assert.Equal(t, 5, Classify(long+".").Scores[models.ToneProfessional])
	assert.Equal(t, 1, Classify(long+".").Scores[models.ToneAuthoritative])
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{text: "no punctuation at all", want: 1},
		{text: "One. Two", want: 2},
		{text: "One. Two.", want: 3},
		{text: "Wait!!! Really?!", want: 3},
		{text: "!leading", want: 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, countSentences(tt.text), tt.text)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	text := "Research and evidence prove it. Believe in the study! Learn, laugh, and have fun?"
	first := Classify(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestClassify_ConfidenceCapped(t *testing.T) {
	profile := Classify("research research research")
	assert.Equal(t, models.ToneAuthoritative, profile.PrimaryTone)
	assert.LessOrEqual(t, profile.Confidence, 0.8)
}

func TestGuidelinesFor(t *testing.T) {
	assert.Contains(t, GuidelinesFor(models.ToneCasual).Dos, "Use conversational language")
	assert.Equal(t, GuidelinesFor(models.ToneProfessional), GuidelinesFor(models.ToneHumorous))
	assert.Len(t, GuidelinesFor(models.ToneInspirational).Donts, 4)
}
