// Package tone detects the writing voice of a body of text.
package tone

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/social-agent/internal/models"
)

type category struct {
	keywords        []string
	characteristics []string
	description     string
}

var categories = map[models.Tone]category{
	models.ToneProfessional: {
		keywords:        []string{"expertise", "industry", "insights", "strategy", "analysis"},
		characteristics: []string{"formal language", "industry jargon", "data-driven"},
		description:     "Uses formal language with industry expertise and data-driven insights",
	},
	models.ToneCasual: {
		keywords:        []string{"hey", "awesome", "cool", "fun", "easy"},
		characteristics: []string{"conversational", "informal", "friendly"},
		description:     "Conversational and approachable with friendly, informal communication",
	},
	models.ToneInspirational: {
		keywords:        []string{"believe", "achieve", "dream", "success", "motivation"},
		characteristics: []string{"uplifting", "encouraging", "aspirational"},
		description:     "Motivational and uplifting, encouraging others to achieve their goals",
	},
	models.ToneEducational: {
		keywords:        []string{"learn", "understand", "explain", "guide", "tutorial"},
		characteristics: []string{"informative", "structured", "helpful"},
		description:     "Clear and informative, focused on teaching and sharing knowledge",
	},
	models.ToneHumorous: {
		keywords:        []string{"funny", "joke", "laugh", "hilarious", "amusing"},
		characteristics: []string{"witty", "entertaining", "light-hearted"},
		description:     "Entertaining and witty, using humor to engage the audience",
	},
	models.ToneAuthoritative: {
		keywords:        []string{"research", "proven", "evidence", "study", "expert"},
		characteristics: []string{"confident", "credible", "fact-based"},
		description:     "Confident and credible, backed by research and expertise",
	},
}

const maxRuleConfidence = 0.8

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// DefaultProfile is returned for empty input
func DefaultProfile() models.ToneProfile {
	return models.ToneProfile{
		PrimaryTone:      models.ToneProfessional,
		StyleElements:    []string{"formal language", "industry focus", "structured content"},
		VoiceDescription: "Professional and informative communication style",
		Confidence:       0.5,
		AnalysisMethod:   models.AnalysisDefault,
	}
}

// Characteristics returns the canned style elements of a tone
func Characteristics(t models.Tone) []string {
	c, ok := categories[t]
	if !ok {
		return nil
	}
	return append([]string(nil), c.characteristics...)
}

// Classify scores text against the keyword sets and writing-pattern
// heuristics. It is deterministic.
func Classify(text string) models.ToneProfile {
	if strings.TrimSpace(text) == "" {
		return DefaultProfile()
	}

	words := strings.Fields(strings.ToLower(text))
	scores := make(map[models.Tone]int, len(models.Tones))
	for _, t := range models.Tones {
		scores[t] = 0
	}

	for _, word := range words {
		for _, t := range models.Tones {
			for _, keyword := range categories[t].keywords {
				if strings.Contains(word, keyword) {
					scores[t]++
					break
				}
			}
		}
	}

	sentences := countSentences(text)
	avgSentenceLength := float64(len(words)) / float64(sentences)
	exclamations := strings.Count(text, "!")
	questions := strings.Count(text, "?")

	if avgSentenceLength > 20 {
		scores[models.ToneProfessional] += 2
		scores[models.ToneAuthoritative]++
	} else if avgSentenceLength < 10 {
		scores[models.ToneCasual] += 2
	}

	if float64(exclamations) > float64(sentences)*0.2 {
		scores[models.ToneInspirational] += 2
		scores[models.ToneHumorous]++
	}

	if float64(questions) > float64(sentences)*0.1 {
		scores[models.ToneEducational]++
		scores[models.ToneCasual]++
	}

	ranked := rank(scores)
	dominant := ranked[0]
	confidence := math.Min(maxRuleConfidence, float64(scores[dominant])/float64(len(words))*10)

	return models.ToneProfile{
		PrimaryTone:      dominant,
		StyleElements:    Characteristics(dominant),
		VoiceDescription: voiceDescription(ranked, scores),
		Confidence:       confidence,
		AnalysisMethod:   models.AnalysisRuleBased,
		Scores:           scores,
	}
}

// countSentences counts every fragment between runs of terminal
// punctuation, including the empty fragment after a trailing '.', '!' or '?'.
// Readability scoring drops empty fragments; tone scoring does not.
func countSentences(text string) int {
	return len(sentenceSplit.Split(text, -1))
}

// rank orders tones by descending score; ties keep enumeration order
func rank(scores map[models.Tone]int) []models.Tone {
	ranked := append([]models.Tone(nil), models.Tones...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

func voiceDescription(ranked []models.Tone, scores map[models.Tone]int) string {
	description := categories[ranked[0]].description

	var secondary []string
	for _, t := range ranked[1:] {
		if len(secondary) == 2 {
			break
		}
		if scores[t] > 0 {
			secondary = append(secondary, string(t))
		}
	}

	if len(secondary) > 0 {
		description += " with elements of " + strings.Join(secondary, " and ") + " communication"
	}
	return description
}
