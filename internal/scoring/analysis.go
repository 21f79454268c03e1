package scoring

import (
	"fmt"
	"unicode/utf8"

	"github.com/social-agent/internal/content"
	"github.com/social-agent/internal/platform"
)

// LengthStatus classifies a post length against its platform
type LengthStatus string

const (
	LengthTooShort     LengthStatus = "too_short"
	LengthOptimal      LengthStatus = "optimal"
	LengthTooLong      LengthStatus = "too_long"
	LengthExceedsLimit LengthStatus = "exceeds_limit"
)

// HashtagStatus classifies a hashtag count against its platform
type HashtagStatus string

const (
	HashtagsTooFew  HashtagStatus = "too_few"
	HashtagsOptimal HashtagStatus = "optimal"
	HashtagsTooMany HashtagStatus = "too_many"
)

// Priority ranks a recommendation
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// LengthAnalysis compares a post length to the platform limits
type LengthAnalysis struct {
	CurrentLength         int            `json:"current_length"`
	OptimalRange          platform.Range `json:"optimal_range"`
	MaxLength             int            `json:"max_length"`
	Status                LengthStatus   `json:"status"`
	UtilizationPercentage float64        `json:"utilization_percentage"`
}

// HashtagAnalysis compares the hashtags of a post to the platform range
type HashtagAnalysis struct {
	Count        int            `json:"count"`
	Hashtags     []string       `json:"hashtags"`
	OptimalRange platform.Range `json:"optimal_range"`
	Status       HashtagStatus  `json:"status"`
}

// Analysis bundles the heuristic signals of one post
type Analysis struct {
	ReadabilityScore    int             `json:"readability_score"`
	EngagementPotential int             `json:"engagement_potential"`
	Length              LengthAnalysis  `json:"length_analysis"`
	Hashtags            HashtagAnalysis `json:"hashtag_analysis"`
}

// Recommendation is an actionable hint derived from an Analysis
type Recommendation struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
}

const (
	minReadability = 70
	minEngagement  = 50
)

// specFor resolves id leniently; analysis never rejects a platform
func specFor(id string) platform.Spec {
	if spec, err := platform.Lookup(id); err == nil {
		return spec
	}
	return platform.MustLookup(platform.Default)
}

// AnalyzeLength reports how the length of c fits the platform
func AnalyzeLength(c string, id string) LengthAnalysis {
	spec := specFor(id)
	n := utf8.RuneCountInString(c)

	status := LengthOptimal
	switch {
	case n > spec.MaxLength:
		status = LengthExceedsLimit
	case n < spec.OptimalLength.Min:
		status = LengthTooShort
	case n > spec.OptimalLength.Max:
		status = LengthTooLong
	}

	return LengthAnalysis{
		CurrentLength:         n,
		OptimalRange:          spec.OptimalLength,
		MaxLength:             spec.MaxLength,
		Status:                status,
		UtilizationPercentage: float64(n) / float64(spec.MaxLength) * 100,
	}
}

// AnalyzeHashtags reports how the hashtags of c fit the platform
func AnalyzeHashtags(c string, id string) HashtagAnalysis {
	spec := specFor(id)
	tags := content.ExtractHashtags(c)
	if tags == nil {
		tags = []string{}
	}

	status := HashtagsOptimal
	switch {
	case len(tags) < spec.HashtagRange.Min:
		status = HashtagsTooFew
	case len(tags) > spec.HashtagRange.Max:
		status = HashtagsTooMany
	}

	return HashtagAnalysis{
		Count:        len(tags),
		Hashtags:     tags,
		OptimalRange: spec.HashtagRange,
		Status:       status,
	}
}

// Analyze computes every heuristic signal for c
func Analyze(c string, id string) Analysis {
	spec := specFor(id)
	return Analysis{
		ReadabilityScore:    Readability(c),
		EngagementPotential: EstimateEngagement(c, spec.ID),
		Length:              AnalyzeLength(c, string(spec.ID)),
		Hashtags:            AnalyzeHashtags(c, string(spec.ID)),
	}
}

// Recommend turns weak signals into recommendations
func Recommend(a Analysis) []Recommendation {
	recs := []Recommendation{}

	if a.ReadabilityScore < minReadability {
		recs = append(recs, Recommendation{
			Type:     "readability",
			Message:  "Consider using shorter sentences and simpler words to improve readability",
			Priority: PriorityMedium,
		})
	}
	if a.EngagementPotential < minEngagement {
		recs = append(recs, Recommendation{
			Type:     "engagement",
			Message:  "Add questions or calls-to-action to increase engagement potential",
			Priority: PriorityHigh,
		})
	}
	if a.Length.Status == LengthTooShort {
		recs = append(recs, Recommendation{
			Type:     "length",
			Message:  "Content might be too short. Consider adding more value or context",
			Priority: PriorityMedium,
		})
	}
	if a.Hashtags.Status == HashtagsTooFew {
		recs = append(recs, Recommendation{
			Type:     "hashtags",
			Message:  fmt.Sprintf("Add %d more hashtags for better discoverability", a.Hashtags.OptimalRange.Min-a.Hashtags.Count),
			Priority: PriorityLow,
		})
	}

	return recs
}
