// Package platform holds the static per-network publishing constraints.
package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ID identifies a social network
type ID string

const (
	LinkedIn  ID = "linkedin"
	Twitter   ID = "twitter"
	Instagram ID = "instagram"
)

// Default is used when a caller does not name a platform
const Default = LinkedIn

// DefaultTokenBudget applies to completions that are not tied to a platform
const DefaultTokenBudget = 400

// ErrUnknownPlatform is returned for identifiers outside the rule table
var ErrUnknownPlatform = errors.New("unknown platform")

// Range is an inclusive integer range
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether n lies within the range
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Spec describes the constraints of one platform. Values are immutable.
type Spec struct {
	ID              ID       `json:"platform"`
	MaxLength       int      `json:"max_length"`
	HashtagRange    Range    `json:"hashtag_range"`
	TokenBudget     int      `json:"token_budget"`
	StyleDescriptor string   `json:"style"`
	HashtagPolicy   string   `json:"hashtag_policy"`
	Structure       string   `json:"structure"`
	OptimalLength   Range    `json:"optimal_length"`
	Formats         []string `json:"formats"`
}

// String returns the platform identifier
func (s Spec) String() string { return string(s.ID) }

var rules = map[ID]Spec{
	LinkedIn: {
		ID:              LinkedIn,
		MaxLength:       3000,
		HashtagRange:    Range{Min: 3, Max: 5},
		TokenBudget:     600,
		StyleDescriptor: "Professional networking post with engaging hook, valuable insights, and call-to-action",
		HashtagPolicy:   "Use 3-5 relevant hashtags",
		Structure:       "Hook + Story/Insight + Value + CTA",
		OptimalLength:   Range{Min: 150, Max: 1500},
		Formats: []string{
			"story_insight",
			"list_tips",
			"question_engagement",
			"milestone_celebration",
			"industry_analysis",
			"personal_lesson",
		},
	},
	Twitter: {
		ID:              Twitter,
		MaxLength:       280,
		HashtagRange:    Range{Min: 1, Max: 3},
		TokenBudget:     100,
		StyleDescriptor: "Concise, engaging tweet with strong hook",
		HashtagPolicy:   "Use 1-3 hashtags",
		Structure:       "Hook + Value in minimal words",
		OptimalLength:   Range{Min: 100, Max: 250},
		Formats: []string{
			"quick_tip",
			"hot_take",
			"thread_starter",
			"question_poll",
			"quote_insight",
			"news_reaction",
		},
	},
	Instagram: {
		ID:              Instagram,
		MaxLength:       2200,
		HashtagRange:    Range{Min: 5, Max: 10},
		TokenBudget:     500,
		StyleDescriptor: "Visual-first caption with storytelling",
		HashtagPolicy:   "Use 5-10 hashtags",
		Structure:       "Story + Value + Engagement question",
		OptimalLength:   Range{Min: 125, Max: 1000},
		Formats: []string{
			"behind_scenes",
			"carousel_tips",
			"story_caption",
			"user_generated",
			"product_showcase",
			"lifestyle_content",
		},
	},
}

// All returns every known platform in a stable order
func All() []Spec {
	return []Spec{rules[LinkedIn], rules[Twitter], rules[Instagram]}
}

// Normalize lower-cases and trims a platform identifier
func Normalize(id string) ID {
	return ID(strings.ToLower(strings.TrimSpace(id)))
}

// Lookup returns the spec for id. Identifiers are matched case-insensitively.
func Lookup(id string) (Spec, error) {
	spec, ok := rules[Normalize(id)]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, id)
	}
	return spec, nil
}

// MustLookup is Lookup for identifiers known at compile time
func MustLookup(id ID) Spec {
	spec, err := Lookup(string(id))
	if err != nil {
		panic(err)
	}
	return spec
}

// Resolver turns caller-supplied identifiers into specs.
// An empty identifier always resolves to the default platform. Unknown
// identifiers fall back to the default unless Strict is set.
type Resolver struct {
	Strict   bool
	Fallback ID
}

// NewResolver creates a resolver. An empty fallback means LinkedIn.
func NewResolver(strict bool, fallback string) (Resolver, error) {
	r := Resolver{Strict: strict, Fallback: Default}
	if fallback != "" {
		spec, err := Lookup(fallback)
		if err != nil {
			return Resolver{}, err
		}
		r.Fallback = spec.ID
	}
	return r, nil
}

// Resolve returns the spec for id and whether the fallback was substituted
// for a non-empty unknown identifier.
func (r Resolver) Resolve(id string) (Spec, bool, error) {
	fallback := r.Fallback
	if fallback == "" {
		fallback = Default
	}
	if strings.TrimSpace(id) == "" {
		return rules[fallback], false, nil
	}

	spec, err := Lookup(id)
	if err == nil {
		return spec, false, nil
	}
	if r.Strict {
		return Spec{}, false, err
	}
	return rules[fallback], true, nil
}

// TokenBudget returns the completion budget for id, or DefaultTokenBudget
// when id is not a known platform
func TokenBudget(id string) int {
	if spec, err := Lookup(id); err == nil {
		return spec.TokenBudget
	}
	return DefaultTokenBudget
}
