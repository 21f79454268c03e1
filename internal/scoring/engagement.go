// Package scoring holds the heuristic quality signals computed for a post.
// None of the scores are predictions; they rank drafts against each other.
package scoring

import (
	"strings"

	"github.com/social-agent/internal/platform"
)

const (
	questionPoints     = 10
	emojiPoints        = 5
	maxEmojiPoints     = 25
	ctaPoints          = 15
	professionalPoints = 10
)

var ctaPhrases = []string{"comment", "share", "like", "follow", "subscribe", "join", "download", "learn more"}

var professionalTerms = []string{"insight", "strategy", "leadership", "growth", "innovation"}

// emoji blocks: emoticons, symbols and pictographs, transport, flags
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
}

// EstimateEngagement scores content from 0 to 100 by adding points for
// questions, emojis, calls to action and, on LinkedIn, professional terms.
func EstimateEngagement(content string, id platform.ID) int {
	score := strings.Count(content, "?") * questionPoints
	score += min(countEmoji(content)*emojiPoints, maxEmojiPoints)

	lower := strings.ToLower(content)
	score += countContained(lower, ctaPhrases) * ctaPoints
	if platform.Normalize(string(id)) == platform.LinkedIn {
		score += countContained(lower, professionalTerms) * professionalPoints
	}

	return max(0, min(score, 100))
}

func countEmoji(s string) int {
	n := 0
	for _, r := range s {
		for _, rng := range emojiRanges {
			if r >= rng[0] && r <= rng[1] {
				n++
				break
			}
		}
	}
	return n
}

func countContained(s string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(s, p) {
			n++
		}
	}
	return n
}
