// Package content turns a generation request into prompts and shapes raw
// completions into platform-ready posts.
package content

import (
	"fmt"
	"strings"

	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/platform"
)

// GenericFormatGuidance is used when no format is given or the format is
// missing from the guidance table
const GenericFormatGuidance = "Create engaging content in your preferred format"

var formatGuidance = map[string]string{
	"story_insight":         "Start with a personal story, then extract a valuable insight or lesson",
	"list_tips":             "Create a numbered list of actionable tips or strategies",
	"question_engagement":   "Pose a thought-provoking question to encourage discussion",
	"milestone_celebration": "Share an achievement and the journey behind it",
	"industry_analysis":     "Provide expert analysis on industry trends or news",
	"personal_lesson":       "Share a personal learning experience and its broader application",
	"quick_tip":             "Share one actionable tip in a concise format",
	"hot_take":              "Express a bold opinion on a trending topic",
	"thread_starter":        "Create the first tweet of a potential thread",
	"question_poll":         "Ask an engaging question suitable for a poll",
	"quote_insight":         "Share an insightful quote with personal commentary",
	"news_reaction":         "React to recent news with your perspective",
}

var goalGuidance = map[string]string{
	"Brand Awareness":    "Focus on showcasing your brand personality, values, and what makes you unique",
	"Lead Generation":    "Include a clear value proposition and compelling call-to-action",
	"Thought Leadership": "Share unique insights, predictions, or expert analysis",
	"Community Building": "Encourage interaction, ask questions, and foster discussion",
	"Product Promotion":  "Highlight benefits and real-world applications without being overly salesy",
}

// FormatGuidance returns the writing instruction for a post format
func FormatGuidance(format string) string {
	if g, ok := formatGuidance[format]; ok {
		return g
	}
	return GenericFormatGuidance
}

// GoalGuidance returns the strategy line for a content goal. Goals are
// matched exactly.
func GoalGuidance(goal string) (string, bool) {
	g, ok := goalGuidance[goal]
	return g, ok
}

// Compose builds the user prompt for a generation request. The niche comes
// from the request and falls back to the profile; the voice line uses the
// profile. toneGuidance is the tone label written into the closing lines.
func Compose(req models.GenerationRequest, profile *models.UserProfile, spec platform.Spec, toneGuidance string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %s post about: %s\n\n", spec.ID, req.Prompt)

	niche := req.Niche
	if niche == "" && profile != nil {
		niche = profile.Niche
	}
	if niche != "" {
		fmt.Fprintf(&b, "Industry/Niche: %s\n", niche)
	}

	if len(req.ContentGoals) > 0 {
		fmt.Fprintf(&b, "Content Goals: %s\n", strings.Join(req.ContentGoals, ", "))
	}

	if voice := profile.Voice(); voice != "" {
		fmt.Fprintf(&b, "Writing Style: %s\n", voice)
	}

	fmt.Fprintf(&b, "Format: %s\n", FormatGuidance(req.Format))

	fmt.Fprintf(&b, "\nPlatform Requirements:\n- Maximum %d characters\n- Include %d-%d relevant hashtags\n- Optimize for %s engagement patterns\n",
		spec.MaxLength, spec.HashtagRange.Min, spec.HashtagRange.Max, spec.ID)

	if len(req.ContentGoals) > 0 {
		if g, ok := GoalGuidance(req.ContentGoals[0]); ok {
			fmt.Fprintf(&b, "\nContent Strategy: %s\n", g)
		}
	}

	fmt.Fprintf(&b, "\nTone: %s\nMake it engaging, authentic, and valuable to the target audience.", toneGuidance)

	return b.String()
}

// SystemPrompt returns the system-level instructions for a platform and tone
func SystemPrompt(spec platform.Spec, tone string) string {
	return fmt.Sprintf(`You are an expert social media content creator specializing in %[1]s posts.

PLATFORM: %[2]s
TONE: %[3]s
MAX LENGTH: %[4]d characters
STYLE: %[5]s
HASHTAGS: %[6]s
FORMAT: %[7]s

Create engaging, %[3]s content that:
1. Starts with a compelling hook
2. Provides genuine value to the audience
3. Matches the specified tone perfectly
4. Follows %[1]s best practices
5. Includes appropriate hashtags
6. Encourages engagement

Keep the content authentic, actionable, and platform-optimized.`,
		spec.ID, strings.ToUpper(string(spec.ID)), tone, spec.MaxLength,
		spec.StyleDescriptor, spec.HashtagPolicy, spec.Structure)
}
