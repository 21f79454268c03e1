package ai

// Tone analysis prompts
const (
	ToneAnalysisSystemPrompt = `Analyze the tone and writing style of the provided text.

Classify the primary tone as exactly one of: professional, casual, inspirational, educational, humorous, authoritative.

Respond ONLY with valid JSON. No markdown, no explanation, just the JSON object:
{
  "tone": "<primary tone>",
  "style_elements": ["<list>", "<of>", "<style>", "<characteristics>"],
  "voice_description": "<brief description of the writing voice>",
  "confidence": <0.0-1.0>
}`

	ToneAnalysisMaxTokens = 300

	ToneAdaptationUserPrompt = `Adapt the following content to match a %s tone while maintaining the core message:

Original content: "%s"

User's typical style: %s

Make the content sound %s while keeping it authentic and valuable.`

	ToneAdaptationMaxTokens = 400
)

// Content idea prompts
const (
	IdeasSystemPrompt = `Generate %d content ideas for someone in the %s niche with goals: %s.

Respond ONLY with a valid JSON array. No markdown, no explanation. Each element:
{
  "title": "<content idea title>",
  "description": "<brief description>",
  "platform": "<best platform for this content: linkedin, twitter or instagram>",
  "hook": "<suggested opening hook>",
  "cta": "<suggested call to action>"
}`

	IdeasUserPrompt = `Generate content ideas for %s focusing on %s`

	IdeasMaxTokens = 800
)

// Hashtag suggestion prompts
const (
	HashtagSuggestionUserPrompt = `Generate %d relevant hashtags for this %s post: "%s". Return only the hashtags, separated by spaces.`

	HashtagSuggestionMaxTokens = 100
)

// Content rewrite prompts
const (
	ImprovementUserPrompt = `%s

Original content: "%s"

User's typical style: %s`

	ImprovementMaxTokens = 500

	DefaultVoice = "Professional communication"
)

// Health check
const (
	HealthCheckPrompt    = "Test"
	HealthCheckMaxTokens = 10
)

// Topic ranking
const (
	TopicRankingSystemPrompt = `You rank news topics by how well they would work as social media posts for a creator in the %s niche.
Score each topic from 0 to 10:
- 9-10: Directly relevant and timely, strong discussion potential
- 6-8: Relevant with a clear angle for the niche
- 3-5: Loosely related, needs a stretch to fit
- 0-2: Off-topic or purely promotional

Respond with JSON only: {"rankings": [{"index": 0, "score": 7.5, "angle": "one sentence angle"}]}`

	TopicRankingUserPrompt = `Rank these topics:
%s`

	TopicRankingMaxTokens = 1000
)
