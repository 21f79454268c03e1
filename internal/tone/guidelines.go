package tone

import "github.com/social-agent/internal/models"

// Guidelines lists writing rules for a tone
type Guidelines struct {
	Dos   []string `json:"dos"`
	Donts []string `json:"donts"`
}

var guidelines = map[models.Tone]Guidelines{
	models.ToneProfessional: {
		Dos: []string{
			"Use industry-specific terminology appropriately",
			"Include data and insights to support points",
			"Maintain formal but approachable language",
			"Structure content with clear sections",
		},
		Donts: []string{
			"Avoid overly casual expressions",
			"Don't use excessive emojis",
			"Avoid unsubstantiated claims",
			"Don't use slang or colloquialisms",
		},
	},
	models.ToneCasual: {
		Dos: []string{
			"Use conversational language",
			"Include personal anecdotes",
			"Ask questions to engage audience",
			"Use emojis and casual expressions",
		},
		Donts: []string{
			"Avoid overly formal language",
			"Don't be too corporate",
			"Avoid complex jargon",
			"Don't sound robotic",
		},
	},
	models.ToneInspirational: {
		Dos: []string{
			"Share personal growth stories",
			"Use motivational language",
			"Include calls to action",
			"Focus on positive outcomes",
		},
		Donts: []string{
			"Avoid negative or pessimistic content",
			"Don't be preachy",
			"Avoid generic motivational quotes",
			"Don't ignore real challenges",
		},
	},
}

// GuidelinesFor returns the rules for t. Tones without their own rules get
// the professional ones.
func GuidelinesFor(t models.Tone) Guidelines {
	if g, ok := guidelines[t]; ok {
		return g
	}
	return guidelines[models.ToneProfessional]
}
