package content

import (
	"math/rand/v2"
	"strings"

	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/platform"
)

// Template is a reusable post skeleton with bracketed placeholders
type Template struct {
	Name      string      `json:"name"`
	Platform  platform.ID `json:"platform"`
	Structure string      `json:"structure"`
	Example   string      `json:"example"`
	Keywords  []string    `json:"-"`
}

var templates = []Template{
	{
		Name:      "Startup Update",
		Platform:  platform.LinkedIn,
		Structure: "🚀 [Milestone/Update]\n\n[Story/Context]\n\n💡 Key learnings:\n• [Learning 1]\n• [Learning 2]\n• [Learning 3]\n\n[Call to action]\n\n#StartupLife #Entrepreneurship #Growth",
		Example:   "🚀 Just hit 1000 users!\n\nSix months ago, this was just an idea scribbled on a napkin...\n\n💡 Key learnings:\n• Validation beats perfection\n• Community feedback is gold\n• Persistence pays off\n\nWhat milestone are you working toward?\n\n#StartupLife #Entrepreneurship #Growth",
		Keywords:  []string{"startup", "milestone", "launch", "growth", "update", "achievement"},
	},
	{
		Name:      "Leadership Tip",
		Platform:  platform.LinkedIn,
		Structure: "Leadership isn't about [common misconception].\n\nIt's about [real truth].\n\n[Personal story or example]\n\n[Actionable advice]\n\nWhat's your take on leadership?\n\n#Leadership #Management #Growth",
		Example:   "Leadership isn't about having all the answers.\n\nIt's about asking the right questions.\n\nLast week, instead of solving a team conflict myself, I asked: 'What would success look like for everyone involved?'\n\nThe team found their own solution in 20 minutes.\n\nSometimes the best leaders just facilitate the conversation.\n\nWhat's your take on leadership?\n\n#Leadership #Management #Growth",
		Keywords:  []string{"leadership", "management", "team", "advice", "tip", "guide"},
	},
	{
		Name:      "Quick Tip",
		Platform:  platform.Twitter,
		Structure: "💡 [Industry] tip:\n\n[Actionable advice in 1-2 sentences]\n\n[Optional: Why it works]\n\n#[RelevantHashtag]",
		Example:   "💡 Marketing tip:\n\nStop selling features. Start selling transformations.\n\nPeople don't buy a drill. They buy the hole.\n\n#Marketing",
		Keywords:  []string{"tip", "advice", "how to", "guide", "hack"},
	},
	{
		Name:      "Hot Take",
		Platform:  platform.Twitter,
		Structure: "Hot take: [Controversial but thoughtful opinion]\n\n[Brief explanation]\n\n[Question to engage audience]\n\n#[RelevantHashtag]",
		Example:   "Hot take: Most 'productivity hacks' make you less productive.\n\nThey create the illusion of progress while distracting from deep work.\n\nWhat's one productivity tip you've abandoned?\n\n#Productivity",
		Keywords:  []string{"opinion", "controversial", "unpopular", "debate", "think"},
	},
}

var hooks = []string{
	"Here's what nobody tells you about...",
	"I made a $10K mistake so you don't have to:",
	"Plot twist:",
	"Unpopular opinion:",
	"3 years ago, I thought... Today, I know...",
	"The best advice I never took:",
	"What I wish I knew at 25:",
	"This changed everything:",
}

var ctas = []string{
	"What's your experience with this?",
	"Agree or disagree?",
	"What would you add to this list?",
	"Share your thoughts below 👇",
	"Tag someone who needs to see this",
	"What's your take?",
	"Have you tried this approach?",
	"What's worked for you?",
}

// Templates returns the templates available for a platform
func Templates(id platform.ID) []Template {
	var out []Template
	for _, t := range templates {
		if t.Platform == id {
			out = append(out, t)
		}
	}
	return out
}

// IsRelevant reports whether input mentions any of the template keywords
func (t Template) IsRelevant(input string) bool {
	input = strings.ToLower(input)
	for _, kw := range t.Keywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}

// Adapt fills the placeholders the template can infer from the input and
// profile. Others are left for the author.
func (t Template) Adapt(input string, profile *models.UserProfile) string {
	industry := "your industry"
	if profile != nil && profile.Niche != "" {
		industry = profile.Niche
	}
	return strings.NewReplacer(
		"[Industry]", industry,
		"[Milestone/Update]", input,
		"[Story/Context]", "Here's the story...",
	).Replace(t.Structure)
}

// RandomHook returns an opening line from the booster list
func RandomHook() string {
	return hooks[rand.IntN(len(hooks))]
}

// RandomCTA returns a closing call to action from the booster list
func RandomCTA() string {
	return ctas[rand.IntN(len(ctas))]
}
