package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/platform"
)

func TestTemplates(t *testing.T) {
	assert.Len(t, Templates(platform.LinkedIn), 2)
	assert.Len(t, Templates(platform.Twitter), 2)
	assert.Empty(t, Templates(platform.Instagram))
}

func TestTemplate_IsRelevant(t *testing.T) {
	byName := map[string]Template{}
	for _, spec := range platform.All() {
		for _, tpl := range Templates(spec.ID) {
			byName[tpl.Name] = tpl
		}
	}

	tests := []struct {
		template string
		input    string
		want     bool
	}{
		{"Startup Update", "We just had our product LAUNCH", true},
		{"Startup Update", "thoughts on remote work", false},
		{"Leadership Tip", "how I run my team", true},
		{"Quick Tip", "How to write better commits", true},
		{"Hot Take", "an unpopular view", true},
		{"Hot Take", "weekend recap", false},
	}

	for _, tt := range tests {
		t.Run(tt.template+"/"+tt.input, func(t *testing.T) {
			tpl, ok := byName[tt.template]
			require.True(t, ok)
			assert.Equal(t, tt.want, tpl.IsRelevant(tt.input))
		})
	}
}

func TestTemplate_Adapt(t *testing.T) {
	startup := Templates(platform.LinkedIn)[0]
	got := startup.Adapt("We crossed 1M ARR", nil)
	assert.Contains(t, got, "🚀 We crossed 1M ARR\n\nHere's the story...")
	assert.Contains(t, got, "[Learning 1]")

	quickTip := Templates(platform.Twitter)[0]
	assert.Contains(t, quickTip.Adapt("x", nil), "💡 your industry tip:")
	assert.Contains(t, quickTip.Adapt("x", &models.UserProfile{Niche: "DevOps"}), "💡 DevOps tip:")
}

func TestBoosters(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Contains(t, hooks, RandomHook())
		assert.Contains(t, ctas, RandomCTA())
	}
}
