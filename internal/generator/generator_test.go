package generator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/social-agent/internal/ai"
	"github.com/social-agent/internal/ai/aitest"
	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/content"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/platform"
	"github.com/social-agent/pkg/logger"
)

const milestoneReply = "We just crossed 10,000 users. Thank you to everyone who believed in our product early on!"

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestGenerator(completer ai.Completer, opts ...Option) *Generator {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(completer, logger.Nop(), opts...)
}

func TestGenerateContent_Milestone(t *testing.T) {
	completer := &aitest.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req ai.CompletionRequest) bool {
		return req.MaxTokens == 600 &&
			req.Temperature == ai.TemperatureGeneration &&
			strings.Contains(req.SystemPrompt, "PLATFORM: LINKEDIN") &&
			strings.HasPrefix(req.UserPrompt, "Create a linkedin post about: Our company just hit 10,000 users!")
	})).Return(milestoneReply, nil)

	g := newTestGenerator(completer)
	res, err := g.GenerateContent(context.Background(), models.GenerationRequest{
		Prompt:   "Our company just hit 10,000 users!",
		Platform: "linkedin",
		Tone:     "professional",
	}, nil)
	require.NoError(t, err)
	completer.AssertExpectations(t)

	assert.LessOrEqual(t, utf8.RuneCountInString(res.Content), 3000)
	tags := content.CountHashtags(res.Content)
	assert.GreaterOrEqual(t, tags, 3)
	assert.LessOrEqual(t, tags, 5)
	assert.Equal(t, len(strings.Fields(res.Content)), res.Metadata.WordCount)
	assert.Equal(t, utf8.RuneCountInString(res.Content), res.Metadata.CharacterCount)
	assert.Equal(t, "linkedin", res.Metadata.Platform)
	assert.Equal(t, "professional", res.Metadata.Tone)
	assert.Equal(t, DefaultFormat, res.Metadata.Format)
}

func TestGenerateContent_BackendFailure(t *testing.T) {
	completer := &aitest.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything).
		Return("", apperr.Configuration("ai.Complete", errors.New("anthropic API key not configured")))

	res, err := newTestGenerator(completer).GenerateContent(context.Background(), models.GenerationRequest{
		Prompt:   "Our company just hit 10,000 users!",
		Platform: "linkedin",
	}, nil)
	assert.Nil(t, res)
	assert.True(t, apperr.Is(err, apperr.KindConfiguration))

	resp := NewResponse(res, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to generate content", resp.Error)
	assert.Empty(t, resp.Content)
	assert.Nil(t, resp.Metadata)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"Failed to generate content"}`, string(raw))
}

func TestNewResponse_Success(t *testing.T) {
	resp := NewResponse(&models.GenerationResult{
		Content:  "Hello #World",
		Metadata: models.GenerationMetadata{Platform: "twitter", WordCount: 2},
	}, nil)

	assert.True(t, resp.Success)
	assert.Equal(t, "Hello #World", resp.Content)
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, 2, resp.Metadata.WordCount)
	assert.Empty(t, resp.Error)
}

func TestGenerateContent_Validation(t *testing.T) {
	completer := &aitest.MockCompleter{}

	_, err := newTestGenerator(completer).GenerateContent(context.Background(), models.GenerationRequest{Prompt: "  "}, nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)

	_, err = newTestGenerator(nil).GenerateContent(context.Background(), models.GenerationRequest{Prompt: "hello"}, nil)
	assert.True(t, apperr.Is(err, apperr.KindConfiguration))
}

func TestGenerateContent_PlatformResolution(t *testing.T) {
	t.Run("lenient falls back to linkedin", func(t *testing.T) {
		completer := &aitest.ScriptedCompleter{Fallback: aitest.Reply{Text: milestoneReply}}
		res, err := newTestGenerator(completer).GenerateContent(context.Background(), models.GenerationRequest{
			Prompt:   "hello",
			Platform: "myspace",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "linkedin", res.Metadata.Platform)
		assert.Equal(t, 600, completer.Requests()[0].MaxTokens)
	})

	t.Run("case insensitive", func(t *testing.T) {
		completer := &aitest.ScriptedCompleter{Fallback: aitest.Reply{Text: "Short and sweet #Launch"}}
		res, err := newTestGenerator(completer).GenerateContent(context.Background(), models.GenerationRequest{
			Prompt:   "hello",
			Platform: "Twitter",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "twitter", res.Metadata.Platform)
		assert.Equal(t, 100, completer.Requests()[0].MaxTokens)
	})

	t.Run("strict rejects unknown", func(t *testing.T) {
		completer := &aitest.ScriptedCompleter{Fallback: aitest.Reply{Text: milestoneReply}}
		resolver, err := platform.NewResolver(true, "")
		require.NoError(t, err)

		_, err = newTestGenerator(completer, WithResolver(resolver)).GenerateContent(context.Background(), models.GenerationRequest{
			Prompt:   "hello",
			Platform: "myspace",
		}, nil)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.ErrorIs(t, err, platform.ErrUnknownPlatform)
		assert.Empty(t, completer.Requests())
	})
}

func TestGenerateContent_ProfileContext(t *testing.T) {
	completer := &aitest.ScriptedCompleter{Fallback: aitest.Reply{Text: milestoneReply}}
	profile := &models.UserProfile{
		Niche:            "Developer tools",
		VoiceDescription: "Dry humour, short sentences",
		PreferredTone:    models.ToneHumorous,
	}

	res, err := newTestGenerator(completer).GenerateContent(context.Background(), models.GenerationRequest{
		Prompt:       "Release day",
		Format:       "list_tips",
		ContentGoals: []string{"Community Building"},
	}, profile)
	require.NoError(t, err)

	assert.Equal(t, "humorous", res.Metadata.Tone)
	assert.Equal(t, "list_tips", res.Metadata.Format)

	prompt := completer.Requests()[0].UserPrompt
	assert.Contains(t, prompt, "Industry/Niche: Developer tools")
	assert.Contains(t, prompt, "Writing Style: Dry humour, short sentences")
	assert.Contains(t, prompt, "Format: Create a numbered list of actionable tips or strategies")
	assert.Contains(t, prompt, "Content Strategy: Encourage interaction, ask questions, and foster discussion")
	assert.Contains(t, prompt, "Tone: humorous")
}

func TestGenerateContent_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	completer := &aitest.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything).
		Return("", apperr.Transport("ai.Complete", context.Canceled))

	res, err := newTestGenerator(completer).GenerateContent(ctx, models.GenerationRequest{Prompt: "hello"}, nil)
	assert.Nil(t, res)
	assert.True(t, apperr.Is(err, apperr.KindTransport))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateContent_EmptyCompletion(t *testing.T) {
	completer := &aitest.ScriptedCompleter{Fallback: aitest.Reply{Text: "   "}}

	res, err := newTestGenerator(completer).GenerateContent(context.Background(), models.GenerationRequest{Prompt: "hello"}, nil)
	assert.Nil(t, res)
	assert.True(t, apperr.Is(err, apperr.KindParse))
}
