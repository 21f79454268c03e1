package tone

import (
	"context"
	"fmt"
	"strings"

	"github.com/social-agent/internal/ai"
	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/pkg/logger"
)

// Analyzer detects tone through the completion backend and falls back to
// the rule-based classifier
type Analyzer struct {
	completer ai.Completer
	log       *logger.Logger
}

// NewAnalyzer creates a tone analyzer. A nil completer disables the AI path.
func NewAnalyzer(completer ai.Completer, log *logger.Logger) *Analyzer {
	return &Analyzer{
		completer: completer,
		log:       log.WithComponent("tone"),
	}
}

type aiToneResult struct {
	Tone             string   `json:"tone"`
	StyleElements    []string `json:"style_elements"`
	VoiceDescription string   `json:"voice_description"`
	Confidence       float64  `json:"confidence"`
}

// Analyze returns the tone profile of text. The chain is AI, then rule-based;
// empty input short-circuits to the default profile. It never fails.
func (a *Analyzer) Analyze(ctx context.Context, text string) models.ToneProfile {
	if strings.TrimSpace(text) == "" {
		return DefaultProfile()
	}

	if a.completer != nil {
		profile, err := a.analyzeWithAI(ctx, text)
		if err == nil {
			return profile
		}
		a.log.Warn().Err(err).Msg("AI tone analysis failed, using rule-based analysis")
	}

	return Classify(text)
}

func (a *Analyzer) analyzeWithAI(ctx context.Context, text string) (models.ToneProfile, error) {
	const op = "tone.Analyze"

	response, err := a.completer.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: ai.ToneAnalysisSystemPrompt,
		UserPrompt:   text,
		MaxTokens:    ai.ToneAnalysisMaxTokens,
		Temperature:  ai.TemperatureTone,
	})
	if err != nil {
		return models.ToneProfile{}, err
	}

	var result aiToneResult
	if err := ai.DecodeJSON(op, response, &result); err != nil {
		return models.ToneProfile{}, err
	}

	primary := models.Tone(strings.ToLower(strings.TrimSpace(result.Tone)))
	if !primary.Valid() {
		return models.ToneProfile{}, apperr.Parse(op, fmt.Errorf("unrecognized tone %q", result.Tone))
	}

	confidence := result.Confidence
	if confidence < 0 || confidence > 1 {
		return models.ToneProfile{}, apperr.Parse(op, fmt.Errorf("confidence %v out of range", result.Confidence))
	}

	styleElements := result.StyleElements
	if len(styleElements) == 0 {
		styleElements = Characteristics(primary)
	}

	return models.ToneProfile{
		PrimaryTone:      primary,
		StyleElements:    styleElements,
		VoiceDescription: result.VoiceDescription,
		Confidence:       confidence,
		AnalysisMethod:   models.AnalysisAI,
	}, nil
}

// AdaptContent rewrites content in the target tone
func (a *Analyzer) AdaptContent(ctx context.Context, content string, target models.Tone, profile *models.UserProfile) (string, error) {
	const op = "tone.AdaptContent"

	if strings.TrimSpace(content) == "" || target == "" {
		return "", apperr.Validation(op, "content and target tone are required")
	}
	if a.completer == nil {
		return "", apperr.Configuration(op, fmt.Errorf("no completion backend configured"))
	}

	voice := profile.Voice()
	if voice == "" {
		voice = ai.DefaultVoice
	}

	userPrompt := fmt.Sprintf(ai.ToneAdaptationUserPrompt, target, content, voice, target)

	a.log.Debug().Str("target_tone", string(target)).Msg("Adapting content tone")

	return a.completer.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: adaptationSystemPrompt(target),
		UserPrompt:   userPrompt,
		MaxTokens:    ai.ToneAdaptationMaxTokens,
		Temperature:  ai.TemperatureGeneration,
	})
}

func adaptationSystemPrompt(target models.Tone) string {
	return fmt.Sprintf("You are an expert social media editor. Rewrite content in a %s tone. Return only the rewritten content.", target)
}
