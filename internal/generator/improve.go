package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/social-agent/internal/ai"
	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/content"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/platform"
)

// ImprovementType selects a rewrite instruction
type ImprovementType string

const (
	ImproveEngagement   ImprovementType = "engagement"
	ImproveClarity      ImprovementType = "clarity"
	ImproveProfessional ImprovementType = "professional"
	ImproveCasual       ImprovementType = "casual"
	ImproveShorter      ImprovementType = "shorter"
	ImproveLonger       ImprovementType = "longer"
)

var improvementInstructions = map[ImprovementType]string{
	ImproveEngagement:   "Make this content more engaging and likely to generate comments and shares:",
	ImproveClarity:      "Make this content clearer and easier to understand:",
	ImproveProfessional: "Make this content more professional while maintaining authenticity:",
	ImproveCasual:       "Make this content more conversational and approachable:",
	ImproveShorter:      "Make this content more concise while keeping the key message:",
	ImproveLonger:       "Expand this content with more details, examples, or insights:",
}

// ImprovementTypes lists the recognized rewrite types
func ImprovementTypes() []ImprovementType {
	return []ImprovementType{ImproveEngagement, ImproveClarity, ImproveProfessional, ImproveCasual, ImproveShorter, ImproveLonger}
}

// Instruction returns the rewrite instruction and whether t is recognized
func (t ImprovementType) Instruction() (string, bool) {
	s, ok := improvementInstructions[t]
	return s, ok
}

// ImproveContent rewrites existing content with the instruction of
// improvementType. Unknown types are rejected before any completion call.
func (g *Generator) ImproveContent(ctx context.Context, original string, improvementType ImprovementType, profile *models.UserProfile) (string, error) {
	const op = "generator.ImproveContent"

	if strings.TrimSpace(original) == "" {
		return "", apperr.Validation(op, "content is required")
	}
	instruction, ok := improvementType.Instruction()
	if !ok {
		return "", apperr.Validation(op, "invalid improvement type %q", improvementType)
	}
	if g.completer == nil {
		return "", apperr.Configuration(op, errors.New("no completion backend configured"))
	}

	voice := profile.Voice()
	if voice == "" {
		voice = ai.DefaultVoice
	}

	g.log.Debug().Str("improvement", string(improvementType)).Msg("Improving content")

	improved, err := g.completer.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: content.SystemPrompt(platform.MustLookup(platform.Default), string(profile.Tone())),
		UserPrompt:   fmt.Sprintf(ai.ImprovementUserPrompt, instruction, original, voice),
		MaxTokens:    ai.ImprovementMaxTokens,
		Temperature:  ai.TemperatureGeneration,
	})
	if err != nil {
		return "", err
	}
	if improved == "" {
		return "", apperr.Parse(op, errors.New("completion returned no content"))
	}
	return improved, nil
}
