package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/social-agent/internal/agent/planner"
	"github.com/social-agent/internal/ai"
	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/config"
	"github.com/social-agent/internal/content"
	"github.com/social-agent/internal/generator"
	"github.com/social-agent/internal/models"
	"github.com/social-agent/internal/platform"
	"github.com/social-agent/internal/source"
	"github.com/social-agent/internal/source/custom"
	"github.com/social-agent/internal/source/rss"
	"github.com/social-agent/internal/storage"
	"github.com/social-agent/internal/storage/sqlite"
	"github.com/social-agent/internal/tone"
	"github.com/social-agent/internal/tracker"
	"github.com/social-agent/pkg/logger"
	"github.com/social-agent/pkg/ratelimit"
)

var (
	cfgFile string
	jsonOut bool
	cfg     *config.Config
	log     *logger.Logger
	repo    storage.Repository
	limiter *ratelimit.MultiLimiter
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "social-agent",
		Short: "Social media content generation powered by AI",
		Long: `Generates, scores and plans platform-ready posts for LinkedIn,
Twitter and Instagram using Claude AI.`,
		PersistentPreRunE:  initializeApp,
		PersistentPostRunE: closeApp,
		SilenceUsage:       true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(improveCmd())
	rootCmd.AddCommand(hashtagsCmd())
	rootCmd.AddCommand(ideasCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(suggestCmd())
	rootCmd.AddCommand(toneCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(draftsCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(healthCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps rejected input to 2 and every other failure to 1
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if apperr.Is(err, apperr.KindValidation) {
		return 2
	}
	return 1
}

func initializeApp(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	limiter = ratelimit.NewLimiter(cfg.RateLimit.AnthropicRequestsPerMinute, cfg.RateLimit.AnthropicBurst)

	sqliteRepo, err := sqlite.New(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	repo = sqliteRepo

	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func closeApp(cmd *cobra.Command, args []string) error {
	if repo != nil {
		return repo.Close()
	}
	return nil
}

func newCompleter() ai.Completer {
	return ai.NewClient(cfg.Anthropic, limiter, log)
}

func newGenerator() (*generator.Generator, error) {
	resolver, err := platform.NewResolver(cfg.Generation.StrictPlatform, cfg.Generation.DefaultPlatform)
	if err != nil {
		return nil, fmt.Errorf("invalid generation.default_platform: %w", err)
	}
	return generator.New(newCompleter(), log,
		generator.WithResolver(resolver),
		generator.WithConcurrency(cfg.Generation.PlanConcurrency),
	), nil
}

func currentProfile(ctx context.Context) (*models.UserProfile, error) {
	return planner.EnsureProfile(ctx, repo, cfg.Profile)
}

// inputText joins positional args, falling back to the --text flag
func inputText(args []string, flag string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		text = strings.TrimSpace(flag)
	}
	if text == "" {
		return "", apperr.Validation("cli", "text is required: pass it as an argument or with --text")
	}
	return text, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ============ GENERATE COMMANDS ============

func generateCmd() *cobra.Command {
	var req models.GenerationRequest
	var save bool

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate a post for a platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			gen, err := newGenerator()
			if err != nil {
				return err
			}

			profile, err := currentProfile(ctx)
			if err != nil {
				return err
			}

			req.Prompt = strings.TrimSpace(strings.Join(args, " "))
			result, genErr := gen.GenerateContent(ctx, req, profile)

			if jsonOut {
				if err := printJSON(generator.NewResponse(result, genErr)); err != nil {
					return err
				}
				if genErr != nil {
					log.Error().Err(genErr).Msg("Generation failed")
					return genErr
				}
			} else {
				if genErr != nil {
					return genErr
				}
				md := result.Metadata
				fmt.Printf("\n=== Generated Content (%s) ===\n\n%s\n\n", md.Platform, result.Content)
				fmt.Printf("Tone:       %s\n", md.Tone)
				fmt.Printf("Format:     %s\n", md.Format)
				fmt.Printf("Words:      %d\n", md.WordCount)
				fmt.Printf("Characters: %d\n", md.CharacterCount)
				fmt.Printf("Engagement: %d/100\n", md.EstimatedEngagement)
			}

			if save {
				draft := models.DraftFromResult(profile.UserID, req.Prompt, result)
				if err := repo.CreateDraft(ctx, draft); err != nil {
					return fmt.Errorf("failed to save draft: %w", err)
				}
				if !jsonOut {
					fmt.Printf("\nSaved as draft %d\n", draft.ID)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&req.Platform, "platform", "", "Target platform (default from config)")
	cmd.Flags().StringVar(&req.Tone, "tone", "", "Tone override (default from profile)")
	cmd.Flags().StringVar(&req.Format, "format", "", "Content format, e.g. list_tips or thread")
	cmd.Flags().StringVar(&req.Niche, "niche", "", "Niche override (default from profile)")
	cmd.Flags().StringSliceVar(&req.ContentGoals, "goal", nil, "Content goal (repeatable, first one drives strategy)")
	cmd.Flags().BoolVar(&save, "save", false, "Save the result as a draft")

	return cmd
}

func improveCmd() *cobra.Command {
	var text, improvement string

	cmd := &cobra.Command{
		Use:   "improve [text]",
		Short: "Rewrite a post along one improvement axis",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			original, err := inputText(args, text)
			if err != nil {
				return err
			}

			gen, err := newGenerator()
			if err != nil {
				return err
			}

			profile, err := currentProfile(ctx)
			if err != nil {
				return err
			}

			improved, err := gen.ImproveContent(ctx, original, generator.ImprovementType(improvement), profile)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(map[string]string{"type": improvement, "content": improved})
			}
			fmt.Printf("\n=== Improved (%s) ===\n\n%s\n", improvement, improved)
			return nil
		},
	}

	types := make([]string, 0, len(generator.ImprovementTypes()))
	for _, t := range generator.ImprovementTypes() {
		types = append(types, string(t))
	}

	cmd.Flags().StringVar(&text, "text", "", "Content to improve")
	cmd.Flags().StringVar(&improvement, "type", string(generator.ImproveEngagement), "Improvement: "+strings.Join(types, ", "))

	return cmd
}

func hashtagsCmd() *cobra.Command {
	var text, platformID string
	var count int
	var local bool

	cmd := &cobra.Command{
		Use:   "hashtags [text]",
		Short: "Suggest hashtags for a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			post, err := inputText(args, text)
			if err != nil {
				return err
			}

			var tags []string
			if local {
				tags = content.SynthesizeHashtags(post, platform.Normalize(platformID), count)
			} else {
				gen, err := newGenerator()
				if err != nil {
					return err
				}
				tags, err = gen.SuggestHashtags(ctx, post, platformID, count)
				if err != nil {
					return err
				}
			}

			if jsonOut {
				return printJSON(tags)
			}
			fmt.Println(strings.Join(tags, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Post content")
	cmd.Flags().StringVar(&platformID, "platform", string(platform.Default), "Target platform")
	cmd.Flags().IntVar(&count, "count", 5, "Number of hashtags")
	cmd.Flags().BoolVar(&local, "local", false, "Derive hashtags from the text without calling the AI")

	return cmd
}

func ideasCmd() *cobra.Command {
	var niche string
	var goals []string
	var count int

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Generate content ideas for a niche",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			gen, err := newGenerator()
			if err != nil {
				return err
			}

			if niche == "" || len(goals) == 0 {
				profile, err := currentProfile(ctx)
				if err != nil {
					return err
				}
				if niche == "" {
					niche = profile.Niche
				}
				if len(goals) == 0 {
					goals = profile.Goals
				}
			}

			ideas, err := gen.GenerateIdeas(ctx, niche, goals, count)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(ideas)
			}

			fmt.Printf("\n=== Content Ideas for %s (%d) ===\n\n", niche, len(ideas))
			for i, idea := range ideas {
				fmt.Printf("[%d] %s (%s)\n", i+1, idea.Title, idea.Platform)
				fmt.Printf("    %s\n", idea.Description)
				if idea.Hook != "" {
					fmt.Printf("    Hook: %s\n", idea.Hook)
				}
				if idea.CTA != "" {
					fmt.Printf("    CTA:  %s\n", idea.CTA)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&niche, "niche", "", "Niche (default from profile)")
	cmd.Flags().StringSliceVar(&goals, "goal", nil, "Content goal (repeatable, default from profile)")
	cmd.Flags().IntVar(&count, "count", 5, "Number of ideas")

	return cmd
}

func analyzeCmd() *cobra.Command {
	var text, platformID string

	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Score a post and recommend improvements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			post, err := inputText(args, text)
			if err != nil {
				return err
			}

			gen, err := newGenerator()
			if err != nil {
				return err
			}

			report, err := gen.AnalyzeContent(ctx, post, platformID)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(report)
			}

			a := report.Analysis
			fmt.Printf("\n=== Analysis (%s) ===\n", report.Platform)
			fmt.Printf("Readability: %d/100\n", a.ReadabilityScore)
			fmt.Printf("Engagement:  %d/100\n", a.EngagementPotential)
			fmt.Printf("Length:      %d chars, %s (optimal %d-%d, max %d, %.1f%% used)\n",
				a.Length.CurrentLength, a.Length.Status,
				a.Length.OptimalRange.Min, a.Length.OptimalRange.Max,
				a.Length.MaxLength, a.Length.UtilizationPercentage)
			fmt.Printf("Hashtags:    %d, %s (optimal %d-%d)\n",
				a.Hashtags.Count, a.Hashtags.Status,
				a.Hashtags.OptimalRange.Min, a.Hashtags.OptimalRange.Max)
			fmt.Printf("Tone:        %s (%.0f%% confidence, %s)\n",
				report.ToneConsistency.PrimaryTone,
				report.ToneConsistency.Confidence*100,
				report.ToneConsistency.AnalysisMethod)

			if len(report.Recommendations) > 0 {
				fmt.Printf("\nRecommendations:\n")
				for _, r := range report.Recommendations {
					fmt.Printf("  - [%s] %s\n", r.Priority, r.Message)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Post content")
	cmd.Flags().StringVar(&platformID, "platform", string(platform.Default), "Platform to analyze against")

	return cmd
}

func suggestCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "suggest [input]",
		Short: "Suggest posts for every profile platform plus matching templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			input, err := inputText(args, text)
			if err != nil {
				return err
			}

			gen, err := newGenerator()
			if err != nil {
				return err
			}

			profile, err := currentProfile(ctx)
			if err != nil {
				return err
			}

			suggestions, err := gen.Suggest(ctx, input, profile)
			if err != nil {
				return err
			}

			hook, cta := content.RandomHook(), content.RandomCTA()

			if jsonOut {
				return printJSON(map[string]interface{}{
					"suggestions": suggestions,
					"boosters":    map[string]string{"hook": hook, "cta": cta},
				})
			}

			fmt.Printf("\n=== Suggestions (%d) ===\n\n", len(suggestions))
			for i, s := range suggestions {
				label := s.Platform
				if s.Kind == generator.SuggestionTemplate {
					label = fmt.Sprintf("%s template: %s", s.Platform, s.TemplateName)
				}
				fmt.Printf("[%d] %s\n%s\n\n", i+1, label, s.Content)
			}
			fmt.Printf("Hook idea: %s\n", hook)
			fmt.Printf("CTA idea:  %s\n", cta)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Idea or draft to build on")

	return cmd
}

// ============ TONE COMMANDS ============

func toneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Tone analysis and adaptation commands",
	}

	cmd.AddCommand(toneAnalyzeCmd())
	cmd.AddCommand(toneGuidelinesCmd())
	cmd.AddCommand(toneAdaptCmd())
	return cmd
}

func toneAnalyzeCmd() *cobra.Command {
	var text string
	var saveProfile bool

	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Detect the tone of sample writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sample, err := inputText(args, text)
			if err != nil {
				return err
			}

			result := tone.NewAnalyzer(newCompleter(), log).Analyze(ctx, sample)

			if saveProfile {
				profile, err := currentProfile(ctx)
				if err != nil {
					return err
				}
				profile.ApplyToneProfile(result)
				if err := repo.SaveProfile(ctx, profile); err != nil {
					return fmt.Errorf("failed to save profile: %w", err)
				}
			}

			if jsonOut {
				return printJSON(result)
			}

			fmt.Printf("\n=== Tone Profile ===\n")
			fmt.Printf("Primary tone: %s\n", result.PrimaryTone)
			fmt.Printf("Confidence:   %.0f%%\n", result.Confidence*100)
			fmt.Printf("Method:       %s\n", result.AnalysisMethod)
			if result.VoiceDescription != "" {
				fmt.Printf("Voice:        %s\n", result.VoiceDescription)
			}
			if len(result.StyleElements) > 0 {
				fmt.Printf("Style:        %s\n", strings.Join(result.StyleElements, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Sample writing")
	cmd.Flags().BoolVar(&saveProfile, "save", false, "Store the result on the profile")

	return cmd
}

func toneGuidelinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guidelines [tone]",
		Short: "Show writing guidelines for a tone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := models.ToneProfessional
			if len(args) == 1 {
				t = models.Tone(strings.ToLower(args[0]))
			}
			g := tone.GuidelinesFor(t)

			if jsonOut {
				return printJSON(g)
			}

			fmt.Printf("\n=== %s ===\n\nDo:\n", t)
			for _, d := range g.Dos {
				fmt.Printf("  - %s\n", d)
			}
			fmt.Printf("\nDon't:\n")
			for _, d := range g.Donts {
				fmt.Printf("  - %s\n", d)
			}
			return nil
		},
	}
}

func toneAdaptCmd() *cobra.Command {
	var text, target string

	cmd := &cobra.Command{
		Use:   "adapt [text]",
		Short: "Rewrite content in another tone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			original, err := inputText(args, text)
			if err != nil {
				return err
			}

			profile, err := currentProfile(ctx)
			if err != nil {
				return err
			}

			adapted, err := tone.NewAnalyzer(newCompleter(), log).AdaptContent(ctx, original, models.Tone(target), profile)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(map[string]string{"tone": target, "content": adapted})
			}
			fmt.Printf("\n=== Adapted (%s) ===\n\n%s\n", target, adapted)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Content to adapt")
	cmd.Flags().StringVar(&target, "to", "", "Target tone (required)")
	cmd.MarkFlagRequired("to")

	return cmd
}

// ============ PLAN COMMANDS ============

func newSourceManager() *source.Manager {
	manager := source.NewManager()

	if cfg.Sources.RSS.Enabled {
		for _, src := range rss.NewMultiple(cfg.Sources.RSS, limiter, log) {
			manager.Register(src)
		}
	}
	if cfg.Sources.Custom.Enabled {
		manager.Register(custom.New(cfg.Sources.Custom, log))
	}

	return manager
}

func newExporter(ctx context.Context) planner.Exporter {
	t, err := tracker.NewSheetsTracker(ctx, cfg.Tracker, limiter, log)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create tracker")
		return nil
	}
	if t == nil {
		return nil
	}
	return t
}

func planCmd() *cobra.Command {
	var topics, contentTypes []string
	var discover, export bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a scheduled content plan and save it as drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			gen, err := newGenerator()
			if err != nil {
				return err
			}

			profile, err := currentProfile(ctx)
			if err != nil {
				return err
			}

			if len(topics) == 0 {
				topics = cfg.Profile.Topics
			}

			var exporter planner.Exporter
			if export {
				exporter = newExporter(ctx)
			}

			agent := planner.NewAgent(gen, repo, newSourceManager(), exporter, cfg.Sources.MaxTopics, log)
			if cfg.Sources.RankTopics {
				agent.SetRanker(planner.NewRanker(newCompleter(), cfg.Sources.MinTopicScore, log))
			}
			result, err := agent.Run(ctx, planner.Request{
				UserID:       profile.UserID,
				Topics:       topics,
				ContentTypes: contentTypes,
				Discover:     discover,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(result.Plan)
			}

			s := result.Plan.Summary
			fmt.Printf("\n=== Content Plan %s ===\n", result.Plan.ID)
			fmt.Printf("Posts:     %d\n", s.TotalPosts)
			fmt.Printf("Platforms: %d\n", s.Platforms)
			fmt.Printf("Topics:    %d\n", s.Topics)
			fmt.Printf("Failed:    %d\n", s.Failed)
			fmt.Printf("Exported:  %d\n", result.Exported)
			fmt.Printf("Duration:  %s\n\n", result.Duration.Round(time.Millisecond))

			for _, d := range result.Drafts {
				fmt.Printf("[%d] %s | %s\n", d.ID, d.Platform, d.Topic)
				fmt.Printf("    %s\n", truncateStr(d.Content, 80))
			}

			if len(result.Errors) > 0 {
				fmt.Printf("\nErrors:\n")
				for _, e := range result.Errors {
					fmt.Printf("  - %s\n", e)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&topics, "topic", nil, "Topic to plan (repeatable, default from config)")
	cmd.Flags().StringSliceVar(&contentTypes, "type", nil, "Content format assigned round-robin (repeatable)")
	cmd.Flags().BoolVar(&discover, "discover", false, "Add topics from the configured RSS and keyword sources")
	cmd.Flags().BoolVar(&export, "export", false, "Export the drafts to the Google Sheets tracker")

	return cmd
}

// ============ DRAFT COMMANDS ============

func draftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Stored draft commands",
	}

	cmd.AddCommand(draftsListCmd())
	cmd.AddCommand(draftsShowCmd())
	cmd.AddCommand(draftsScheduleCmd())
	cmd.AddCommand(draftsDeleteCmd())
	cmd.AddCommand(draftsTrackedCmd())
	return cmd
}

func parseDraftID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid draft ID: %w", err)
	}
	return uint(id), nil
}

func draftsListCmd() *cobra.Command {
	var status, platformID, planID string
	var limit int
	var due bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			filter := storage.DefaultDraftFilter()
			filter.UserID = cfg.Profile.UserID
			filter.Platform = platformID
			filter.PlanID = planID
			filter.Limit = limit

			if status != "" {
				s := models.PlanStatus(status)
				filter.Status = &s
			}

			var drafts []*models.Draft
			var err error
			if due {
				drafts, err = repo.GetScheduledDrafts(ctx, time.Now())
			} else {
				drafts, err = repo.ListDrafts(ctx, filter)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(drafts)
			}

			fmt.Printf("\n=== Drafts (%d) ===\n\n", len(drafts))
			for _, d := range drafts {
				fmt.Printf("[%d] %s | %s\n", d.ID, d.Status, d.Platform)
				fmt.Printf("    Topic: %s\n", truncateStr(d.Topic, 60))
				fmt.Printf("    Created: %s\n", d.CreatedAt.Format(time.RFC1123))
				if d.ScheduledFor != nil {
					fmt.Printf("    Scheduled: %s (%s)\n", d.ScheduledFor.Format(time.RFC1123), formatUntil(*d.ScheduledFor))
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&platformID, "platform", "", "Filter by platform")
	cmd.Flags().StringVar(&planID, "plan", "", "Filter by plan ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum drafts to show")
	cmd.Flags().BoolVar(&due, "due", false, "Only scheduled drafts whose time has passed")

	return cmd
}

func draftsTrackedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tracked",
		Short: "List drafts in the tracking sheet and flag status changes made there",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			t, err := tracker.NewSheetsTracker(ctx, cfg.Tracker, limiter, log)
			if err != nil {
				return err
			}
			if t == nil {
				return apperr.Configuration("cli", errors.New("tracker is disabled: set tracker.enabled"))
			}

			tracked, err := t.GetTrackedDrafts(ctx)
			if err != nil {
				return err
			}

			rows := make([]trackedRow, 0, len(tracked))
			for _, td := range tracked {
				local, err := repo.GetDraft(ctx, td.DraftID)
				if err != nil && !errors.Is(err, storage.ErrNotFound) {
					return err
				}
				rows = append(rows, newTrackedRow(td, local))
			}

			if jsonOut {
				return printJSON(rows)
			}

			fmt.Printf("\n=== Tracked Drafts (%d) ===\n\n", len(rows))
			for _, r := range rows {
				fmt.Printf("[%d] %s | %s\n", r.DraftID, r.SheetStatus, r.Platform)
				fmt.Printf("    Topic: %s\n", truncateStr(r.Topic, 60))
				switch {
				case r.Missing:
					fmt.Println("    Not found in local storage")
				case r.Changed:
					fmt.Printf("    Stored status: %s (changed in sheet)\n", r.StoredStatus)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

// trackedRow compares a sheet row with the stored draft it mirrors
type trackedRow struct {
	DraftID      uint              `json:"draft_id"`
	Platform     string            `json:"platform"`
	Topic        string            `json:"topic"`
	SheetStatus  models.PlanStatus `json:"sheet_status"`
	StoredStatus models.PlanStatus `json:"stored_status,omitempty"`
	Changed      bool              `json:"changed"`
	Missing      bool              `json:"missing"`
}

func newTrackedRow(td *tracker.TrackedDraft, local *models.Draft) trackedRow {
	row := trackedRow{
		DraftID:     td.DraftID,
		Platform:    td.Platform,
		Topic:       td.Topic,
		SheetStatus: td.Status,
	}
	if local == nil {
		row.Missing = true
		return row
	}
	row.StoredStatus = local.Status
	row.Changed = local.Status != td.Status
	return row
}

func draftsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [draft-id]",
		Short: "Show a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDraftID(args[0])
			if err != nil {
				return err
			}

			d, err := repo.GetDraft(context.Background(), id)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(d)
			}

			fmt.Printf("\n=== Draft %d (%s, %s) ===\n\n%s\n\n", d.ID, d.Platform, d.Status, d.Content)
			if d.PlanID != "" {
				fmt.Printf("Plan:      %s\n", d.PlanID)
			}
			fmt.Printf("Topic:     %s\n", d.Topic)
			if d.ScheduledFor != nil {
				fmt.Printf("Scheduled: %s\n", d.ScheduledFor.Format(time.RFC1123))
			}
			for _, key := range []string{"tone", "format", "word_count", "estimated_engagement"} {
				if v, ok := d.Metadata[key]; ok {
					fmt.Printf("%-10s %v\n", key+":", v)
				}
			}
			return nil
		},
	}
}

func draftsScheduleCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "schedule [draft-id]",
		Short: "Mark a draft as scheduled for a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := parseDraftID(args[0])
			if err != nil {
				return err
			}

			scheduledTime, err := time.ParseInLocation("2006-01-02 15:04", at, time.Local)
			if err != nil {
				return fmt.Errorf("invalid time format, use: YYYY-MM-DD HH:MM")
			}

			d, err := repo.GetDraft(ctx, id)
			if err != nil {
				return err
			}
			if !d.CanSchedule() {
				return fmt.Errorf("draft %d is already %s", id, d.Status)
			}

			d.Status = models.PlanStatusScheduled
			d.ScheduledFor = &scheduledTime
			if err := repo.UpdateDraft(ctx, d); err != nil {
				return err
			}

			log.WithDraftID(id).Info().Time("scheduled_for", scheduledTime).Msg("Draft scheduled")
			fmt.Printf("Draft %d scheduled for %s\n", id, scheduledTime.Format(time.RFC1123))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Schedule time (YYYY-MM-DD HH:MM)")
	cmd.MarkFlagRequired("at")

	return cmd
}

func draftsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [draft-id]",
		Short: "Delete a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDraftID(args[0])
			if err != nil {
				return err
			}
			if err := repo.DeleteDraft(context.Background(), id); err != nil {
				return err
			}
			log.WithDraftID(id).Info().Msg("Draft deleted")
			fmt.Printf("Draft %d deleted\n", id)
			return nil
		},
	}
}

// ============ PROFILE COMMANDS ============

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "User profile commands",
	}

	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(profileSetCmd())
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := currentProfile(context.Background())
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(p)
			}

			fmt.Printf("\n=== Profile %s ===\n", p.UserID)
			fmt.Printf("Niche:     %s\n", p.Niche)
			fmt.Printf("Goals:     %s\n", strings.Join(p.Goals, ", "))
			fmt.Printf("Platforms: %s\n", strings.Join(p.Platforms, ", "))
			fmt.Printf("Tone:      %s\n", p.Tone())
			fmt.Printf("Frequency: %s (every %d days)\n", p.PostFrequency, p.PostFrequency.Days())
			if voice := p.Voice(); voice != "" {
				fmt.Printf("Voice:     %s\n", voice)
			}
			return nil
		},
	}
}

func profileSetCmd() *cobra.Command {
	var niche, voice, toneLabel, frequency string
	var goals, platforms []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update fields of the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			p, err := currentProfile(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("niche") {
				p.Niche = niche
			}
			if flags.Changed("voice") {
				p.VoiceDescription = voice
			}
			if flags.Changed("tone") {
				t := models.Tone(strings.ToLower(toneLabel))
				if !t.Valid() {
					return fmt.Errorf("unknown tone %q", toneLabel)
				}
				p.PreferredTone = t
			}
			if flags.Changed("frequency") {
				p.PostFrequency = models.PostFrequency(strings.ToLower(frequency))
			}
			if flags.Changed("goal") {
				p.Goals = goals
			}
			if flags.Changed("platform") {
				normalized := make(models.StringSlice, 0, len(platforms))
				for _, id := range platforms {
					spec, err := platform.Lookup(id)
					if err != nil {
						return err
					}
					normalized = append(normalized, string(spec.ID))
				}
				p.Platforms = normalized
			}

			if err := repo.SaveProfile(ctx, p); err != nil {
				return fmt.Errorf("failed to save profile: %w", err)
			}

			fmt.Printf("Profile %s updated\n", p.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&niche, "niche", "", "Niche or industry")
	cmd.Flags().StringVar(&voice, "voice", "", "Voice description")
	cmd.Flags().StringVar(&toneLabel, "tone", "", "Preferred tone")
	cmd.Flags().StringVar(&frequency, "frequency", "", "Post frequency: daily, weekly, biweekly or monthly")
	cmd.Flags().StringSliceVar(&goals, "goal", nil, "Content goal (repeatable, ordered)")
	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "Platform (repeatable)")

	return cmd
}

// ============ HEALTH COMMANDS ============

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the completion backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := newGenerator()
			if err != nil {
				return err
			}

			h := gen.HealthCheck(context.Background())
			if jsonOut {
				return printJSON(h)
			}

			fmt.Printf("Status:  %s\n", h.Status)
			fmt.Printf("Backend: %t\n", h.Backend)
			if h.Error != "" {
				fmt.Printf("Error:   %s\n", h.Error)
			}
			return nil
		},
	}
}

func truncateStr(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// formatUntil renders the time left until t
func formatUntil(t time.Time) string {
	d := time.Until(t)
	if d < 0 {
		return "due"
	}
	if d < time.Hour {
		return fmt.Sprintf("in %d minutes", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("in %.1f hours", d.Hours())
	}
	return fmt.Sprintf("in %.1f days", d.Hours()/24)
}
