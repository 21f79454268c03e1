package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/social-agent/internal/agent/planner"
	"github.com/social-agent/internal/ai"
	"github.com/social-agent/internal/config"
	"github.com/social-agent/internal/generator"
	"github.com/social-agent/internal/platform"
	"github.com/social-agent/internal/source"
	"github.com/social-agent/internal/source/custom"
	"github.com/social-agent/internal/source/rss"
	"github.com/social-agent/internal/storage/sqlite"
	"github.com/social-agent/internal/tracker"
	"github.com/social-agent/pkg/logger"
	"github.com/social-agent/pkg/ratelimit"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "social-scheduler",
		Short: "Background content planner",
		Long: `Generates a content plan for the configured profile on a cron schedule
and stores it as drafts. Drafts are never published automatically.`,
		RunE: runScheduler,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScheduler(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	log.Info().Msg("Starting content planning scheduler")

	repo, err := sqlite.New(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := ratelimit.NewLimiter(cfg.RateLimit.AnthropicRequestsPerMinute, cfg.RateLimit.AnthropicBurst)
	aiClient := ai.NewClient(cfg.Anthropic, limiter, log)

	resolver, err := platform.NewResolver(cfg.Generation.StrictPlatform, cfg.Generation.DefaultPlatform)
	if err != nil {
		return fmt.Errorf("invalid generation.default_platform: %w", err)
	}
	gen := generator.New(aiClient, log,
		generator.WithResolver(resolver),
		generator.WithConcurrency(cfg.Generation.PlanConcurrency),
	)

	sourceManager := source.NewManager()
	if cfg.Sources.RSS.Enabled {
		for _, src := range rss.NewMultiple(cfg.Sources.RSS, limiter, log) {
			sourceManager.Register(src)
		}
	}
	if cfg.Sources.Custom.Enabled {
		sourceManager.Register(custom.New(cfg.Sources.Custom, log))
	}

	var exporter planner.Exporter
	sheetsTracker, err := tracker.NewSheetsTracker(ctx, cfg.Tracker, limiter, log)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create tracker, drafts will not be exported")
	} else if sheetsTracker != nil {
		exporter = sheetsTracker
	}

	profile, err := planner.EnsureProfile(ctx, repo, cfg.Profile)
	if err != nil {
		return err
	}

	agent := planner.NewAgent(gen, repo, sourceManager, exporter, cfg.Sources.MaxTopics, log)
	if cfg.Sources.RankTopics {
		agent.SetRanker(planner.NewRanker(aiClient, cfg.Sources.MinTopicScore, log))
	}

	srv := startHealthServer(gen, limiter)

	c := cron.New(cron.WithLogger(cronLogger{log}))

	_, err = c.AddFunc(cfg.Scheduler.PlanCron, func() {
		log.Info().Msg("Running scheduled planning")

		result, err := agent.Run(ctx, planner.Request{
			UserID:   profile.UserID,
			Topics:   cfg.Profile.Topics,
			Discover: sourceManager.Len() > 0,
		})
		if err != nil {
			log.Error().Err(err).Msg("Scheduled planning failed")
			return
		}

		for _, e := range result.Errors {
			log.Warn().Err(e).Msg("Planning error")
		}
		log.Info().
			Str("plan_id", result.Plan.ID).
			Int("drafts", len(result.Drafts)).
			Int("failed", result.Plan.Summary.Failed).
			Msg("Scheduled planning completed")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule planning job: %w", err)
	}
	log.Info().Str("cron", cfg.Scheduler.PlanCron).Msg("Planning job scheduled")

	c.Start()
	log.Info().Msg("Scheduler started")

	<-ctx.Done()

	log.Info().Msg("Shutting down scheduler")
	<-c.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// cronLogger adapts our logger for cron
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// startHealthServer serves liveness on /health and a completion backend
// probe on /health/backend. Backend probes spend completion quota, so they
// are refused while the completion limiter has no tokens left.
func startHealthServer(gen *generator.Generator, limiter *ratelimit.MultiLimiter) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/health/backend", func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(ratelimit.LimiterAnthropic) {
			http.Error(w, "probe rate limited", http.StatusTooManyRequests)
			return
		}
		h := gen.HealthCheck(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if h.Status != generator.Healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(h)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Scheduler.HealthPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Scheduler.HealthPort).Msg("Health check server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Health server failed")
		}
	}()

	return srv
}
