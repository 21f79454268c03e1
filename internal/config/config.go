package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	Generation GenerationConfig `mapstructure:"generation"`
	Profile    ProfileConfig    `mapstructure:"profile"`
	Sources    SourcesConfig    `mapstructure:"sources"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Tracker    TrackerConfig    `mapstructure:"tracker"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite
	DSN    string `mapstructure:"dsn"`    // Connection string
}

// AnthropicConfig holds Claude API settings
type AnthropicConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// GenerationConfig controls the content pipeline
type GenerationConfig struct {
	DefaultPlatform string `mapstructure:"default_platform"`
	StrictPlatform  bool   `mapstructure:"strict_platform"` // reject unknown platforms instead of defaulting
	PlanConcurrency int    `mapstructure:"plan_concurrency"`
}

// ProfileConfig is the profile the scheduler plans content for
type ProfileConfig struct {
	UserID           string   `mapstructure:"user_id"`
	Niche            string   `mapstructure:"niche"`
	Goals            []string `mapstructure:"goals"`
	Platforms        []string `mapstructure:"platforms"`
	Tone             string   `mapstructure:"tone"`
	VoiceDescription string   `mapstructure:"voice_description"`
	PostFrequency    string   `mapstructure:"post_frequency"`
	Topics           []string `mapstructure:"topics"`
}

// SourcesConfig holds topic source configurations
type SourcesConfig struct {
	RSS       RSSConfig    `mapstructure:"rss"`
	Custom    CustomConfig `mapstructure:"custom"`
	MaxTopics int          `mapstructure:"max_topics"`
	// RankTopics scores discovered topics against the profile niche
	RankTopics    bool    `mapstructure:"rank_topics"`
	MinTopicScore float64 `mapstructure:"min_topic_score"`
}

// RSSConfig holds RSS feed settings
type RSSConfig struct {
	Enabled    bool      `mapstructure:"enabled"`
	Feeds      []RSSFeed `mapstructure:"feeds"`
	MaxAgeDays int       `mapstructure:"max_age_days"`
}

// RSSFeed represents a single RSS feed
type RSSFeed struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// CustomConfig holds custom keyword settings
type CustomConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Keywords []string `mapstructure:"keywords"`
}

// SchedulerConfig holds scheduler settings
type SchedulerConfig struct {
	PlanCron   string `mapstructure:"plan_cron"`
	HealthPort string `mapstructure:"health_port"`
}

// RateLimitConfig holds rate limiting settings
type RateLimitConfig struct {
	AnthropicRequestsPerMinute int `mapstructure:"anthropic_requests_per_minute"`
	AnthropicBurst             int `mapstructure:"anthropic_burst"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // stdout, stderr or file path
}

// TrackerConfig holds Google Sheets tracker settings
type TrackerConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	SpreadsheetID      string `mapstructure:"spreadsheet_id"`
	SheetName          string `mapstructure:"sheet_name"`
	CredentialsFile    string `mapstructure:"credentials_file"`
	ServiceAccountJSON string `mapstructure:"service_account_json"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Load .env file if present (ignore errors if not found)
	_ = godotenv.Load()
	_ = godotenv.Load(".env.local")

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".social-agent"))
		}
	}

	v.SetEnvPrefix("SOCIAL")
	v.AutomaticEnv()

	// Explicit bindings for nested keys (Viper doesn't auto-bind underscored nested keys)
	v.BindEnv("anthropic.api_key", "SOCIAL_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	v.BindEnv("anthropic.model", "SOCIAL_ANTHROPIC_MODEL")
	v.BindEnv("database.dsn", "SOCIAL_DATABASE_DSN")
	v.BindEnv("generation.default_platform", "SOCIAL_GENERATION_DEFAULT_PLATFORM")
	v.BindEnv("generation.strict_platform", "SOCIAL_GENERATION_STRICT_PLATFORM")
	v.BindEnv("profile.user_id", "SOCIAL_PROFILE_USER_ID")
	v.BindEnv("tracker.enabled", "SOCIAL_TRACKER_ENABLED")
	v.BindEnv("tracker.spreadsheet_id", "SOCIAL_TRACKER_SPREADSHEET_ID")
	v.BindEnv("tracker.credentials_file", "SOCIAL_TRACKER_CREDENTIALS_FILE")
	v.BindEnv("tracker.service_account_json", "SOCIAL_TRACKER_SERVICE_ACCOUNT_JSON")
	v.BindEnv("logging.level", "SOCIAL_LOGGING_LEVEL")
	v.BindEnv("scheduler.health_port", "SOCIAL_SCHEDULER_HEALTH_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./data/social.db")

	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("anthropic.request_timeout", "60s")

	v.SetDefault("generation.default_platform", "linkedin")
	v.SetDefault("generation.strict_platform", false)
	v.SetDefault("generation.plan_concurrency", 1)

	v.SetDefault("profile.user_id", "default")
	v.SetDefault("profile.platforms", []string{"linkedin"})
	v.SetDefault("profile.tone", "professional")
	v.SetDefault("profile.post_frequency", "weekly")

	v.SetDefault("sources.rss.enabled", false)
	v.SetDefault("sources.rss.max_age_days", 7)
	v.SetDefault("sources.custom.enabled", false)
	v.SetDefault("sources.max_topics", 3)
	v.SetDefault("sources.rank_topics", false)
	v.SetDefault("sources.min_topic_score", 5.0)

	v.SetDefault("scheduler.plan_cron", "0 7 * * 1") // Monday 7am
	v.SetDefault("scheduler.health_port", "10000")

	v.SetDefault("rate_limit.anthropic_requests_per_minute", 10)
	v.SetDefault("rate_limit.anthropic_burst", 2)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("tracker.enabled", false)
	v.SetDefault("tracker.sheet_name", "Drafts")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Anthropic.APIKey == "" {
		return fmt.Errorf("anthropic.api_key is required")
	}
	if c.Database.Driver != "" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Generation.PlanConcurrency < 0 {
		return fmt.Errorf("generation.plan_concurrency must not be negative")
	}
	if c.Tracker.Enabled && c.Tracker.SpreadsheetID == "" {
		return fmt.Errorf("tracker.spreadsheet_id is required when the tracker is enabled")
	}
	return nil
}
