package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// FeedConfig describes one RSS source the monitor polls.
type FeedConfig struct {
	Name     string `yaml:"name"`
	Url      string `yaml:"url"`
	Category string `yaml:"category"`
	Enabled  *bool  `yaml:"enabled"`
}

// AppConfig is the typed application configuration. It is parsed once at
// startup from a YAML file, then every recognized option may be overridden
// through an environment variable. No other code reads config keys ad hoc.
type AppConfig struct {
	// Content filtering
	Keywords     []string `yaml:"keywords"`
	NewsKeywords []string `yaml:"news_keywords"`

	// Content freshness
	MaxArticleAgeHours int `yaml:"max_article_age_hours"`

	// Personalization
	InitialRelevanceThreshold float64 `yaml:"initial_relevance_threshold"`
	LearningRate              float64 `yaml:"learning_rate"`
	MinFeedbackCount          int     `yaml:"min_feedback_count"`

	// Digest generation
	BlogMinItems int    `yaml:"blog_min_items"`
	BlogMaxItems int    `yaml:"blog_max_items"`
	DigestAuthor string `yaml:"digest_author"`

	// RSS monitoring
	MaxItemsPerFeed int          `yaml:"max_items_per_feed"`
	Feeds           []FeedConfig `yaml:"feeds"`

	// Notification dispatch
	MaxNotificationsPerHour int `yaml:"max_notifications_per_hour"`
	SummaryMaxLength        int `yaml:"summary_max_length"`

	// Retention
	RetentionDays int `yaml:"retention_days"`

	// Cycle intervals, milliseconds. All scheduling is driven from here, the
	// core components never schedule themselves.
	IngestEveryMs  int64 `yaml:"ingest_every_ms"`
	CleanupEveryMs int64 `yaml:"cleanup_every_ms"`
	DigestEveryMs  int64 `yaml:"digest_every_ms"`
}

// ParseAppConfig reads and validates the config at path, applying env
// overrides. A service with broken config should not come up at all, so any
// validation failure surfaces as a startup error.
func ParseAppConfig(path string) (*AppConfig, error) {
	c := defaultAppConfig()

	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read app config %s: %v", path, err)
	}
	if err := yaml.Unmarshal(yamlFile, c); err != nil {
		return nil, fmt.Errorf("cannot parse app config %s: %v", path, err)
	}

	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		MaxArticleAgeHours:        48,
		InitialRelevanceThreshold: 0.1,
		LearningRate:              0.1,
		MinFeedbackCount:          5,
		BlogMinItems:              5,
		BlogMaxItems:              15,
		DigestAuthor:              "CodeNews Bot",
		MaxItemsPerFeed:           50,
		MaxNotificationsPerHour:   50,
		SummaryMaxLength:          300,
		RetentionDays:             30,
		IngestEveryMs:             3600 * 1000,
		CleanupEveryMs:            24 * 3600 * 1000,
		DigestEveryMs:             7 * 24 * 3600 * 1000,
	}
}

func (c *AppConfig) applyEnvOverrides() {
	c.Keywords = envList("KEYWORDS", c.Keywords)
	c.NewsKeywords = envList("NEWS_KEYWORDS", c.NewsKeywords)
	c.MaxArticleAgeHours = envInt("MAX_ARTICLE_AGE_HOURS", c.MaxArticleAgeHours)
	c.InitialRelevanceThreshold = envFloat("INITIAL_RELEVANCE_THRESHOLD", c.InitialRelevanceThreshold)
	c.LearningRate = envFloat("LEARNING_RATE", c.LearningRate)
	c.MinFeedbackCount = envInt("MIN_FEEDBACK_COUNT", c.MinFeedbackCount)
	c.BlogMinItems = envInt("BLOG_MIN_ITEMS", c.BlogMinItems)
	c.BlogMaxItems = envInt("BLOG_MAX_ITEMS", c.BlogMaxItems)
	c.MaxItemsPerFeed = envInt("MAX_ITEMS_PER_FEED", c.MaxItemsPerFeed)
	c.MaxNotificationsPerHour = envInt("MAX_NOTIFICATIONS_PER_HOUR", c.MaxNotificationsPerHour)
	c.SummaryMaxLength = envInt("SUMMARY_MAX_LENGTH", c.SummaryMaxLength)
	c.RetentionDays = envInt("RETENTION_DAYS", c.RetentionDays)
}

// Validate enforces the documented option ranges. Credentials for external
// collaborators (Slack webhook, DB) live in env and are checked by the service
// that needs them at startup.
func (c *AppConfig) Validate() error {
	errs := []string{}

	if c.LearningRate <= 0 || c.LearningRate > 1 {
		errs = append(errs, fmt.Sprintf("learning_rate must be in (0,1], got %v", c.LearningRate))
	}
	if c.MinFeedbackCount < 0 {
		errs = append(errs, fmt.Sprintf("min_feedback_count must be >= 0, got %d", c.MinFeedbackCount))
	}
	if c.BlogMinItems <= 0 || c.BlogMaxItems < c.BlogMinItems {
		errs = append(errs, fmt.Sprintf("invalid digest bounds [%d, %d]", c.BlogMinItems, c.BlogMaxItems))
	}
	if c.MaxArticleAgeHours <= 0 {
		errs = append(errs, fmt.Sprintf("max_article_age_hours must be > 0, got %d", c.MaxArticleAgeHours))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// EnabledFeeds returns the feeds the monitor should poll. A feed with no
// explicit "enabled" key counts as enabled.
func (c *AppConfig) EnabledFeeds() []FeedConfig {
	feeds := []FeedConfig{}
	for _, f := range c.Feeds {
		if f.Enabled == nil || *f.Enabled {
			feeds = append(feeds, f)
		}
	}
	return feeds
}

func envInt(name string, fallback int) int {
	if value := os.Getenv(name); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloat(name string, fallback float64) float64 {
	if value := os.Getenv(name); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envList(name string, fallback []string) []string {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
