package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	defaultDataDir                = "."
	defaultServerPort             = "0.0.0.0:3000"
	defaultEpisodePremieredDays   = 7
	defaultSeasonAddedDays        = 3
	defaultNotifiedMaxEntries     = 100
	defaultRequestTimeout         = 30 * time.Second
	defaultImageDownloadTimeout   = 60 * time.Second
	defaultMaxRetries             = 3
	defaultRetryBackoff           = 1 * time.Second
	defaultShutdownTimeout        = 30 * time.Second
	notifiedItemsFileName         = "notified_items.json"
)

type Config struct {
	TelegramBotToken string
	TelegramChatID   string
	JellyfinBaseURL  string
	JellyfinAPIKey   string

	// YouTubeAPIKey is optional; without it trailer lookups are disabled
	// and movie notifications go out without a trailer link.
	YouTubeAPIKey string

	EpisodePremieredWithinDays int
	SeasonAddedWithinDays      int
	NotifiedMaxEntries         int

	DataDir    string
	ServerPort string

	RequestTimeout       time.Duration
	ImageDownloadTimeout time.Duration
	MaxRetries           int
	RetryBackoff         time.Duration
	ShutdownTimeout      time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		YouTubeAPIKey:        os.Getenv("YOUTUBE_API_KEY"),
		DataDir:              getEnvOrDefault("DATA_DIR", defaultDataDir),
		ServerPort:           getEnvOrDefault("SERVER_PORT", defaultServerPort),
		RequestTimeout:       defaultRequestTimeout,
		ImageDownloadTimeout: defaultImageDownloadTimeout,
		MaxRetries:           defaultMaxRetries,
		RetryBackoff:         defaultRetryBackoff,
		ShutdownTimeout:      defaultShutdownTimeout,
	}

	if err := cfg.loadRequired(); err != nil {
		return nil, err
	}
	if err := cfg.loadThresholds(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.JellyfinBaseURL = strings.TrimRight(cfg.JellyfinBaseURL, "/")
	return cfg, nil
}

func (c *Config) loadRequired() error {
	required := map[string]*string{
		"TELEGRAM_BOT_TOKEN": &c.TelegramBotToken,
		"TELEGRAM_CHAT_ID":   &c.TelegramChatID,
		"JELLYFIN_BASE_URL":  &c.JellyfinBaseURL,
		"JELLYFIN_API_KEY":   &c.JellyfinAPIKey,
	}

	for key, ptr := range required {
		value := os.Getenv(key)
		if value == "" {
			return fmt.Errorf("required environment variable missing: %s", key)
		}
		*ptr = value
	}
	return nil
}

func (c *Config) loadThresholds() error {
	var err error
	if c.EpisodePremieredWithinDays, err = getEnvIntOrDefault("EPISODE_PREMIERED_WITHIN_X_DAYS", defaultEpisodePremieredDays); err != nil {
		return err
	}
	if c.SeasonAddedWithinDays, err = getEnvIntOrDefault("SEASON_ADDED_WITHIN_X_DAYS", defaultSeasonAddedDays); err != nil {
		return err
	}
	if c.NotifiedMaxEntries, err = getEnvIntOrDefault("NOTIFIED_MAX_ENTRIES", defaultNotifiedMaxEntries); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TelegramBotToken, validation.Required),
		validation.Field(&c.TelegramChatID, validation.Required),
		validation.Field(&c.JellyfinBaseURL, validation.Required),
		validation.Field(&c.JellyfinAPIKey, validation.Required),
		validation.Field(&c.EpisodePremieredWithinDays, validation.Min(1)),
		validation.Field(&c.SeasonAddedWithinDays, validation.Min(1)),
		validation.Field(&c.NotifiedMaxEntries, validation.Min(1)),
		validation.Field(&c.ServerPort, validation.Required),
	)
}

// NotifiedItemsPath is the ledger's backing file.
func (c *Config) NotifiedItemsPath() string {
	return filepath.Join(c.DataDir, notifiedItemsFileName)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return parsed, nil
}
