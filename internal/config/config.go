package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/pokerdash/internal/logger"
	"golang.org/x/text/language"
)

type Config struct {
	Addr               string
	APIURL             string
	LogLevel           string
	Timezone           string
	Locale             string
	SnapshotDBPath     string
	SnapshotTTL        time.Duration
	FetchTimeout       time.Duration
	MaxConcurrentFetch int
	RefreshWorkerCount int
	RefreshQueueSize   int
	BlockedUserIDs     []int64
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		APIURL:             strings.TrimRight(envOr("API_URL", "http://localhost:8000"), "/"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		Timezone:           envOr("TIMEZONE", "Local"),
		Locale:             envOr("LOCALE", "en"),
		SnapshotDBPath:     os.Getenv("SNAPSHOT_DB_PATH"),
		SnapshotTTL:        time.Duration(envIntOr("SNAPSHOT_TTL_SECONDS", 1800)) * time.Second,
		FetchTimeout:       time.Duration(envIntOr("FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
		MaxConcurrentFetch: envIntOr("MAX_CONCURRENT_FETCH", 10),
		RefreshWorkerCount: envIntOr("REFRESH_WORKER_COUNT", 1),
		RefreshQueueSize:   envIntOr("REFRESH_QUEUE_SIZE", 4),
		BlockedUserIDs:     envIDsOr("BLOCKED_USER_IDS"),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.APIURL == "" {
		errs = append(errs, errors.New("API_URL cannot be empty"))
	} else if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("API_URL must be an absolute URL, got %q", c.APIURL))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("LOCALE: %w", err))
	}
	if c.SnapshotTTL < 0 {
		errs = append(errs, errors.New("SNAPSHOT_TTL_SECONDS cannot be negative"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("FETCH_TIMEOUT_SECONDS must be positive"))
	}
	if c.MaxConcurrentFetch < 1 {
		errs = append(errs, errors.New("MAX_CONCURRENT_FETCH must be at least 1"))
	}
	if c.RefreshWorkerCount < 1 {
		errs = append(errs, errors.New("REFRESH_WORKER_COUNT must be at least 1"))
	}
	if c.RefreshQueueSize < 1 {
		errs = append(errs, errors.New("REFRESH_QUEUE_SIZE must be at least 1"))
	}

	return errors.Join(errs...)
}

// Location resolves the dashboard time zone used for calendar days.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Language resolves the collation locale for name sorting.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envIDsOr(key string) []int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("invalid id %q in %s, skipping", part, key)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
