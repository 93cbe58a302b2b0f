// Package config reads the tracker's settings from SYLLABUS_* environment
// variables.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultStorageKey is the key the state blob is stored under.
const DefaultStorageKey = "jee-tracker-data"

type Config struct {
	DBPath              string
	StorageKey          string
	LogLevel            string
	LogFile             string
	MetricsFile         string
	ReminderInterval    time.Duration
	DateRefreshInterval time.Duration
	Notifications       bool
	SnapshotKeep        int
}

// DefaultConfig keeps everything under ~/.syllabus. Metrics export is off.
func DefaultConfig() Config {
	dir := dataDir()
	return Config{
		DBPath:              filepath.Join(dir, "syllabus.db"),
		StorageKey:          DefaultStorageKey,
		LogLevel:            "info",
		LogFile:             filepath.Join(dir, "syllabus.log"),
		ReminderInterval:    time.Minute,
		DateRefreshInterval: time.Hour,
		Notifications:       true,
		SnapshotKeep:        5,
	}
}

// LoadConfig applies environment overrides to DefaultConfig. Invalid values
// are ignored.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SYLLABUS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SYLLABUS_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
	}
	if v := os.Getenv("SYLLABUS_LOG_LEVEL"); v != "" {
		if _, ok := parseLevel(v); ok {
			cfg.LogLevel = strings.ToLower(v)
		}
	}
	if v := os.Getenv("SYLLABUS_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("SYLLABUS_METRICS_FILE"); v != "" {
		cfg.MetricsFile = v
	}
	applyDurationEnv(&cfg.ReminderInterval, "SYLLABUS_REMINDER_INTERVAL")
	applyDurationEnv(&cfg.DateRefreshInterval, "SYLLABUS_DATE_REFRESH_INTERVAL")
	if v := os.Getenv("SYLLABUS_NOTIFICATIONS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Notifications = b
		}
	}
	if v := os.Getenv("SYLLABUS_SNAPSHOT_KEEP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.SnapshotKeep = n
		}
	}

	return cfg
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	level, ok := parseLevel(c.LogLevel)
	if !ok {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func applyDurationEnv(dst *time.Duration, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return
	}
	*dst = d
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".syllabus"
	}
	return filepath.Join(home, ".syllabus")
}
