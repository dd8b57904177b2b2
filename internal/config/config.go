package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/doctor/internal/index"
)

type Config struct {
	// Logging
	LogLevel  string
	LogFormat string

	// Generation defaults, overridable by flags
	Jobs      int
	KeepGoing bool
	IndexName string
}

func Load() Config {
	cfg := Config{
		LogLevel:  strings.ToLower(envOr("DOCTOR_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(envOr("DOCTOR_LOG_FORMAT", "text")),

		Jobs:      envInt("DOCTOR_JOBS", 1),
		KeepGoing: envBool("DOCTOR_KEEP_GOING", false),
		IndexName: envOr("DOCTOR_INDEX_NAME", index.DefaultName),
	}

	if cfg.Jobs <= 0 {
		cfg.Jobs = 1
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("DOCTOR_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if strings.ContainsAny(c.IndexName, `/\`) {
		return fmt.Errorf("DOCTOR_INDEX_NAME must be a file name, got %q", c.IndexName)
	}
	return nil
}

// Level returns the configured slog level, defaulting to info.
func (c Config) Level() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("DOCTOR_LOG_LEVEL must be debug, info, warn or error, got %q", s)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
