// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultBackendURL = "http://localhost:8080"

type Config struct {
	BackendURL  string
	Timeout     time.Duration
	LogLevel    slog.Level
	MetricsAddr string
	EnvFile     string
}

// ParseFlags reads flags, then .env, then environment variables.
// Flags win over the environment.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var timeout, logLevel string

	flags := flag.NewFlagSet("pollboard", flag.ContinueOnError)

	flags.StringVar(&cfg.BackendURL, "u", "", "Polls backend base URL")
	flags.StringVar(&timeout, "timeout", "", "Per-request timeout, e.g. 5s (0 disables)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	flags.StringVar(&cfg.EnvFile, "env-file", ".env", "Optional dotenv file")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.BackendURL == "" {
		cfg.BackendURL = os.Getenv("POLLS_BACKEND_URL")
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	u, err := url.Parse(cfg.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("invalid backend URL %q", cfg.BackendURL)
	}

	if timeout == "" {
		timeout = os.Getenv("POLLS_TIMEOUT")
	}
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}
		if d < 0 {
			return Config{}, errors.New("timeout must not be negative")
		}
		cfg.Timeout = d
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	cfg.LogLevel = slog.LevelWarn
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = os.Getenv("METRICS_ADDR")
	}

	return cfg, nil
}

// loadEnvFile populates unset variables from path; a missing file is fine
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
