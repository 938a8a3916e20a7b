// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - BackendURL: polls API base URL (default: http://localhost:8080)
  - Timeout: per-request timeout (default: 0, no timeout)
  - LogLevel: slog level (default: warn)
  - MetricsAddr: Prometheus listen address (default: disabled)
  - EnvFile: dotenv file read before the environment (default: .env)

# CLI Flags

	-u             Backend base URL
	-timeout       Per-request timeout (Go duration)
	-log-level     debug, info, warn or error
	-metrics-addr  Metrics listen address
	-env-file      Dotenv file, "" to skip

# Environment Variables

Flags fall back to environment variables:

	POLLS_BACKEND_URL → -u
	POLLS_TIMEOUT     → -timeout
	LOG_LEVEL         → -log-level
	METRICS_ADDR      → -metrics-addr

The env file only fills variables that are not already set. CLI flags
take precedence over both.

# Validation

ParseFlags returns an error if:

  - the backend URL has no scheme or host
  - the timeout is not a valid, non-negative duration
  - the log level is unknown
*/
package cliparse
