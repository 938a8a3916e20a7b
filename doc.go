// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollboard console client.

pollboard talks to an online polls API: it lists polls with their vote
counts, casts votes and creates new polls. Persistence and vote counting
happen on the server; the client only keeps what this session has voted
for.

# Starting the Client

	POLLS_BACKEND_URL=http://localhost:8080 go run .

Or with flags:

	go run . -u http://localhost:8080 -timeout 5s -log-level info

# Configuration

All settings are optional:

  - POLLS_BACKEND_URL (-u): backend base URL (default: http://localhost:8080)
  - POLLS_TIMEOUT (-timeout): per-request timeout (default: none)
  - LOG_LEVEL (-log-level): slog level (default: warn)
  - METRICS_ADDR (-metrics-addr): serve Prometheus metrics (default: off)

A .env file in the working directory is read first.

# Architecture

  - pollservice: HTTP calls to /getPolls, /vote, /createPoll
  - pollclient: poll list, vote-record and draft state
  - console: command loop
  - render: text output
  - middleware: request logging and request IDs
  - metrics: Prometheus instruments
  - models: wire types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
