package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/console"
	"github.com/danielhkuo/pollboard/metrics"
	"github.com/danielhkuo/pollboard/pollclient"
	"github.com/danielhkuo/pollboard/pollservice"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.NewClientMetrics(reg, "pollboard")

	if cfg.MetricsAddr != "" {
		server := &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			slog.Info("Serving metrics", "addr", cfg.MetricsAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server closed", "error", err)
			}
		}()
		defer server.Close()
	}

	// Poll service and client
	svc := pollservice.NewHTTPService(cfg.BackendURL,
		pollservice.WithTimeout(cfg.Timeout),
		pollservice.WithLogger(logger),
		pollservice.WithMetrics(m),
	)
	client := pollclient.New(svc,
		pollclient.WithLogger(logger),
		pollclient.WithMetrics(m),
	)
	defer client.Close()

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	colour := isatty.IsTerminal(os.Stdout.Fd())

	slog.Info("Using backend", "url", cfg.BackendURL)
	c := console.New(client, os.Stdout,
		console.WithPrompt(interactive),
		console.WithColor(colour),
		console.WithLogger(logger),
	)
	if err := c.Run(ctx, os.Stdin); err != nil {
		slog.Error("console stopped", "error", err)
		os.Exit(1)
	}
}
