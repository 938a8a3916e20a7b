// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollboard/models"
)

const RequestIDHeader = "X-Request-ID"

// RoundTripperFunc adapts a function to http.RoundTripper
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// orDefault returns http.DefaultTransport when next is nil
func orDefault(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		return http.DefaultTransport
	}
	return next
}

// LoggingTransport logs every outgoing request and its outcome
func LoggingTransport(logger *slog.Logger, next http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = slog.Default()
	}
	next = orDefault(next)
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()

		logger.Debug("request started",
			"method", r.Method,
			"url", r.URL.String(),
			"request_id", r.Header.Get(RequestIDHeader),
		)

		resp, err := next.RoundTrip(r)

		duration := time.Since(start)
		if err != nil {
			logger.Warn("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
			return nil, err
		}

		logger.Debug("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", resp.StatusCode,
			"duration_ms", duration.Milliseconds(),
		)
		return resp, nil
	})
}

// RequestIDTransport stamps each request with a fresh X-Request-ID
// unless the caller already set one
func RequestIDTransport(next http.RoundTripper) http.RoundTripper {
	next = orDefault(next)
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get(RequestIDHeader) != "" {
			return next.RoundTrip(r)
		}
		// RoundTrippers must not modify the caller's request
		r = r.Clone(r.Context())
		r.Header.Set(RequestIDHeader, uuid.NewString())
		return next.RoundTrip(r)
	})
}

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("request received",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get(RequestIDHeader),
		)

		next(w, r)

		slog.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}
