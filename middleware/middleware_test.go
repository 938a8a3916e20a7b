// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollboard/models"
)

func okTransport(status int) RoundTripperFunc {
	return func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	}
}

func TestLoggingTransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rt := LoggingTransport(logger, okTransport(http.StatusOK))
	req := httptest.NewRequest("GET", "http://backend/getPolls", nil)

	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	out := buf.String()
	if !strings.Contains(out, "request started") || !strings.Contains(out, "request completed") {
		t.Errorf("Expected start and completion lines, got: %s", out)
	}
	if !strings.Contains(out, "path=/getPolls") {
		t.Errorf("Expected path in log, got: %s", out)
	}
}

func TestLoggingTransport_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	dialErr := errors.New("connection refused")

	rt := LoggingTransport(logger, RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, dialErr
	}))

	_, err := rt.RoundTrip(httptest.NewRequest("POST", "http://backend/vote", nil))
	if !errors.Is(err, dialErr) {
		t.Errorf("Expected transport error to pass through, got %v", err)
	}
	if !strings.Contains(buf.String(), "request failed") {
		t.Errorf("Expected failure to be logged at warn, got: %s", buf.String())
	}
}

func TestRequestIDTransport(t *testing.T) {
	var seen string
	rt := RequestIDTransport(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.Header.Get(RequestIDHeader)
		return okTransport(http.StatusOK)(r)
	}))

	req := httptest.NewRequest("GET", "http://backend/getPolls", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatal(err)
	}

	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("Expected a UUID request ID, got %q", seen)
	}
	if req.Header.Get(RequestIDHeader) != "" {
		t.Error("Transport must not modify the caller's request")
	}
}

func TestRequestIDTransport_KeepsExisting(t *testing.T) {
	var seen string
	rt := RequestIDTransport(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.Header.Get(RequestIDHeader)
		return okTransport(http.StatusOK)(r)
	}))

	req := httptest.NewRequest("GET", "http://backend/getPolls", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatal(err)
	}

	if seen != "fixed-id" {
		t.Errorf("Expected existing request ID to be kept, got %q", seen)
	}
}

func TestWithLogging(t *testing.T) {
	// Create a simple handler that returns OK
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	wrappedHandler := WithLogging(testHandler)

	req := httptest.NewRequest("GET", "/getPolls", nil)
	w := httptest.NewRecorder()

	wrappedHandler(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "simple struct",
			statusCode: http.StatusOK,
			data:       map[string]string{"message": "hello"},
			expected:   `{"message":"hello"}`,
		},
		{
			name:       "poll",
			statusCode: http.StatusCreated,
			data:       models.Poll{ID: "p1", Question: "Q?", Options: []string{"a", "b"}, Votes: map[string]int{"a": 0}},
			expected:   `{"id":"p1","question":"Q?","options":["a","b"],"votes":{"a":0}}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Error: "Bad Request", Message: "missing field"},
			expected:   `{"error":"Bad Request","message":"missing field"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}

			// Check body (trim newline added by Encode)
			body := strings.TrimSpace(w.Body.String())
			if body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	ErrorResponse(w, http.StatusNotFound, "poll not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != "Not Found" {
		t.Errorf("Expected error 'Not Found', got '%s'", resp.Error)
	}
	if resp.Message != "poll not found" {
		t.Errorf("Expected message 'poll not found', got '%s'", resp.Message)
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		body := `{"poll_id":"p1","option":"Cats"}`
		req := httptest.NewRequest("POST", "/vote", strings.NewReader(body))

		var parsed models.VoteRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.PollID != "p1" || parsed.Option != "Cats" {
			t.Errorf("Unexpected parse result: %+v", parsed)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/vote", strings.NewReader(`{invalid json}`))

		var parsed models.VoteRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/vote", strings.NewReader(""))

		var parsed models.VoteRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for empty body")
		}
	})
}
