// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/pollboard/metrics"
	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/models"
)

// Backend endpoints
const (
	EndpointGetPolls   = "/getPolls"
	EndpointVote       = "/vote"
	EndpointCreatePoll = "/createPoll"
)

// maxBodyBytes caps how much of a response is read
const maxBodyBytes = 4 << 20

// PollService is the remote polls API
type PollService interface {
	GetPolls(ctx context.Context) ([]models.Poll, error)
	Vote(ctx context.Context, pollID, option string) error
	CreatePoll(ctx context.Context, req models.CreatePollRequest) (*models.Poll, error)
}

// HTTPClient abstracts HTTP operations for dependency injection.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type HTTPService struct {
	baseURL string
	client  HTTPClient
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.ClientMetrics
}

type Option func(*HTTPService)

// WithHTTPClient replaces the default client. WithTimeout is then ignored.
func WithHTTPClient(c HTTPClient) Option {
	return func(s *HTTPService) { s.client = c }
}

// WithTimeout sets the default client's timeout; 0 means none
func WithTimeout(d time.Duration) Option {
	return func(s *HTTPService) { s.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *HTTPService) { s.logger = l }
}

func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(s *HTTPService) { s.metrics = m }
}

func NewHTTPService(baseURL string, opts ...Option) *HTTPService {
	s := &HTTPService{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{
			Timeout: s.timeout,
			Transport: middleware.RequestIDTransport(
				middleware.LoggingTransport(s.logger, http.DefaultTransport),
			),
		}
	}
	return s
}

// GetPolls handles GET /getPolls
func (s *HTTPService) GetPolls(ctx context.Context) ([]models.Poll, error) {
	var polls []models.Poll
	err := s.call(ctx, http.MethodGet, EndpointGetPolls, nil, func(body []byte) error {
		var err error
		polls, err = decodePolls(body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return polls, nil
}

// Vote handles POST /vote. The response body is ignored.
func (s *HTTPService) Vote(ctx context.Context, pollID, option string) error {
	req := models.VoteRequest{PollID: pollID, Option: option}
	return s.call(ctx, http.MethodPost, EndpointVote, req, nil)
}

// CreatePoll handles POST /createPoll
func (s *HTTPService) CreatePoll(ctx context.Context, req models.CreatePollRequest) (*models.Poll, error) {
	var poll *models.Poll
	err := s.call(ctx, http.MethodPost, EndpointCreatePoll, req, func(body []byte) error {
		var err error
		poll, err = decodePoll(body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return poll, nil
}

// call performs one request and hands a 2xx body to decode (when non-nil).
// It records the outcome in metrics regardless of result.
func (s *HTTPService) call(ctx context.Context, method, endpoint string, in any, decode func([]byte) error) error {
	start := time.Now()
	err := s.roundTrip(ctx, method, endpoint, in, decode)
	s.metrics.ObserveRequest(endpoint, outcome(err), time.Since(start))
	if err != nil {
		s.logger.Warn("poll service call failed",
			"method", method,
			"endpoint", endpoint,
			"error", err,
		)
	}
	return err
}

func (s *HTTPService) roundTrip(ctx context.Context, method, endpoint string, in any, decode func([]byte) error) error {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", endpoint, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %w", ErrNetwork, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(body)}
	}

	if decode == nil {
		return nil
	}
	return decode(body)
}

// errorMessage pulls a readable message out of an error body
func errorMessage(body []byte) string {
	var e models.ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrMalformedResponse):
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeNetwork
	}
}
