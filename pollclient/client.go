// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollclient

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/pollboard/metrics"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/pollservice"
)

// Client owns the poll list, the vote-record and the draft, and mediates
// every call to the poll service. All methods are safe for concurrent use.
// No lock is held across a network call.
type Client struct {
	svc     pollservice.PollService
	logger  *slog.Logger
	metrics *metrics.ClientMetrics

	mu         sync.Mutex
	state      State
	pending    map[string]struct{} // poll ids with a vote in flight
	refreshSeq uint64              // last refresh issued
	appliedSeq uint64              // last refresh whose result was applied
	inflight   int                 // refreshes in flight
	closed     bool
}

type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(svc pollservice.PollService, opts ...Option) *Client {
	c := &Client{
		svc:     svc,
		logger:  slog.Default(),
		pending: make(map[string]struct{}),
		state: State{
			Polls: []models.Poll{},
			Voted: make(map[string]string),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state
func (c *Client) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// View returns the derived, render-ready state
func (c *Client) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Derive(c.state, c.pending)
}

// SetDraft stores the in-progress creation form
func (c *Client) SetDraft(d Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state = keepDraft(c.state, d)
}

// Close disposes the client. Requests already in flight complete but
// their results are dropped.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Refresh replaces the poll list with the service's. On failure the error
// flag is raised and the error returned; a result older than one already
// applied is discarded.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.refreshSeq++
	seq := c.refreshSeq
	c.inflight++
	c.state = setLoading(c.state, true)
	c.mu.Unlock()

	polls, err := c.svc.GetPolls(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if c.closed {
		return ErrClosed
	}

	if seq < c.appliedSeq {
		c.logger.Debug("discarding stale poll list", "seq", seq, "applied", c.appliedSeq)
		c.state = setLoading(c.state, c.inflight > 0)
		return err
	}
	c.appliedSeq = seq

	if err != nil {
		c.logger.Error("failed to fetch polls", "error", err, "kind", Classify(err))
		c.state = setLoading(failRefresh(c.state, err), c.inflight > 0)
		return err
	}

	c.state = setLoading(applyPolls(c.state, polls), c.inflight > 0)
	c.logger.Debug("polls refreshed", "count", len(polls))
	return nil
}

// CastVote votes for option on pollID. It reports whether the vote was
// recorded. A poll already voted on (or with a vote in flight) is a
// silent no-op. After a successful vote the list is refreshed; a refresh
// failure only raises the error flag.
func (c *Client) CastVote(ctx context.Context, pollID, option string) (bool, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false, ErrClosed
	}
	poll, ok := findPoll(c.state, pollID)
	if !ok {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrUnknownPoll, pollID)
	}
	if !poll.HasOption(option) {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %q on poll %s", ErrUnknownOption, option, pollID)
	}
	_, voted := c.state.Voted[pollID]
	_, inFlight := c.pending[pollID]
	if voted || inFlight {
		c.mu.Unlock()
		c.metrics.VoteSuppressed()
		c.logger.Debug("vote suppressed, poll already voted", "poll_id", pollID, "option", option)
		return false, nil
	}
	c.pending[pollID] = struct{}{}
	c.mu.Unlock()

	err := c.svc.Vote(ctx, pollID, option)

	c.mu.Lock()
	delete(c.pending, pollID)
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to cast vote", "poll_id", pollID, "option", option, "error", err)
		return false, err
	}
	if c.closed {
		c.mu.Unlock()
		return false, ErrClosed
	}
	c.state = recordVote(c.state, pollID, option)
	c.mu.Unlock()

	c.logger.Info("vote cast", "poll_id", pollID, "option", option)

	// Failure is already flagged in state
	_ = c.Refresh(ctx)
	return true, nil
}

// CreatePoll validates and submits d. Invalid drafts never reach the
// service. On success the stored draft is reset and the list refreshed;
// on failure d is kept so the user can retry.
func (c *Client) CreatePoll(ctx context.Context, d Draft) (*models.Poll, error) {
	req, err := d.Normalize()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if err != nil {
		c.state = keepDraft(c.state, d)
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	poll, err := c.svc.CreatePoll(ctx, req)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if err != nil {
		c.state = keepDraft(c.state, d)
		c.mu.Unlock()
		c.logger.Error("failed to create poll", "question", req.Question, "error", err)
		return nil, err
	}
	c.state = resetDraft(c.state)
	c.mu.Unlock()

	c.logger.Info("poll created", "poll_id", poll.ID, "options", len(poll.Options))

	_ = c.Refresh(ctx)
	return poll, nil
}
