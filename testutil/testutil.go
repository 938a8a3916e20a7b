// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/models"
)

// Backend is an in-memory polls API speaking the same routes as the real
// service. It counts requests per path and can be told to fail.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	polls     map[string]*models.Poll
	order     []string
	requests  map[string]int
	failures  map[string]int
	raw       map[string]string
	creates   []models.CreatePollRequest
	votes     []models.VoteRequest
	voteGate  chan struct{}
	pollsGate chan struct{}
}

// NewBackend starts a fake backend that shuts down with the test
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		polls:    make(map[string]*models.Poll),
		requests: make(map[string]int),
		failures: make(map[string]int),
		raw:      make(map[string]string),
	}
	b.Server = httptest.NewServer(b.Router())
	t.Cleanup(b.Server.Close)
	return b
}

// Router returns the backend's routes
func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(b.count)

	r.Get("/getPolls", middleware.WithLogging(b.getPolls))
	r.Post("/vote", middleware.WithLogging(b.vote))
	r.Post("/createPoll", middleware.WithLogging(b.createPoll))

	return r
}

func (b *Backend) URL() string {
	return b.Server.URL
}

// AddPoll seeds a poll. Missing vote entries stay missing.
func (b *Backend) AddPoll(p models.Poll) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := p.Clone()
	if cp.Votes == nil {
		cp.Votes = make(map[string]int)
	}
	if _, exists := b.polls[cp.ID]; !exists {
		b.order = append(b.order, cp.ID)
	}
	b.polls[cp.ID] = &cp
}

// Poll returns a copy of the stored poll
func (b *Backend) Poll(id string) (models.Poll, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.polls[id]
	if !ok {
		return models.Poll{}, false
	}
	return p.Clone(), true
}

// Requests returns how many requests hit path
func (b *Backend) Requests(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[path]
}

// FailWith makes path answer with status until cleared with 0
func (b *Backend) FailWith(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if status == 0 {
		delete(b.failures, path)
		return
	}
	b.failures[path] = status
}

// RespondRaw makes path answer 200 with body verbatim until cleared with ""
func (b *Backend) RespondRaw(path, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if body == "" {
		delete(b.raw, path)
		return
	}
	b.raw[path] = body
}

// Creates returns every create request received
func (b *Backend) Creates() []models.CreatePollRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.CreatePollRequest(nil), b.creates...)
}

// Votes returns every vote request received
func (b *Backend) Votes() []models.VoteRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.VoteRequest(nil), b.votes...)
}

// HoldVotes blocks /vote handlers until the returned release is called
func (b *Backend) HoldVotes() (release func()) {
	return b.hold(&b.voteGate)
}

// HoldPolls blocks /getPolls handlers until the returned release is called
func (b *Backend) HoldPolls() (release func()) {
	return b.hold(&b.pollsGate)
}

func (b *Backend) hold(gate *chan struct{}) func() {
	b.mu.Lock()
	ch := make(chan struct{})
	*gate = ch
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			if *gate == ch {
				*gate = nil
			}
			b.mu.Unlock()
			close(ch)
		})
	}
}

// wait blocks on gate (if set) or until the client goes away
func (b *Backend) wait(r *http.Request, gate *chan struct{}) {
	b.mu.Lock()
	ch := *gate
	b.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case <-ch:
	case <-r.Context().Done():
	}
}

// count tallies requests and applies injected failures and raw bodies
func (b *Backend) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests[r.URL.Path]++
		status := b.failures[r.URL.Path]
		raw, hasRaw := b.raw[r.URL.Path]
		b.mu.Unlock()

		if status != 0 {
			io.Copy(io.Discard, r.Body)
			middleware.ErrorResponse(w, status, "injected failure")
			return
		}
		if hasRaw {
			io.Copy(io.Discard, r.Body)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, raw)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) getPolls(w http.ResponseWriter, r *http.Request) {
	b.wait(r, &b.pollsGate)

	b.mu.Lock()
	list := make([]models.Poll, 0, len(b.order))
	for _, id := range b.order {
		list = append(list, b.polls[id].Clone())
	}
	b.mu.Unlock()

	middleware.JSONResponse(w, http.StatusOK, list)
}

func (b *Backend) vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.wait(r, &b.voteGate)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.votes = append(b.votes, req)

	poll, ok := b.polls[req.PollID]
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "poll not found")
		return
	}
	if !poll.HasOption(req.Option) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option does not exist")
		return
	}
	poll.Votes[req.Option]++

	slog.Debug("vote recorded", "poll_id", req.PollID, "option", req.Option)
	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{Message: "Vote recorded successfully"})
}

func (b *Backend) createPoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	b.mu.Lock()
	b.creates = append(b.creates, req)
	b.mu.Unlock()

	if strings.TrimSpace(req.Question) == "" || len(req.Options) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question and at least 2 options required")
		return
	}

	poll := models.Poll{
		ID:       uuid.NewString(),
		Question: req.Question,
		Options:  append([]string(nil), req.Options...),
		Votes:    make(map[string]int, len(req.Options)),
	}
	for _, opt := range req.Options {
		poll.Votes[opt] = 0
	}
	b.AddPoll(poll)

	slog.Debug("poll created", "poll_id", poll.ID)
	middleware.JSONResponse(w, http.StatusCreated, poll)
}
