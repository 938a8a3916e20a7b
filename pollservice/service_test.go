// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollservice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danielhkuo/pollboard/metrics"
	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/testutil"
)

func catsOrDogs() models.Poll {
	return models.Poll{
		ID:       "p1",
		Question: "Cats or Dogs?",
		Options:  []string{"Cats", "Dogs"},
		Votes:    map[string]int{"Cats": 3},
	}
}

func TestGetPolls(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.AddPoll(catsOrDogs())

	svc := NewHTTPService(backend.URL())
	polls, err := svc.GetPolls(context.Background())
	if err != nil {
		t.Fatalf("GetPolls failed: %v", err)
	}

	if len(polls) != 1 {
		t.Fatalf("Expected 1 poll, got %d", len(polls))
	}
	if !reflect.DeepEqual(polls[0], catsOrDogs()) {
		t.Errorf("Unexpected poll: %+v", polls[0])
	}
	if polls[0].TotalVotes() != 3 || polls[0].VotesFor("Dogs") != 0 {
		t.Errorf("Unexpected tallies: total=%d dogs=%d", polls[0].TotalVotes(), polls[0].VotesFor("Dogs"))
	}
}

func TestGetPolls_EmptyBodies(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"empty array", "[]"},
		{"null", "null"},
		{"null with whitespace", "  null\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := testutil.NewBackend(t)
			backend.RespondRaw(EndpointGetPolls, tc.body)

			polls, err := NewHTTPService(backend.URL()).GetPolls(context.Background())
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if polls == nil || len(polls) != 0 {
				t.Errorf("Expected empty non-nil list, got %#v", polls)
			}
		})
	}
}

func TestGetPolls_Malformed(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"object", `{"polls":[]}`},
		{"string", `"nope"`},
		{"not json", `<html>`},
		{"missing id", `[{"question":"Q","options":["a","b"],"votes":{}}]`},
		{"no options", `[{"id":"p1","question":"Q","options":[],"votes":{}}]`},
		{"duplicate option", `[{"id":"p1","question":"Q","options":["a","a"],"votes":{}}]`},
		{"vote for unknown option", `[{"id":"p1","question":"Q","options":["a","b"],"votes":{"c":1}}]`},
		{"negative count", `[{"id":"p1","question":"Q","options":["a","b"],"votes":{"a":-1}}]`},
		{"non-numeric count", `[{"id":"p1","question":"Q","options":["a","b"],"votes":{"a":"x"}}]`},
		{"duplicate poll id", `[{"id":"p1","options":["a"]},{"id":"p1","options":["b"]}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := testutil.NewBackend(t)
			backend.RespondRaw(EndpointGetPolls, tc.body)

			_, err := NewHTTPService(backend.URL()).GetPolls(context.Background())
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("Expected ErrMalformedResponse, got %v", err)
			}
			if errors.Is(err, ErrNetwork) {
				t.Error("Malformed body must not be reported as a network error")
			}
		})
	}
}

func TestGetPolls_EmptyOptionLabel(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.RespondRaw(EndpointGetPolls, `[
		{"id":"p1","question":"Cats or Dogs?","options":["Cats","Dogs"],"votes":{"Cats":2}},
		{"id":"p2","question":"Pizza?","options":["Yes","No",""],"votes":{"Yes":1,"":1}}
	]`)

	polls, err := NewHTTPService(backend.URL()).GetPolls(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(polls) != 2 {
		t.Fatalf("Expected 2 polls, got %d", len(polls))
	}
	if polls[0].ID != "p1" || polls[1].ID != "p2" {
		t.Errorf("Expected p1, p2, got %s, %s", polls[0].ID, polls[1].ID)
	}
	if !polls[1].HasOption("") {
		t.Error("Expected empty option label kept")
	}
	if got := polls[1].TotalVotes(); got != 2 {
		t.Errorf("Expected 2 total votes on p2, got %d", got)
	}
}

func TestGetPolls_StatusError(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.FailWith(EndpointGetPolls, http.StatusInternalServerError)

	_, err := NewHTTPService(backend.URL()).GetPolls(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("Expected ErrNetwork, got %v", err)
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %T", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", statusErr.Code)
	}
	if statusErr.Message != "injected failure" {
		t.Errorf("Expected backend message, got %q", statusErr.Message)
	}
}

func TestGetPolls_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPService(url).GetPolls(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected ErrNetwork, got %v", err)
	}
}

func TestGetPolls_ContextCanceled(t *testing.T) {
	backend := testutil.NewBackend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPService(backend.URL()).GetPolls(ctx)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected ErrNetwork, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled to be wrapped, got %v", err)
	}
}

func TestVote(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.AddPoll(catsOrDogs())

	svc := NewHTTPService(backend.URL())
	if err := svc.Vote(context.Background(), "p1", "Dogs"); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	votes := backend.Votes()
	if len(votes) != 1 || votes[0] != (models.VoteRequest{PollID: "p1", Option: "Dogs"}) {
		t.Errorf("Unexpected vote requests: %+v", votes)
	}
	p, _ := backend.Poll("p1")
	if p.VotesFor("Dogs") != 1 {
		t.Errorf("Expected Dogs to have 1 vote, got %d", p.VotesFor("Dogs"))
	}
}

func TestVote_IgnoresResponseBody(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.RespondRaw(EndpointVote, "not json at all")

	if err := NewHTTPService(backend.URL()).Vote(context.Background(), "p1", "Cats"); err != nil {
		t.Errorf("Vote should ignore the body, got %v", err)
	}
}

func TestVote_Rejected(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.AddPoll(catsOrDogs())

	err := NewHTTPService(backend.URL()).Vote(context.Background(), "p1", "Birds")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 StatusError, got %v", err)
	}
}

func TestCreatePoll(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc := NewHTTPService(backend.URL())

	req := models.CreatePollRequest{Question: "Pizza?", Options: []string{"Yes", "No"}}
	poll, err := svc.CreatePoll(context.Background(), req)
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	if poll.ID == "" {
		t.Error("Expected server-assigned id")
	}
	if poll.Question != "Pizza?" || !reflect.DeepEqual(poll.Options, []string{"Yes", "No"}) {
		t.Errorf("Unexpected poll: %+v", poll)
	}

	creates := backend.Creates()
	if len(creates) != 1 || !reflect.DeepEqual(creates[0], req) {
		t.Errorf("Unexpected create requests: %+v", creates)
	}
}

func TestCreatePoll_MalformedResponse(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"null", "null"},
		{"array", "[]"},
		{"missing id", `{"question":"Q","options":["a","b"]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := testutil.NewBackend(t)
			backend.RespondRaw(EndpointCreatePoll, tc.body)

			_, err := NewHTTPService(backend.URL()).CreatePoll(context.Background(),
				models.CreatePollRequest{Question: "Q", Options: []string{"a", "b"}})
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("Expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestRequestsCarryRequestID(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(middleware.RequestIDHeader)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	if _, err := NewHTTPService(srv.URL).GetPolls(context.Background()); err != nil {
		t.Fatal(err)
	}
	if seen == "" {
		t.Error("Expected X-Request-ID on outgoing request")
	}
}

func TestMetricsRecorded(t *testing.T) {
	backend := testutil.NewBackend(t)
	m := metrics.NewClientMetrics(prometheus.NewRegistry(), "pollboard")
	svc := NewHTTPService(backend.URL(), WithMetrics(m))

	svc.GetPolls(context.Background())
	backend.RespondRaw(EndpointGetPolls, `{}`)
	svc.GetPolls(context.Background())
	backend.FailWith(EndpointVote, http.StatusServiceUnavailable)
	svc.Vote(context.Background(), "p1", "a")

	checks := []struct {
		endpoint, outcome string
		want              float64
	}{
		{EndpointGetPolls, metrics.OutcomeOK, 1},
		{EndpointGetPolls, metrics.OutcomeMalformed, 1},
		{EndpointVote, metrics.OutcomeNetwork, 1},
	}
	for _, c := range checks {
		got := promtest.ToFloat64(m.RequestsTotal.WithLabelValues(c.endpoint, c.outcome))
		if got != c.want {
			t.Errorf("%s %s: expected %v, got %v", c.endpoint, c.outcome, c.want, got)
		}
	}
}

func TestWithHTTPClient(t *testing.T) {
	called := false
	client := &http.Client{Transport: middleware.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return http.DefaultTransport.RoundTrip(r)
	})}

	backend := testutil.NewBackend(t)
	if _, err := NewHTTPService(backend.URL()+"/", WithHTTPClient(client)).GetPolls(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("Expected injected client to be used")
	}
}
