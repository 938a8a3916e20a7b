// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Request types

type VoteRequest struct {
	PollID string `json:"poll_id"`
	Option string `json:"option"`
}

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Response types

// VoteResponse is whatever the backend echoes after a vote. Clients ignore it.
type VoteResponse struct {
	Message string `json:"message,omitempty"`
}

// Domain types

type Poll struct {
	ID       string         `json:"id"`
	Question string         `json:"question"`
	Options  []string       `json:"options"`
	Votes    map[string]int `json:"votes"` // option -> count, missing means 0
}

// VotesFor returns the count for option, 0 when absent
func (p Poll) VotesFor(option string) int {
	return p.Votes[option]
}

// TotalVotes sums every recorded count
func (p Poll) TotalVotes() int {
	total := 0
	for _, n := range p.Votes {
		total += n
	}
	return total
}

// HasOption reports whether option is one of the poll's labels
func (p Poll) HasOption(option string) bool {
	for _, o := range p.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can't mutate shared state
func (p Poll) Clone() Poll {
	out := Poll{ID: p.ID, Question: p.Question}
	if p.Options != nil {
		out.Options = append([]string(nil), p.Options...)
	}
	if p.Votes != nil {
		out.Votes = make(map[string]int, len(p.Votes))
		for k, v := range p.Votes {
			out.Votes[k] = v
		}
	}
	return out
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
