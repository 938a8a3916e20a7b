// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollclient

import (
	"errors"

	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/pollservice"
)

// User-visible error flags
const (
	MsgFetchFailed = "Failed to fetch polls"
	MsgMalformed   = "Received malformed poll data"
)

// State is everything the presentation layer can see. Values returned by
// Client.Snapshot share nothing with the client's copy.
type State struct {
	Polls   []models.Poll
	Voted   map[string]string // poll id -> option chosen this session
	Draft   Draft
	Loading bool
	Err     string
}

// The transitions below are pure: they never modify their input and the
// result never aliases its maps or slices.

func (s State) clone() State {
	out := State{
		Draft:   s.Draft.clone(),
		Loading: s.Loading,
		Err:     s.Err,
		Polls:   clonePolls(s.Polls),
		Voted:   make(map[string]string, len(s.Voted)),
	}
	for k, v := range s.Voted {
		out.Voted[k] = v
	}
	return out
}

func clonePolls(polls []models.Poll) []models.Poll {
	out := make([]models.Poll, len(polls))
	for i, p := range polls {
		out[i] = p.Clone()
	}
	return out
}

func setLoading(s State, loading bool) State {
	s = s.clone()
	s.Loading = loading
	return s
}

// applyPolls replaces the list with the authoritative one
func applyPolls(s State, polls []models.Poll) State {
	s = s.clone()
	s.Polls = clonePolls(polls)
	s.Err = ""
	return s
}

// failRefresh raises the error flag. A malformed list is replaced by an
// empty one; a network failure keeps what was already on screen.
func failRefresh(s State, err error) State {
	s = s.clone()
	if errors.Is(err, pollservice.ErrMalformedResponse) {
		s.Polls = []models.Poll{}
		s.Err = MsgMalformed
		return s
	}
	s.Err = MsgFetchFailed
	return s
}

// recordVote sets the vote-record for pollID. An existing entry wins.
func recordVote(s State, pollID, option string) State {
	s = s.clone()
	if _, ok := s.Voted[pollID]; !ok {
		s.Voted[pollID] = option
	}
	return s
}

func resetDraft(s State) State {
	s = s.clone()
	s.Draft = Draft{}
	return s
}

func keepDraft(s State, d Draft) State {
	s = s.clone()
	s.Draft = d.clone()
	return s
}

func findPoll(s State, pollID string) (models.Poll, bool) {
	for _, p := range s.Polls {
		if p.ID == pollID {
			return p, true
		}
	}
	return models.Poll{}, false
}

// OptionView is one vote button
type OptionView struct {
	Label    string
	Votes    int
	Selected bool
}

// PollView is one poll card
type PollView struct {
	ID       string
	Question string
	Options  []OptionView
	Total    int
	Voted    bool // voting disabled
	Pending  bool // vote in flight
}

// View is the derived, render-ready state
type View struct {
	Polls   []PollView
	Loading bool
	Err     string
}

// Derive computes the view for s. pending holds poll ids with a vote in
// flight and may be nil.
func Derive(s State, pending map[string]struct{}) View {
	v := View{
		Polls:   make([]PollView, 0, len(s.Polls)),
		Loading: s.Loading,
		Err:     s.Err,
	}
	for _, p := range s.Polls {
		chosen, voted := s.Voted[p.ID]
		_, inFlight := pending[p.ID]

		pv := PollView{
			ID:       p.ID,
			Question: p.Question,
			Options:  make([]OptionView, 0, len(p.Options)),
			Total:    p.TotalVotes(),
			Voted:    voted,
			Pending:  inFlight,
		}
		for _, o := range p.Options {
			pv.Options = append(pv.Options, OptionView{
				Label:    o,
				Votes:    p.VotesFor(o),
				Selected: voted && chosen == o,
			})
		}
		v.Polls = append(v.Polls, pv)
	}
	return v
}
