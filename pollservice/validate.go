// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollservice

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/pollboard/models"
)

// decodePolls parses a /getPolls body. null and empty bodies are an empty
// list; anything that is not an array of valid polls is malformed.
func decodePolls(body []byte) ([]models.Poll, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []models.Poll{}, nil
	}
	if body[0] != '[' {
		return nil, malformed("expected a JSON array of polls")
	}

	var polls []models.Poll
	if err := json.Unmarshal(body, &polls); err != nil {
		return nil, malformed("decode polls: %v", err)
	}

	seen := make(map[string]struct{}, len(polls))
	for i, p := range polls {
		if err := validatePoll(p); err != nil {
			return nil, malformed("poll %d: %v", i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, malformed("duplicate poll id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	if polls == nil {
		polls = []models.Poll{}
	}
	return polls, nil
}

// decodePoll parses a single created poll
func decodePoll(body []byte) (*models.Poll, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, malformed("expected a JSON poll object")
	}

	var p models.Poll
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, malformed("decode poll: %v", err)
	}
	if err := validatePoll(p); err != nil {
		return nil, malformed("%v", err)
	}
	return &p, nil
}

// validatePoll enforces the Poll invariants: a non-empty id, distinct
// options, and votes keyed only by known options with non-negative
// counts. An empty label is allowed; older web clients submitted them.
func validatePoll(p models.Poll) error {
	if p.ID == "" {
		return errors.New("missing id")
	}
	if len(p.Options) == 0 {
		return fmt.Errorf("poll %s has no options", p.ID)
	}

	options := make(map[string]struct{}, len(p.Options))
	for _, o := range p.Options {
		if _, dup := options[o]; dup {
			return fmt.Errorf("poll %s repeats option %q", p.ID, o)
		}
		options[o] = struct{}{}
	}

	for option, n := range p.Votes {
		if _, ok := options[option]; !ok {
			return fmt.Errorf("poll %s has votes for unknown option %q", p.ID, option)
		}
		if n < 0 {
			return fmt.Errorf("poll %s has a negative count for %q", p.ID, option)
		}
	}
	return nil
}
