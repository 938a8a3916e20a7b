// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollclient

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/pollboard/models"
)

// Draft is the unsaved poll-creation form
type Draft struct {
	Question string
	Options  []string
}

// ParseOptions splits a comma separated option list the way the web form
// accepts it. Entries are returned untrimmed; Normalize cleans them.
func ParseOptions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// Normalize trims the question and options, drops empty options and
// returns the request to send. Options must stay distinct because the
// backend keys votes by label.
func (d Draft) Normalize() (models.CreatePollRequest, error) {
	question := strings.TrimSpace(d.Question)
	if question == "" {
		return models.CreatePollRequest{}, ErrEmptyQuestion
	}

	options := make([]string, 0, len(d.Options))
	seen := make(map[string]struct{}, len(d.Options))
	for _, o := range d.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, dup := seen[o]; dup {
			return models.CreatePollRequest{}, fmt.Errorf("%w: duplicate option %q", ErrValidation, o)
		}
		seen[o] = struct{}{}
		options = append(options, o)
	}
	if len(options) < 2 {
		return models.CreatePollRequest{}, ErrTooFewOptions
	}

	return models.CreatePollRequest{Question: question, Options: options}, nil
}

// IsZero reports whether the draft is blank
func (d Draft) IsZero() bool {
	return d.Question == "" && len(d.Options) == 0
}

func (d Draft) clone() Draft {
	out := Draft{Question: d.Question}
	if d.Options != nil {
		out.Options = append([]string(nil), d.Options...)
	}
	return out
}
