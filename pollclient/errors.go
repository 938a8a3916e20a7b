// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollclient

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/pollboard/pollservice"
)

var (
	ErrValidation    = errors.New("invalid poll draft")
	ErrEmptyQuestion = fmt.Errorf("%w: question is required", ErrValidation)
	ErrTooFewOptions = fmt.Errorf("%w: at least two options are required", ErrValidation)

	ErrUnknownPoll   = errors.New("unknown poll")
	ErrUnknownOption = errors.New("unknown option")
	ErrClosed        = errors.New("poll client closed")
)

// Kind groups errors the way the presentation layer reports them
type Kind int

const (
	KindNone Kind = iota
	KindNetwork
	KindMalformed
	KindValidation
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed_response"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Classify maps err onto the client's error taxonomy
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, pollservice.ErrMalformedResponse):
		return KindMalformed
	case errors.Is(err, pollservice.ErrNetwork):
		return KindNetwork
	default:
		return KindUnknown
	}
}
