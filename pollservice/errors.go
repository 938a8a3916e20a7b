// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollservice

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork           = errors.New("poll service unreachable")
	ErrMalformedResponse = errors.New("malformed poll service response")
)

// StatusError is a non-2xx reply. It matches ErrNetwork: the request did
// not complete as far as the caller is concerned.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("poll service returned status %d", e.Code)
	}
	return fmt.Sprintf("poll service returned status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNetwork
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
