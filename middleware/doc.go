// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Client Transports

Outgoing requests to the polls backend go through a chain of
http.RoundTripper wrappers:

	transport := middleware.RequestIDTransport(
		middleware.LoggingTransport(logger, http.DefaultTransport),
	)
	client := &http.Client{Transport: transport}

RequestIDTransport sets X-Request-ID to a random UUID when the caller has
not set one. LoggingTransport logs start and completion at debug level,
and transport failures at warn:

	level=DEBUG msg="request completed" method=GET path=/getPolls status=200 duration_ms=4

# Server Helpers

The fake backend in testutil uses the server-side helpers:

  - WithLogging: wraps an http.HandlerFunc with request logging
  - JSONResponse: writes a status code and JSON body
  - ErrorResponse: writes models.ErrorResponse with the status text
  - ParseJSONBody: decodes and closes a request body

Example:

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
