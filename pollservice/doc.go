// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pollservice is the HTTP client for the remote polls API.

# Endpoints

	GET  /getPolls    → []models.Poll
	POST /vote        {"poll_id","option"}   (response ignored)
	POST /createPoll  {"question","options"} → models.Poll

# Usage

	svc := pollservice.NewHTTPService("http://localhost:8080",
		pollservice.WithLogger(logger),
		pollservice.WithMetrics(m),
	)
	polls, err := svc.GetPolls(ctx)

The default client stamps X-Request-ID and logs every request through
the middleware transports. There is no retry and no default timeout;
callers bound requests with their context or WithTimeout.

# Errors

Two sentinel errors, matched with errors.Is:

  - ErrNetwork: the request did not complete, or the backend replied
    with a non-2xx status (*StatusError carries the code and message)
  - ErrMalformedResponse: the body failed schema validation

Responses are validated at this boundary. A /getPolls body of null or
nothing is an empty list; any other non-array body, a poll without an
id, repeated options, votes for unknown options and negative counts are
all ErrMalformedResponse. Empty option labels are accepted.
*/
package pollservice
