// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the wire and domain types shared with the polls API.

# Request Types

Types encoded as JSON request bodies:

  - VoteRequest: poll_id, option
  - CreatePollRequest: question, options

# Response Types

  - VoteResponse: optional message echoed by /vote (ignored)
  - ErrorResponse: error, message (decoded from non-2xx replies)

# Domain Types

  - Poll: id, question, ordered options, votes (option -> count)

Poll carries the derived tallies the presentation layer shows:

	p.VotesFor("Dogs") // 0 when the backend sent no entry
	p.TotalVotes()     // sum of all counts

Polls are owned by the backend. Clients never edit them in place; they
re-fetch the list instead. Clone gives callers a copy that shares no maps
or slices with the original.
*/
package models
