// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pollclient holds the view state of a polls front end.

# State

A Client owns one State:

  - Polls: the last list fetched from the service
  - Voted: poll id → option chosen this session (the vote-record)
  - Draft: the unsaved poll-creation form
  - Loading, Err: flags for the presentation layer

State changes go through pure transition functions applied under the
client's mutex. Snapshot returns a deep copy; View derives per-option
counts, totals and the voted/pending markers ready for rendering.

# Operations

	c := pollclient.New(svc)
	err := c.Refresh(ctx)
	ok, err := c.CastVote(ctx, "p1", "Cats")
	poll, err := c.CreatePoll(ctx, pollclient.Draft{Question: "Pizza?", Options: []string{"Yes", "No"}})

Refresh replaces the list. A network failure keeps the old list and sets
Err to MsgFetchFailed; a malformed response empties it and sets
MsgMalformed. Results older than one already applied are dropped.

CastVote accepts only polls and options in the current list. A poll
already in the vote-record, or with a vote in flight, is a silent no-op.
This check is advisory; the service owns the counts. A successful vote is
recorded and followed by a refresh; a failed one changes nothing.

CreatePoll normalises the draft (trim, drop empty options, at least two
distinct options, non-empty question) and never calls the service with
an invalid one. Success resets the draft and refreshes; failure keeps
the draft for a retry.

# Errors

Classify maps any error to a Kind: network, malformed response or
validation. ErrUnknownPoll and ErrUnknownOption reject votes outside
the current list; ErrClosed is returned after Close.
*/
package pollclient
