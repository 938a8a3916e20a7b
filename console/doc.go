// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package console is a line-oriented front end for a poll client.

Run fetches the poll list once, prints it, then reads one command per
line:

	list
	refresh
	vote 1 Cats            # poll id, else poll number from the listing
	create Pizza? | Yes, No
	draft
	submit
	quit

Input is read on its own goroutine, so cancelling the context passed to
Run stops it even while it waits for a line.

Validation errors are printed straight away. A vote that fails on the
network is only logged; the poll stays open for another try.
*/
package console
